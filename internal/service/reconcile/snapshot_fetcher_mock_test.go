package reconcile

import (
	"context"
	"github.com/VW-ai/where2meet-client/internal/domain"
	"sync"
)

var _ snapshotFetcher = &snapshotFetcherMock{}

type snapshotFetcherMock struct {
	FetchSnapshotFunc func(ctx context.Context, eventID string) (domain.Snapshot, error)

	calls struct {
		FetchSnapshot []struct {
			Ctx     context.Context
			EventID string
		}
	}
	lockFetchSnapshot sync.RWMutex
}

func (mock *snapshotFetcherMock) FetchSnapshot(ctx context.Context, eventID string) (domain.Snapshot, error) {
	if mock.FetchSnapshotFunc == nil {
		panic("snapshotFetcherMock.FetchSnapshotFunc: method is nil but snapshotFetcher.FetchSnapshot was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID string
	}{Ctx: ctx, EventID: eventID}
	mock.lockFetchSnapshot.Lock()
	mock.calls.FetchSnapshot = append(mock.calls.FetchSnapshot, callInfo)
	mock.lockFetchSnapshot.Unlock()
	return mock.FetchSnapshotFunc(ctx, eventID)
}

func (mock *snapshotFetcherMock) FetchSnapshotCalls() []struct {
	Ctx     context.Context
	EventID string
} {
	mock.lockFetchSnapshot.RLock()
	calls := mock.calls.FetchSnapshot
	mock.lockFetchSnapshot.RUnlock()
	return calls
}
