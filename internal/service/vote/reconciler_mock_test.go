package vote

import (
	"context"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
	"sync"
)

var _ reconciler = &reconcilerMock{}

type reconcilerMock struct {
	LoadSnapshotFunc func(ctx context.Context, trigger reconcile.Trigger) bool

	calls struct {
		LoadSnapshot []struct {
			Ctx     context.Context
			Trigger reconcile.Trigger
		}
	}
	lockLoadSnapshot sync.RWMutex
}

func (mock *reconcilerMock) LoadSnapshot(ctx context.Context, trigger reconcile.Trigger) bool {
	if mock.LoadSnapshotFunc == nil {
		panic("reconcilerMock.LoadSnapshotFunc: method is nil but reconciler.LoadSnapshot was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Trigger reconcile.Trigger
	}{Ctx: ctx, Trigger: trigger}
	mock.lockLoadSnapshot.Lock()
	mock.calls.LoadSnapshot = append(mock.calls.LoadSnapshot, callInfo)
	mock.lockLoadSnapshot.Unlock()
	return mock.LoadSnapshotFunc(ctx, trigger)
}

func (mock *reconcilerMock) LoadSnapshotCalls() []struct {
	Ctx     context.Context
	Trigger reconcile.Trigger
} {
	mock.lockLoadSnapshot.RLock()
	calls := mock.calls.LoadSnapshot
	mock.lockLoadSnapshot.RUnlock()
	return calls
}
