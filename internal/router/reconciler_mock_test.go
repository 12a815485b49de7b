package router

import (
	"context"
	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
	"sync"
)

var _ reconciler = &reconcilerMock{}

type reconcilerMock struct {
	ApplyPushSnapshotFunc func(ctx context.Context, snap domain.Snapshot)

	ApplyVenueDeltaFunc func(ctx context.Context, tally domain.VenueTally)

	LoadSnapshotFunc func(ctx context.Context, trigger reconcile.Trigger) bool

	calls struct {
		ApplyPushSnapshot []struct {
			Ctx  context.Context
			Snap domain.Snapshot
		}
		ApplyVenueDelta []struct {
			Ctx   context.Context
			Tally domain.VenueTally
		}
		LoadSnapshot []struct {
			Ctx     context.Context
			Trigger reconcile.Trigger
		}
	}
	lockApplyPushSnapshot sync.RWMutex
	lockApplyVenueDelta   sync.RWMutex
	lockLoadSnapshot      sync.RWMutex
}

func (mock *reconcilerMock) ApplyPushSnapshot(ctx context.Context, snap domain.Snapshot) {
	if mock.ApplyPushSnapshotFunc == nil {
		panic("reconcilerMock.ApplyPushSnapshotFunc: method is nil but reconciler.ApplyPushSnapshot was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Snap domain.Snapshot
	}{Ctx: ctx, Snap: snap}
	mock.lockApplyPushSnapshot.Lock()
	mock.calls.ApplyPushSnapshot = append(mock.calls.ApplyPushSnapshot, callInfo)
	mock.lockApplyPushSnapshot.Unlock()
	mock.ApplyPushSnapshotFunc(ctx, snap)
}

func (mock *reconcilerMock) ApplyPushSnapshotCalls() []struct {
	Ctx  context.Context
	Snap domain.Snapshot
} {
	mock.lockApplyPushSnapshot.RLock()
	calls := mock.calls.ApplyPushSnapshot
	mock.lockApplyPushSnapshot.RUnlock()
	return calls
}

func (mock *reconcilerMock) ApplyVenueDelta(ctx context.Context, tally domain.VenueTally) {
	if mock.ApplyVenueDeltaFunc == nil {
		panic("reconcilerMock.ApplyVenueDeltaFunc: method is nil but reconciler.ApplyVenueDelta was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Tally domain.VenueTally
	}{Ctx: ctx, Tally: tally}
	mock.lockApplyVenueDelta.Lock()
	mock.calls.ApplyVenueDelta = append(mock.calls.ApplyVenueDelta, callInfo)
	mock.lockApplyVenueDelta.Unlock()
	mock.ApplyVenueDeltaFunc(ctx, tally)
}

func (mock *reconcilerMock) ApplyVenueDeltaCalls() []struct {
	Ctx   context.Context
	Tally domain.VenueTally
} {
	mock.lockApplyVenueDelta.RLock()
	calls := mock.calls.ApplyVenueDelta
	mock.lockApplyVenueDelta.RUnlock()
	return calls
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
