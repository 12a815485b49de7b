package reconcile

import (
	"context"
	"github.com/VW-ai/where2meet-client/internal/auth"
	"sync"
)

var _ identityProvider = &identityProviderMock{}

type identityProviderMock struct {
	IdentityFunc func(ctx context.Context) auth.Identity

	calls struct {
		Identity []struct {
			Ctx context.Context
		}
	}
	lockIdentity sync.RWMutex
}

func (mock *identityProviderMock) Identity(ctx context.Context) auth.Identity {
	if mock.IdentityFunc == nil {
		panic("identityProviderMock.IdentityFunc: method is nil but identityProvider.Identity was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockIdentity.Lock()
	mock.calls.Identity = append(mock.calls.Identity, callInfo)
	mock.lockIdentity.Unlock()
	return mock.IdentityFunc(ctx)
}

func (mock *identityProviderMock) IdentityCalls() []struct {
	Ctx context.Context
} {
	mock.lockIdentity.RLock()
	calls := mock.calls.Identity
	mock.lockIdentity.RUnlock()
	return calls
}
