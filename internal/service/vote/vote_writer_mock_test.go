package vote

import (
	"context"
	"github.com/VW-ai/where2meet-client/internal/domain"
	"sync"
)

var _ voteWriter = &voteWriterMock{}

type voteWriterMock struct {
	CastVoteFunc func(ctx context.Context, eventID string, actorID string, venue domain.VenueDetails) error

	RemoveVoteFunc func(ctx context.Context, eventID string, actorID string, venueID string) error

	calls struct {
		CastVote []struct {
			Ctx     context.Context
			EventID string
			ActorID string
			Venue   domain.VenueDetails
		}
		RemoveVote []struct {
			Ctx     context.Context
			EventID string
			ActorID string
			VenueID string
		}
	}
	lockCastVote   sync.RWMutex
	lockRemoveVote sync.RWMutex
}

func (mock *voteWriterMock) CastVote(ctx context.Context, eventID string, actorID string, venue domain.VenueDetails) error {
	if mock.CastVoteFunc == nil {
		panic("voteWriterMock.CastVoteFunc: method is nil but voteWriter.CastVote was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID string
		ActorID string
		Venue   domain.VenueDetails
	}{Ctx: ctx, EventID: eventID, ActorID: actorID, Venue: venue}
	mock.lockCastVote.Lock()
	mock.calls.CastVote = append(mock.calls.CastVote, callInfo)
	mock.lockCastVote.Unlock()
	return mock.CastVoteFunc(ctx, eventID, actorID, venue)
}

func (mock *voteWriterMock) CastVoteCalls() []struct {
	Ctx     context.Context
	EventID string
	ActorID string
	Venue   domain.VenueDetails
} {
	mock.lockCastVote.RLock()
	calls := mock.calls.CastVote
	mock.lockCastVote.RUnlock()
	return calls
}

func (mock *voteWriterMock) RemoveVote(ctx context.Context, eventID string, actorID string, venueID string) error {
	if mock.RemoveVoteFunc == nil {
		panic("voteWriterMock.RemoveVoteFunc: method is nil but voteWriter.RemoveVote was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EventID string
		ActorID string
		VenueID string
	}{Ctx: ctx, EventID: eventID, ActorID: actorID, VenueID: venueID}
	mock.lockRemoveVote.Lock()
	mock.calls.RemoveVote = append(mock.calls.RemoveVote, callInfo)
	mock.lockRemoveVote.Unlock()
	return mock.RemoveVoteFunc(ctx, eventID, actorID, venueID)
}

func (mock *voteWriterMock) RemoveVoteCalls() []struct {
	Ctx     context.Context
	EventID string
	ActorID string
	VenueID string
} {
	mock.lockRemoveVote.RLock()
	calls := mock.calls.RemoveVote
	mock.lockRemoveVote.RUnlock()
	return calls
}
