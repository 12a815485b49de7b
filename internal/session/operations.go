package session

import (
	"context"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
	"github.com/VW-ai/where2meet-client/internal/service/vote"
	"github.com/VW-ai/where2meet-client/internal/store"
)

// Store returns the entity store of the session for reads and subscriptions.
func (s *Session) Store() *store.Store {
	return s.store
}

// EventID returns the event this session follows.
func (s *Session) EventID() string {
	return s.cfg.EventID
}

// State returns the push stream connection state.
func (s *Session) State() domain.ConnectionState {
	return s.stream.State()
}

// StreamErr returns the terminal stream error, if reconnects gave up.
func (s *Session) StreamErr() error {
	return s.stream.Err()
}

// Loading reports whether a snapshot fetch is in flight.
func (s *Session) Loading() bool {
	return s.reconciler.Loading()
}

// Connect (re)starts the push stream with a fresh attempt counter.
func (s *Session) Connect() {
	s.stream.Connect()
}

// Disconnect closes the push stream without reconnecting.
func (s *Session) Disconnect() {
	s.stream.Disconnect()
}

// SetOnline reports a host network transition to the stream.
func (s *Session) SetOnline(online bool) {
	s.stream.SetOnline(online)
}

// Refresh loads a snapshot now, bypassing the cooldown.
func (s *Session) Refresh(ctx context.Context) bool {
	return s.reconciler.LoadSnapshot(ctx, reconcile.TriggerManual)
}

// CastVote votes for venueID. venue, when given, carries the details the
// voter saw. Votes on the same venue are serialized.
func (s *Session) CastVote(ctx context.Context, venueID string, venue *domain.VenueDetails) error {
	unlock := s.venueLocks.lock(venueID)
	defer unlock()

	return s.votes.CastVote(ctx, vote.CastVoteInput{
		EventID: s.cfg.EventID,
		VenueID: venueID,
		Venue:   venue,
	})
}

// RemoveVote withdraws the actor's vote for venueID.
func (s *Session) RemoveVote(ctx context.Context, venueID string) error {
	unlock := s.venueLocks.lock(venueID)
	defer unlock()

	return s.votes.RemoveVote(ctx, vote.RemoveVoteInput{
		EventID: s.cfg.EventID,
		VenueID: venueID,
	})
}
