package vote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
)

// CastVote adds the actor to the venue's voters locally, then writes the
// vote remotely. On success the store is reconciled against the server; on
// failure the venue's statistics revert and the error is returned. Details
// written from input.Venue are kept either way.
func (s *Service) CastVote(ctx context.Context, input CastVoteInput) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return err
	}
	if err := input.Validate(s.store.EventID()); err != nil {
		return err
	}

	venueID := strings.TrimSpace(input.VenueID)
	s.store.SetActorID(actorID)

	prev, existed := s.store.MutateStats(venueID, func(cur domain.VoteStats, _ bool) (domain.VoteStats, bool) {
		if !cur.HasVoter(actorID) {
			cur.VoterIDs = append(cur.VoterIDs, actorID)
		}
		cur.VoteCount = len(cur.VoterIDs)
		return cur, true
	})

	venue := domain.VenueDetails{ID: venueID}
	if input.Venue != nil {
		venue = input.Venue.Clone()
		venue.ID = venueID
		s.store.UpgradeDetail(venue)
	} else if known, ok := s.store.Details(venueID); ok {
		venue = known
	}

	if err := s.writer.CastVote(ctx, s.store.EventID(), actorID, venue); err != nil {
		s.store.RestoreStats(venueID, prev, existed)
		s.log.ErrorContext(ctx, "cast vote failed, statistics rolled back",
			slog.String("venue_id", venueID),
			slog.String("actor_id", actorID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("cast vote: %w", err)
	}

	s.log.InfoContext(ctx, "vote cast",
		slog.String("venue_id", venueID),
		slog.String("actor_id", actorID),
	)
	s.reconciler.LoadSnapshot(ctx, reconcile.TriggerMutation)
	return nil
}
