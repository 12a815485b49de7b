package vote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
)

// RemoveVote drops the actor from the venue's voters locally, deleting the
// statistics entry once nobody votes for it, then writes the removal
// remotely. A failed write restores the previous statistics.
func (s *Service) RemoveVote(ctx context.Context, input RemoveVoteInput) error {
	actorID, err := s.actor(ctx)
	if err != nil {
		return err
	}
	if err := input.Validate(s.store.EventID()); err != nil {
		return err
	}

	venueID := strings.TrimSpace(input.VenueID)
	s.store.SetActorID(actorID)

	prev, existed := s.store.MutateStats(venueID, func(cur domain.VoteStats, exists bool) (domain.VoteStats, bool) {
		if !exists {
			return cur, false
		}
		voters := make([]string, 0, len(cur.VoterIDs))
		for _, id := range cur.VoterIDs {
			if id != actorID {
				voters = append(voters, id)
			}
		}
		if len(voters) == 0 {
			return cur, false
		}
		cur.VoterIDs = voters
		cur.VoteCount = len(voters)
		return cur, true
	})

	if err := s.writer.RemoveVote(ctx, s.store.EventID(), actorID, venueID); err != nil {
		s.store.RestoreStats(venueID, prev, existed)
		s.log.ErrorContext(ctx, "remove vote failed, statistics rolled back",
			slog.String("venue_id", venueID),
			slog.String("actor_id", actorID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("remove vote: %w", err)
	}

	s.log.InfoContext(ctx, "vote removed",
		slog.String("venue_id", venueID),
		slog.String("actor_id", actorID),
	)
	s.reconciler.LoadSnapshot(ctx, reconcile.TriggerMutation)
	return nil
}
