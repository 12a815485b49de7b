package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/wire"
)

func (r *Router) handleEventUpdated(ctx context.Context, data []byte) error {
	var p wire.Event
	if err := decode(data, &p); err != nil {
		return err
	}
	if err := r.sameEvent(p.Identifier()); err != nil {
		return err
	}

	updatedAt := r.now()
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}
	r.store.UpdateEvent(func(e *domain.Event) {
		if p.Title != nil {
			e.Title = *p.Title
		}
		if p.MeetingTime != nil {
			t := *p.MeetingTime
			e.MeetingTime = &t
		}
		e.UpdatedAt = updatedAt
	})
	return nil
}

func (r *Router) handleEventPublished(ctx context.Context, data []byte) error {
	p, err := wire.DecodePublished(data)
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedJSON, err)
	}
	if err := r.sameEvent(p.Identifier()); err != nil {
		return err
	}
	if p.PublishedVenueID == nil || *p.PublishedVenueID == "" {
		return fmt.Errorf("%w: publishedVenueId", errMissingField)
	}

	venueID := *p.PublishedVenueID
	publishedAt := r.now()
	if p.PublishedAt != nil {
		publishedAt = *p.PublishedAt
	}
	r.store.UpdateEvent(func(e *domain.Event) {
		e.State = domain.PublicationPublished
		e.PublishedVenueID = &venueID
		e.PublishedAt = &publishedAt
		e.UpdatedAt = publishedAt
	})
	r.log.InfoContext(ctx, "event published", slog.String("venue_id", venueID))
	return nil
}

func (r *Router) decodeParticipant(data []byte) (domain.Participant, error) {
	var p wire.ParticipantChange
	if err := decode(data, &p); err != nil {
		return domain.Participant{}, err
	}
	if err := r.sameEvent(p.EventID); err != nil {
		return domain.Participant{}, err
	}
	if p.Participant == nil || p.Participant.ID == "" {
		return domain.Participant{}, fmt.Errorf("%w: participant.id", errMissingField)
	}
	return p.Participant.Domain(r.store.EventID()), nil
}

func (r *Router) handleParticipantAdded(ctx context.Context, data []byte) error {
	p, err := r.decodeParticipant(data)
	if err != nil {
		return err
	}
	if !r.store.AddParticipant(p) {
		r.log.WarnContext(ctx, "duplicate participant ignored", slog.String("participant_id", p.ID))
	}
	return nil
}

func (r *Router) handleParticipantUpdated(_ context.Context, data []byte) error {
	p, err := r.decodeParticipant(data)
	if err != nil {
		return err
	}
	r.store.UpsertParticipant(p)
	return nil
}

func (r *Router) handleParticipantRemoved(ctx context.Context, data []byte) error {
	var p wire.ParticipantChange
	if err := decode(data, &p); err != nil {
		return err
	}
	if err := r.sameEvent(p.EventID); err != nil {
		return err
	}

	id := p.ParticipantID
	if id == "" && p.Participant != nil {
		id = p.Participant.ID
	}
	if id == "" {
		return fmt.Errorf("%w: participantId", errMissingField)
	}
	if !r.store.RemoveParticipant(id) {
		r.log.DebugContext(ctx, "unknown participant removed", slog.String("participant_id", id))
	}
	return nil
}

// handleVoteChanged applies a single-venue delta. A delta without a voter
// list is incomplete and skipped; the next statistics event carries it.
func (r *Router) handleVoteChanged(ctx context.Context, data []byte) error {
	var p wire.VoteChange
	if err := decode(data, &p); err != nil {
		return err
	}
	if err := r.sameEvent(p.EventID); err != nil {
		return err
	}
	if p.VenueID == "" {
		return fmt.Errorf("%w: venueId", errMissingField)
	}
	if p.Voters == nil {
		r.log.WarnContext(ctx, "incomplete vote delta skipped", slog.String("venue_id", p.VenueID))
		return nil
	}

	r.reconciler.ApplyVenueDelta(ctx, p.Tally())
	return nil
}

// handleVoteStatistics applies a pushed statistics batch. An empty batch
// is ignored while local statistics exist: the server is known to emit
// spurious empty snapshots.
func (r *Router) handleVoteStatistics(ctx context.Context, data []byte) error {
	var p wire.Statistics
	if err := decode(data, &p); err != nil {
		return err
	}
	if err := r.sameEvent(p.EventID); err != nil {
		return err
	}

	snap := p.Snapshot(r.store.EventID())
	if snap.IsEmpty() && r.store.HasStats() {
		r.log.WarnContext(ctx, "suspect empty statistics ignored")
		return nil
	}

	r.reconciler.ApplyPushSnapshot(ctx, snap)
	return nil
}
