package vote

import (
	"context"
	"log/slog"

	"github.com/VW-ai/where2meet-client/internal/auth"
	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
	"github.com/VW-ai/where2meet-client/internal/store"
)

type voteWriter interface {
	CastVote(ctx context.Context, eventID, actorID string, venue domain.VenueDetails) error
	RemoveVote(ctx context.Context, eventID, actorID, venueID string) error
}

type reconciler interface {
	LoadSnapshot(ctx context.Context, trigger reconcile.Trigger) bool
}

type identityProvider interface {
	Identity(ctx context.Context) auth.Identity
}

// Service applies votes optimistically: the store changes first, the remote
// write follows, and a failed write rolls back the statistics segment only.
//
// Calls for the same venue must be serialized by the caller; calls for
// different venues are independent.
type Service struct {
	log        *slog.Logger
	store      *store.Store
	writer     voteWriter
	reconciler reconciler
	identity   identityProvider
}

// NewService creates a vote service for the event held by st.
func NewService(
	logger *slog.Logger,
	st *store.Store,
	writer voteWriter,
	rec reconciler,
	identity identityProvider,
) *Service {
	return &Service{
		log:        logger.With("service", "vote"),
		store:      st,
		writer:     writer,
		reconciler: rec,
		identity:   identity,
	}
}

// actor resolves the acting identity and checks the write credential.
func (s *Service) actor(ctx context.Context) (string, error) {
	id := s.identity.Identity(ctx)
	actorID := id.ActorID(s.store.ActorID())
	if actorID == "" {
		return "", &domain.MissingCredentialError{Field: "actor_id"}
	}
	if !id.HasToken() {
		return "", &domain.MissingCredentialError{Field: "token"}
	}
	return actorID, nil
}
