package reconcile

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/VW-ai/where2meet-client/internal/auth"
	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/store"
)

type snapshotFetcher interface {
	FetchSnapshot(ctx context.Context, eventID string) (domain.Snapshot, error)
}

type hydrator interface {
	Schedule(venueIDs ...string)
}

type identityProvider interface {
	Identity(ctx context.Context) auth.Identity
}

// Trigger names the reason for a snapshot load.
type Trigger string

const (
	TriggerConnect  Trigger = "connect"
	TriggerStream   Trigger = "stream-connected"
	TriggerPeriodic Trigger = "periodic"
	TriggerMutation Trigger = "mutation"
	TriggerManual   Trigger = "manual"
)

// throttled reports whether loads for t share the cooldown window.
func (t Trigger) throttled() bool {
	switch t {
	case TriggerConnect, TriggerStream, TriggerPeriodic:
		return true
	}
	return false
}

// Config holds reconciliation settings.
type Config struct {
	Cooldown     time.Duration
	FetchTimeout time.Duration
}

// Service merges authoritative snapshots and push statistics into the store.
type Service struct {
	log      *slog.Logger
	store    *store.Store
	fetcher  snapshotFetcher
	hydrator hydrator
	identity identityProvider

	fetchTimeout time.Duration
	limiter      *rate.Limiter
	now          func() time.Time
	group        singleflight.Group
	loading      atomic.Int32
	fetchSeq     atomic.Uint64

	applyMu    sync.Mutex
	appliedSeq uint64
}

// NewService creates a reconciliation service for the event held by st.
func NewService(
	logger *slog.Logger,
	st *store.Store,
	fetcher snapshotFetcher,
	hyd hydrator,
	identity identityProvider,
	cfg Config,
) *Service {
	limit := rate.Inf
	if cfg.Cooldown > 0 {
		limit = rate.Every(cfg.Cooldown)
	}
	return &Service{
		log:          logger.With("service", "reconcile"),
		store:        st,
		fetcher:      fetcher,
		hydrator:     hyd,
		identity:     identity,
		fetchTimeout: cfg.FetchTimeout,
		limiter:      rate.NewLimiter(limit, 1),
		now:          time.Now,
	}
}

// Loading reports whether a snapshot fetch is in flight.
func (s *Service) Loading() bool {
	return s.loading.Load() > 0
}

// LoadSnapshot fetches the authoritative snapshot and merges it. Connect,
// stream and periodic triggers are skipped inside the cooldown window and
// concurrent loads among them share one fetch. Mutation and manual loads
// always fetch on their own. A fetch that finishes after a later-started
// fetch was applied is discarded. Fetch failures are logged and leave the
// store unchanged. Reports whether a snapshot was applied.
func (s *Service) LoadSnapshot(ctx context.Context, trigger Trigger) bool {
	if !trigger.throttled() {
		applied, err := s.fetchAndApply(ctx, trigger)
		return s.done(ctx, trigger, applied, err)
	}

	if !s.limiter.AllowN(s.now(), 1) {
		s.log.DebugContext(ctx, "snapshot load throttled", slog.String("trigger", string(trigger)))
		return false
	}

	v, err, shared := s.group.Do("sync", func() (any, error) {
		return s.fetchAndApply(ctx, trigger)
	})
	if shared {
		s.log.DebugContext(ctx, "snapshot load shared", slog.String("trigger", string(trigger)))
	}
	applied, _ := v.(bool)
	return s.done(ctx, trigger, applied, err)
}

func (s *Service) done(ctx context.Context, trigger Trigger, applied bool, err error) bool {
	if err != nil {
		s.log.WarnContext(ctx, "snapshot load failed",
			slog.String("trigger", string(trigger)),
			slog.String("error", err.Error()),
		)
		return false
	}
	return applied
}

func (s *Service) fetchAndApply(ctx context.Context, trigger Trigger) (bool, error) {
	s.loading.Add(1)
	defer s.loading.Add(-1)

	seq := s.fetchSeq.Add(1)

	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	snap, err := s.fetcher.FetchSnapshot(fetchCtx, s.store.EventID())
	if err != nil {
		return false, err
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	if seq < s.appliedSeq {
		s.log.DebugContext(ctx, "stale snapshot discarded",
			slog.String("trigger", string(trigger)),
			slog.Uint64("seq", seq),
			slog.Uint64("applied_seq", s.appliedSeq),
		)
		return false, nil
	}
	s.appliedSeq = seq
	s.apply(ctx, snap, trigger)
	return true, nil
}

// ApplyPushSnapshot merges a statistics payload received on the stream.
func (s *Service) ApplyPushSnapshot(ctx context.Context, snap domain.Snapshot) {
	s.apply(ctx, snap, "push")
}

// ApplyVenueDelta merges a single-venue statistics update.
func (s *Service) ApplyVenueDelta(ctx context.Context, tally domain.VenueTally) {
	if tally.Venue.ID == "" {
		return
	}
	hydrate := s.mergeDetail(tally.Venue)
	s.store.OverwriteStats(tally.Stats())
	s.refreshActor(ctx)

	if hydrate {
		s.hydrator.Schedule(tally.Venue.ID)
	}
}

// apply is the merge policy shared by pulled and pushed snapshots: detail
// entries are only created, never overwritten, and the statistics segment
// is replaced as a whole.
func (s *Service) apply(ctx context.Context, snap domain.Snapshot, trigger Trigger) {
	if snap.Event != nil {
		s.store.SetEvent(*snap.Event)
	}
	if snap.Participants != nil {
		s.store.ReplaceParticipants(snap.Participants)
	}

	stats := make([]domain.VoteStats, 0, len(snap.Venues))
	var pending []string
	for _, t := range snap.Venues {
		if t.Venue.ID == "" {
			continue
		}
		if s.mergeDetail(t.Venue) {
			pending = append(pending, t.Venue.ID)
		}
		stats = append(stats, t.Stats())
	}
	s.store.ReplaceStats(stats)
	s.refreshActor(ctx)

	if len(pending) > 0 {
		s.hydrator.Schedule(pending...)
	}

	s.log.InfoContext(ctx, "snapshot applied",
		slog.String("trigger", string(trigger)),
		slog.Int("venues", len(stats)),
		slog.Int("total_votes", snap.TotalVotes),
		slog.Int("hydrating", len(pending)),
	)
}

// mergeDetail creates a minimal detail entry when none exists. Reports
// whether the stored entry, new or not, still needs hydration.
func (s *Service) mergeDetail(v domain.VenueDetails) bool {
	s.store.UpsertDetailIfAbsent(v)
	if s.store.HasFullDetails(v.ID) {
		return false
	}
	stored, ok := s.store.Details(v.ID)
	return ok && stored.NeedsHydration()
}

func (s *Service) refreshActor(ctx context.Context) {
	id := s.identity.Identity(ctx)
	s.store.SetActorID(id.ActorID(s.store.ActorID()))
}
