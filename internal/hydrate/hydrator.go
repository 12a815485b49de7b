// Package hydrate upgrades minimal venue detail entries in the background.
// Hydration is best-effort: failures are logged at debug level and the
// minimal entry stays in place.
package hydrate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/store"
)

type venueFetcher interface {
	FetchVenue(ctx context.Context, venueID string) (domain.VenueDetails, error)
}

// Config holds hydration settings.
type Config struct {
	Concurrency  int
	BatchWait    time.Duration
	FetchTimeout time.Duration
}

// Hydrator schedules detail fetches for venues known only minimally.
type Hydrator struct {
	log     *slog.Logger
	store   *store.Store
	fetcher venueFetcher
	cfg     Config

	loader *dataloader.Loader[string, domain.VenueDetails]
	sem    *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a Hydrator. Fetches are grouped into batches of at most
// cfg.Concurrency venues and never exceed cfg.Concurrency in parallel.
func New(logger *slog.Logger, st *store.Store, fetcher venueFetcher, cfg Config) *Hydrator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hydrator{
		log:      logger.With("component", "hydrate"),
		store:    st,
		fetcher:  fetcher,
		cfg:      cfg,
		sem:      semaphore.NewWeighted(int64(cfg.Concurrency)),
		ctx:      ctx,
		cancel:   cancel,
		inFlight: make(map[string]struct{}),
	}
	h.loader = dataloader.NewBatchedLoader(
		h.batch,
		dataloader.WithWait[string, domain.VenueDetails](cfg.BatchWait),
		dataloader.WithBatchCapacity[string, domain.VenueDetails](cfg.Concurrency),
		dataloader.WithCache[string, domain.VenueDetails](&dataloader.NoCache[string, domain.VenueDetails]{}),
	)
	return h
}

// Schedule starts a background fetch for every venue that is not already
// full and not already being fetched. It never blocks on the network.
func (h *Hydrator) Schedule(venueIDs ...string) {
	for _, id := range venueIDs {
		if id == "" || h.store.HasFullDetails(id) || !h.acquire(id) {
			continue
		}

		h.wg.Add(1)
		go func(id string) {
			defer h.wg.Done()
			defer h.release(id)
			h.hydrate(id)
		}(id)
	}
}

// InFlight reports whether a fetch for venueID is pending.
func (h *Hydrator) InFlight(venueID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.inFlight[venueID]
	return ok
}

// Wait blocks until every scheduled fetch has finished.
func (h *Hydrator) Wait() {
	h.wg.Wait()
}

// Close cancels pending fetches and waits for them.
func (h *Hydrator) Close() {
	h.cancel()
	h.wg.Wait()
}

func (h *Hydrator) acquire(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.inFlight[id]; ok {
		return false
	}
	h.inFlight[id] = struct{}{}
	return true
}

func (h *Hydrator) release(id string) {
	h.mu.Lock()
	delete(h.inFlight, id)
	h.mu.Unlock()
}

func (h *Hydrator) hydrate(id string) {
	v, err := h.loader.Load(h.ctx, id)()
	if err != nil {
		h.log.Debug("venue hydration failed",
			slog.String("venue_id", id),
			slog.String("error", err.Error()),
		)
		return
	}
	if h.store.UpgradeDetail(v) {
		h.log.Debug("venue hydrated", slog.String("venue_id", id))
	}
}

// batch fetches one batch of venues concurrently, bounded by the shared
// semaphore so overlapping batches cannot exceed the limit together.
func (h *Hydrator) batch(ctx context.Context, keys []string) []*dataloader.Result[domain.VenueDetails] {
	results := make([]*dataloader.Result[domain.VenueDetails], len(keys))

	var g errgroup.Group
	for i, key := range keys {
		g.Go(func() error {
			results[i] = h.fetch(ctx, key)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (h *Hydrator) fetch(ctx context.Context, id string) *dataloader.Result[domain.VenueDetails] {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return &dataloader.Result[domain.VenueDetails]{Error: err}
	}
	defer h.sem.Release(1)

	if h.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.FetchTimeout)
		defer cancel()
	}

	v, err := h.fetcher.FetchVenue(ctx, id)
	if err != nil {
		return &dataloader.Result[domain.VenueDetails]{Error: err}
	}
	v.ID = id
	return &dataloader.Result[domain.VenueDetails]{Data: v}
}
