// Package session assembles the client replica of one event: the entity
// store, the push stream, frame routing, reconciliation, optimistic votes
// and detail hydration. A Session is created per event and closed when the
// user leaves it.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/VW-ai/where2meet-client/internal/auth"
	"github.com/VW-ai/where2meet-client/internal/config"
	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/hydrate"
	"github.com/VW-ai/where2meet-client/internal/router"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
	"github.com/VW-ai/where2meet-client/internal/service/vote"
	"github.com/VW-ai/where2meet-client/internal/store"
	"github.com/VW-ai/where2meet-client/internal/stream"
)

// remoteAPI is the subset of the API client a session needs.
type remoteAPI interface {
	FetchSnapshot(ctx context.Context, eventID string) (domain.Snapshot, error)
	FetchVenue(ctx context.Context, venueID string) (domain.VenueDetails, error)
	CastVote(ctx context.Context, eventID, actorID string, venue domain.VenueDetails) error
	RemoveVote(ctx context.Context, eventID, actorID, venueID string) error
	StreamURL(eventID string) string
}

// Config holds the settings of one session.
type Config struct {
	EventID   string
	Stream    config.StreamConfig
	Reconcile config.ReconcileConfig
	Hydration config.HydrationConfig
}

// Option configures a Session.
type Option func(*options)

type options struct {
	streamClient  *http.Client
	reachability  <-chan bool
	onStateChange func(domain.ConnectionState)
	streamOpts    []stream.Option
}

// WithStreamClient sets the HTTP client of the push stream. It must not
// set a Timeout.
func WithStreamClient(c *http.Client) Option {
	return func(o *options) { o.streamClient = c }
}

// WithReachability forwards host network transitions to the stream.
func WithReachability(ch <-chan bool) Option {
	return func(o *options) { o.reachability = ch }
}

// WithOnStateChange registers fn to observe connection state transitions.
func WithOnStateChange(fn func(domain.ConnectionState)) Option {
	return func(o *options) { o.onStateChange = fn }
}

// WithStreamOptions passes extra options to the stream manager.
func WithStreamOptions(opts ...stream.Option) Option {
	return func(o *options) { o.streamOpts = append(o.streamOpts, opts...) }
}

// Session is the replica of one event.
type Session struct {
	log        *slog.Logger
	cfg        Config
	store      *store.Store
	stream     *stream.Manager
	router     *router.Router
	reconciler *reconcile.Service
	votes      *vote.Service
	hydrator   *hydrate.Hydrator
	reach      <-chan bool

	venueLocks keyedMutex

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	opened bool
	closed bool
	wg     sync.WaitGroup
}

// New wires a session for cfg.EventID. Nothing runs until Open.
func New(cfg Config, api remoteAPI, identity auth.Provider, logger *slog.Logger, opts ...Option) *Session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger = logger.With("event_id", cfg.EventID)
	st := store.New(cfg.EventID)

	hyd := hydrate.New(logger, st, api, hydrate.Config{
		Concurrency:  cfg.Hydration.Concurrency,
		BatchWait:    cfg.Hydration.BatchWait,
		FetchTimeout: cfg.Hydration.FetchTimeout,
	})
	rec := reconcile.NewService(logger, st, api, hyd, identity, reconcile.Config{
		Cooldown:     cfg.Reconcile.Cooldown,
		FetchTimeout: cfg.Reconcile.FetchTimeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		log:        logger.With("component", "session"),
		cfg:        cfg,
		store:      st,
		reconciler: rec,
		votes:      vote.NewService(logger, st, api, rec, identity),
		hydrator:   hyd,
		reach:      o.reachability,
		ctx:        ctx,
		cancel:     cancel,
	}

	s.router = router.New(logger, st, rec, router.WithSpawn(func(fn func()) {
		s.spawn(func(context.Context) { fn() })
	}))

	streamOpts := []stream.Option{
		stream.WithOnConnected(func() { s.goLoad(reconcile.TriggerConnect) }),
	}
	if o.onStateChange != nil {
		streamOpts = append(streamOpts, stream.WithOnStateChange(o.onStateChange))
	}
	streamOpts = append(streamOpts, o.streamOpts...)

	s.stream = stream.NewManager(o.streamClient, stream.Config{
		URL:            api.StreamURL(cfg.EventID),
		InitialBackoff: cfg.Stream.InitialBackoff,
		MaxBackoff:     cfg.Stream.MaxBackoff,
		MaxAttempts:    cfg.Stream.MaxAttempts,
		FrameBuffer:    cfg.Stream.FrameBuffer,
		IdleTimeout:    cfg.Stream.IdleTimeout,
	}, logger, streamOpts...)

	return s
}

// Open starts frame consumption, periodic reconciliation and the network
// watcher, loads a first snapshot and connects the stream. Calling Open
// twice, or after Close, is a no-op.
func (s *Session) Open(ctx context.Context) {
	s.mu.Lock()
	if s.opened || s.closed {
		s.mu.Unlock()
		return
	}
	s.opened = true
	s.mu.Unlock()

	s.spawn(s.consume)
	if s.cfg.Reconcile.Interval > 0 {
		s.spawn(s.periodic)
	}
	if s.reach != nil {
		s.spawn(s.watchNetwork)
	}

	s.log.InfoContext(ctx, "session opened")
	s.goLoad(reconcile.TriggerConnect)
	s.stream.Connect()
}

// Close disconnects the stream, stops every background goroutine and waits
// for them. The store stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.stream.Disconnect()
	s.cancel()
	s.wg.Wait()
	s.hydrator.Close()
	s.log.Info("session closed")
}

// spawn runs fn on a tracked goroutine unless the session is closed.
func (s *Session) spawn(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

func (s *Session) goLoad(trigger reconcile.Trigger) {
	s.spawn(func(ctx context.Context) {
		s.reconciler.LoadSnapshot(ctx, trigger)
	})
}

// consume dispatches frames one at a time in arrival order.
func (s *Session) consume(ctx context.Context) {
	frames := s.stream.Frames()
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-frames:
			s.router.Dispatch(ctx, f)
		}
	}
}

func (s *Session) periodic(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Reconcile.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconciler.LoadSnapshot(ctx, reconcile.TriggerPeriodic)
		}
	}
}

func (s *Session) watchNetwork(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-s.reach:
			if !ok {
				return
			}
			s.stream.SetOnline(online)
		}
	}
}
