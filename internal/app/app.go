package app

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/VW-ai/where2meet-client/internal/adapter/api"
	"github.com/VW-ai/where2meet-client/internal/adapter/netprobe"
	"github.com/VW-ai/where2meet-client/internal/auth"
	"github.com/VW-ai/where2meet-client/internal/config"
	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/session"
	"github.com/VW-ai/where2meet-client/internal/transport/middleware"
)

// Run is the watch entry point. It loads configuration, opens a session for
// the configured event and logs connection states and vote tallies until
// ctx is done.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("event_id", cfg.Session.EventID),
	)

	sess := NewSession(ctx, cfg, logger)
	defer sess.Close()

	changes, unsubscribe := sess.Store().Subscribe()
	defer unsubscribe()

	sess.Open(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return nil
		case <-changes:
			LogTally(ctx, logger, sess)
		}
	}
}

// NewSession wires a session for cfg.Session.EventID: API client and stream
// client behind the outbound middleware chain, plus the network probe when
// one is configured. The probe stops with ctx.
func NewSession(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...session.Option) *session.Session {
	identity := auth.NewStaticProvider(auth.Identity{
		OrganizerID:   cfg.Identity.OrganizerID,
		ParticipantID: cfg.Identity.ParticipantID,
		Token:         cfg.Identity.Token,
	})

	base := middleware.Chain(
		middleware.RequestID(),
		middleware.BearerAuth(identity.Token),
	)

	apiTransport := middleware.Chain(
		base,
		middleware.RateLimit(rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.RateBurst)),
		middleware.Logger(logger),
	)(http.DefaultTransport)
	client := api.NewClient(cfg.API, apiTransport, logger)

	streamClient := &http.Client{Transport: base(http.DefaultTransport)}

	all := []session.Option{
		session.WithStreamClient(streamClient),
		session.WithOnStateChange(func(s domain.ConnectionState) {
			logger.Info("connection", slog.String("state", s.String()))
		}),
	}
	if cfg.Network.ProbeEnabled() {
		probe := netprobe.New(cfg.Network, nil, logger)
		all = append(all, session.WithReachability(probe.Watch(ctx)))
	}
	all = append(all, opts...)

	return session.New(session.Config{
		EventID:   cfg.Session.EventID,
		Stream:    cfg.Stream,
		Reconcile: cfg.Reconcile,
		Hydration: cfg.Hydration,
	}, client, identity, logger, all...)
}
