// Command vote casts or removes one vote for the configured event and
// prints the resulting tally.
//
// Usage:
//
//	vote -venue <id> [-name <venue name>] [-remove]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VW-ai/where2meet-client/internal/app"
	"github.com/VW-ai/where2meet-client/internal/config"
	"github.com/VW-ai/where2meet-client/internal/domain"
)

func main() {
	venueID := flag.String("venue", "", "venue id (required)")
	name := flag.String("name", "", "venue name sent with a new vote")
	remove := flag.Bool("remove", false, "remove the vote instead of casting it")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if *venueID == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	sess := app.NewSession(ctx, cfg, logger)
	defer sess.Close()

	if *remove {
		err = sess.RemoveVote(ctx, *venueID)
	} else {
		var venue *domain.VenueDetails
		if *name != "" {
			venue = &domain.VenueDetails{ID: *venueID, Name: *name}
		}
		err = sess.CastVote(ctx, *venueID, venue)
	}
	if err != nil {
		logger.Error("vote failed",
			slog.String("venue_id", *venueID),
			slog.Bool("remove", *remove),
			slog.String("error", err.Error()),
		)
		sess.Close()
		os.Exit(1)
	}

	app.PrintTally(os.Stdout, sess.Store())
}
