// Package netprobe reports network reachability by periodically dialing a
// TCP address.
package netprobe

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/VW-ai/where2meet-client/internal/config"
)

// DialFunc opens a connection. net.Dialer.DialContext satisfies it.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Prober dials Address every Interval and reports reachability changes.
type Prober struct {
	address  string
	interval time.Duration
	timeout  time.Duration
	dial     DialFunc
	log      *slog.Logger
}

// New creates a Prober from config. A nil dial uses net.Dialer.
func New(cfg config.NetworkConfig, dial DialFunc, logger *slog.Logger) *Prober {
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}
	return &Prober{
		address:  cfg.ProbeAddress,
		interval: cfg.ProbeInterval,
		timeout:  cfg.ProbeTimeout,
		dial:     dial,
		log:      logger.With("adapter", "netprobe"),
	}
}

// Watch probes until ctx is done. The first result is always sent; after
// that only transitions are. The channel is closed when Watch stops.
func (p *Prober) Watch(ctx context.Context) <-chan bool {
	out := make(chan bool, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		var last, known bool
		for {
			online := p.Probe(ctx)
			if ctx.Err() != nil {
				return
			}
			if !known || online != last {
				known, last = true, online
				p.log.InfoContext(ctx, "network reachability changed", slog.Bool("online", online))
				select {
				case out <- online:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return out
}

// Probe performs one dial and reports whether it succeeded.
func (p *Prober) Probe(ctx context.Context) bool {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	conn, err := p.dial(ctx, "tcp", p.address)
	if err != nil {
		p.log.DebugContext(ctx, "probe failed", slog.String("address", p.address), slog.String("error", err.Error()))
		return false
	}
	conn.Close()
	return true
}
