// Package stream owns the push-stream connection of one event session:
// connect, reconnect with exponential backoff, liveness and network-state
// handling. Decoded frames are delivered on a channel in arrival order.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/sse"
)

var errIdle = errors.New("stream: idle timeout")

// Config holds the connection settings of a Manager.
type Config struct {
	URL            string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxAttempts    int
	FrameBuffer    int
	IdleTimeout    time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithOnConnected registers fn to run once per established connection.
// fn runs on the read goroutine and must not block.
func WithOnConnected(fn func()) Option {
	return func(m *Manager) { m.onConnected = fn }
}

// WithOnStateChange registers fn to run after every state transition.
func WithOnStateChange(fn func(domain.ConnectionState)) Option {
	return func(m *Manager) { m.onState = fn }
}

// WithTimer replaces the reconnect delay timer. Used by tests.
func WithTimer(after func(time.Duration) <-chan time.Time) Option {
	return func(m *Manager) { m.after = after }
}

// Manager maintains a single push-stream connection.
type Manager struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
	frames chan sse.Frame

	after       func(time.Duration) <-chan time.Time
	onConnected func()
	onState     func(domain.ConnectionState)

	mu       sync.Mutex
	state    domain.ConnectionState
	wanted   bool
	online   bool
	attempts int
	bo       backoff.BackOff
	gen      int
	cancel   context.CancelFunc
	done     chan struct{}
	lastID   string
	err      error
}

// NewManager creates a disconnected Manager. The client must not set a
// Timeout; credentials are attached by its transport.
func NewManager(client *http.Client, cfg Config, logger *slog.Logger, opts ...Option) *Manager {
	if client == nil {
		client = http.DefaultClient
	}
	m := &Manager{
		cfg:    cfg,
		client: client,
		log:    logger.With("component", "stream"),
		frames: make(chan sse.Frame, cfg.FrameBuffer),
		after:  time.After,
		state:  domain.ConnectionDisconnected,
		online: true,
		bo:     newBackOff(cfg),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newBackOff(cfg Config) backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     cfg.InitialBackoff,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         cfg.MaxBackoff,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	b.Reset()
	return backoff.WithMaxRetries(b, uint64(cfg.MaxAttempts))
}

// Frames returns the channel decoded frames are delivered on. It is never closed.
func (m *Manager) Frames() <-chan sse.Frame {
	return m.frames
}

// State returns the current connection state.
func (m *Manager) State() domain.ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Attempts returns the number of consecutive failed connection attempts.
func (m *Manager) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// LastEventID returns the last stream id received. It is sent as
// Last-Event-ID when reconnecting.
func (m *Manager) LastEventID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastID
}

// Err returns the terminal error after reconnect attempts are exhausted.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Connect starts the connection loop. It is a no-op while connecting or
// connected. While offline the request is remembered and served when the
// network comes back.
func (m *Manager) Connect() {
	m.mu.Lock()
	if m.state.Active() {
		m.mu.Unlock()
		return
	}
	m.wanted = true
	if !m.online {
		m.mu.Unlock()
		m.log.Info("offline, connect deferred")
		return
	}
	m.mu.Unlock()

	m.restart()
}

// Disconnect aborts the current read and any pending reconnect.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.wanted = false
	m.mu.Unlock()

	m.stop()
	m.set(domain.ConnectionDisconnected)
}

// SetOnline reports a host network transition. Going offline disconnects
// without growing the backoff; coming back online reconnects immediately
// with the attempt counter reset.
func (m *Manager) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	wanted := m.wanted
	m.mu.Unlock()

	if !online {
		m.log.Info("network offline, disconnecting")
		m.stop()
		m.set(domain.ConnectionDisconnected)
		return
	}

	m.log.Info("network online")
	if wanted {
		m.restart()
	}
}

// restart stops any running loop and starts a fresh one with a reset backoff.
// The state left by the stopped loop is not consulted; only a loop started
// by a concurrent restart wins over this one.
func (m *Manager) restart() {
	m.stop()

	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	m.gen++
	gen := m.gen
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel, m.done = cancel, done
	m.attempts = 0
	m.bo.Reset()
	m.err = nil
	m.mu.Unlock()

	m.transition(gen, domain.ConnectionConnecting)
	go m.run(ctx, gen, done)
}

// stop cancels the running loop and waits for it to exit.
func (m *Manager) stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.gen++
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// set moves to s regardless of loop generation.
func (m *Manager) set(s domain.ConnectionState) {
	m.mu.Lock()
	changed := m.state != s
	m.state = s
	m.mu.Unlock()

	if changed {
		m.notify(s)
	}
}

// transition moves to s only if gen is still the live loop.
func (m *Manager) transition(gen int, s domain.ConnectionState) bool {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return false
	}
	changed := m.state != s
	m.state = s
	m.mu.Unlock()

	if changed {
		m.notify(s)
	}
	return true
}

func (m *Manager) notify(s domain.ConnectionState) {
	m.log.Info("connection state", slog.String("state", s.String()))
	if m.onState != nil {
		m.onState(s)
	}
}

func (m *Manager) run(ctx context.Context, gen int, done chan struct{}) {
	defer close(done)

	for {
		err := m.stream(ctx, gen)
		if ctx.Err() != nil {
			return
		}

		delay, ok := m.scheduleRetry(gen, err)
		if !ok {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-m.after(delay):
		}

		if !m.transition(gen, domain.ConnectionConnecting) {
			return
		}
	}
}

// scheduleRetry records a failed attempt and returns the delay before the
// next one. ok is false when the loop must exit.
func (m *Manager) scheduleRetry(gen int, cause error) (time.Duration, bool) {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return 0, false
	}
	delay := m.bo.NextBackOff()
	if delay == backoff.Stop {
		m.err = fmt.Errorf("stream: %w: last error: %v", domain.ErrRetriesExhausted, cause)
		if m.cancel != nil {
			m.cancel()
		}
		m.cancel, m.done = nil, nil
		attempts := m.attempts
		m.mu.Unlock()

		m.log.Error("giving up on stream",
			slog.Int("attempts", attempts),
			slog.String("error", cause.Error()),
		)
		m.transition(gen, domain.ConnectionError)
		return 0, false
	}
	m.attempts++
	attempt := m.attempts
	m.mu.Unlock()

	m.transition(gen, domain.ConnectionError)
	m.log.Info("reconnect scheduled",
		slog.Duration("delay", delay),
		slog.Int("attempt", attempt),
		slog.String("error", cause.Error()),
	)
	return delay, true
}

// stream runs one connection until it ends. It returns the reason.
func (m *Manager) stream(ctx context.Context, gen int) error {
	connCtx, connCancel := context.WithCancel(ctx)
	defer connCancel()

	req, err := http.NewRequestWithContext(connCtx, http.MethodGet, m.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("stream: new request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if id := m.LastEventID(); id != "" {
		req.Header.Set("Last-Event-ID", id)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("stream: dial: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("stream: status %d: %w", resp.StatusCode, domain.ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("stream: unexpected status %d", resp.StatusCode)
	}

	if !m.markConnected(gen) {
		return context.Canceled
	}

	var body io.Reader = resp.Body
	if m.cfg.IdleTimeout > 0 {
		watchdog := time.AfterFunc(m.cfg.IdleTimeout, connCancel)
		defer watchdog.Stop()
		body = &idleReader{r: resp.Body, timer: watchdog, idle: m.cfg.IdleTimeout}
	}

	dec := sse.NewDecoder(body)
	for {
		frame, err := dec.Next()
		if err != nil {
			switch {
			case ctx.Err() != nil:
				return ctx.Err()
			case connCtx.Err() != nil:
				return errIdle
			case errors.Is(err, io.EOF):
				return domain.ErrStreamClosed
			default:
				return fmt.Errorf("stream: read: %w", err)
			}
		}

		if frame.ID != "" {
			m.mu.Lock()
			m.lastID = frame.ID
			m.mu.Unlock()
		}

		select {
		case m.frames <- frame:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (m *Manager) markConnected(gen int) bool {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return false
	}
	m.attempts = 0
	m.bo.Reset()
	m.mu.Unlock()

	if !m.transition(gen, domain.ConnectionConnected) {
		return false
	}
	if m.onConnected != nil {
		m.onConnected()
	}
	return true
}

// idleReader pushes the watchdog forward on every successful read.
type idleReader struct {
	r     io.Reader
	timer *time.Timer
	idle  time.Duration
}

func (r *idleReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.timer.Reset(r.idle)
	}
	return n, err
}
