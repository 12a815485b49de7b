// Package router classifies decoded stream frames and applies them to the
// event store. Malformed or foreign frames are logged and dropped; they
// never stop the read loop.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/service/reconcile"
	"github.com/VW-ai/where2meet-client/internal/sse"
	"github.com/VW-ai/where2meet-client/internal/store"
)

// Stream event names.
const (
	EventConnected          = "connected"
	EventHeartbeat          = "heartbeat"
	EventUpdated            = "event-updated"
	EventPublished          = "event-published"
	EventParticipantAdded   = "participant-added"
	EventParticipantUpdated = "participant-updated"
	EventParticipantRemoved = "participant-removed"
	EventVoteChanged        = "vote-changed"
	EventVoteStatistics     = "vote-statistics"
)

var (
	errNoEventName   = errors.New("frame has no event name")
	errForeignEvent  = errors.New("payload belongs to another event")
	errMissingField  = errors.New("required field missing")
	errMalformedJSON = errors.New("malformed json")
)

type reconciler interface {
	LoadSnapshot(ctx context.Context, trigger reconcile.Trigger) bool
	ApplyPushSnapshot(ctx context.Context, snap domain.Snapshot)
	ApplyVenueDelta(ctx context.Context, tally domain.VenueTally)
}

// Handler applies one application event payload.
type Handler func(ctx context.Context, data []byte) error

// Router dispatches frames by event name.
type Router struct {
	log        *slog.Logger
	store      *store.Store
	reconciler reconciler
	handlers   map[string]Handler
	now        func() time.Time
	spawn      func(fn func())
}

// Option configures a Router.
type Option func(*Router)

// WithSpawn sets how background work started by a frame is run. The
// default starts a plain goroutine.
func WithSpawn(spawn func(fn func())) Option {
	return func(r *Router) {
		r.spawn = spawn
	}
}

// New creates a Router with handlers for every known application event.
func New(logger *slog.Logger, st *store.Store, rec reconciler, opts ...Option) *Router {
	r := &Router{
		log:        logger.With("component", "router"),
		store:      st,
		reconciler: rec,
		now:        time.Now,
		spawn:      func(fn func()) { go fn() },
	}
	for _, opt := range opts {
		opt(r)
	}
	r.handlers = map[string]Handler{
		EventUpdated:            r.handleEventUpdated,
		EventPublished:          r.handleEventPublished,
		EventParticipantAdded:   r.handleParticipantAdded,
		EventParticipantUpdated: r.handleParticipantUpdated,
		EventParticipantRemoved: r.handleParticipantRemoved,
		EventVoteChanged:        r.handleVoteChanged,
		EventVoteStatistics:     r.handleVoteStatistics,
	}
	return r
}

// Handle registers h for name, replacing any existing handler.
func (r *Router) Handle(name string, h Handler) {
	r.handlers[name] = h
}

// Dispatch routes one frame. Errors are logged, never returned: a bad
// frame must not stop processing of the frames after it.
func (r *Router) Dispatch(ctx context.Context, f sse.Frame) {
	name, data, err := resolve(f)
	if err != nil {
		r.log.WarnContext(ctx, "frame dropped",
			slog.String("event", f.Event),
			slog.String("id", f.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	switch name {
	case EventConnected:
		r.log.InfoContext(ctx, "stream acknowledged")
		// The load runs off the frame loop so frames behind it keep flowing.
		r.spawn(func() { r.reconciler.LoadSnapshot(ctx, reconcile.TriggerStream) })
		return
	case EventHeartbeat:
		return
	}

	h, ok := r.handlers[name]
	if !ok {
		r.log.DebugContext(ctx, "unhandled event", slog.String("event", name))
		return
	}

	if err := h(ctx, data); err != nil {
		r.log.WarnContext(ctx, "event dropped",
			slog.String("event", name),
			slog.String("id", f.ID),
			slog.String("error", err.Error()),
		)
	}
}

// resolve returns the event name and payload of a frame. A frame without
// an explicit name falls back to the "type" field of its JSON body.
func resolve(f sse.Frame) (string, []byte, error) {
	data := []byte(f.Data)
	if f.HasExplicitEvent() {
		return f.Event, data, nil
	}

	var legacy struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return "", nil, fmt.Errorf("%w: %v", errMalformedJSON, err)
	}
	if legacy.Type == "" {
		return "", nil, errNoEventName
	}
	if len(legacy.Data) > 0 && string(legacy.Data) != "null" {
		return legacy.Type, legacy.Data, nil
	}
	return legacy.Type, data, nil
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", errMalformedJSON, err)
	}
	return nil
}

// sameEvent accepts payloads that name this store's event or none at all.
func (r *Router) sameEvent(id string) error {
	if id != "" && id != r.store.EventID() {
		return fmt.Errorf("%w: %s", errForeignEvent, id)
	}
	return nil
}
