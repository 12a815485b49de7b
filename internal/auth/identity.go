package auth

import (
	"context"
	"strings"
	"sync"
)

// Identity is the acting user of this client plus the bearer credential
// used for every remote call.
type Identity struct {
	OrganizerID   string
	ParticipantID string
	Token         string
}

// ActorID resolves the acting identity: organizer, then participant,
// then the previously cached value. Returns "" if none is known.
func (i Identity) ActorID(cached string) string {
	switch {
	case strings.TrimSpace(i.OrganizerID) != "":
		return i.OrganizerID
	case strings.TrimSpace(i.ParticipantID) != "":
		return i.ParticipantID
	default:
		return strings.TrimSpace(cached)
	}
}

// HasToken reports whether a bearer credential is present.
func (i Identity) HasToken() bool {
	return strings.TrimSpace(i.Token) != ""
}

// Provider supplies the current identity. Implementations must be safe for
// concurrent use.
type Provider interface {
	Identity(ctx context.Context) Identity
}

// StaticProvider holds an identity that can be replaced at runtime
// (for example after a participant joins).
type StaticProvider struct {
	mu       sync.RWMutex
	identity Identity
}

// NewStaticProvider creates a provider. IDs missing from id are filled from
// the token claims when the token is a JWT carrying them.
func NewStaticProvider(id Identity) *StaticProvider {
	return &StaticProvider{identity: fillFromToken(id)}
}

// Identity returns the current identity.
func (p *StaticProvider) Identity(_ context.Context) Identity {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.identity
}

// Set replaces the current identity.
func (p *StaticProvider) Set(id Identity) {
	p.mu.Lock()
	p.identity = fillFromToken(id)
	p.mu.Unlock()
}

// Token returns the current bearer token. It matches the token source
// signature used by the HTTP middleware.
func (p *StaticProvider) Token(ctx context.Context) string {
	return p.Identity(ctx).Token
}

func fillFromToken(id Identity) Identity {
	if !id.HasToken() || (id.OrganizerID != "" && id.ParticipantID != "") {
		return id
	}
	claims, err := ClaimsFromToken(id.Token)
	if err != nil {
		return id
	}
	if id.OrganizerID == "" {
		id.OrganizerID = claims.OrganizerID
	}
	if id.ParticipantID == "" {
		id.ParticipantID = claims.ParticipantID
	}
	return id
}
