// Package store holds the client-side replica of one event: the event
// record, its participants, and the two venue segments (details and vote
// statistics).
//
// The detail segment is monotonic: a full entry is never replaced and a
// minimal entry only gains information. The statistics segment is always
// overwritable, latest write wins. The two segments are written through
// separate entry points so a write to one never touches the other.
package store

import (
	"sync"

	"github.com/VW-ai/where2meet-client/internal/domain"
)

// Store is the replica container for a single event session. It is safe for
// concurrent use; every mutation goes through the methods below.
type Store struct {
	mu sync.RWMutex

	eventID      string
	event        *domain.Event
	participants map[string]domain.Participant
	order        []string

	details map[string]domain.VenueDetails
	stats   map[string]domain.VoteStats

	actorID string

	subs map[int]chan struct{}
	next int
}

// New creates an empty store for eventID.
func New(eventID string) *Store {
	return &Store{
		eventID:      eventID,
		participants: make(map[string]domain.Participant),
		details:      make(map[string]domain.VenueDetails),
		stats:        make(map[string]domain.VoteStats),
		subs:         make(map[int]chan struct{}),
	}
}

// EventID returns the event this store replicates.
func (s *Store) EventID() string {
	return s.eventID
}

// Subscribe returns a channel that receives a signal after every change.
// Signals coalesce: a slow reader sees at most one pending signal.
// The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// notifyLocked must be called with s.mu held.
func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SetActorID caches the resolved actor identity used by MyVotedVenueIDs.
func (s *Store) SetActorID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.actorID == id {
		return
	}
	s.actorID = id
	s.notifyLocked()
}

// ActorID returns the cached actor identity.
func (s *Store) ActorID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actorID
}
