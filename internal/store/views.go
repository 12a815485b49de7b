package store

import (
	"sort"

	"github.com/VW-ai/where2meet-client/internal/domain"
)

// AllVotedVenueIDs returns every venue with VoteCount > 0, highest count
// first. Ties are ordered by venue ID.
func (s *Store) AllVotedVenueIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sortedLocked(func(st domain.VoteStats) bool {
		return st.VoteCount > 0
	})
}

// MyVotedVenueIDs returns the venues whose voters include the cached actor.
func (s *Store) MyVotedVenueIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.votedByLocked(s.actorID)
}

// VotedVenueIDsBy returns the venues whose voters include actorID.
func (s *Store) VotedVenueIDsBy(actorID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.votedByLocked(actorID)
}

// VoteCount returns the vote count of venueID, 0 when unknown.
func (s *Store) VoteCount(venueID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats[venueID].VoteCount
}

// HasVoted reports whether actorID is among the voters of venueID.
func (s *Store) HasVoted(venueID, actorID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats[venueID].HasVoter(actorID)
}

// TotalVotes sums the vote counts of all venues.
func (s *Store) TotalVotes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, st := range s.stats {
		total += st.VoteCount
	}
	return total
}

func (s *Store) votedByLocked(actorID string) []string {
	if actorID == "" {
		return []string{}
	}
	return s.sortedLocked(func(st domain.VoteStats) bool {
		return st.HasVoter(actorID)
	})
}

func (s *Store) sortedLocked(keep func(domain.VoteStats) bool) []string {
	picked := make([]domain.VoteStats, 0, len(s.stats))
	for _, st := range s.stats {
		if keep(st) {
			picked = append(picked, st)
		}
	}
	sort.Slice(picked, func(i, j int) bool {
		if picked[i].VoteCount != picked[j].VoteCount {
			return picked[i].VoteCount > picked[j].VoteCount
		}
		return picked[i].VenueID < picked[j].VenueID
	})

	ids := make([]string, len(picked))
	for i, st := range picked {
		ids[i] = st.VenueID
	}
	return ids
}
