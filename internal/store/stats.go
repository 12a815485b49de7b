package store

import "github.com/VW-ai/where2meet-client/internal/domain"

// OverwriteStats replaces the statistics entry for st.VenueID unconditionally.
func (s *Store) OverwriteStats(st domain.VoteStats) {
	if st.VenueID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats[st.VenueID] = st.Clone()
	s.notifyLocked()
}

// ReplaceStats swaps the whole statistics segment for all. Venues absent
// from all lose their statistics; the detail segment is untouched.
func (s *Store) ReplaceStats(all []domain.VoteStats) {
	next := make(map[string]domain.VoteStats, len(all))
	for _, st := range all {
		if st.VenueID == "" {
			continue
		}
		next[st.VenueID] = st.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = next
	s.notifyLocked()
}

// MutateStats applies fn to the current entry for venueID atomically and
// returns the entry as it was before. When fn reports keep=false the entry
// is deleted.
func (s *Store) MutateStats(
	venueID string,
	fn func(cur domain.VoteStats, exists bool) (next domain.VoteStats, keep bool),
) (prev domain.VoteStats, existed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, existed := s.stats[venueID]
	if existed {
		prev = cur.Clone()
	}

	next, keep := fn(prev.Clone(), existed)
	if keep {
		next.VenueID = venueID
		s.stats[venueID] = next.Clone()
	} else {
		delete(s.stats, venueID)
	}
	s.notifyLocked()
	return prev, existed
}

// RestoreStats puts back an entry captured by MutateStats. When existed is
// false the entry is removed.
func (s *Store) RestoreStats(venueID string, prev domain.VoteStats, existed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existed {
		prev.VenueID = venueID
		s.stats[venueID] = prev.Clone()
	} else {
		delete(s.stats, venueID)
	}
	s.notifyLocked()
}

// Stats returns a copy of the statistics entry for venueID.
func (s *Store) Stats(venueID string) (domain.VoteStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stats[venueID]
	if !ok {
		return domain.VoteStats{}, false
	}
	return st.Clone(), true
}

// HasStats reports whether the statistics segment holds any entry.
func (s *Store) HasStats() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stats) > 0
}
