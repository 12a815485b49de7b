package store

import "github.com/VW-ai/where2meet-client/internal/domain"

// UpsertDetailIfAbsent writes v only when no detail entry exists for v.ID.
// Reports whether the entry was written.
func (s *Store) UpsertDetailIfAbsent(v domain.VenueDetails) bool {
	if v.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.details[v.ID]; ok {
		return false
	}
	s.details[v.ID] = v.Clone()
	s.notifyLocked()
	return true
}

// UpgradeDetail writes v unless a full entry already exists. A full v
// replaces a minimal entry; a minimal v only fills fields the existing
// entry is missing. Reports whether anything changed.
func (s *Store) UpgradeDetail(v domain.VenueDetails) bool {
	if v.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.details[v.ID]
	switch {
	case !ok:
		s.details[v.ID] = v.Clone()
	case cur.IsFull():
		return false
	case v.IsFull():
		s.details[v.ID] = v.Clone()
	default:
		merged, changed := fillMissing(cur, v)
		if !changed {
			return false
		}
		s.details[v.ID] = merged
	}
	s.notifyLocked()
	return true
}

// fillMissing copies fields from src into the blanks of dst.
func fillMissing(dst, src domain.VenueDetails) (domain.VenueDetails, bool) {
	out := dst.Clone()
	in := src.Clone()
	changed := false

	if out.HasPlaceholderName() && !in.HasPlaceholderName() {
		out.Name = in.Name
		changed = true
	}
	if out.Address == nil && in.Address != nil {
		out.Address = in.Address
		changed = true
	}
	if out.Location == nil && in.Location != nil {
		out.Location = in.Location
		changed = true
	}
	if out.Category == nil && in.Category != nil {
		out.Category = in.Category
		changed = true
	}
	if out.Rating == nil && in.Rating != nil {
		out.Rating = in.Rating
		changed = true
	}
	if out.PriceLevel == nil && in.PriceLevel != nil {
		out.PriceLevel = in.PriceLevel
		changed = true
	}
	if (out.PhotoURL == nil || *out.PhotoURL == "") && in.PhotoURL != nil && *in.PhotoURL != "" {
		out.PhotoURL = in.PhotoURL
		changed = true
	}
	return out, changed
}

// Details returns a copy of the detail entry for venueID.
func (s *Store) Details(venueID string) (domain.VenueDetails, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.details[venueID]
	if !ok {
		return domain.VenueDetails{}, false
	}
	return v.Clone(), true
}

// HasFullDetails reports whether a full detail entry exists for venueID.
func (s *Store) HasFullDetails(venueID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.details[venueID]
	return ok && v.IsFull()
}
