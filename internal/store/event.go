package store

import "github.com/VW-ai/where2meet-client/internal/domain"

// SetEvent replaces the cached event record.
func (s *Store) SetEvent(e domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := e.Clone()
	s.event = &ev
	s.notifyLocked()
}

// UpdateEvent applies fn to the cached event, starting from an empty
// record for this store's event when none is cached yet.
func (s *Store) UpdateEvent(fn func(e *domain.Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ev domain.Event
	if s.event != nil {
		ev = s.event.Clone()
	} else {
		ev = domain.Event{ID: s.eventID, State: domain.PublicationUnpublished}
	}
	fn(&ev)
	s.event = &ev
	s.notifyLocked()
}

// Event returns a copy of the cached event record.
func (s *Store) Event() (domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.event == nil {
		return domain.Event{}, false
	}
	return s.event.Clone(), true
}

// AddParticipant inserts p unless a participant with the same ID is known.
// Reports whether p was inserted.
func (s *Store) AddParticipant(p domain.Participant) bool {
	if p.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[p.ID]; ok {
		return false
	}
	s.participants[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	s.notifyLocked()
	return true
}

// UpsertParticipant inserts p or merges it into the known entry. Absent
// optional fields in p keep their current values.
func (s *Store) UpsertParticipant(p domain.Participant) {
	if p.ID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.participants[p.ID]
	if !ok {
		s.participants[p.ID] = p.Clone()
		s.order = append(s.order, p.ID)
		s.notifyLocked()
		return
	}

	merged := cur.Clone()
	in := p.Clone()
	if in.Name != "" {
		merged.Name = in.Name
	}
	if in.EventID != "" {
		merged.EventID = in.EventID
	}
	if in.Address != nil {
		merged.Address = in.Address
	}
	if in.Location != nil {
		merged.Location = in.Location
	}
	s.participants[p.ID] = merged
	s.notifyLocked()
}

// RemoveParticipant deletes the participant. Reports whether it existed.
func (s *Store) RemoveParticipant(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[id]; !ok {
		return false
	}
	delete(s.participants, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.notifyLocked()
	return true
}

// ReplaceParticipants swaps the participant list for ps, keeping ps order.
func (s *Store) ReplaceParticipants(ps []domain.Participant) {
	next := make(map[string]domain.Participant, len(ps))
	order := make([]string, 0, len(ps))
	for _, p := range ps {
		if p.ID == "" {
			continue
		}
		if _, dup := next[p.ID]; !dup {
			order = append(order, p.ID)
		}
		next[p.ID] = p.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.participants = next
	s.order = order
	s.notifyLocked()
}

// Participants returns copies of all participants in arrival order.
func (s *Store) Participants() []domain.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Participant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.participants[id].Clone())
	}
	return out
}

// Participant returns a copy of one participant.
func (s *Store) Participant(id string) (domain.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[id]
	if !ok {
		return domain.Participant{}, false
	}
	return p.Clone(), true
}
