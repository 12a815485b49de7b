package domain

import "time"

// Event is the shared meeting record the participants decide on.
// The authoritative copy lives on the server; the client caches it.
type Event struct {
	ID               string
	Title            string
	MeetingTime      *time.Time
	State            PublicationState
	PublishedVenueID *string
	PublishedAt      *time.Time
	UpdatedAt        time.Time
}

// Clone returns a deep copy.
func (e Event) Clone() Event {
	out := e
	out.MeetingTime = cloneTime(e.MeetingTime)
	out.PublishedVenueID = cloneString(e.PublishedVenueID)
	out.PublishedAt = cloneTime(e.PublishedAt)
	return out
}

// Participant is a member of an Event. Location is absent until geocoded.
type Participant struct {
	ID       string
	EventID  string
	Name     string
	Address  *string
	Location *Location
}

// Clone returns a deep copy.
func (p Participant) Clone() Participant {
	out := p
	out.Address = cloneString(p.Address)
	if p.Location != nil {
		loc := *p.Location
		out.Location = &loc
	}
	return out
}

// Location is a geographic coordinate pair.
type Location struct {
	Lat float64
	Lng float64
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
