package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/VW-ai/where2meet-client/internal/domain"
)

// Details converts a venue payload to a detail segment entry.
func (v Venue) Details() domain.VenueDetails {
	return v.VenueFields.details(v.ID)
}

// Tally converts a venue payload to a domain tally. Voters stay nil when absent.
func (v Venue) Tally() domain.VenueTally {
	return domain.VenueTally{
		Venue:     v.Details(),
		VoteCount: v.VoteCount,
		VoterIDs:  v.Voters,
	}
}

// Tally converts a vote delta to a domain tally.
func (c VoteChange) Tally() domain.VenueTally {
	return domain.VenueTally{
		Venue:     c.VenueFields.details(c.VenueID),
		VoteCount: c.VoteCount,
		VoterIDs:  c.Voters,
	}
}

func (f VenueFields) details(id string) domain.VenueDetails {
	return domain.VenueDetails{
		ID:         id,
		Name:       f.Name,
		Address:    f.Address,
		Location:   f.Location.toDomain(),
		Category:   f.Category,
		Rating:     f.Rating,
		PriceLevel: f.PriceLevel,
		PhotoURL:   f.PhotoURL,
	}.Clone()
}

func (l *Location) toDomain() *domain.Location {
	if l == nil {
		return nil
	}
	return &domain.Location{Lat: l.Lat, Lng: l.Lng}
}

// Domain converts to a domain participant. eventID fills a missing
// membership.
func (p Participant) Domain(eventID string) domain.Participant {
	if p.EventID != "" {
		eventID = p.EventID
	}
	return domain.Participant{
		ID:       p.ID,
		EventID:  eventID,
		Name:     p.Name,
		Address:  p.Address,
		Location: p.Location.toDomain(),
	}.Clone()
}

// Identifier returns the event id of a flat or nested record.
func (e Event) Identifier() string {
	if e.ID != "" {
		return e.ID
	}
	return e.EventID
}

// Domain converts a full event record. Publication state follows the
// presence of a published venue.
func (e Event) Domain() domain.Event {
	out := domain.Event{
		ID:               e.Identifier(),
		MeetingTime:      e.MeetingTime,
		State:            domain.PublicationUnpublished,
		PublishedVenueID: e.PublishedVenueID,
		PublishedAt:      e.PublishedAt,
	}
	if e.Title != nil {
		out.Title = *e.Title
	}
	if e.UpdatedAt != nil {
		out.UpdatedAt = *e.UpdatedAt
	}
	if e.PublishedVenueID != nil && *e.PublishedVenueID != "" {
		out.State = domain.PublicationPublished
	}
	return out.Clone()
}

// Snapshot converts a statistics payload. eventID is used when the payload
// does not name its event.
func (s Statistics) Snapshot(eventID string) domain.Snapshot {
	if s.EventID != "" {
		eventID = s.EventID
	}
	snap := domain.Snapshot{
		EventID:    eventID,
		TotalVotes: s.TotalVotes,
		Venues:     make([]domain.VenueTally, 0, len(s.Venues)),
	}
	if s.Event != nil {
		ev := s.Event.Domain()
		if ev.ID == "" {
			ev.ID = eventID
		}
		snap.Event = &ev
	}
	if s.Participants != nil {
		snap.Participants = make([]domain.Participant, 0, len(s.Participants))
		for _, p := range s.Participants {
			snap.Participants = append(snap.Participants, p.Domain(eventID))
		}
	}
	for _, v := range s.Venues {
		if v.ID == "" {
			continue
		}
		snap.Venues = append(snap.Venues, v.Tally())
	}
	return snap
}

// DecodePublished accepts both accepted shapes of an event-published
// payload: {"event":{...}} and the flat record.
func DecodePublished(data []byte) (Event, error) {
	var nested struct {
		Event json.RawMessage `json:"event"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return Event{}, fmt.Errorf("decode published: %w", err)
	}

	body := data
	if raw := bytes.TrimSpace(nested.Event); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		body = raw
	}

	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("decode published: %w", err)
	}
	return ev, nil
}

// VenueFromDetails converts a detail entry to its wire form.
func VenueFromDetails(d domain.VenueDetails) Venue {
	d = d.Clone()
	v := Venue{
		ID: d.ID,
		VenueFields: VenueFields{
			Name:       d.Name,
			Address:    d.Address,
			Category:   d.Category,
			Rating:     d.Rating,
			PriceLevel: d.PriceLevel,
			PhotoURL:   d.PhotoURL,
		},
	}
	if d.Location != nil {
		v.Location = &Location{Lat: d.Location.Lat, Lng: d.Location.Lng}
	}
	return v
}
