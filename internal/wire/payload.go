// Package wire defines the JSON shapes shared by the push stream and the
// remote read API, and maps them to domain values. Every optional field is
// a pointer or a nil-able slice so absence survives decoding.
package wire

import "time"

// Location is a coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VenueFields are the detail fields a venue payload may embed.
type VenueFields struct {
	Name       string    `json:"name"`
	Address    *string   `json:"address"`
	Location   *Location `json:"location"`
	Category   *string   `json:"category"`
	Rating     *float64  `json:"rating"`
	PriceLevel *int      `json:"priceLevel"`
	PhotoURL   *string   `json:"photoUrl"`
}

// Venue is one entry of a statistics payload, or a detail fetch result.
type Venue struct {
	ID string `json:"id"`
	VenueFields
	VoteCount int      `json:"voteCount"`
	Voters    []string `json:"voters"`
}

// Event carries event record fields. Flat publish payloads use EventID
// instead of ID.
type Event struct {
	ID               string     `json:"id"`
	EventID          string     `json:"eventId"`
	Title            *string    `json:"title"`
	MeetingTime      *time.Time `json:"meetingTime"`
	PublishedVenueID *string    `json:"publishedVenueId"`
	PublishedAt      *time.Time `json:"publishedAt"`
	UpdatedAt        *time.Time `json:"updatedAt"`
}

// Participant is a participant record.
type Participant struct {
	ID       string    `json:"id"`
	EventID  string    `json:"eventId"`
	Name     string    `json:"name"`
	Address  *string   `json:"address"`
	Location *Location `json:"location"`
}

// ParticipantChange is the payload of participant-added, -updated and -removed.
type ParticipantChange struct {
	EventID       string       `json:"eventId"`
	Participant   *Participant `json:"participant"`
	ParticipantID string       `json:"participantId"`
}

// VoteChange is the payload of vote-changed. Voters is nil when the
// server omitted the list.
type VoteChange struct {
	EventID string `json:"eventId"`
	VenueID string `json:"venueId"`
	VenueFields
	VoteCount int      `json:"voteCount"`
	Voters    []string `json:"voters"`
}

// Statistics is the payload of vote-statistics and the snapshot endpoint.
type Statistics struct {
	EventID      string        `json:"eventId"`
	Event        *Event        `json:"event"`
	Participants []Participant `json:"participants"`
	Venues       []Venue       `json:"venues"`
	TotalVotes   int           `json:"totalVotes"`
}

// Legacy is the body of a frame sent without an event name.
type Legacy struct {
	Type string `json:"type"`
}
