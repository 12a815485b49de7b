package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VW-ai/where2meet-client/internal/domain"
)

func TestStatistics_Snapshot_MissingVotersStayNil(t *testing.T) {
	t.Parallel()

	raw := `{"eventId":"evt-1","venues":[
		{"id":"venue-123","name":"Cafe","address":null,"rating":null,"photoUrl":null,"voteCount":5},
		{"id":"","name":"dropped","voteCount":1}
	],"totalVotes":5}`

	var s Statistics
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	snap := s.Snapshot("fallback")
	assert.Equal(t, "evt-1", snap.EventID)
	require.Len(t, snap.Venues, 1)
	assert.Nil(t, snap.Venues[0].VoterIDs)
	assert.Equal(t, 5, snap.Venues[0].VoteCount)
	assert.Nil(t, snap.Venues[0].Venue.Rating)

	st := snap.Venues[0].Stats()
	require.NotNil(t, st.VoterIDs)
	assert.Empty(t, st.VoterIDs)
}

func TestStatistics_Snapshot_CarriesContext(t *testing.T) {
	t.Parallel()

	raw := `{
		"event":{"id":"evt-1","title":"Dinner","publishedVenueId":"v1"},
		"participants":[{"id":"p1","name":"Ann","location":{"lat":1.5,"lng":2.5}}],
		"venues":[{"id":"v1","name":"Cafe","location":{"lat":3,"lng":4},"voteCount":1,"voters":["p1"]}],
		"totalVotes":1
	}`

	var s Statistics
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	snap := s.Snapshot("evt-1")
	require.NotNil(t, snap.Event)
	assert.Equal(t, "Dinner", snap.Event.Title)
	assert.Equal(t, domain.PublicationPublished, snap.Event.State)

	require.Len(t, snap.Participants, 1)
	assert.Equal(t, "evt-1", snap.Participants[0].EventID)
	assert.Equal(t, &domain.Location{Lat: 1.5, Lng: 2.5}, snap.Participants[0].Location)

	require.Len(t, snap.Venues, 1)
	assert.Equal(t, &domain.Location{Lat: 3, Lng: 4}, snap.Venues[0].Venue.Location)
	assert.Equal(t, []string{"p1"}, snap.Venues[0].VoterIDs)
}

func TestDecodePublished(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
	}{
		{"nested", `{"event":{"id":"evt-1","publishedVenueId":"v9","publishedAt":"2026-03-01T18:00:00Z"}}`},
		{"flat with id", `{"id":"evt-1","publishedVenueId":"v9","publishedAt":"2026-03-01T18:00:00Z"}`},
		{"flat with eventId", `{"eventId":"evt-1","publishedVenueId":"v9","publishedAt":"2026-03-01T18:00:00Z"}`},
		{"null nested falls back to flat", `{"event":null,"id":"evt-1","publishedVenueId":"v9","publishedAt":"2026-03-01T18:00:00Z"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev, err := DecodePublished([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, "evt-1", ev.Identifier())
			require.NotNil(t, ev.PublishedVenueID)
			assert.Equal(t, "v9", *ev.PublishedVenueID)
			require.NotNil(t, ev.PublishedAt)
			assert.True(t, at.Equal(*ev.PublishedAt))
		})
	}
}

func TestDecodePublished_Malformed(t *testing.T) {
	t.Parallel()

	_, err := DecodePublished([]byte(`{"event":`))
	assert.Error(t, err)
}

func TestVoteChange_Tally(t *testing.T) {
	t.Parallel()

	var c VoteChange
	require.NoError(t, json.Unmarshal([]byte(`{"eventId":"e","venueId":"v1","name":"Cafe","rating":4.1,"voteCount":2,"voters":["a","b"]}`), &c))

	tally := c.Tally()
	assert.Equal(t, "v1", tally.Venue.ID)
	assert.Equal(t, "Cafe", tally.Venue.Name)
	require.NotNil(t, tally.Venue.Rating)
	assert.Equal(t, 4.1, *tally.Venue.Rating)
	assert.Equal(t, []string{"a", "b"}, tally.VoterIDs)
}

func TestVenueFromDetails_RoundTrip(t *testing.T) {
	t.Parallel()

	rating, price, photo := 4.4, 2, "https://img/x.jpg"
	d := domain.VenueDetails{
		ID:         "v1",
		Name:       "Cafe",
		Location:   &domain.Location{Lat: 1, Lng: 2},
		Rating:     &rating,
		PriceLevel: &price,
		PhotoURL:   &photo,
	}

	assert.Equal(t, d, VenueFromDetails(d).Details())
}
