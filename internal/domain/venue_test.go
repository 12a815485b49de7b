package domain

import "testing"

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestVenueDetails_IsFull(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		venue VenueDetails
		want  bool
	}{
		{
			name:  "name and rating",
			venue: VenueDetails{ID: "v1", Name: "Blue Bottle", Rating: floatPtr(4.5)},
			want:  true,
		},
		{
			name:  "name and photo",
			venue: VenueDetails{ID: "v1", Name: "Blue Bottle", PhotoURL: strPtr("https://img/1.jpg")},
			want:  true,
		},
		{
			name:  "name only",
			venue: VenueDetails{ID: "v1", Name: "Blue Bottle", Address: strPtr("1 Main St")},
			want:  false,
		},
		{
			name:  "empty photo does not count",
			venue: VenueDetails{ID: "v1", Name: "Blue Bottle", PhotoURL: strPtr("")},
			want:  false,
		},
		{
			name:  "placeholder name",
			venue: VenueDetails{ID: "v1", Name: "Unknown Venue", Rating: floatPtr(4.0)},
			want:  false,
		},
		{
			name:  "name equals id",
			venue: VenueDetails{ID: "venue-1", Name: "venue-1", Rating: floatPtr(4.0)},
			want:  false,
		},
		{
			name:  "empty name",
			venue: VenueDetails{ID: "v1", Rating: floatPtr(4.0)},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.venue.IsFull(); got != tt.want {
				t.Errorf("IsFull() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVenueDetails_CloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := VenueDetails{
		ID:       "v1",
		Name:     "Blue Bottle",
		Rating:   floatPtr(4.5),
		PhotoURL: strPtr("https://img/1.jpg"),
		Location: &Location{Lat: 1, Lng: 2},
	}
	cp := orig.Clone()
	*cp.Rating = 1.0
	*cp.PhotoURL = "changed"
	cp.Location.Lat = 9

	if *orig.Rating != 4.5 || *orig.PhotoURL != "https://img/1.jpg" || orig.Location.Lat != 1 {
		t.Fatalf("clone shares memory with original: %+v", orig)
	}
}

func TestNewVoteStats_NilVotersBecomeEmpty(t *testing.T) {
	t.Parallel()

	s := NewVoteStats("v1", 3, nil)
	if s.VoterIDs == nil {
		t.Fatal("VoterIDs must never be nil")
	}
	if len(s.VoterIDs) != 0 {
		t.Errorf("len(VoterIDs) = %d, want 0", len(s.VoterIDs))
	}
}

func TestVoteStats_HasVoter(t *testing.T) {
	t.Parallel()

	s := NewVoteStats("v1", 2, []string{"p1", "p2"})
	if !s.HasVoter("p1") {
		t.Error("p1 should be a voter")
	}
	if s.HasVoter("p3") {
		t.Error("p3 should not be a voter")
	}
	if s.HasVoter("") {
		t.Error("empty actor must never match")
	}
}

func TestSnapshot_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(Snapshot{}).IsEmpty() {
		t.Error("zero snapshot should be empty")
	}
	if (Snapshot{TotalVotes: 1}).IsEmpty() {
		t.Error("snapshot with votes should not be empty")
	}
	if (Snapshot{Venues: []VenueTally{{Venue: VenueDetails{ID: "v1"}}}}).IsEmpty() {
		t.Error("snapshot with venues should not be empty")
	}
}
