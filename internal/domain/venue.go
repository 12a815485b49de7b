package domain

// placeholderNames are names the server sends before a venue is resolved.
var placeholderNames = map[string]struct{}{
	"":              {},
	"unknown":       {},
	"unknown venue": {},
	"loading...":    {},
	"venue":         {},
}

// VenueDetails is the rich, rarely-changing description of a candidate venue.
// Every optional field may be absent in push payloads.
type VenueDetails struct {
	ID         string
	Name       string
	Address    *string
	Location   *Location
	Category   *string
	Rating     *float64
	PriceLevel *int
	PhotoURL   *string
}

// IsFull reports whether the details are complete enough to be treated as
// final: a real name plus at least one of rating or photo.
func (v VenueDetails) IsFull() bool {
	if v.HasPlaceholderName() {
		return false
	}
	return v.Rating != nil || (v.PhotoURL != nil && *v.PhotoURL != "")
}

// HasPlaceholderName reports whether Name is empty, a known placeholder, or the bare id.
func (v VenueDetails) HasPlaceholderName() bool {
	name := NormalizeText(v.Name)
	if _, ok := placeholderNames[name]; ok {
		return true
	}
	return v.Name == v.ID
}

// NeedsHydration reports whether a minimal entry lacks both rating and photo.
func (v VenueDetails) NeedsHydration() bool {
	return v.Rating == nil && (v.PhotoURL == nil || *v.PhotoURL == "")
}

// Clone returns a deep copy.
func (v VenueDetails) Clone() VenueDetails {
	out := v
	out.Address = cloneString(v.Address)
	out.Category = cloneString(v.Category)
	out.PhotoURL = cloneString(v.PhotoURL)
	if v.Location != nil {
		loc := *v.Location
		out.Location = &loc
	}
	if v.Rating != nil {
		r := *v.Rating
		out.Rating = &r
	}
	if v.PriceLevel != nil {
		p := *v.PriceLevel
		out.PriceLevel = &p
	}
	return out
}

// VoteStats is the frequently-changing vote aggregate of one venue.
// VoterIDs is never nil.
type VoteStats struct {
	VenueID   string
	VoteCount int
	VoterIDs  []string
}

// NewVoteStats builds a VoteStats, copying voters and defaulting a nil list to empty.
func NewVoteStats(venueID string, voteCount int, voters []string) VoteStats {
	ids := make([]string, len(voters))
	copy(ids, voters)
	return VoteStats{VenueID: venueID, VoteCount: voteCount, VoterIDs: ids}
}

// HasVoter reports whether actorID is in the voter list.
func (s VoteStats) HasVoter(actorID string) bool {
	if actorID == "" {
		return false
	}
	for _, id := range s.VoterIDs {
		if id == actorID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy with a non-nil voter list.
func (s VoteStats) Clone() VoteStats {
	return NewVoteStats(s.VenueID, s.VoteCount, s.VoterIDs)
}
