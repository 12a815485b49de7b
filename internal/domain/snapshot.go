package domain

// VenueTally is one venue entry of a statistics payload: the embedded
// detail fields plus the vote aggregate. VoterIDs is nil when the payload
// omitted the list.
type VenueTally struct {
	Venue     VenueDetails
	VoteCount int
	VoterIDs  []string
}

// Stats returns the statistics segment value for this tally.
func (t VenueTally) Stats() VoteStats {
	return NewVoteStats(t.Venue.ID, t.VoteCount, t.VoterIDs)
}

// Snapshot is an authoritative read of every vote statistic of an event,
// optionally carrying the event and its participants.
type Snapshot struct {
	EventID      string
	Event        *Event
	Participants []Participant
	Venues       []VenueTally
	TotalVotes   int
}

// IsEmpty reports a payload with no venues and no votes.
func (s Snapshot) IsEmpty() bool {
	return len(s.Venues) == 0 && s.TotalVotes == 0
}
