package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VW-ai/where2meet-client/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func fullVenue(id string) domain.VenueDetails {
	return domain.VenueDetails{
		ID:         id,
		Name:       "Blue Bottle",
		Address:    strPtr("1 Main St"),
		Location:   &domain.Location{Lat: 37.77, Lng: -122.41},
		Category:   strPtr("cafe"),
		Rating:     floatPtr(4.5),
		PriceLevel: intPtr(2),
		PhotoURL:   strPtr("https://img/bb.jpg"),
	}
}

func TestUpsertDetailIfAbsent(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	require.True(t, s.UpsertDetailIfAbsent(domain.VenueDetails{ID: "v1", Name: "Minimal"}))
	assert.False(t, s.UpsertDetailIfAbsent(fullVenue("v1")), "existing entry must not be overwritten")

	got, ok := s.Details("v1")
	require.True(t, ok)
	assert.Equal(t, "Minimal", got.Name)
	assert.False(t, s.UpsertDetailIfAbsent(domain.VenueDetails{}), "entry without id is ignored")
}

func TestUpgradeDetail_FullIsNeverReplaced(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	full := fullVenue("v1")
	require.True(t, s.UpgradeDetail(full))

	changed := s.UpgradeDetail(domain.VenueDetails{
		ID:     "v1",
		Name:   "Other",
		Rating: floatPtr(1.0),
	})
	assert.False(t, changed)

	got, _ := s.Details("v1")
	assert.Equal(t, full, got)
}

func TestUpgradeDetail_FullReplacesMinimal(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.UpsertDetailIfAbsent(domain.VenueDetails{ID: "v1", Name: "Unknown"})

	require.True(t, s.UpgradeDetail(fullVenue("v1")))
	assert.True(t, s.HasFullDetails("v1"))
}

func TestUpgradeDetail_MinimalOnlyFillsBlanks(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.UpsertDetailIfAbsent(domain.VenueDetails{ID: "v1", Name: "Cafe", Address: strPtr("1 Main St")})

	require.True(t, s.UpgradeDetail(domain.VenueDetails{ID: "v1", Name: "Cafe", Category: strPtr("cafe")}))
	assert.False(t, s.UpgradeDetail(domain.VenueDetails{ID: "v1", Name: "Cafe"}), "nothing new to fill")

	got, _ := s.Details("v1")
	require.NotNil(t, got.Address)
	assert.Equal(t, "1 Main St", *got.Address)
	require.NotNil(t, got.Category)
	assert.Equal(t, "cafe", *got.Category)
}

func TestDetails_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.UpsertDetailIfAbsent(fullVenue("v1"))

	got, _ := s.Details("v1")
	*got.Rating = 0

	again, _ := s.Details("v1")
	assert.Equal(t, 4.5, *again.Rating)
}

// A statistics-only write must leave every detail field identical.
func TestStatsWrites_DoNotTouchDetails(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	full := fullVenue("venue-123")
	s.UpsertDetailIfAbsent(full)

	s.OverwriteStats(domain.NewVoteStats("venue-123", 5, []string{"p1", "p2"}))
	s.ReplaceStats(nil)
	s.MutateStats("venue-123", func(cur domain.VoteStats, _ bool) (domain.VoteStats, bool) {
		return cur, false
	})

	got, ok := s.Details("venue-123")
	require.True(t, ok)
	assert.Equal(t, full, got)
}

func TestOverwriteStats_NilVotersBecomeEmpty(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.OverwriteStats(domain.VoteStats{VenueID: "v1", VoteCount: 2})

	st, ok := s.Stats("v1")
	require.True(t, ok)
	require.NotNil(t, st.VoterIDs)
	assert.Empty(t, st.VoterIDs)
	assert.Equal(t, 2, st.VoteCount)
}

func TestReplaceStats_DropsAbsentVenues(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.OverwriteStats(domain.NewVoteStats("v1", 1, []string{"p1"}))
	s.OverwriteStats(domain.NewVoteStats("v2", 1, []string{"p2"}))

	s.ReplaceStats([]domain.VoteStats{domain.NewVoteStats("v2", 3, []string{"p1", "p2", "p3"})})

	_, ok := s.Stats("v1")
	assert.False(t, ok)
	assert.Equal(t, 3, s.VoteCount("v2"))
}

func TestMutateAndRestoreStats(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.OverwriteStats(domain.NewVoteStats("v1", 1, []string{"p2"}))

	prev, existed := s.MutateStats("v1", func(cur domain.VoteStats, exists bool) (domain.VoteStats, bool) {
		require.True(t, exists)
		cur.VoterIDs = append(cur.VoterIDs, "p1")
		cur.VoteCount = len(cur.VoterIDs)
		return cur, true
	})
	require.True(t, existed)
	assert.Equal(t, 2, s.VoteCount("v1"))

	s.RestoreStats("v1", prev, existed)
	st, _ := s.Stats("v1")
	assert.Equal(t, []string{"p2"}, st.VoterIDs)
	assert.Equal(t, 1, st.VoteCount)

	_, existed = s.MutateStats("v9", func(cur domain.VoteStats, _ bool) (domain.VoteStats, bool) {
		return domain.NewVoteStats("v9", 1, []string{"p1"}), true
	})
	s.RestoreStats("v9", domain.VoteStats{}, existed)
	_, ok := s.Stats("v9")
	assert.False(t, ok, "restoring a previously absent entry removes it")
}

func TestAllVotedVenueIDs_SortedByCountDesc(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.OverwriteStats(domain.NewVoteStats("a", 1, []string{"p1"}))
	s.OverwriteStats(domain.NewVoteStats("b", 3, []string{"p1", "p2", "p3"}))
	s.OverwriteStats(domain.NewVoteStats("c", 0, nil))
	s.OverwriteStats(domain.NewVoteStats("d", 3, []string{"p2", "p3", "p4"}))
	s.OverwriteStats(domain.NewVoteStats("e", 2, []string{"p4", "p5"}))

	assert.Equal(t, []string{"b", "d", "e", "a"}, s.AllVotedVenueIDs())
	assert.Equal(t, 9, s.TotalVotes())
}

func TestMyVotedVenueIDs(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.OverwriteStats(domain.NewVoteStats("a", 1, []string{"p1"}))
	s.OverwriteStats(domain.NewVoteStats("b", 2, []string{"p1", "p2"}))
	s.OverwriteStats(domain.NewVoteStats("c", 1, []string{"p2"}))

	assert.Empty(t, s.MyVotedVenueIDs(), "no actor resolved yet")

	s.SetActorID("p1")
	assert.Equal(t, []string{"b", "a"}, s.MyVotedVenueIDs())
	assert.Equal(t, []string{"b", "c"}, s.VotedVenueIDsBy("p2"))
	assert.True(t, s.HasVoted("a", "p1"))
	assert.False(t, s.HasVoted("c", "p1"))
}

func TestParticipants_AddIsDeduplicated(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	require.True(t, s.AddParticipant(domain.Participant{ID: "p1", Name: "Ann"}))
	assert.False(t, s.AddParticipant(domain.Participant{ID: "p1", Name: "Changed"}))

	p, ok := s.Participant("p1")
	require.True(t, ok)
	assert.Equal(t, "Ann", p.Name)
}

func TestParticipants_UpsertMergesAndRemove(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	s.AddParticipant(domain.Participant{ID: "p1", Name: "Ann", Address: strPtr("Home")})
	s.AddParticipant(domain.Participant{ID: "p2", Name: "Bob"})

	s.UpsertParticipant(domain.Participant{ID: "p1", Location: &domain.Location{Lat: 1, Lng: 2}})
	p, _ := s.Participant("p1")
	assert.Equal(t, "Ann", p.Name)
	require.NotNil(t, p.Address)
	require.NotNil(t, p.Location)

	require.True(t, s.RemoveParticipant("p1"))
	assert.False(t, s.RemoveParticipant("p1"))

	ps := s.Participants()
	require.Len(t, ps, 1)
	assert.Equal(t, "p2", ps[0].ID)
}

func TestUpdateEvent_StartsFromEmptyRecord(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	_, ok := s.Event()
	require.False(t, ok)

	s.UpdateEvent(func(e *domain.Event) { e.Title = "Friday dinner" })

	ev, ok := s.Event()
	require.True(t, ok)
	assert.Equal(t, "evt-1", ev.ID)
	assert.Equal(t, "Friday dinner", ev.Title)
	assert.Equal(t, domain.PublicationUnpublished, ev.State)
}

func TestSubscribe_CoalescesSignals(t *testing.T) {
	t.Parallel()

	s := New("evt-1")
	ch, cancel := s.Subscribe()

	s.OverwriteStats(domain.NewVoteStats("v1", 1, []string{"p1"}))
	s.OverwriteStats(domain.NewVoteStats("v1", 2, []string{"p1", "p2"}))

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending change signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one")
	default:
	}

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open, "channel closed after unsubscribe")
}
