package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/VW-ai/where2meet-client/internal/store"
)

// VenueTally is one row of the vote summary of an event.
type VenueTally struct {
	VenueID string
	Name    string
	Votes   int
	Voters  []string
	Mine    bool
}

// Tally summarizes the statistics segment, most voted first.
func Tally(st *store.Store) []VenueTally {
	actor := st.ActorID()
	ids := st.AllVotedVenueIDs()
	out := make([]VenueTally, 0, len(ids))
	for _, id := range ids {
		stats, ok := st.Stats(id)
		if !ok {
			continue
		}
		name := id
		if d, ok := st.Details(id); ok && !d.HasPlaceholderName() {
			name = d.Name
		}
		out = append(out, VenueTally{
			VenueID: id,
			Name:    name,
			Votes:   stats.VoteCount,
			Voters:  stats.VoterIDs,
			Mine:    stats.HasVoter(actor),
		})
	}
	return out
}

type tallySource interface {
	Store() *store.Store
}

// LogTally logs the current vote summary.
func LogTally(ctx context.Context, logger *slog.Logger, src tallySource) {
	st := src.Store()
	rows := Tally(st)
	attrs := make([]any, 0, len(rows)+1)
	attrs = append(attrs, slog.Int("total_votes", st.TotalVotes()))
	for _, r := range rows {
		attrs = append(attrs, slog.Int(r.Name, r.Votes))
	}
	logger.InfoContext(ctx, "tally", attrs...)
}

// PrintTally writes the vote summary as text, one venue per line.
func PrintTally(w io.Writer, st *store.Store) {
	rows := Tally(st)
	if len(rows) == 0 {
		fmt.Fprintln(w, "no votes yet")
		return
	}
	for _, r := range rows {
		mark := " "
		if r.Mine {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-32s %3d  %s\n", mark, r.Name, r.Votes, strings.Join(r.Voters, ","))
	}
	fmt.Fprintf(w, "total votes: %d\n", st.TotalVotes())
}
