package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/wire"
	"github.com/VW-ai/where2meet-client/pkg/ctxutil"
)

// FetchSnapshot reads the authoritative vote statistics of an event.
func (c *Client) FetchSnapshot(ctx context.Context, eventID string) (domain.Snapshot, error) {
	ctx = ctxutil.WithEventID(ctx, eventID)

	req, err := c.newRequest(ctx, http.MethodGet, c.url("events", eventID, "votes"), nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("api: fetch snapshot: %w", err)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("api: fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	var stats wire.Statistics
	if err := decodeJSON("fetch snapshot", resp, &stats); err != nil {
		return domain.Snapshot{}, fmt.Errorf("api: fetch snapshot: %w", err)
	}

	snap := stats.Snapshot(eventID)
	c.log.DebugContext(ctx, "snapshot fetched",
		slog.Int("venues", len(snap.Venues)),
		slog.Int("total_votes", snap.TotalVotes),
	)
	return snap, nil
}
