package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/wire"
	"github.com/VW-ai/where2meet-client/pkg/ctxutil"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type venueData struct {
	ID string `json:"id"`
	wire.VenueFields
}

type castVoteRequest struct {
	VenueID   string    `json:"venueId"`
	VenueData venueData `json:"venueData"`
}

// CastVote records actorID's vote for venue. Writes are never retried.
func (c *Client) CastVote(ctx context.Context, eventID, actorID string, venue domain.VenueDetails) error {
	ctx = ctxutil.WithEventID(ctx, eventID)

	w := wire.VenueFromDetails(venue)
	body := castVoteRequest{
		VenueID:   venue.ID,
		VenueData: venueData{ID: w.ID, VenueFields: w.VenueFields},
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.url("events", eventID, "participants", actorID, "votes"), body)
	if err != nil {
		return fmt.Errorf("api: cast vote: %w", err)
	}
	if err := c.write(ctx, "cast vote", req); err != nil {
		return fmt.Errorf("api: cast vote: %w", err)
	}

	c.log.DebugContext(ctx, "vote cast", slog.String("venue_id", venue.ID), slog.String("actor_id", actorID))
	return nil
}

// RemoveVote withdraws actorID's vote for venueID. A vote that is already
// gone reports ErrNotFound.
func (c *Client) RemoveVote(ctx context.Context, eventID, actorID, venueID string) error {
	ctx = ctxutil.WithEventID(ctx, eventID)

	req, err := c.newRequest(ctx, http.MethodDelete, c.url("events", eventID, "participants", actorID, "votes", venueID), nil)
	if err != nil {
		return fmt.Errorf("api: remove vote: %w", err)
	}
	if err := c.write(ctx, "remove vote", req); err != nil {
		return fmt.Errorf("api: remove vote: %w", err)
	}

	c.log.DebugContext(ctx, "vote removed", slog.String("venue_id", venueID), slog.String("actor_id", actorID))
	return nil
}

func (c *Client) write(ctx context.Context, op string, req *http.Request) error {
	req.Header.Set(IdempotencyKeyHeader, uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(op, resp, http.StatusOK, http.StatusCreated, http.StatusNoContent)
}
