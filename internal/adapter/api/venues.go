package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/VW-ai/where2meet-client/internal/domain"
	"github.com/VW-ai/where2meet-client/internal/wire"
)

// venueEnvelope accepts both {"venue": {...}} and a bare venue object.
type venueEnvelope struct {
	Venue *wire.Venue `json:"venue"`
}

// FetchVenue reads the full details of one venue.
func (c *Client) FetchVenue(ctx context.Context, venueID string) (domain.VenueDetails, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.url("venues", venueID), nil)
	if err != nil {
		return domain.VenueDetails{}, fmt.Errorf("api: fetch venue: %w", err)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return domain.VenueDetails{}, fmt.Errorf("api: fetch venue: %w", err)
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := decodeJSON("fetch venue", resp, &raw); err != nil {
		return domain.VenueDetails{}, fmt.Errorf("api: fetch venue: %w", err)
	}

	v, err := parseVenue(raw)
	if err != nil {
		return domain.VenueDetails{}, fmt.Errorf("api: fetch venue: %w", err)
	}
	if v.ID == "" {
		v.ID = venueID
	}
	return v.Details(), nil
}

func parseVenue(raw json.RawMessage) (wire.Venue, error) {
	var env venueEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return wire.Venue{}, fmt.Errorf("decode json: %w", err)
	}
	if env.Venue != nil {
		return *env.Venue, nil
	}
	var v wire.Venue
	if err := json.Unmarshal(raw, &v); err != nil {
		return wire.Venue{}, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}
