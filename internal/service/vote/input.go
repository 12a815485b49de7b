package vote

import (
	"strings"

	"github.com/VW-ai/where2meet-client/internal/domain"
)

// CastVoteInput holds the parameters for casting a vote.
type CastVoteInput struct {
	EventID string
	VenueID string
	// Venue carries the details the voter saw. When set it enters the
	// detail segment unless a full entry already exists.
	Venue *domain.VenueDetails
}

// Validate checks all fields and collects all errors.
func (i CastVoteInput) Validate(eventID string) error {
	errs := validateTarget(i.EventID, i.VenueID, eventID)
	if i.Venue != nil && i.Venue.ID != "" && i.Venue.ID != strings.TrimSpace(i.VenueID) {
		errs = append(errs, domain.FieldError{Field: "venue.id", Message: "does not match venue_id"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RemoveVoteInput holds the parameters for removing a vote.
type RemoveVoteInput struct {
	EventID string
	VenueID string
}

// Validate checks all fields and collects all errors.
func (i RemoveVoteInput) Validate(eventID string) error {
	if errs := validateTarget(i.EventID, i.VenueID, eventID); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateTarget(inputEventID, venueID, eventID string) []domain.FieldError {
	var errs []domain.FieldError
	switch strings.TrimSpace(inputEventID) {
	case "":
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "required"})
	case eventID:
	default:
		errs = append(errs, domain.FieldError{Field: "event_id", Message: "not the current event"})
	}
	if strings.TrimSpace(venueID) == "" {
		errs = append(errs, domain.FieldError{Field: "venue_id", Message: "required"})
	}
	return errs
}
