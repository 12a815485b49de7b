package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the identity claims the server embeds in bearer tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	EventID       string `json:"event_id,omitempty"`
	OrganizerID   string `json:"organizer_id,omitempty"`
	ParticipantID string `json:"participant_id,omitempty"`
}

// ClaimsFromToken parses a JWT without verifying its signature. The client
// cannot verify tokens (it never holds the signing key); the server does.
// Claims are used only to discover actor IDs, never for authorization.
func ClaimsFromToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token is empty")
	}

	parser := jwt.NewParser()
	claims := &TokenClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	return claims, nil
}
