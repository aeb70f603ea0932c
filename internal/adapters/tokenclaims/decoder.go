package tokenclaims

// Package tokenclaims derives a provisional identity from the Learnix bearer
// token. The portal does not hold the backend's signing key, so claims are
// read without signature verification; the backend re-validates the token on
// every authenticated request.

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/ports"
)

// claims mirrors the payload the backend signs at login: subject is the
// user's email, plus role and optional display fields.
type claims struct {
	Role   string `json:"role"`
	Name   string `json:"name,omitempty"`
	UserID int64  `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// Decoder implements ports.TokenDecoder over golang-jwt.
type Decoder struct {
	parser *jwt.Parser
}

var _ ports.TokenDecoder = (*Decoder)(nil)

// NewDecoder creates a claim decoder.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// Decode parses the token without verifying its signature and maps the
// claims onto a domain identity. A token with no usable role or subject is
// an error; callers treat any error as "no session".
func (d *Decoder) Decode(token string) (domainauth.Identity, error) {
	var c claims
	if _, _, err := d.parser.ParseUnverified(token, &c); err != nil {
		return domainauth.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	role, err := domainauth.ParseRole(c.Role)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("token role: %w", err)
	}
	if c.Subject == "" {
		return domainauth.Identity{}, fmt.Errorf("token has no subject")
	}

	return domainauth.Identity{
		ID:    c.UserID,
		Name:  c.Name,
		Email: c.Subject,
		Role:  role,
	}, nil
}
