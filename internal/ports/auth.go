package ports

// Package ports defines interfaces (hexagonal ports) for session and
// authentication behavior. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
)

// SessionRecord is the durable per-session layout: the bearer token, the
// JSON-serialized identity, and a convenience copy of the identity's email.
// The three fields are written together on establish and removed together
// on clear.
type SessionRecord struct {
	ID        string
	Token     string
	User      string
	Email     string
	ExpiresAt time.Time
}

// SessionStore persists and retrieves session records.
type SessionStore interface {
	Save(ctx context.Context, rec SessionRecord) error
	Get(ctx context.Context, id string) (SessionRecord, error)
	Delete(ctx context.Context, id string) error
}

// TokenDecoder derives a provisional identity from a bearer token's claims.
// Decoding is trust-on-read: the portal cannot verify the backend's
// signature, so the result is a UX convenience, not a security boundary.
type TokenDecoder interface {
	Decode(token string) (domainauth.Identity, error)
}

// LoginResult carries the backend's answer to a successful credential
// exchange: the bearer token plus the identity it proves.
type LoginResult struct {
	Token    string
	Identity domainauth.Identity
}

// RegisterInput groups the fields of a portal registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domainauth.Role
}

// ResetPasswordInput groups the fields of a password reset.
type ResetPasswordInput struct {
	Email       string
	OTP         string
	NewPassword string
}

// Authenticator exchanges user credentials for a bearer token against the
// backend API. It performs no session bookkeeping of its own.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (LoginResult, error)
	Register(ctx context.Context, in RegisterInput) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}

// GoogleExchanger runs the portal side of the Google OAuth code flow. Begin
// returns the provider auth URL plus an opaque state; Exchange turns the
// callback code into a verified ID token ready to forward to the backend.
type GoogleExchanger interface {
	Begin(ctx context.Context, redirectURL string) (authURL, state string, err error)
	Exchange(ctx context.Context, code string) (idToken string, err error)
}
