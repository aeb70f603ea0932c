package auth

// Package auth contains simple hand-written test doubles for the session
// and authentication ports. These are lightweight and suitable for handler
// tests without codegen.

import (
	"context"
	"errors"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Authenticator   = (*StubAuthenticator)(nil)
	_ ports.GoogleExchanger = (*StubGoogleExchanger)(nil)
	_ ports.TokenDecoder    = (*StubTokenDecoder)(nil)
)

// StubAuthenticator answers every credential exchange with fixed values.
// Individual calls can be overridden through the func fields.
type StubAuthenticator struct {
	LoginFunc          func(ctx context.Context, email, password string) (ports.LoginResult, error)
	GoogleFunc         func(ctx context.Context, idToken string) (ports.LoginResult, error)
	RegisterFunc       func(ctx context.Context, in ports.RegisterInput) error
	ForgotPasswordFunc func(ctx context.Context, email string) error
	VerifyOTPFunc      func(ctx context.Context, email, otp string) error
	ResetPasswordFunc  func(ctx context.Context, in ports.ResetPasswordInput) error

	// Result backs every exchange that has no override.
	Result ports.LoginResult
	// Err, when set, fails every exchange that has no override.
	Err error
}

// NewStubAuthenticator creates a stub that logs every caller in as a fixed
// student.
func NewStubAuthenticator() *StubAuthenticator {
	return &StubAuthenticator{
		Result: ports.LoginResult{
			Token: "stub-token",
			Identity: domainauth.Identity{
				ID:    1,
				Name:  "Stub Student",
				Email: "student@learnix.test",
				Role:  domainauth.RoleStudent,
			},
		},
	}
}

func (s *StubAuthenticator) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, email, password)
	}
	if s.Err != nil {
		return ports.LoginResult{}, s.Err
	}
	return s.Result, nil
}

func (s *StubAuthenticator) LoginWithGoogle(ctx context.Context, idToken string) (ports.LoginResult, error) {
	if s.GoogleFunc != nil {
		return s.GoogleFunc(ctx, idToken)
	}
	if s.Err != nil {
		return ports.LoginResult{}, s.Err
	}
	return s.Result, nil
}

func (s *StubAuthenticator) Register(ctx context.Context, in ports.RegisterInput) error {
	if s.RegisterFunc != nil {
		return s.RegisterFunc(ctx, in)
	}
	return s.Err
}

func (s *StubAuthenticator) ForgotPassword(ctx context.Context, email string) error {
	if s.ForgotPasswordFunc != nil {
		return s.ForgotPasswordFunc(ctx, email)
	}
	return s.Err
}

func (s *StubAuthenticator) VerifyOTP(ctx context.Context, email, otp string) error {
	if s.VerifyOTPFunc != nil {
		return s.VerifyOTPFunc(ctx, email, otp)
	}
	return s.Err
}

func (s *StubAuthenticator) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	if s.ResetPasswordFunc != nil {
		return s.ResetPasswordFunc(ctx, in)
	}
	return s.Err
}

// StubGoogleExchanger fakes the Google code flow with fixed values.
type StubGoogleExchanger struct {
	AuthURL string
	State   string
	IDToken string
	Err     error
}

// NewStubGoogleExchanger creates a StubGoogleExchanger with predictable
// defaults.
func NewStubGoogleExchanger() *StubGoogleExchanger {
	return &StubGoogleExchanger{
		AuthURL: "https://accounts.google.test/auth",
		State:   "stub-state",
		IDToken: "stub-id-token",
	}
}

func (s *StubGoogleExchanger) Begin(_ context.Context, redirectURL string) (string, string, error) {
	if s.Err != nil {
		return "", "", s.Err
	}
	if redirectURL == "" {
		return "", "", errors.New("redirect URL is required")
	}
	return s.AuthURL, s.State, nil
}

func (s *StubGoogleExchanger) Exchange(_ context.Context, code string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if code == "" {
		return "", errors.New("authorization code is required")
	}
	return s.IDToken, nil
}

// StubTokenDecoder maps token strings to canned identities.
type StubTokenDecoder struct {
	Identities map[string]domainauth.Identity
	Err        error
}

func (s *StubTokenDecoder) Decode(token string) (domainauth.Identity, error) {
	if s.Err != nil {
		return domainauth.Identity{}, s.Err
	}
	identity, ok := s.Identities[token]
	if !ok {
		return domainauth.Identity{}, errors.New("unknown token")
	}
	return identity, nil
}
