package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/ports"
)

const defaultSessionTTL = 12 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend  ports.Authenticator
	Sessions ports.SessionStore
	Decoder  ports.TokenDecoder
	// SessionTTL bounds how long an established session lives;
	// defaultSessionTTL when zero.
	SessionTTL time.Duration
	Logger     *slog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// AuthService orchestrates credential exchange against the backend and
// session persistence in the store. Establishing a session writes the
// bearer token, the serialized identity, and the email as one record;
// clearing removes them together.
type AuthService struct {
	backend  ports.Authenticator
	sessions ports.SessionStore
	decoder  ports.TokenDecoder
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		backend:  opts.Backend,
		sessions: opts.Sessions,
		decoder:  opts.Decoder,
		ttl:      ttl,
		logger:   logger,
		now:      now,
	}
}

// Login exchanges email and password for a backend token and establishes a
// session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domainauth.Session, error) {
	if email == "" || password == "" {
		return domainauth.Anonymous(), errors.New("email and password are required")
	}

	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return domainauth.Anonymous(), fmt.Errorf("backend login: %w", err)
	}
	return s.establish(ctx, res)
}

// LoginWithGoogle forwards a verified Google ID token to the backend and
// establishes a session from the result.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (domainauth.Session, error) {
	if idToken == "" {
		return domainauth.Anonymous(), errors.New("id token is required")
	}

	res, err := s.backend.LoginWithGoogle(ctx, idToken)
	if err != nil {
		return domainauth.Anonymous(), fmt.Errorf("backend google login: %w", err)
	}
	return s.establish(ctx, res)
}

func (s *AuthService) establish(ctx context.Context, res ports.LoginResult) (domainauth.Session, error) {
	user, err := json.Marshal(res.Identity)
	if err != nil {
		return domainauth.Anonymous(), fmt.Errorf("marshal identity: %w", err)
	}

	identity := res.Identity
	session := domainauth.Session{
		ID:        uuid.NewString(),
		Token:     res.Token,
		Identity:  &identity,
		ExpiresAt: s.now().Add(s.ttl),
	}
	rec := ports.SessionRecord{
		ID:        session.ID,
		Token:     session.Token,
		User:      string(user),
		Email:     identity.Email,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.sessions.Save(ctx, rec); err != nil {
		return domainauth.Anonymous(), fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// GetSession restores the session behind a cookie value. A missing,
// expired, or unreadable record yields the anonymous session rather than an
// error; restore failures never lock a visitor out of the public pages.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) domainauth.Session {
	if sessionID == "" {
		return domainauth.Anonymous()
	}

	rec, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if !isStoreNotFound(err) {
			s.logger.Warn("session lookup failed", "error", err)
		}
		return domainauth.Anonymous()
	}
	if rec.Token == "" {
		return domainauth.Anonymous()
	}
	if !rec.ExpiresAt.IsZero() && s.now().After(rec.ExpiresAt) {
		if delErr := s.sessions.Delete(ctx, sessionID); delErr != nil && !isStoreNotFound(delErr) {
			s.logger.Warn("expired session cleanup failed", "error", delErr)
		}
		return domainauth.Anonymous()
	}

	identity, ok := s.restoreIdentity(rec)
	if !ok {
		// A credential without a readable identity cannot drive the UI.
		return domainauth.Anonymous()
	}

	return domainauth.Session{
		ID:        rec.ID,
		Token:     rec.Token,
		Identity:  &identity,
		ExpiresAt: rec.ExpiresAt,
	}
}

// restoreIdentity rebuilds the identity from the stored JSON, falling back
// to the token claims when the stored copy is missing or corrupt.
func (s *AuthService) restoreIdentity(rec ports.SessionRecord) (domainauth.Identity, bool) {
	if rec.User != "" {
		var identity domainauth.Identity
		if err := json.Unmarshal([]byte(rec.User), &identity); err == nil && identity.Role.Valid() {
			return identity, true
		}
		s.logger.Warn("stored identity unreadable, falling back to token claims", "session_id", rec.ID)
	}

	if s.decoder == nil {
		return domainauth.Identity{}, false
	}
	identity, err := s.decoder.Decode(rec.Token)
	if err != nil {
		s.logger.Warn("token claims unreadable", "session_id", rec.ID, "error", err)
		return domainauth.Identity{}, false
	}
	return identity, true
}

// Logout clears the session. Clearing an absent session is not an error, so
// a double logout and a logout with a stale cookie both succeed.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !isStoreNotFound(err) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Register creates a backend account. No session is established; students
// wait for admission approval before their first login.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	if in.Email == "" || in.Password == "" {
		return errors.New("email and password are required")
	}
	if !in.Role.Valid() {
		return fmt.Errorf("unknown role %q", in.Role)
	}
	return s.backend.Register(ctx, in)
}

// ForgotPassword asks the backend to mail a one-time code.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	return s.backend.ForgotPassword(ctx, email)
}

// VerifyOTP checks a one-time code before a reset is allowed.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	if email == "" || otp == "" {
		return errors.New("email and code are required")
	}
	return s.backend.VerifyOTP(ctx, email, otp)
}

// ResetPassword sets a new password for a verified one-time code.
func (s *AuthService) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	if in.Email == "" || in.OTP == "" || in.NewPassword == "" {
		return errors.New("email, code, and new password are required")
	}
	return s.backend.ResetPassword(ctx, in)
}

// isStoreNotFound matches the not-found sentinel of any session store
// implementation without importing the adapters.
func isStoreNotFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}
