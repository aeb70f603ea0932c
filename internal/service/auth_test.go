package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/learnix/learnix-portal/internal/adapters/memstore"
	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/mocks"
	authmocks "github.com/learnix/learnix-portal/internal/mocks/auth"
	"github.com/learnix/learnix-portal/internal/ports"
)

func newMemoryAuthService(backend ports.Authenticator) (*AuthService, *memstore.SessionStore) {
	store := memstore.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Backend:  backend,
		Sessions: store,
	})
	return svc, store
}

func TestLogin_EstablishesSession(t *testing.T) {
	backend := authmocks.NewStubAuthenticator()
	svc, store := newMemoryAuthService(backend)

	session, err := svc.Login(context.Background(), "student@learnix.test", "pw")
	require.NoError(t, err)

	require.NotEmpty(t, session.ID)
	assert.Equal(t, "stub-token", session.Token)
	require.NotNil(t, session.Identity)
	assert.Equal(t, domainauth.RoleStudent, session.Identity.Role)
	require.NoError(t, session.CheckInvariant())

	rec, err := store.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, "stub-token", rec.Token)
	assert.Equal(t, "student@learnix.test", rec.Email)
	assert.NotEmpty(t, rec.User)
}

func TestLogin_RequiresCredentials(t *testing.T) {
	svc, _ := newMemoryAuthService(authmocks.NewStubAuthenticator())

	_, err := svc.Login(context.Background(), "", "pw")
	assert.Error(t, err)
	_, err = svc.Login(context.Background(), "a@b.c", "")
	assert.Error(t, err)
}

func TestLogin_BackendFailureLeavesNoSession(t *testing.T) {
	backend := authmocks.NewStubAuthenticator()
	backend.Err = errors.New("bad credentials")
	svc, store := newMemoryAuthService(backend)

	session, err := svc.Login(context.Background(), "student@learnix.test", "wrong")
	require.Error(t, err)
	assert.True(t, session.IsAnonymous())
	assert.Zero(t, store.Len())
}

func TestEstablish_WritesRecordAsOneUnit(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)

	var saved ports.SessionRecord
	store.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec ports.SessionRecord) error {
			saved = rec
			return nil
		})

	svc := NewAuthService(AuthServiceOptions{
		Backend:  authmocks.NewStubAuthenticator(),
		Sessions: store,
	})

	session, err := svc.Login(context.Background(), "student@learnix.test", "pw")
	require.NoError(t, err)

	assert.Equal(t, session.ID, saved.ID)
	assert.Equal(t, "stub-token", saved.Token)
	assert.Equal(t, "student@learnix.test", saved.Email)

	var identity domainauth.Identity
	require.NoError(t, json.Unmarshal([]byte(saved.User), &identity))
	assert.Equal(t, *session.Identity, identity)
}

func TestLoginWithGoogle_EstablishesSession(t *testing.T) {
	backend := authmocks.NewStubAuthenticator()
	svc, _ := newMemoryAuthService(backend)

	session, err := svc.LoginWithGoogle(context.Background(), "google-id-token")
	require.NoError(t, err)
	assert.False(t, session.IsAnonymous())
	require.NoError(t, session.CheckInvariant())
}

func TestGetSession_RoundTrip(t *testing.T) {
	svc, _ := newMemoryAuthService(authmocks.NewStubAuthenticator())

	established, err := svc.Login(context.Background(), "student@learnix.test", "pw")
	require.NoError(t, err)

	restored := svc.GetSession(context.Background(), established.ID)
	assert.Equal(t, established.ID, restored.ID)
	assert.Equal(t, established.Token, restored.Token)
	require.NotNil(t, restored.Identity)
	assert.Equal(t, *established.Identity, *restored.Identity)
}

func TestGetSession_MissingIsAnonymous(t *testing.T) {
	svc, _ := newMemoryAuthService(authmocks.NewStubAuthenticator())

	session := svc.GetSession(context.Background(), "no-such-session")
	assert.True(t, session.IsAnonymous())
	require.NoError(t, session.CheckInvariant())
}

func TestGetSession_EmptyIDIsAnonymous(t *testing.T) {
	svc, _ := newMemoryAuthService(authmocks.NewStubAuthenticator())

	session := svc.GetSession(context.Background(), "")
	assert.True(t, session.IsAnonymous())
}

func TestGetSession_StoreFailureIsAnonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().
		Get(gomock.Any(), "sid").
		Return(ports.SessionRecord{}, errors.New("connection refused"))

	svc := NewAuthService(AuthServiceOptions{
		Backend:  authmocks.NewStubAuthenticator(),
		Sessions: store,
	})

	session := svc.GetSession(context.Background(), "sid")
	assert.True(t, session.IsAnonymous())
}

func TestGetSession_ExpiredRecordIsCleanedUp(t *testing.T) {
	// Store clock stays at base so the record survives storage; the
	// service clock runs past the expiry.
	base := time.Now()
	store := memstore.NewSessionStoreWithClock(func() time.Time { return base })
	svc := NewAuthService(AuthServiceOptions{
		Backend:  authmocks.NewStubAuthenticator(),
		Sessions: store,
		Now:      func() time.Time { return base.Add(2 * time.Minute) },
	})

	require.NoError(t, store.Save(context.Background(), ports.SessionRecord{
		ID:        "stale",
		Token:     "tok",
		User:      `{"id":1,"email":"x@y.z","role":"STUDENT"}`,
		Email:     "x@y.z",
		ExpiresAt: base.Add(time.Minute),
	}))

	session := svc.GetSession(context.Background(), "stale")
	assert.True(t, session.IsAnonymous())
	assert.Zero(t, store.Len())
}

func TestGetSession_CorruptUserFallsBackToTokenClaims(t *testing.T) {
	store := memstore.NewSessionStore()
	decoder := &authmocks.StubTokenDecoder{
		Identities: map[string]domainauth.Identity{
			"tok": {ID: 5, Name: "From Claims", Email: "claims@learnix.test", Role: domainauth.RoleTeacher},
		},
	}
	svc := NewAuthService(AuthServiceOptions{
		Backend:  authmocks.NewStubAuthenticator(),
		Sessions: store,
		Decoder:  decoder,
	})

	require.NoError(t, store.Save(context.Background(), ports.SessionRecord{
		ID:        "sid",
		Token:     "tok",
		User:      "{not json",
		Email:     "claims@learnix.test",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	session := svc.GetSession(context.Background(), "sid")
	require.NotNil(t, session.Identity)
	assert.Equal(t, "From Claims", session.Identity.Name)
	assert.Equal(t, domainauth.RoleTeacher, session.Identity.Role)
}

func TestGetSession_UndecodableCredentialIsAnonymous(t *testing.T) {
	store := memstore.NewSessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Backend:  authmocks.NewStubAuthenticator(),
		Sessions: store,
		Decoder:  &authmocks.StubTokenDecoder{Err: errors.New("malformed token")},
	})

	require.NoError(t, store.Save(context.Background(), ports.SessionRecord{
		ID:        "sid",
		Token:     "garbage",
		User:      "",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	session := svc.GetSession(context.Background(), "sid")
	assert.True(t, session.IsAnonymous())
	require.NoError(t, session.CheckInvariant())
}

func TestLogout_RemovesSession(t *testing.T) {
	svc, store := newMemoryAuthService(authmocks.NewStubAuthenticator())

	session, err := svc.Login(context.Background(), "student@learnix.test", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))
	assert.Zero(t, store.Len())
	assert.True(t, svc.GetSession(context.Background(), session.ID).IsAnonymous())
}

func TestLogout_IsIdempotent(t *testing.T) {
	svc, _ := newMemoryAuthService(authmocks.NewStubAuthenticator())

	session, err := svc.Login(context.Background(), "student@learnix.test", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.ID))
	require.NoError(t, svc.Logout(context.Background(), session.ID))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestRegister_ValidatesInput(t *testing.T) {
	svc, _ := newMemoryAuthService(authmocks.NewStubAuthenticator())

	err := svc.Register(context.Background(), ports.RegisterInput{Email: "", Password: "pw"})
	assert.Error(t, err)

	err = svc.Register(context.Background(), ports.RegisterInput{
		Email: "x@y.z", Password: "pw", Role: domainauth.Role("WIZARD"),
	})
	assert.Error(t, err)

	err = svc.Register(context.Background(), ports.RegisterInput{
		Name: "New", Email: "x@y.z", Password: "pw", Role: domainauth.RoleStudent,
	})
	assert.NoError(t, err)
}

func TestPasswordResetFlow_PassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockAuthenticator(ctrl)
	backend.EXPECT().ForgotPassword(gomock.Any(), "x@y.z").Return(nil)
	backend.EXPECT().VerifyOTP(gomock.Any(), "x@y.z", "123456").Return(nil)
	backend.EXPECT().
		ResetPassword(gomock.Any(), ports.ResetPasswordInput{Email: "x@y.z", OTP: "123456", NewPassword: "newpw"}).
		Return(nil)

	svc := NewAuthService(AuthServiceOptions{
		Backend:  backend,
		Sessions: memstore.NewSessionStore(),
	})

	ctx := context.Background()
	require.NoError(t, svc.ForgotPassword(ctx, "x@y.z"))
	require.NoError(t, svc.VerifyOTP(ctx, "x@y.z", "123456"))
	require.NoError(t, svc.ResetPassword(ctx, ports.ResetPasswordInput{
		Email: "x@y.z", OTP: "123456", NewPassword: "newpw",
	}))
}
