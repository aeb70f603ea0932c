package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
)

func TestSessionContextRoundTrip(t *testing.T) {
	session := testSession("s1", domainauth.RoleStudent)

	ctx := SetSessionInContext(context.Background(), session)
	got, ok := SessionFromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.Token, got.Token)
}

func TestAnonymousSessionIsNotStored(t *testing.T) {
	ctx := SetSessionInContext(context.Background(), domainauth.Anonymous())

	got, ok := SessionFromContext(ctx)
	assert.False(t, ok)
	assert.True(t, got.IsAnonymous())
}

func TestCurrentSessionDefaultsToAnonymous(t *testing.T) {
	got := CurrentSession(context.Background())
	assert.True(t, got.IsAnonymous())
}
