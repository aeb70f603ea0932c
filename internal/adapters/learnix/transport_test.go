package learnix

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTripper captures the request that reaches the underlying transport.
type recordingTripper struct {
	seen *http.Request
}

func (rt *recordingTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.seen = req
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusOK)
	return rec.Result(), nil
}

func TestBearerTransport_AttachesCredential(t *testing.T) {
	inner := &recordingTripper{}
	transport := &BearerTransport{Base: inner}

	ctx := WithToken(context.Background(), "abc123")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://backend/api/student/profile", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotNil(t, inner.seen)
	assert.Equal(t, "Bearer abc123", inner.seen.Header.Get("Authorization"))
}

func TestBearerTransport_NoCredentialPassesThrough(t *testing.T) {
	inner := &recordingTripper{}
	transport := &BearerTransport{Base: inner}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://backend/api/courses/all", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotNil(t, inner.seen)
	assert.Empty(t, inner.seen.Header.Get("Authorization"))
}

func TestBearerTransport_DoesNotMutateOriginalRequest(t *testing.T) {
	inner := &recordingTripper{}
	transport := &BearerTransport{Base: inner}

	ctx := WithToken(context.Background(), "tok")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://backend/api/student/grades", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, req.Header.Get("Authorization"), "original request must stay untouched")
	assert.Equal(t, "Bearer tok", inner.seen.Header.Get("Authorization"))
}

func TestWithToken_EmptyTokenIsNotStored(t *testing.T) {
	ctx := WithToken(context.Background(), "")
	_, ok := TokenFromContext(ctx)
	assert.False(t, ok)
}

func TestTokenFromContext_RoundTrip(t *testing.T) {
	ctx := WithToken(context.Background(), "session-token")
	got, ok := TokenFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "session-token", got)
}
