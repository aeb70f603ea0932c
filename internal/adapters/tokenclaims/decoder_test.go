package tokenclaims

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
)

// signToken builds a token the way the backend does: HS256, subject = email,
// role claim. The decoder never checks the signature, so any key works here.
func signToken(t *testing.T, claimset jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claimset)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestDecoder_Decode(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "a@b.com",
		"role": "STUDENT",
		"name": "A Student",
		"uid":  float64(7),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	id, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleStudent, id.Role)
	assert.Equal(t, "a@b.com", id.Email)
	assert.Equal(t, "A Student", id.Name)
	assert.Equal(t, int64(7), id.ID)
}

func TestDecoder_Decode_LowercaseRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "t@b.com", "role": "teacher"})

	id, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleTeacher, id.Role)
}

func TestDecoder_Decode_ExpiredTokenStillDecodes(t *testing.T) {
	// Restore-time decoding is trust-on-read; expiry is the backend's call.
	token := signToken(t, jwt.MapClaims{
		"sub":  "a@b.com",
		"role": "ADMIN",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	id, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, id.Role)
}

func TestDecoder_Decode_Malformed(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b", "a.b.c"} {
		_, err := NewDecoder().Decode(tok)
		assert.Errorf(t, err, "token %q should fail to decode", tok)
	}
}

func TestDecoder_Decode_UnknownRole(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "a@b.com", "role": "SUPERUSER"})
	_, err := NewDecoder().Decode(token)
	assert.Error(t, err)
}

func TestDecoder_Decode_MissingSubject(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"role": "STUDENT"})
	_, err := NewDecoder().Decode(token)
	assert.Error(t, err)
}
