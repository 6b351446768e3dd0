package sessions_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/bsky-session-server/internal/utils"
	"github.com/jrsteele09/bsky-session-server/sessions"
	"github.com/stretchr/testify/require"
)

func signedAccessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub":   "did:plc:alice",
		"scope": "com.atproto.access",
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte("not-the-provider-key"))
	require.NoError(t, err)
	return signed
}

func TestAccessExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	session := &sessions.SessionData{AccessJwt: signedAccessToken(t, exp)}

	got, ok := session.AccessExpiry()
	require.True(t, ok)
	require.True(t, exp.Equal(got))
}

func TestAccessExpiry_NotAJWT(t *testing.T) {
	_, ok := (&sessions.SessionData{AccessJwt: "opaque"}).AccessExpiry()
	require.False(t, ok)
}

func TestSameTokens(t *testing.T) {
	a := &sessions.SessionData{AccessJwt: "a", RefreshJwt: "r", Handle: "one"}
	b := &sessions.SessionData{AccessJwt: "a", RefreshJwt: "r", Handle: "two"}
	require.True(t, a.SameTokens(b))

	b.RefreshJwt = "r2"
	require.False(t, a.SameTokens(b))
	require.False(t, a.SameTokens(nil))
}

func TestClone(t *testing.T) {
	original := &sessions.SessionData{AccessJwt: "a", Status: utils.Ptr("takendown")}
	clone := original.Clone()
	require.Equal(t, original, clone)

	*clone.Status = "active"
	require.Equal(t, "takendown", original.StatusString())
}
