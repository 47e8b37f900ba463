package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSessionStoreRoundTrip(t *testing.T) {
	s := NewJWTSessionStore("test-secret", time.Minute)

	token, err := s.NewSession(42)
	require.NoError(t, err)

	uid, ok, err := s.GetUserIDByToken(token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, uid)
}

func TestJWTSessionStoreRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTSessionStore("secret-a", time.Minute)
	verifier := NewJWTSessionStore("secret-b", time.Minute)

	token, err := issuer.NewSession(7)
	require.NoError(t, err)

	_, ok, err := verifier.GetUserIDByToken(token)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestJWTSessionStoreRejectsGarbage(t *testing.T) {
	s := NewJWTSessionStore("test-secret", time.Minute)
	_, ok, err := s.GetUserIDByToken("not.a.jwt")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	r := miniredis.RunT(t)
	s := NewRedisSessionStore(r.Addr(), "", time.Minute)

	token, err := s.NewSession(42)
	require.NoError(t, err)

	uid, ok, err := s.GetUserIDByToken(token)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, uid)

	require.NoError(t, s.DeleteSession(token))
	_, ok, err = s.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSessionStoreExpiresTokens(t *testing.T) {
	r := miniredis.RunT(t)
	s := NewRedisSessionStore(r.Addr(), "", time.Second)

	token, err := s.NewSession(9)
	require.NoError(t, err)

	r.FastForward(2 * time.Second)

	_, ok, err := s.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.False(t, ok)
}
