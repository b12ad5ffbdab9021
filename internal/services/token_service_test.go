package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := NewTokenService("round-trip-secret")

	signed, err := tokens.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	tokens := NewTokenService("round-trip-secret")

	signed, err := tokens.Generate(42)
	require.NoError(t, err)

	_, err = tokens.Verify(signed + "x")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenService("secret-one").Generate(42)
	require.NoError(t, err)

	_, err = NewTokenService("secret-two").Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	tokens := NewTokenService("round-trip-secret")
	tokens.lifetime = -time.Minute

	signed, err := tokens.Generate(42)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_RejectsZeroUserID(t *testing.T) {
	tokens := NewTokenService("round-trip-secret")

	signed, err := tokens.Generate(0)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}
