package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign(42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseExpired(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign(1, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	SetSecret("first-secret")
	token, err := Sign(1, time.Hour)
	require.NoError(t, err)

	SetSecret("second-secret")
	_, err = Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	SetSecret("test-secret")

	_, err := Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
