package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("phone-1", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "phone-1", claims.DeviceID)
	assert.Equal(t, "phone-1", claims.Subject)
}

func TestValidateToken_Rejects(t *testing.T) {
	good, err := GenerateToken("phone-1", "s3cret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("phone-1", "s3cret", -time.Minute)
	require.NoError(t, err)
	anonymous, err := GenerateToken("", "s3cret", time.Hour)
	require.NoError(t, err)

	cases := map[string]struct{ token, secret string }{
		"wrong secret": {good, "other"},
		"expired":      {expired, "s3cret"},
		"garbage":      {"not.a.jwt", "s3cret"},
		"no device":    {anonymous, "s3cret"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateToken(tc.token, tc.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGenerateToken_NoSecret(t *testing.T) {
	_, err := GenerateToken("phone-1", "", time.Hour)
	assert.Error(t, err)
}
