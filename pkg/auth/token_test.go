package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshraina2/resume-scanner/pkg/errx"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", "resume-scanner", time.Hour)

	token, err := svc.GenerateAccessToken("user-1", "tenant-1", map[string]any{"email": "jane@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID.String())
	assert.Equal(t, "tenant-1", claims.TenantID.String())
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("test-secret", "resume-scanner", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		require.Error(t, err)

		var appErr *errx.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, errx.TypeAuthentication, appErr.Type)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewTokenService("different-secret", "resume-scanner", time.Hour)
		token, err := other.GenerateAccessToken("user-1", "tenant-1", nil)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenService("test-secret", "resume-scanner", -time.Minute)
		token, err := expired.GenerateAccessToken("user-1", "tenant-1", nil)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token)
		require.Error(t, err)
	})
}

func TestAPIKeyRoundTrip(t *testing.T) {
	key, hash, err := GenerateAPIKey()
	require.NoError(t, err)
	assert.Contains(t, key, "rsk_")
	assert.True(t, VerifyAPIKey(key, hash))
	assert.False(t, VerifyAPIKey("rsk_wrong", hash))
}
