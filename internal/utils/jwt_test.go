package utils

import (
	"testing"
	"time"

	"posreport/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	branch := int64(2)
	token, err := GenerateToken(models.UserClaims{
		UserID: 7, StoreID: 1, BranchID: &branch, Role: models.RoleBranchManager,
	}, secret, time.Now(), time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleBranchManager, claims.Role)
	require.NotNil(t, claims.BranchID)
	assert.Equal(t, int64(2), *claims.BranchID)
	assert.Equal(t, "7", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	expired, err := GenerateToken(models.UserClaims{UserID: 1}, secret, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(expired, secret)
	assert.Error(t, err)

	valid, err := GenerateToken(models.UserClaims{UserID: 1}, secret, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(valid, "other-secret")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token", secret)
	assert.Error(t, err)

	_, err = ParseToken(valid, "")
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = GenerateToken(models.UserClaims{}, "", time.Now(), time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}
