package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/model"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	token, err := mgr.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenManager_Expired(t *testing.T) {
	mgr := NewTokenManager("test-secret", -time.Minute)

	token, err := mgr.Issue(42)
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	require.Error(t, err)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Issue(7)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)

	_, err := mgr.Verify("not-a-token")
	require.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	assert.True(t, CheckPassword(hash, "s3cret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		ownerID  int64
		actorID  int64
		expected bool
	}{
		{
			name:     "Admin accesses any resource",
			roles:    []string{model.RoleAdmin},
			ownerID:  1,
			actorID:  99,
			expected: true,
		},
		{
			name:     "Owner accesses own resource",
			roles:    []string{model.RoleClient},
			ownerID:  5,
			actorID:  5,
			expected: true,
		},
		{
			name:     "Client denied on foreign resource",
			roles:    []string{model.RoleClient},
			ownerID:  5,
			actorID:  6,
			expected: false,
		},
		{
			name:     "No roles denied on foreign resource",
			roles:    nil,
			ownerID:  1,
			actorID:  2,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanAccess(tt.roles, tt.ownerID, tt.actorID))
		})
	}
}
