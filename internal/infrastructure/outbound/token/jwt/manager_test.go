package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogicum/internal/custom_errors"
	"blogicum/internal/infrastructure/logger"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager("secret", time.Hour, logger.New("test"))

	token, expiresAt, err := m.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestManager_ParseRejects(t *testing.T) {
	log := logger.New("test")
	m := NewManager("secret", time.Hour, log)
	valid, _, err := m.Issue(7)
	require.NoError(t, err)

	expired := NewManager("secret", time.Hour, log)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _, err := expired.Issue(7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		mgr   *Manager
	}{
		{name: "garbage", token: "not-a-token", mgr: m},
		{name: "empty", token: "", mgr: m},
		{name: "wrong secret", token: valid, mgr: NewManager("other", time.Hour, log)},
		{name: "expired", token: expiredToken, mgr: m},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mgr.Parse(tt.token)
			assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
		})
	}
}
