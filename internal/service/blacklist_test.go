package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistAddAndContains(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	bl := NewBlacklist(tokens)

	token, err := tokens.Issue(1, "user", "alice")
	require.NoError(t, err)

	assert.False(t, bl.Contains(token))
	assert.True(t, bl.Add(token))
	assert.True(t, bl.Contains(token))
	assert.Equal(t, 1, bl.Len())

	// 重复加入返回 false
	assert.False(t, bl.Add(token))
	assert.Equal(t, 1, bl.Len())
}

func TestBlacklistRejectsUndecodable(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	bl := NewBlacklist(tokens)

	assert.False(t, bl.Add("garbage"))
	assert.Equal(t, 0, bl.Len())
}

func TestBlacklistRejectsAlreadyExpired(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	bl := NewBlacklist(tokens)

	// 已自然过期的令牌无需拉黑
	now := time.Now()
	expired := signToken(t, testSecret, claimsAt(1, "user", "alice",
		now.Add(-2*time.Hour), now.Add(-time.Hour)))

	assert.False(t, bl.Add(expired))
	assert.Equal(t, 0, bl.Len())
}

func TestBlacklistEntryExpiresWithToken(t *testing.T) {
	// 极短有效期的令牌，验证条目随令牌一同过期
	tokens := NewTokenService(testSecret, 50*time.Millisecond)
	bl := NewBlacklist(tokens)

	token, err := tokens.Issue(1, "user", "alice")
	require.NoError(t, err)
	require.True(t, bl.Add(token))

	time.Sleep(80 * time.Millisecond)
	assert.False(t, bl.Contains(token))
}

func TestBlacklistCleanupExpired(t *testing.T) {
	tokens := NewTokenService(testSecret, 50*time.Millisecond)
	bl := NewBlacklist(tokens)

	token, err := tokens.Issue(1, "user", "alice")
	require.NoError(t, err)
	require.True(t, bl.Add(token))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, bl.CleanupExpired())
	assert.Equal(t, 0, bl.Len())

	// 无可清理时返回 0
	assert.Equal(t, 0, bl.CleanupExpired())
}
