package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAudit 记录审计事件供断言
type fakeAudit struct {
	events []string
	fields []map[string]interface{}
}

func (f *fakeAudit) Log(event string, fields map[string]interface{}) {
	f.events = append(f.events, event)
	f.fields = append(f.fields, fields)
}

func newRefreshFixture() (*TokenService, *RefreshService, *fakeAudit) {
	tokens := NewTokenService(testSecret, 24*time.Hour)
	audit := &fakeAudit{}
	refresh := NewRefreshService(tokens, 24*time.Hour, audit)
	return tokens, refresh, audit
}

func TestRefreshFreshToken(t *testing.T) {
	tokens, refresh, audit := newRefreshFixture()

	// 未过期的令牌也允许预防性续期
	old, err := tokens.Issue(5, "user", "dave")
	require.NoError(t, err)

	newToken, claims, err := refresh.Refresh(old, time.Now(), RefreshMeta{ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, 5, claims.UserID)

	// 新令牌必须有效且身份不变
	result := tokens.Verify(newToken)
	require.True(t, result.Valid)
	assert.Equal(t, 5, result.Claims.UserID)
	assert.Equal(t, "user", result.Claims.Role)
	assert.Equal(t, "dave", result.Claims.Username)

	require.Len(t, audit.events, 1)
	assert.Equal(t, "token_refreshed", audit.events[0])
	assert.Equal(t, "10.0.0.1", audit.fields[0]["client_ip"])
}

func TestRefreshWithinGrace(t *testing.T) {
	tokens, refresh, _ := newRefreshFixture()

	now := time.Now()
	expired := signToken(t, testSecret, claimsAt(5, "user", "dave",
		now.Add(-47*time.Hour), now.Add(-23*time.Hour-59*time.Minute)))

	newToken, claims, err := refresh.Refresh(expired, now, RefreshMeta{})
	require.NoError(t, err)
	assert.Equal(t, 5, claims.UserID)
	assert.True(t, tokens.Verify(newToken).Valid)
}

func TestRefreshExactlyAtGraceBoundary(t *testing.T) {
	_, refresh, _ := newRefreshFixture()

	// 恰好过期 24h 整：仍允许刷新（age > grace 才拒绝）
	now := time.Now()
	token := signToken(t, testSecret, claimsAt(5, "user", "dave",
		now.Add(-48*time.Hour), now.Add(-24*time.Hour)))

	_, _, err := refresh.Refresh(token, now, RefreshMeta{})
	assert.NoError(t, err)
}

func TestRefreshBeyondGrace(t *testing.T) {
	_, refresh, audit := newRefreshFixture()

	now := time.Now()
	token := signToken(t, testSecret, claimsAt(5, "user", "dave",
		now.Add(-49*time.Hour), now.Add(-24*time.Hour-time.Second)))

	_, _, err := refresh.Refresh(token, now, RefreshMeta{})
	assert.ErrorIs(t, err, ErrExpiredTooLong)
	assert.Empty(t, audit.events)
}

func TestRefreshInvalidToken(t *testing.T) {
	_, refresh, _ := newRefreshFixture()
	now := time.Now()

	// 乱码
	_, _, err := refresh.Refresh("not-a-token", now, RefreshMeta{})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 他人密钥签发的令牌
	forged := signToken(t, "other-secret", claimsAt(5, "user", "dave", now, now.Add(time.Hour)))
	_, _, err = refresh.Refresh(forged, now, RefreshMeta{})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStatusThresholds(t *testing.T) {
	_, refresh, _ := newRefreshFixture()
	now := time.Now()

	cases := []struct {
		name     string
		timeLeft time.Duration
		want     string
	}{
		{"充足", 2 * time.Hour, "valid"},
		{"一小时内", 50 * time.Minute, "expires_within_hour"},
		{"即将过期", 20 * time.Minute, "expires_soon"},
		{"非常紧急", 10 * time.Minute, "expires_very_soon"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims := claimsAt(1, "user", "bob", now.Add(tc.timeLeft-24*time.Hour), now.Add(tc.timeLeft))
			status, left, recommendation := refresh.Status(claims, now)
			assert.Equal(t, tc.want, status)
			assert.InDelta(t, tc.timeLeft.Seconds(), left.Seconds(), 1)
			assert.NotEmpty(t, recommendation)
		})
	}
}
