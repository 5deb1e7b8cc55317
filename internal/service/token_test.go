package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// signToken 用指定声明直接签发令牌，便于构造各种时间状态
func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

// claimsAt 构造指定签发/过期时间的声明
func claimsAt(userID int, role, username string, issuedAt, expiresAt time.Time) *Claims {
	return &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)

	token, err := svc.Issue(42, "admin", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	result := svc.Verify(token)
	require.True(t, result.Valid)
	assert.Equal(t, FailureNone, result.Failure)
	assert.Equal(t, 42, result.Claims.UserID)
	assert.Equal(t, "admin", result.Claims.Role)
	assert.Equal(t, "alice", result.Claims.Username)

	// 有效期 = 签发时间 + validity
	issued := result.Claims.IssuedAt.Time
	expires := result.Claims.ExpiresAt.Time
	assert.Equal(t, 24*time.Hour, expires.Sub(issued))
}

func TestVerifyExpired(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)

	// 过期任意 ε > 0 都必须判为 Expired
	now := time.Now()
	token := signToken(t, testSecret, claimsAt(1, "user", "bob", now.Add(-25*time.Hour), now.Add(-time.Second)))

	result := svc.Verify(token)
	assert.False(t, result.Valid)
	assert.Equal(t, FailureExpired, result.Failure)
	assert.Nil(t, result.Claims)
}

func TestVerifyNotYetValid(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)

	now := time.Now()
	claims := claimsAt(1, "user", "bob", now, now.Add(24*time.Hour))
	claims.NotBefore = jwt.NewNumericDate(now.Add(time.Hour))
	token := signToken(t, testSecret, claims)

	result := svc.Verify(token)
	assert.False(t, result.Valid)
	assert.Equal(t, FailureNotYetValid, result.Failure)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		result := svc.Verify(token)
		assert.False(t, result.Valid)
		assert.Equal(t, FailureMalformed, result.Failure)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)

	now := time.Now()
	token := signToken(t, "other-secret", claimsAt(1, "user", "bob", now, now.Add(time.Hour)))

	result := svc.Verify(token)
	assert.False(t, result.Valid)
	assert.Equal(t, FailureMalformed, result.Failure)
}

func TestDecodeIgnoringExpiry(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)

	// 已过期的令牌仍可解码出声明
	now := time.Now()
	token := signToken(t, testSecret, claimsAt(7, "user", "carol", now.Add(-48*time.Hour), now.Add(-24*time.Hour)))

	claims, err := svc.DecodeIgnoringExpiry(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "carol", claims.Username)

	// 但签名仍然必须有效
	bad := signToken(t, "other-secret", claimsAt(7, "user", "carol", now, now.Add(time.Hour)))
	_, err = svc.DecodeIgnoringExpiry(bad)
	assert.Error(t, err)
}
