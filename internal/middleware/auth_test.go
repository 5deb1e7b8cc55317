package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/streamflix/internal/service"
)

const testSecret = "test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, *service.TokenService, *service.Blacklist) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := service.NewTokenService(testSecret, time.Hour)
	blacklist := service.NewBlacklist(tokens)

	r := gin.New()
	r.GET("/protected", RequireAuth(tokens, blacklist), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"username": GetUsername(c),
			"role":     GetRole(c),
		})
	})
	r.GET("/admin-only", RequireAuth(tokens, blacklist), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, tokens, blacklist
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestRequireAuthMissingToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := doRequest(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeMissingToken, errorCode(t, w))

	// 非 Bearer 格式同样视为缺少令牌
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeMissingToken, errorCode(t, w))
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	w := doRequest(r, "/protected", "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, CodeInvalidToken, errorCode(t, w))
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	now := time.Now()
	claims := &service.Claims{
		UserID:   1,
		Username: "alice",
		Role:     "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeTokenExpired, errorCode(t, w))
}

func TestRequireAuthValidToken(t *testing.T) {
	r, tokens, _ := newAuthRouter(t)

	token, err := tokens.Issue(42, "user", "alice")
	require.NoError(t, err)

	w := doRequest(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 42, body["user_id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "user", body["role"])
}

func TestRequireAuthBlacklistedToken(t *testing.T) {
	r, tokens, blacklist := newAuthRouter(t)

	token, err := tokens.Issue(1, "user", "alice")
	require.NoError(t, err)
	require.True(t, blacklist.Add(token))

	// 签名与有效期都通过，但已被拉黑
	w := doRequest(r, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeTokenRevoked, errorCode(t, w))
}

func TestRequireAdmin(t *testing.T) {
	r, tokens, _ := newAuthRouter(t)

	userToken, err := tokens.Issue(1, "user", "alice")
	require.NoError(t, err)
	adminToken, err := tokens.Issue(2, "admin", "boss")
	require.NoError(t, err)

	w := doRequest(r, "/admin-only", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, CodeAdminRequired, errorCode(t, w))

	w = doRequest(r, "/admin-only", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
