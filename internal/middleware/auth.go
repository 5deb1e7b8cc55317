package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/service"
	"github.com/user/streamflix/internal/utils"
)

// 认证相关错误码，客户端据此决定补救方式
// （过期可静默刷新，签名无效必须重新登录）
const (
	CodeMissingToken  = "MISSING_TOKEN"
	CodeTokenExpired  = "TOKEN_EXPIRED"
	CodeInvalidToken  = "INVALID_TOKEN"
	CodeTokenRevoked  = "TOKEN_REVOKED"
	CodeAdminRequired = "ADMIN_REQUIRED"
)

// RequireAuth 必须登录中间件
// 校验顺序：有无令牌 → 黑名单 → 签名与有效期
func RequireAuth(tokens *service.TokenService, blacklist *service.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ExtractToken(c)
		if tokenStr == "" {
			utils.AuthError(c, http.StatusUnauthorized, CodeMissingToken, "缺少认证令牌")
			c.Abort()
			return
		}

		// 已登出的令牌即使签名和有效期都通过也要拒绝
		if blacklist.Contains(tokenStr) {
			utils.AuthError(c, http.StatusUnauthorized, CodeTokenRevoked, "令牌已失效，请重新登录")
			c.Abort()
			return
		}

		result := tokens.Verify(tokenStr)
		if !result.Valid {
			switch result.Failure {
			case service.FailureExpired:
				utils.AuthError(c, http.StatusUnauthorized, CodeTokenExpired, "令牌已过期")
			default:
				// 格式错误、签名无效、尚未生效：一律按无效处理
				utils.AuthError(c, http.StatusForbidden, CodeInvalidToken, "令牌无效")
			}
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set("user_id", result.Claims.UserID)
		c.Set("username", result.Claims.Username)
		c.Set("role", result.Claims.Role)
		c.Set("token", tokenStr)
		c.Set("claims", result.Claims)

		c.Next()
	}
}

// RequireAdmin 管理员权限中间件，必须在 RequireAuth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			utils.AuthError(c, http.StatusForbidden, CodeAdminRequired, "需要管理员权限")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ExtractToken 从 Authorization Header 中提取 Bearer 令牌
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) int {
	if userID, exists := c.Get("user_id"); exists {
		return userID.(int)
	}
	return 0
}

// GetUsername 从上下文获取用户名
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get("username"); exists {
		return username.(string)
	}
	return ""
}

// GetRole 从上下文获取角色
func GetRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		return role.(string)
	}
	return ""
}

// GetClaims 从上下文获取完整令牌声明（未登录返回 nil）
func GetClaims(c *gin.Context) *service.Claims {
	if claims, exists := c.Get("claims"); exists {
		return claims.(*service.Claims)
	}
	return nil
}
