package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/middleware"
	"github.com/user/streamflix/internal/service"
	"github.com/user/streamflix/internal/utils"
	"gorm.io/gorm"
)

// 刷新流程专用错误码
const codeExpiredTooLong = "TOKEN_EXPIRED_TOO_LONG"

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.Repos.User.Create(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "用户名或邮箱已被注册")
			return
		}
		log.Printf("[Auth] 注册失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.Audit.Log("user_registered", map[string]interface{}{
		"user_id":   user.ID,
		"username":  user.Username,
		"client_ip": c.ClientIP(),
	})

	utils.Created(c, "注册成功", gin.H{"id": user.ID, "username": user.Username})
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.Repos.User.FindByUsername(req.Username)
	if err != nil {
		log.Printf("[Auth] 查询用户失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	// 用户不存在和密码错误返回同样的信息，避免暴露账号是否存在
	if user == nil || !h.Repos.User.CheckPassword(user, req.Password) {
		utils.Error(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Role, user.Username)
	if err != nil {
		log.Printf("[Auth] 签发令牌失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.Audit.Log("user_login", map[string]interface{}{
		"user_id":    user.ID,
		"username":   user.Username,
		"client_ip":  c.ClientIP(),
		"user_agent": c.Request.UserAgent(),
	})

	utils.Success(c, gin.H{"token": token})
}

// ForgotPassword 申请密码重置验证码
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请提供有效的邮箱地址")
		return
	}

	maskedEmail, err := h.Reset.Request(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			utils.NotFound(c, "邮箱未注册")
		case errors.Is(err, service.ErrDeliveryFailed):
			utils.InternalServerError(c, "邮件发送失败，请稍后重试")
		default:
			log.Printf("[Auth] 申请重置验证码失败: %v", err)
			utils.InternalServerError(c, "")
		}
		return
	}

	utils.SuccessWithMessage(c, "验证码已发送", gin.H{"maskedEmail": maskedEmail})
}

// VerifyResetCode 校验重置验证码（不消耗）
func (h *Handler) VerifyResetCode(c *gin.Context) {
	var req verifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	valid, timeLeft, err := h.Reset.Probe(req.Email, req.Code)
	if err != nil {
		log.Printf("[Auth] 校验重置验证码失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	data := gin.H{"valid": valid}
	if valid {
		data["timeLeftMs"] = timeLeft.Milliseconds()
	}
	utils.Success(c, data)
}

// ResetPassword 消耗验证码并重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	if err := h.Reset.Consume(req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			utils.BadRequest(c, "验证码无效或已过期")
		case errors.Is(err, service.ErrUpdateFailed):
			utils.NotFound(c, "密码更新失败")
		default:
			log.Printf("[Auth] 重置密码失败: %v", err)
			utils.InternalServerError(c, "")
		}
		return
	}

	utils.SuccessWithMessage(c, "密码重置成功", nil)
}

// RefreshToken 刷新令牌
// 接受已过期但在宽限期内的令牌，换发同身份的新令牌
func (h *Handler) RefreshToken(c *gin.Context) {
	tokenStr := middleware.ExtractToken(c)
	if tokenStr == "" {
		utils.AuthError(c, http.StatusUnauthorized, middleware.CodeMissingToken, "缺少认证令牌")
		return
	}

	meta := service.RefreshMeta{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	newToken, claims, err := h.Refresh.Refresh(tokenStr, time.Now(), meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpiredTooLong):
			utils.AuthError(c, http.StatusUnauthorized, codeExpiredTooLong, "令牌过期时间过长，请重新登录")
		case errors.Is(err, service.ErrInvalidToken):
			utils.AuthError(c, http.StatusForbidden, middleware.CodeInvalidToken, "令牌无效")
		default:
			log.Printf("[Auth] 刷新令牌失败: %v", err)
			utils.InternalServerError(c, "")
		}
		return
	}

	utils.Success(c, gin.H{
		"token": newToken,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
			"role":     claims.Role,
		},
	})
}

// TokenStatus 查询令牌剩余有效期分级
func (h *Handler) TokenStatus(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		utils.AuthError(c, http.StatusUnauthorized, middleware.CodeMissingToken, "缺少认证令牌")
		return
	}

	status, timeUntilExpiry, recommendation := h.Refresh.Status(claims, time.Now())
	utils.Success(c, gin.H{
		"status":          status,
		"timeUntilExpiry": int64(timeUntilExpiry.Seconds()),
		"recommendation":  recommendation,
	})
}

// Logout 登出，将当前令牌加入黑名单
func (h *Handler) Logout(c *gin.Context) {
	tokenStr, _ := c.Get("token")
	token, _ := tokenStr.(string)

	inserted := h.Blacklist.Add(token)

	h.Audit.Log("user_logout", map[string]interface{}{
		"user_id":     middleware.GetUserID(c),
		"username":    middleware.GetUsername(c),
		"client_ip":   c.ClientIP(),
		"blacklisted": inserted,
	})

	utils.SuccessWithMessage(c, "已退出登录", nil)
}
