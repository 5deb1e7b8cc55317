package service

import (
	"errors"
	"time"
)

var (
	// ErrInvalidToken 签名无效或格式错误，无条件拒绝
	ErrInvalidToken = errors.New("令牌无效")
	// ErrExpiredTooLong 过期超出宽限期，必须重新登录
	ErrExpiredTooLong = errors.New("令牌过期时间过长")
)

// 令牌临近过期的状态阈值
const (
	statusThresholdHour     = 3600 * time.Second
	statusThresholdSoon     = 1800 * time.Second
	statusThresholdVerySoon = 900 * time.Second
)

// RefreshMeta 刷新请求的审计信息
type RefreshMeta struct {
	ClientIP  string
	UserAgent string
}

// RefreshService 令牌刷新策略
// 已过期但未超出宽限期的令牌可静默换发新令牌；
// 宽限期为 24 小时意味着一个令牌实际最长可用 48 小时，
// 这是源设计中刻意的安全/易用性取舍，不是疏漏
type RefreshService struct {
	tokens *TokenService
	grace  time.Duration
	audit  AuditLogger
}

// NewRefreshService 创建刷新服务
func NewRefreshService(tokens *TokenService, grace time.Duration, audit AuditLogger) *RefreshService {
	return &RefreshService{
		tokens: tokens,
		grace:  grace,
		audit:  audit,
	}
}

// Refresh 尝试用旧令牌换发新令牌
// 规则：
//   - 签名无效/格式错误 → ErrInvalidToken
//   - 未过期 → 允许换发（用于临近过期的预防性续期）
//   - 过期且 age <= 宽限期 → 换发同身份、全新有效期的令牌
//   - 过期且 age > 宽限期 → ErrExpiredTooLong
//
// 边界：恰好过期 24h00m00s 是允许刷新的最后时刻
func (s *RefreshService) Refresh(tokenStr string, now time.Time, meta RefreshMeta) (string, *Claims, error) {
	claims, err := s.tokens.DecodeIgnoringExpiry(tokenStr)
	if err != nil {
		return "", nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return "", nil, ErrInvalidToken
	}

	if age := now.Sub(claims.ExpiresAt.Time); age > s.grace {
		return "", nil, ErrExpiredTooLong
	}

	newToken, err := s.tokens.Issue(claims.UserID, claims.Role, claims.Username)
	if err != nil {
		return "", nil, err
	}

	s.audit.Log("token_refreshed", map[string]interface{}{
		"user_id":    claims.UserID,
		"username":   claims.Username,
		"client_ip":  meta.ClientIP,
		"user_agent": meta.UserAgent,
	})

	return newToken, claims, nil
}

// Status 根据剩余有效期对令牌分级
// 阈值：3600s / 1800s / 900s
func (s *RefreshService) Status(claims *Claims, now time.Time) (status string, timeUntilExpiry time.Duration, recommendation string) {
	timeUntilExpiry = claims.ExpiresAt.Time.Sub(now)

	switch {
	case timeUntilExpiry <= statusThresholdVerySoon:
		return "expires_very_soon", timeUntilExpiry, "立即刷新令牌"
	case timeUntilExpiry <= statusThresholdSoon:
		return "expires_soon", timeUntilExpiry, "建议尽快刷新令牌"
	case timeUntilExpiry <= statusThresholdHour:
		return "expires_within_hour", timeUntilExpiry, "可以开始刷新令牌"
	default:
		return "valid", timeUntilExpiry, "无需操作"
	}
}
