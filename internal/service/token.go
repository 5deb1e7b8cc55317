package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims JWT 声明
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// VerifyFailure 令牌校验失败类型
type VerifyFailure int

const (
	FailureNone        VerifyFailure = iota // 校验通过
	FailureMalformed                        // 格式错误或签名无效
	FailureExpired                          // 已过期
	FailureNotYetValid                      // 尚未生效
)

// VerifyResult 令牌校验结果
// 失败以标记结果返回，由 HTTP 层映射为状态码
type VerifyResult struct {
	Valid   bool
	Claims  *Claims
	Failure VerifyFailure
}

// TokenService 令牌签发与校验
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService 创建令牌服务
func NewTokenService(secret string, validity time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Validity 获取令牌有效期
func (s *TokenService) Validity() time.Duration {
	return s.validity
}

// Issue 签发令牌
func (s *TokenService) Issue(userID int, role, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify 校验令牌签名与有效期
// 即使签名库已校验过期时间，这里仍用墙上时钟二次确认，
// 使过期判定独立于库行为、可单独测试
func (s *TokenService) Verify(tokenStr string) VerifyResult {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, s.keyFunc)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return VerifyResult{Failure: FailureExpired}
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			return VerifyResult{Failure: FailureNotYetValid}
		default:
			return VerifyResult{Failure: FailureMalformed}
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return VerifyResult{Failure: FailureMalformed}
	}

	now := time.Now()
	if claims.ExpiresAt == nil || !now.Before(claims.ExpiresAt.Time) {
		return VerifyResult{Failure: FailureExpired}
	}
	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return VerifyResult{Failure: FailureNotYetValid}
	}

	return VerifyResult{Valid: true, Claims: claims, Failure: FailureNone}
}

// DecodeIgnoringExpiry 只校验签名、忽略有效期地解码令牌
// 供刷新流程和黑名单使用：二者都需要读取已过期令牌的声明
func (s *TokenService) DecodeIgnoringExpiry(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, s.keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("无效的令牌声明")
	}
	return claims, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("不支持的签名算法: %v", token.Header["alg"])
	}
	return s.secret, nil
}
