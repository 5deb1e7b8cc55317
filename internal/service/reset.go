package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/user/streamflix/internal/model"
)

var (
	// ErrEmailNotFound 邮箱未注册
	ErrEmailNotFound = errors.New("邮箱未注册")
	// ErrDeliveryFailed 邮件发送失败
	ErrDeliveryFailed = errors.New("邮件发送失败")
	// ErrInvalidCode 验证码无效或已过期
	ErrInvalidCode = errors.New("验证码无效或已过期")
	// ErrUpdateFailed 密码更新失败
	ErrUpdateFailed = errors.New("密码更新失败")
)

// ResetUserStore 重置流程需要的用户存储能力
type ResetUserStore interface {
	FindByEmail(email string) (*model.User, error)
	UpdatePasswordByEmail(email, newPassword string) (int64, error)
}

// ResetCodeStore 验证码存储
// 过期由存储层在查询时强制，流程本身不做后台扫描
type ResetCodeStore interface {
	Create(email, code string) (*model.PasswordReset, error)
	FindValid(email, code string) (*model.PasswordReset, error)
	DeleteByEmail(email string) error
	TTL() time.Duration
}

// Mailer 邮件发送
type Mailer interface {
	SendResetCode(toEmail, code string, ttl time.Duration) error
}

// ResetService 密码重置流程
// 每个邮箱同一时刻至多一个有效验证码：签发新码前删除所有旧码
type ResetService struct {
	users  ResetUserStore
	codes  ResetCodeStore
	mailer Mailer
	audit  AuditLogger
}

// NewResetService 创建密码重置服务
func NewResetService(users ResetUserStore, codes ResetCodeStore, mailer Mailer, audit AuditLogger) *ResetService {
	return &ResetService{
		users:  users,
		codes:  codes,
		mailer: mailer,
		audit:  audit,
	}
}

// Request 申请重置验证码
// 生成 6 位随机数字验证码，作废该邮箱全部旧码后持久化新码并发送邮件。
// 返回打码后的邮箱用于前端展示
func (s *ResetService) Request(email string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrEmailNotFound
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	// 单邮箱单有效码：新码签发前删除所有旧码
	if err := s.codes.DeleteByEmail(email); err != nil {
		return "", err
	}
	if _, err := s.codes.Create(email, code); err != nil {
		return "", err
	}

	// 邮件发送失败以统一的 DeliveryFailed 暴露，不影响状态机
	if err := s.mailer.SendResetCode(email, code, s.codes.TTL()); err != nil {
		return "", ErrDeliveryFailed
	}

	s.audit.Log("reset_code_requested", map[string]interface{}{
		"user_id": user.ID,
		"email":   MaskEmail(email),
	})

	return MaskEmail(email), nil
}

// Probe 校验验证码是否有效（不消耗）
// 返回是否有效及剩余有效时间
func (s *ResetService) Probe(email, code string) (bool, time.Duration, error) {
	record, err := s.codes.FindValid(email, code)
	if err != nil {
		return false, 0, err
	}
	if record == nil {
		return false, 0, nil
	}

	timeLeft := s.codes.TTL() - time.Since(record.CreatedAt)
	if timeLeft < 0 {
		timeLeft = 0
	}
	return true, timeLeft, nil
}

// Consume 消耗验证码并重置密码
// 成功后删除该邮箱的全部验证码（不只被消耗的这条），
// 强制作废其他尚未使用的码
func (s *ResetService) Consume(email, code, newPassword string) error {
	record, err := s.codes.FindValid(email, code)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrInvalidCode
	}

	affected, err := s.users.UpdatePasswordByEmail(email, newPassword)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUpdateFailed
	}

	if err := s.codes.DeleteByEmail(email); err != nil {
		return err
	}

	s.audit.Log("password_reset", map[string]interface{}{
		"email": MaskEmail(email),
	})

	return nil
}

// generateCode 生成 [100000, 999999] 区间内均匀分布的验证码
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// MaskEmail 邮箱打码，如 alice@example.com → a***e@example.com
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	local := email[:at]
	if len(local) <= 2 {
		return local[:1] + "***" + email[at:]
	}
	return local[:1] + "***" + local[len(local)-1:] + email[at:]
}
