package repository

import (
	"errors"
	"time"

	"github.com/user/streamflix/internal/model"
	"gorm.io/gorm"
)

// ResetRepository 密码重置验证码仓库
// TTL 在查询层强制：创建时间超过 ttl 的记录一律视为不存在，
// 物理删除由清理任务兜底
type ResetRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewResetRepository(db *gorm.DB) *ResetRepository {
	return &ResetRepository{db: db, ttl: 10 * time.Minute}
}

// SetTTL 设置验证码有效期
func (r *ResetRepository) SetTTL(ttl time.Duration) {
	r.ttl = ttl
}

// TTL 获取验证码有效期
func (r *ResetRepository) TTL() time.Duration {
	return r.ttl
}

// Create 创建验证码记录
func (r *ResetRepository) Create(email, code string) (*model.PasswordReset, error) {
	record := &model.PasswordReset{
		Email:     email,
		Code:      code,
		Type:      "password_reset",
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindValid 查找未过期的 (邮箱, 验证码) 精确匹配记录
func (r *ResetRepository) FindValid(email, code string) (*model.PasswordReset, error) {
	var record model.PasswordReset
	cutoff := time.Now().Add(-r.ttl)
	err := r.db.Where("email = ? AND code = ? AND created_at > ?", email, code, cutoff).
		Order("created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteByEmail 删除某邮箱的全部验证码记录
func (r *ResetRepository) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&model.PasswordReset{}).Error
}

// DeleteExpired 物理删除已过期的记录，返回删除数量
func (r *ResetRepository) DeleteExpired() (int64, error) {
	cutoff := time.Now().Add(-r.ttl)
	result := r.db.Where("created_at <= ?", cutoff).Delete(&model.PasswordReset{})
	return result.RowsAffected, result.Error
}
