package model

import (
	"time"
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" gorm:"unique"`
	Username     string    `json:"username" db:"username" gorm:"unique"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role" gorm:"default:user"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PasswordReset 密码重置验证码
// 有效期由查询层强制（创建时间超过 TTL 的记录视为不存在），
// 清理任务定期物理删除过期行
type PasswordReset struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email" gorm:"index"`
	Code      string    `json:"-" db:"code"`
	Type      string    `json:"type" db:"type" gorm:"default:password_reset"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
