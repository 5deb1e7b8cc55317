package service

import (
	"io"

	"github.com/rs/zerolog"
)

// AuditLogger 安全审计日志
// 以接口注入，核心逻辑无需文件系统即可测试
type AuditLogger interface {
	Log(event string, fields map[string]interface{})
}

// ZerologAudit 基于 zerolog 的审计日志实现
type ZerologAudit struct {
	logger zerolog.Logger
}

// NewAuditLogger 创建审计日志
func NewAuditLogger(w io.Writer) *ZerologAudit {
	return &ZerologAudit{
		logger: zerolog.New(w).With().Timestamp().Str("category", "security").Logger(),
	}
}

// Log 记录一条审计事件
func (a *ZerologAudit) Log(event string, fields map[string]interface{}) {
	a.logger.Info().Fields(fields).Msg(event)
}

// NopAudit 空实现，用于测试
type NopAudit struct{}

func (NopAudit) Log(event string, fields map[string]interface{}) {}
