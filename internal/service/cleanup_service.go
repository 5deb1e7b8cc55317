package service

import (
	"log"
	"time"
)

// ExpiredDeleter 可清理过期记录的存储
type ExpiredDeleter interface {
	DeleteExpired() (int64, error)
}

// CleanupService 清理服务
// 定期物理删除过期的重置验证码行，并兜底清扫黑名单
type CleanupService struct {
	resets    ExpiredDeleter
	blacklist *Blacklist
	interval  time.Duration
}

// NewCleanupService 创建清理服务
func NewCleanupService(resets ExpiredDeleter, blacklist *Blacklist, interval time.Duration) *CleanupService {
	return &CleanupService{
		resets:    resets,
		blacklist: blacklist,
		interval:  interval,
	}
}

// Start 启动定时清理任务
func (s *CleanupService) Start() {
	ticker := time.NewTicker(s.interval)

	// 启动时先运行一次
	go s.runCleanup()

	go func() {
		for range ticker.C {
			s.runCleanup()
		}
	}()
}

func (s *CleanupService) runCleanup() {
	// 1. 物理删除过期的重置验证码
	// 过期判定已在查询层强制，这里只是回收存储
	affected, err := s.resets.DeleteExpired()
	if err != nil {
		log.Printf("[CleanupService] 清理过期验证码失败: %v", err)
	} else if affected > 0 {
		log.Printf("[CleanupService] 已清理 %d 条过期验证码", affected)
	}

	// 2. 兜底清扫黑名单中已自然过期的令牌
	if removed := s.blacklist.CleanupExpired(); removed > 0 {
		log.Printf("[CleanupService] 已清理 %d 条过期黑名单条目", removed)
	}
}
