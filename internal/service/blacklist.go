package service

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Blacklist 令牌黑名单
// 登出时显式作废仍在有效期内的令牌；条目在令牌自然过期时自动移除
// （过期后签名校验本身就会拒绝，保留无益）。
// 仅存在于进程内存：重启即清空，被拉黑但尚未过期的令牌会重新生效。
// 这是已知且接受的限制，不是缺陷。
//
// go-cache 内部加锁，可被多个并发请求安全读写；
// janitor 定期清扫，CleanupExpired 作为兜底手动清扫。
type Blacklist struct {
	tokens  *TokenService
	entries *cache.Cache
}

// NewBlacklist 创建黑名单
func NewBlacklist(tokens *TokenService) *Blacklist {
	return &Blacklist{
		tokens: tokens,
		// 过期时间逐条设置，janitor 每 10 分钟清扫一次
		entries: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

// Add 将令牌加入黑名单
// 解码失败或令牌已自然过期时不插入，返回 false；
// 已在黑名单中也返回 false
func (b *Blacklist) Add(token string) bool {
	claims, err := b.tokens.DecodeIgnoringExpiry(token)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return false
	}

	if err := b.entries.Add(token, struct{}{}, ttl); err != nil {
		return false
	}
	return true
}

// Contains 检查令牌是否在黑名单中，O(1)
func (b *Blacklist) Contains(token string) bool {
	_, found := b.entries.Get(token)
	return found
}

// CleanupExpired 手动清扫已过期条目，返回移除数量
// janitor 未及时触发时的兜底
func (b *Blacklist) CleanupExpired() int {
	before := b.entries.ItemCount()
	b.entries.DeleteExpired()
	return before - b.entries.ItemCount()
}

// Len 当前条目数（可能包含已过期但尚未清扫的条目）
func (b *Blacklist) Len() int {
	return b.entries.ItemCount()
}
