package model

import (
	"time"
)

// Favorite 收藏
type Favorite struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_favorite"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_favorite"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Movie     *Movie    `json:"movie,omitempty"` // 关联查询时填充
}

// WatchHistory 观影历史
// 同一用户对同一 (影片, 剧集) 只保留一条记录，重复观看时更新时间
type WatchHistory struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:idx_user_history"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_user_history"`
	EpisodeID int       `json:"episode_id" db:"episode_id" gorm:"uniqueIndex:idx_user_history"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Movie     *Movie    `json:"movie,omitempty"` // 关联查询时填充
}
