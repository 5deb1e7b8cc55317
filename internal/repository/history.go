package repository

import (
	"time"

	"github.com/user/streamflix/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Upsert 更新或插入观影记录
func (r *HistoryRepository) Upsert(h *model.WatchHistory) error {
	if h.UpdatedAt.IsZero() {
		h.UpdatedAt = time.Now()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}, {Name: "episode_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(h).Error
}

// ListByUser 获取用户观影历史（按最近观看排序）
func (r *HistoryRepository) ListByUser(userID, limit, offset int) ([]*model.WatchHistory, error) {
	var histories []*model.WatchHistory
	err := r.db.Preload("Movie").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&histories).Error
	return histories, err
}

// CountByUser 统计用户观影历史数量
func (r *HistoryRepository) CountByUser(userID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.WatchHistory{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ClearByUser 清空用户观影历史
func (r *HistoryRepository) ClearByUser(userID int) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.WatchHistory{}).Error
}
