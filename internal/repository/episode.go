package repository

import (
	"errors"

	"github.com/user/streamflix/internal/model"
	"gorm.io/gorm"
)

type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// Create 创建剧集
// (movie_id, episode_number) 冲突时返回 gorm.ErrDuplicatedKey
func (r *EpisodeRepository) Create(episode *model.Episode) error {
	return r.db.Create(episode).Error
}

// FindByID 根据 ID 查找剧集
func (r *EpisodeRepository) FindByID(id int) (*model.Episode, error) {
	var episode model.Episode
	err := r.db.First(&episode, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

// FindByNumber 查找某影片指定集数的剧集
func (r *EpisodeRepository) FindByNumber(movieID, episodeNumber int) (*model.Episode, error) {
	var episode model.Episode
	err := r.db.Where("movie_id = ? AND episode_number = ?", movieID, episodeNumber).First(&episode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &episode, nil
}

// ListByMovie 获取某影片的剧集列表（按集数排序）
func (r *EpisodeRepository) ListByMovie(movieID, limit, offset int) ([]*model.Episode, error) {
	var episodes []*model.Episode
	err := r.db.Where("movie_id = ?", movieID).
		Order("episode_number ASC").
		Limit(limit).
		Offset(offset).
		Find(&episodes).Error
	return episodes, err
}

// CountByMovie 统计某影片的剧集数量
func (r *EpisodeRepository) CountByMovie(movieID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Episode{}).Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}

// Update 更新剧集
func (r *EpisodeRepository) Update(episode *model.Episode) error {
	return r.db.Omit("created_at").Save(episode).Error
}

// Delete 删除剧集
func (r *EpisodeRepository) Delete(id int) error {
	return r.db.Delete(&model.Episode{}, id).Error
}

// DeleteByMovie 删除某影片的全部剧集
func (r *EpisodeRepository) DeleteByMovie(movieID int) error {
	return r.db.Where("movie_id = ?", movieID).Delete(&model.Episode{}).Error
}
