package repository

import (
	"errors"

	"github.com/user/streamflix/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 创建影片
func (r *MovieRepository) Create(movie *model.Movie) error {
	return r.db.Create(movie).Error
}

// FindByID 根据 ID 查找影片（带分类）
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Preload("Genres").First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// List 分页获取影片列表
func (r *MovieRepository) List(limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Preload("Genres").
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&movies).Error
	return movies, err
}

// ListByType 按类型分页获取影片列表
func (r *MovieRepository) ListByType(movieType string, limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Preload("Genres").
		Where("type = ?", movieType).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&movies).Error
	return movies, err
}

// Search 标题子串搜索（不区分大小写）
func (r *MovieRepository) Search(keyword string, limit, offset int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Preload("Genres").
		Where("title ILIKE ?", "%"+keyword+"%").
		Order("view_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&movies).Error
	return movies, err
}

// CountSearch 统计搜索结果数量
func (r *MovieRepository) CountSearch(keyword string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("title ILIKE ?", "%"+keyword+"%").Count(&count).Error
	return count, err
}

// Top 按播放量获取影片排行
func (r *MovieRepository) Top(limit int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Preload("Genres").
		Order("view_count DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// TopByType 按类型获取播放量排行
func (r *MovieRepository) TopByType(movieType string, limit int) ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Preload("Genres").
		Where("type = ?", movieType).
		Order("view_count DESC").
		Limit(limit).
		Find(&movies).Error
	return movies, err
}

// Random 随机获取一部影片
func (r *MovieRepository) Random() (*model.Movie, error) {
	var movie model.Movie
	err := r.db.Preload("Genres").Order("RANDOM()").First(&movie).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// Update 更新影片
func (r *MovieRepository) Update(movie *model.Movie) error {
	// 先替换分类关联，再保存其余字段
	if err := r.db.Model(movie).Association("Genres").Replace(movie.Genres); err != nil {
		return err
	}
	return r.db.Omit("Genres", "created_at").Save(movie).Error
}

// Delete 删除影片
func (r *MovieRepository) Delete(id int) error {
	return r.db.Delete(&model.Movie{}, id).Error
}

// IncrementViewCount 播放量 +1
// 使用单条 SQL 自增，依赖数据库自身的原子更新
func (r *MovieRepository) IncrementViewCount(id int) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Count 获取影片总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// CountByType 按类型统计影片数量
func (r *MovieRepository) CountByType(movieType string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("type = ?", movieType).Count(&count).Error
	return count, err
}
