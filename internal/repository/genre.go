package repository

import (
	"errors"

	"github.com/user/streamflix/internal/model"
	"gorm.io/gorm"
)

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// Create 创建分类
func (r *GenreRepository) Create(genre *model.Genre) error {
	return r.db.Create(genre).Error
}

// FindByID 根据 ID 查找分类
func (r *GenreRepository) FindByID(id int) (*model.Genre, error) {
	var genre model.Genre
	err := r.db.First(&genre, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindByIDs 根据 ID 列表批量查找分类
func (r *GenreRepository) FindByIDs(ids []int) ([]model.Genre, error) {
	var genres []model.Genre
	err := r.db.Where("id IN ?", ids).Find(&genres).Error
	return genres, err
}

// ListAll 获取全部分类
func (r *GenreRepository) ListAll() ([]*model.Genre, error) {
	var genres []*model.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

// Update 更新分类名称
func (r *GenreRepository) Update(id int, name string) error {
	return r.db.Model(&model.Genre{}).Where("id = ?", id).Update("name", name).Error
}

// Delete 删除分类
func (r *GenreRepository) Delete(id int) error {
	return r.db.Delete(&model.Genre{}, id).Error
}
