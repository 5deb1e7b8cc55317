package repository

import (
	"errors"

	"github.com/user/streamflix/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID 根据 ID 查找评论
func (r *CommentRepository) FindByID(id int) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByMovie 获取某影片的评论列表（带用户名）
func (r *CommentRepository) ListByMovie(movieID, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Model(&model.Comment{}).
		Select("comments.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.movie_id = ?", movieID).
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&comments).Error
	return comments, err
}

// CountByMovie 统计某影片的评论数量
func (r *CommentRepository) CountByMovie(movieID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}

// Delete 删除评论
func (r *CommentRepository) Delete(id int) error {
	return r.db.Delete(&model.Comment{}, id).Error
}
