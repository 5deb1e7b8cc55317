package repository

import (
	"errors"

	"github.com/user/streamflix/internal/model"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create 创建排期
func (r *ScheduleRepository) Create(schedule *model.Schedule) error {
	return r.db.Create(schedule).Error
}

// FindByID 根据 ID 查找排期
func (r *ScheduleRepository) FindByID(id int) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.Preload("Movie").First(&schedule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// List 获取排期列表（按星期与时间排序）
func (r *ScheduleRepository) List(limit, offset int) ([]*model.Schedule, error) {
	var schedules []*model.Schedule
	err := r.db.Preload("Movie").
		Order("day_of_week ASC, time ASC").
		Limit(limit).
		Offset(offset).
		Find(&schedules).Error
	return schedules, err
}

// Count 统计排期数量
func (r *ScheduleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Schedule{}).Count(&count).Error
	return count, err
}

// Update 更新排期
func (r *ScheduleRepository) Update(schedule *model.Schedule) error {
	return r.db.Omit("Movie", "created_at").Save(schedule).Error
}

// Delete 删除排期
func (r *ScheduleRepository) Delete(id int) error {
	return r.db.Delete(&model.Schedule{}, id).Error
}
