package repository

import (
	"fmt"

	"github.com/user/streamflix/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// 将驱动层的唯一约束冲突翻译为 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 自动迁移表结构
	if err := db.AutoMigrate(
		&model.User{},
		&model.PasswordReset{},
		&model.Movie{},
		&model.Genre{},
		&model.Episode{},
		&model.Schedule{},
		&model.Comment{},
		&model.Favorite{},
		&model.WatchHistory{},
	); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Reset    *ResetRepository
	Movie    *MovieRepository
	Genre    *GenreRepository
	Episode  *EpisodeRepository
	Schedule *ScheduleRepository
	Comment  *CommentRepository
	Favorite *FavoriteRepository
	History  *HistoryRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Reset:    NewResetRepository(db),
		Movie:    NewMovieRepository(db),
		Genre:    NewGenreRepository(db),
		Episode:  NewEpisodeRepository(db),
		Schedule: NewScheduleRepository(db),
		Comment:  NewCommentRepository(db),
		Favorite: NewFavoriteRepository(db),
		History:  NewHistoryRepository(db),
	}
}
