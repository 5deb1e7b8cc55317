package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// 影片类型
const (
	TypeMovies   = "Movies"
	TypeTvSeries = "TvSeries"
)

// Movie 影片模型
type Movie struct {
	ID            int       `json:"id" db:"id"`
	Title         string    `json:"title" db:"title" gorm:"index"`
	Description   string    `json:"description" db:"description"`
	PosterUrl     string    `json:"poster_url" db:"poster_url"`
	TrailerUrl    string    `json:"trailer_url" db:"trailer_url"`
	Genres        []Genre   `json:"genres" gorm:"many2many:movie_genres"`
	ReleaseYear   int       `json:"release_year" db:"release_year"`
	Status        string    `json:"status" db:"status"`
	Country       string    `json:"country" db:"country"`
	TotalEpisodes int       `json:"total_episodes" db:"total_episodes"`
	ViewCount     int64     `json:"view_count" db:"view_count" gorm:"index"`
	Type          string    `json:"type" db:"type" gorm:"index"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Genre 影片分类
type Genre struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" gorm:"unique"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// VideoSource 播放源
type VideoSource struct {
	Type string `json:"type"` // 如 "m3u8" / "iframe"
	Name string `json:"name"` // 如 "线路1"
	URL  string `json:"url"`
}

// VideoSources 播放源列表，按 jsonb 存储
type VideoSources []VideoSource

// Value 实现 driver.Valuer
func (v VideoSources) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	return json.Marshal(v)
}

// Scan 实现 sql.Scanner
func (v *VideoSources) Scan(value interface{}) error {
	if value == nil {
		*v = VideoSources{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("无法解析 video_sources 字段")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, v)
}

// Episode 剧集模型
// (movie_id, episode_number) 必须唯一
type Episode struct {
	ID            int          `json:"id" db:"id"`
	MovieID       int          `json:"movie_id" db:"movie_id" gorm:"uniqueIndex:idx_movie_episode"`
	Title         string       `json:"title" db:"title"`
	EpisodeNumber int          `json:"episode_number" db:"episode_number" gorm:"uniqueIndex:idx_movie_episode"`
	VideoSources  VideoSources `json:"video_sources" db:"video_sources" gorm:"type:jsonb"`
	Duration      int          `json:"duration" db:"duration"` // 时长（秒）
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// Schedule 更新排期
type Schedule struct {
	ID        int       `json:"id" db:"id"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"index"`
	DayOfWeek int       `json:"day_of_week" db:"day_of_week"` // 0=周日 ... 6=周六
	Time      string    `json:"time" db:"time"`               // 如 "20:00"
	Note      string    `json:"note" db:"note"`
	Movie     *Movie    `json:"movie,omitempty"` // 关联查询时填充
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Comment 评论
type Comment struct {
	ID        int       `json:"id" db:"id"`
	MovieID   int       `json:"movie_id" db:"movie_id" gorm:"index"`
	EpisodeID *int      `json:"episode_id,omitempty" db:"episode_id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"index"`
	Content   string    `json:"content" db:"content"`
	Username  string    `json:"username,omitempty" gorm:"-"` // 关联查询时填充
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
