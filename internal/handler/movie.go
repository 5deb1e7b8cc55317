package handler

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/model"
	"github.com/user/streamflix/internal/utils"
)

var errInvalidGenres = errors.New("存在无效的分类 ID")

type movieRequest struct {
	Title         string `json:"title" binding:"required,max=200"`
	Description   string `json:"description"`
	PosterUrl     string `json:"poster_url" binding:"omitempty,url"`
	TrailerUrl    string `json:"trailer_url" binding:"omitempty,url"`
	GenreIDs      []int  `json:"genre_ids"`
	ReleaseYear   int    `json:"release_year" binding:"omitempty,min=1900,max=2100"`
	Status        string `json:"status"`
	Country       string `json:"country"`
	TotalEpisodes int    `json:"total_episodes" binding:"omitempty,min=0"`
	Type          string `json:"type" binding:"required,oneof=Movies TvSeries"`
}

// ListMovies 分页获取影片列表
func (h *Handler) ListMovies(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	movies, err := h.Repos.Movie.List(limit, (page-1)*limit)
	if err != nil {
		log.Printf("[Movie] 查询影片列表失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.Movie.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, movies, total, page, limit)
}

// GetMovie 获取影片详情
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的影片 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		log.Printf("[Movie] 查询影片失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	utils.Success(c, movie)
}

// CreateMovie 创建影片（管理员）
func (h *Handler) CreateMovie(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	movie, err := h.movieFromRequest(&req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Repos.Movie.Create(movie); err != nil {
		log.Printf("[Movie] 创建影片失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	// 目录变化后失效搜索缓存
	h.Search.InvalidateAll()

	utils.Created(c, "创建成功", movie)
}

// UpdateMovie 更新影片（管理员）
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的影片 ID")
		return
	}

	existing, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing == nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	movie, err := h.movieFromRequest(&req)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	movie.ID = id
	movie.ViewCount = existing.ViewCount

	if err := h.Repos.Movie.Update(movie); err != nil {
		log.Printf("[Movie] 更新影片失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.Search.InvalidateAll()

	utils.SuccessWithMessage(c, "更新成功", movie)
}

// DeleteMovie 删除影片及其全部剧集（管理员）
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的影片 ID")
		return
	}

	if err := h.Repos.Episode.DeleteByMovie(id); err != nil {
		log.Printf("[Movie] 删除剧集失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	if err := h.Repos.Movie.Delete(id); err != nil {
		log.Printf("[Movie] 删除影片失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.Search.InvalidateAll()

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// SearchMovies 标题子串搜索
func (h *Handler) SearchMovies(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		utils.BadRequest(c, "缺少搜索关键词")
		return
	}
	page, limit := utils.ParsePagination(c)

	result, err := h.Search.Search(keyword, page, limit)
	if err != nil {
		log.Printf("[Movie] 搜索失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, result.Items, result.Total, page, limit)
}

// TopMovies 播放量排行
func (h *Handler) TopMovies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > utils.MaxLimit {
		limit = 10
	}

	movies, err := h.Repos.Movie.Top(limit)
	if err != nil {
		log.Printf("[Movie] 查询排行失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movies)
}

// RandomMovie 随机影片
func (h *Handler) RandomMovie(c *gin.Context) {
	movie, err := h.Repos.Movie.Random()
	if err != nil {
		log.Printf("[Movie] 随机查询失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "暂无影片")
		return
	}

	utils.Success(c, movie)
}

// MoviesByType 按类型获取影片列表
func (h *Handler) MoviesByType(c *gin.Context) {
	movieType := c.Param("type")
	if movieType != model.TypeMovies && movieType != model.TypeTvSeries {
		utils.BadRequest(c, "无效的影片类型")
		return
	}
	page, limit := utils.ParsePagination(c)

	movies, err := h.Repos.Movie.ListByType(movieType, limit, (page-1)*limit)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.Movie.CountByType(movieType)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, movies, total, page, limit)
}

// TopViewByType 按类型获取播放量排行
func (h *Handler) TopViewByType(c *gin.Context) {
	movieType := c.Param("type")
	if movieType != model.TypeMovies && movieType != model.TypeTvSeries {
		utils.BadRequest(c, "无效的影片类型")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > utils.MaxLimit {
		limit = 10
	}

	movies, err := h.Repos.Movie.TopByType(movieType, limit)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, movies)
}

// WatchMovie 上报一次观看，播放量 +1
// 单条 SQL 自增，极端并发下的丢失更新可以容忍
func (h *Handler) WatchMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的影片 ID")
		return
	}

	if err := h.Repos.Movie.IncrementViewCount(id); err != nil {
		log.Printf("[Movie] 更新播放量失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "ok", nil)
}

// movieFromRequest 组装影片模型，校验分类 ID 均存在
func (h *Handler) movieFromRequest(req *movieRequest) (*model.Movie, error) {
	movie := &model.Movie{
		Title:         req.Title,
		Description:   req.Description,
		PosterUrl:     req.PosterUrl,
		TrailerUrl:    req.TrailerUrl,
		ReleaseYear:   req.ReleaseYear,
		Status:        req.Status,
		Country:       req.Country,
		TotalEpisodes: req.TotalEpisodes,
		Type:          req.Type,
	}

	if len(req.GenreIDs) > 0 {
		genres, err := h.Repos.Genre.FindByIDs(req.GenreIDs)
		if err != nil {
			return nil, err
		}
		if len(genres) != len(req.GenreIDs) {
			return nil, errInvalidGenres
		}
		movie.Genres = genres
	}

	return movie, nil
}
