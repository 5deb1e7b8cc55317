package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/model"
	"github.com/user/streamflix/internal/utils"
	"gorm.io/gorm"
)

type episodeRequest struct {
	Title         string              `json:"title" binding:"required,max=200"`
	EpisodeNumber int                 `json:"episode_number" binding:"required,min=1"`
	VideoSources  []model.VideoSource `json:"video_sources"`
	Duration      int                 `json:"duration" binding:"omitempty,min=0"`
}

// ListEpisodes 获取某影片的剧集列表
func (h *Handler) ListEpisodes(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的影片 ID")
		return
	}
	page, limit := utils.ParsePagination(c)

	episodes, err := h.Repos.Episode.ListByMovie(movieID, limit, (page-1)*limit)
	if err != nil {
		log.Printf("[Episode] 查询剧集列表失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.Episode.CountByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, episodes, total, page, limit)
}

// GetEpisode 获取剧集详情
func (h *Handler) GetEpisode(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episodeId"))
	if err != nil {
		utils.BadRequest(c, "无效的剧集 ID")
		return
	}

	episode, err := h.Repos.Episode.FindByID(episodeID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if episode == nil {
		utils.NotFound(c, "剧集不存在")
		return
	}

	utils.Success(c, episode)
}

// CreateEpisode 创建剧集（管理员）
// (movie_id, episode_number) 必须唯一：先查再插，数据库唯一索引兜底
func (h *Handler) CreateEpisode(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的影片 ID")
		return
	}

	movie, err := h.Repos.Movie.FindByID(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	var req episodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	existing, err := h.Repos.Episode.FindByNumber(movieID, req.EpisodeNumber)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.Error(c, http.StatusConflict, "该集数已存在")
		return
	}

	episode := &model.Episode{
		MovieID:       movieID,
		Title:         req.Title,
		EpisodeNumber: req.EpisodeNumber,
		VideoSources:  req.VideoSources,
		Duration:      req.Duration,
	}

	if err := h.Repos.Episode.Create(episode); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, http.StatusConflict, "该集数已存在")
			return
		}
		log.Printf("[Episode] 创建剧集失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, "创建成功", episode)
}

// UpdateEpisode 更新剧集（管理员）
// 改集数时不允许与同影片其他剧集冲突
func (h *Handler) UpdateEpisode(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episodeId"))
	if err != nil {
		utils.BadRequest(c, "无效的剧集 ID")
		return
	}

	episode, err := h.Repos.Episode.FindByID(episodeID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if episode == nil {
		utils.NotFound(c, "剧集不存在")
		return
	}

	var req episodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	if req.EpisodeNumber != episode.EpisodeNumber {
		conflict, err := h.Repos.Episode.FindByNumber(episode.MovieID, req.EpisodeNumber)
		if err != nil {
			utils.InternalServerError(c, "")
			return
		}
		if conflict != nil {
			utils.Error(c, http.StatusConflict, "该集数已存在")
			return
		}
	}

	episode.Title = req.Title
	episode.EpisodeNumber = req.EpisodeNumber
	episode.VideoSources = req.VideoSources
	episode.Duration = req.Duration

	if err := h.Repos.Episode.Update(episode); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, http.StatusConflict, "该集数已存在")
			return
		}
		log.Printf("[Episode] 更新剧集失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "更新成功", episode)
}

// DeleteEpisode 删除剧集（管理员）
func (h *Handler) DeleteEpisode(c *gin.Context) {
	episodeID, err := strconv.Atoi(c.Param("episodeId"))
	if err != nil {
		utils.BadRequest(c, "无效的剧集 ID")
		return
	}

	if err := h.Repos.Episode.Delete(episodeID); err != nil {
		log.Printf("[Episode] 删除剧集失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
