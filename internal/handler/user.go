package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/middleware"
	"github.com/user/streamflix/internal/model"
	"github.com/user/streamflix/internal/utils"
	"gorm.io/gorm"
)

type updateProfileRequest struct {
	Username    string `json:"username" binding:"omitempty,username"`
	Email       string `json:"email" binding:"omitempty,email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" binding:"omitempty,min=6"`
}

type historyRequest struct {
	MovieID   int `json:"movie_id" binding:"required,min=1"`
	EpisodeID int `json:"episode_id" binding:"omitempty,min=0"`
}

// Me 获取当前用户信息
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Repos.User.FindByID(middleware.GetUserID(c))
	if err != nil {
		log.Printf("[User] 查询用户失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	// PasswordHash 的 json tag 为 "-"，不会泄露
	utils.Success(c, user)
}

// UpdateMe 更新当前用户资料
// 改密码时必须先验证旧密码
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if req.Username != "" && req.Username != user.Username {
		if err := h.Repos.User.UpdateUsername(userID, req.Username); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.BadRequest(c, "用户名已被占用")
				return
			}
			utils.InternalServerError(c, "")
			return
		}
	}

	if req.Email != "" && req.Email != user.Email {
		if err := h.Repos.User.UpdateEmail(userID, req.Email); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.BadRequest(c, "邮箱已被占用")
				return
			}
			utils.InternalServerError(c, "")
			return
		}
	}

	if req.NewPassword != "" {
		if !h.Repos.User.CheckPassword(user, req.OldPassword) {
			utils.BadRequest(c, "原密码错误")
			return
		}
		if err := h.Repos.User.UpdatePassword(userID, req.NewPassword); err != nil {
			utils.InternalServerError(c, "")
			return
		}
	}

	utils.SuccessWithMessage(c, "更新成功", nil)
}

// ==================== 收藏 ====================

// AddFavorite 添加收藏
func (h *Handler) AddFavorite(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
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

	if err := h.Repos.Favorite.Add(middleware.GetUserID(c), movieID); err != nil {
		log.Printf("[User] 添加收藏失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "收藏成功", nil)
}

// RemoveFavorite 取消收藏
func (h *Handler) RemoveFavorite(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("movieId"))
	if err != nil {
		utils.BadRequest(c, "无效的影片 ID")
		return
	}

	if err := h.Repos.Favorite.Remove(middleware.GetUserID(c), movieID); err != nil {
		log.Printf("[User] 取消收藏失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "已取消收藏", nil)
}

// ListFavorites 获取收藏列表
func (h *Handler) ListFavorites(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := utils.ParsePagination(c)

	favorites, err := h.Repos.Favorite.ListByUser(userID, limit, (page-1)*limit)
	if err != nil {
		log.Printf("[User] 查询收藏失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.Favorite.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, favorites, total, page, limit)
}

// ==================== 观影历史 ====================

// SyncHistory 上报观影记录
func (h *Handler) SyncHistory(c *gin.Context) {
	var req historyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	movie, err := h.Repos.Movie.FindByID(req.MovieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if movie == nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	record := &model.WatchHistory{
		UserID:    middleware.GetUserID(c),
		MovieID:   req.MovieID,
		EpisodeID: req.EpisodeID,
	}
	if err := h.Repos.History.Upsert(record); err != nil {
		log.Printf("[User] 记录观影历史失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "已记录", nil)
}

// ListHistory 获取观影历史
func (h *Handler) ListHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := utils.ParsePagination(c)

	histories, err := h.Repos.History.ListByUser(userID, limit, (page-1)*limit)
	if err != nil {
		log.Printf("[User] 查询观影历史失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.History.CountByUser(userID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, histories, total, page, limit)
}

// ClearHistory 清空观影历史
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.Repos.History.ClearByUser(middleware.GetUserID(c)); err != nil {
		log.Printf("[User] 清空观影历史失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "已清空", nil)
}
