package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/middleware"
	"github.com/user/streamflix/internal/model"
	"github.com/user/streamflix/internal/utils"
)

type commentRequest struct {
	MovieID   int    `json:"movie_id" binding:"required,min=1"`
	EpisodeID *int   `json:"episode_id" binding:"omitempty,min=1"`
	Content   string `json:"content" binding:"required,max=1000"`
}

// ListComments 获取某影片的评论列表
func (h *Handler) ListComments(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Query("movie_id"))
	if err != nil || movieID < 1 {
		utils.BadRequest(c, "缺少有效的 movie_id 参数")
		return
	}
	page, limit := utils.ParsePagination(c)

	comments, err := h.Repos.Comment.ListByMovie(movieID, limit, (page-1)*limit)
	if err != nil {
		log.Printf("[Comment] 查询评论失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.Comment.CountByMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, comments, total, page, limit)
}

// CreateComment 发表评论（登录用户）
func (h *Handler) CreateComment(c *gin.Context) {
	var req commentRequest
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

	comment := &model.Comment{
		MovieID:   req.MovieID,
		EpisodeID: req.EpisodeID,
		UserID:    middleware.GetUserID(c),
		Content:   req.Content,
	}
	if err := h.Repos.Comment.Create(comment); err != nil {
		log.Printf("[Comment] 创建评论失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, "评论成功", comment)
}

// DeleteComment 删除评论
// 仅评论作者本人或管理员可删除
func (h *Handler) DeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的评论 ID")
		return
	}

	comment, err := h.Repos.Comment.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if comment == nil {
		utils.NotFound(c, "评论不存在")
		return
	}

	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)
	if comment.UserID != userID && role != model.RoleAdmin {
		utils.Error(c, http.StatusForbidden, "无权删除该评论")
		return
	}

	if err := h.Repos.Comment.Delete(id); err != nil {
		log.Printf("[Comment] 删除评论失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
