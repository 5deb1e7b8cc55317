package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/model"
	"github.com/user/streamflix/internal/utils"
	"gorm.io/gorm"
)

type genreRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// ListGenres 获取全部分类
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.Repos.Genre.ListAll()
	if err != nil {
		log.Printf("[Genre] 查询分类失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	utils.Success(c, genres)
}

// CreateGenre 创建分类（管理员）
func (h *Handler) CreateGenre(c *gin.Context) {
	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	genre := &model.Genre{Name: req.Name}
	if err := h.Repos.Genre.Create(genre); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "分类名称已存在")
			return
		}
		log.Printf("[Genre] 创建分类失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, "创建成功", genre)
}

// UpdateGenre 更新分类（管理员）
func (h *Handler) UpdateGenre(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的分类 ID")
		return
	}

	var req genreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	genre, err := h.Repos.Genre.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if genre == nil {
		utils.NotFound(c, "分类不存在")
		return
	}

	if err := h.Repos.Genre.Update(id, req.Name); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.BadRequest(c, "分类名称已存在")
			return
		}
		log.Printf("[Genre] 更新分类失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "更新成功", nil)
}

// DeleteGenre 删除分类（管理员）
func (h *Handler) DeleteGenre(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的分类 ID")
		return
	}

	if err := h.Repos.Genre.Delete(id); err != nil {
		log.Printf("[Genre] 删除分类失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
