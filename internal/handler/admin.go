package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/middleware"
	"github.com/user/streamflix/internal/utils"
)

// ==================== 管理后台 ====================

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// AdminStats 后台统计
func (h *Handler) AdminStats(c *gin.Context) {
	userCount, err := h.Repos.User.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	movieCount, err := h.Repos.Movie.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Success(c, gin.H{
		"users":          userCount,
		"movies":         movieCount,
		"blacklist_size": h.Blacklist.Len(),
	})
}

// AdminUsers 用户列表
func (h *Handler) AdminUsers(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	users, err := h.Repos.User.ListAll(limit, (page-1)*limit)
	if err != nil {
		log.Printf("[Admin] 查询用户列表失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.User.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, users, total, page, limit)
}

// AdminDeleteUser 删除用户
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	// 不允许删除自己
	if id == middleware.GetUserID(c) {
		utils.BadRequest(c, "不能删除当前登录的账号")
		return
	}

	user, err := h.Repos.User.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if err := h.Repos.User.Delete(id); err != nil {
		log.Printf("[Admin] 删除用户失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.Audit.Log("user_deleted", map[string]interface{}{
		"user_id":  id,
		"admin_id": middleware.GetUserID(c),
	})

	utils.SuccessWithMessage(c, "删除成功", nil)
}

// AdminUpdateRole 更新用户角色
func (h *Handler) AdminUpdateRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的用户 ID")
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	user, err := h.Repos.User.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if err := h.Repos.User.UpdateRole(id, req.Role); err != nil {
		log.Printf("[Admin] 更新角色失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.Audit.Log("role_updated", map[string]interface{}{
		"user_id":  id,
		"role":     req.Role,
		"admin_id": middleware.GetUserID(c),
	})

	utils.SuccessWithMessage(c, "更新成功", nil)
}

// AdminBlacklist 黑名单状态
func (h *Handler) AdminBlacklist(c *gin.Context) {
	utils.Success(c, gin.H{"size": h.Blacklist.Len()})
}

// AdminBlacklistCleanup 手动清扫黑名单
func (h *Handler) AdminBlacklistCleanup(c *gin.Context) {
	removed := h.Blacklist.CleanupExpired()
	utils.Success(c, gin.H{"removed": removed})
}
