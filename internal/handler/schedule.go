package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/model"
	"github.com/user/streamflix/internal/utils"
)

type scheduleRequest struct {
	MovieID   int    `json:"movie_id" binding:"required,min=1"`
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	Time      string `json:"time" binding:"required"`
	Note      string `json:"note"`
}

// ListSchedules 获取更新排期列表
func (h *Handler) ListSchedules(c *gin.Context) {
	page, limit := utils.ParsePagination(c)

	schedules, err := h.Repos.Schedule.List(limit, (page-1)*limit)
	if err != nil {
		log.Printf("[Schedule] 查询排期失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}
	total, err := h.Repos.Schedule.Count()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	utils.Paginated(c, schedules, total, page, limit)
}

// CreateSchedule 创建排期（管理员）
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
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

	schedule := &model.Schedule{
		MovieID:   req.MovieID,
		DayOfWeek: *req.DayOfWeek,
		Time:      req.Time,
		Note:      req.Note,
	}
	if err := h.Repos.Schedule.Create(schedule); err != nil {
		log.Printf("[Schedule] 创建排期失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.Created(c, "创建成功", schedule)
}

// UpdateSchedule 更新排期（管理员）
func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的排期 ID")
		return
	}

	schedule, err := h.Repos.Schedule.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if schedule == nil {
		utils.NotFound(c, "排期不存在")
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "参数校验失败: "+err.Error())
		return
	}

	schedule.MovieID = req.MovieID
	schedule.DayOfWeek = *req.DayOfWeek
	schedule.Time = req.Time
	schedule.Note = req.Note
	schedule.Movie = nil

	if err := h.Repos.Schedule.Update(schedule); err != nil {
		log.Printf("[Schedule] 更新排期失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "更新成功", schedule)
}

// DeleteSchedule 删除排期（管理员）
func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "无效的排期 ID")
		return
	}

	if err := h.Repos.Schedule.Delete(id); err != nil {
		log.Printf("[Schedule] 删除排期失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
