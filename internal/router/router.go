package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/streamflix/internal/handler"
	"github.com/user/streamflix/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	requireAuth := middleware.RequireAuth(h.Tokens, h.Blacklist)
	requireAdmin := middleware.RequireAdmin()

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 认证 ====================
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/verify-reset-code", h.VerifyResetCode)
		auth.POST("/reset-password", h.ResetPassword)
		// 刷新接受已过期的令牌，不能走 RequireAuth
		auth.POST("/refresh", h.RefreshToken)
		auth.GET("/token-status", requireAuth, h.TokenStatus)
		auth.POST("/logout", requireAuth, h.Logout)
	}

	// ==================== 影片目录（公开读取）====================
	movies := r.Group("/movies")
	{
		movies.GET("", h.ListMovies)
		movies.GET("/search", h.SearchMovies)
		movies.GET("/top", h.TopMovies)
		movies.GET("/random", h.RandomMovie)
		movies.GET("/type/:type", h.MoviesByType)
		movies.GET("/top-view/:type", h.TopViewByType)
		movies.GET("/:id", h.GetMovie)
		movies.POST("/:id/view", h.WatchMovie)
		movies.GET("/:id/episodes", h.ListEpisodes)
		movies.GET("/:id/episodes/:episodeId", h.GetEpisode)

		// 目录变更仅限管理员
		movies.POST("", requireAuth, requireAdmin, h.CreateMovie)
		movies.PUT("/:id", requireAuth, requireAdmin, h.UpdateMovie)
		movies.DELETE("/:id", requireAuth, requireAdmin, h.DeleteMovie)
		movies.POST("/:id/episodes", requireAuth, requireAdmin, h.CreateEpisode)
		movies.PUT("/:id/episodes/:episodeId", requireAuth, requireAdmin, h.UpdateEpisode)
		movies.DELETE("/:id/episodes/:episodeId", requireAuth, requireAdmin, h.DeleteEpisode)
	}

	// ==================== 分类 ====================
	genres := r.Group("/genres")
	{
		genres.GET("", h.ListGenres)
		genres.POST("", requireAuth, requireAdmin, h.CreateGenre)
		genres.PUT("/:id", requireAuth, requireAdmin, h.UpdateGenre)
		genres.DELETE("/:id", requireAuth, requireAdmin, h.DeleteGenre)
	}

	// ==================== 更新排期 ====================
	schedules := r.Group("/schedules")
	{
		schedules.GET("", h.ListSchedules)
		schedules.POST("", requireAuth, requireAdmin, h.CreateSchedule)
		schedules.PUT("/:id", requireAuth, requireAdmin, h.UpdateSchedule)
		schedules.DELETE("/:id", requireAuth, requireAdmin, h.DeleteSchedule)
	}

	// ==================== 评论 ====================
	comments := r.Group("/comments")
	{
		comments.GET("", h.ListComments)
		comments.POST("", requireAuth, h.CreateComment)
		comments.DELETE("/:id", requireAuth, h.DeleteComment)
	}

	// ==================== 用户中心（需要登录）====================
	me := r.Group("/users/me")
	me.Use(requireAuth)
	{
		me.GET("", h.Me)
		me.PUT("", h.UpdateMe)
		me.GET("/favorites", h.ListFavorites)
		me.POST("/favorites/:movieId", h.AddFavorite)
		me.DELETE("/favorites/:movieId", h.RemoveFavorite)
		me.GET("/history", h.ListHistory)
		me.POST("/history", h.SyncHistory)
		me.DELETE("/history", h.ClearHistory)
	}

	// ==================== 管理后台 ====================
	admin := r.Group("/admin")
	admin.Use(requireAuth)
	admin.Use(requireAdmin)
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminUsers)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
		admin.PUT("/users/:id/role", h.AdminUpdateRole)
		admin.GET("/blacklist", h.AdminBlacklist)
		admin.POST("/blacklist/cleanup", h.AdminBlacklistCleanup)
	}
}
