package handler

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/streamflix/internal/config"
	"github.com/user/streamflix/internal/repository"
	"github.com/user/streamflix/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos     *repository.Repositories
	Config    *config.Config
	Tokens    *service.TokenService
	Refresh   *service.RefreshService
	Blacklist *service.Blacklist
	Reset     *service.ResetService
	Search    *service.SearchService
	Audit     service.AuditLogger
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config, mailer service.Mailer, audit service.AuditLogger) *Handler {
	// 令牌签发与校验
	tokens := service.NewTokenService(cfg.AppSecret, cfg.TokenValidity)

	// 刷新策略与黑名单
	refresh := service.NewRefreshService(tokens, cfg.RefreshGrace, audit)
	blacklist := service.NewBlacklist(tokens)

	// 密码重置流程
	repos.Reset.SetTTL(cfg.ResetCodeTTL)
	reset := service.NewResetService(repos.User, repos.Reset, mailer, audit)

	// 搜索服务
	search := service.NewSearchService(repos.Movie)

	return &Handler{
		Repos:     repos,
		Config:    cfg,
		Tokens:    tokens,
		Refresh:   refresh,
		Blacklist: blacklist,
		Reset:     reset,
		Search:    search,
		Audit:     audit,
	}
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)

// RegisterValidators 注册自定义校验规则
// username: 3-30 位，仅允许字母、数字、下划线、点、连字符
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}
