package utils

import (
	"github.com/gin-gonic/gin"
)

// Response 统一API响应结构
type Response struct {
	Code    int         `json:"code"`    // 状态码
	Message string      `json:"message"` // 消息
	Data    interface{} `json:"data"`    // 数据
	Success bool        `json:"success"` // 是否成功
}

// PageResponse 分页响应结构
type PageResponse struct {
	Success     bool        `json:"success"`
	Data        interface{} `json:"data"`
	TotalItems  int64       `json:"totalItems"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    200,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// SuccessWithMessage 返回成功响应并自定义消息
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{
		Code:    200,
		Message: message,
		Data:    data,
		Success: true,
	})
}

// Created 返回201创建成功响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(201, Response{
		Code:    201,
		Message: message,
		Data:    data,
		Success: true,
	})
}

// Paginated 返回分页响应，page 从 1 开始
func Paginated(c *gin.Context, data interface{}, totalItems int64, page, limit int) {
	totalPages := int(totalItems) / limit
	if int(totalItems)%limit > 0 {
		totalPages++
	}
	c.JSON(200, PageResponse{
		Success:     true,
		Data:        data,
		TotalItems:  totalItems,
		CurrentPage: page,
		TotalPages:  totalPages,
	})
}

// Error 返回错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
		Success: false,
	})
}

// AuthError 返回带错误码的认证/授权错误
// code 是客户端用于判断补救方式的稳定标识，如 MISSING_TOKEN、TOKEN_EXPIRED
func AuthError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	Error(c, 404, message)
}

// InternalServerError 返回500错误
// 对外只暴露统一文案，细节记入日志
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "服务器内部错误"
	}
	Error(c, 500, message)
}
