package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
	"github.com/GermanFOSSIL/candapp/internal/config"
)

// Handlers 处理器集合
type Handlers struct {
	Auth   *AuthHandler
	Lock   *LockHandler
	SimOps *SimOpsHandler
	Form   *FormHandler
	ITR    *ITRHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(auth *service.AuthService, lock *service.LockService, simops *service.SimOpsService, form *service.FormService, itr *service.ITRService, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:   NewAuthHandler(auth, cfg),
		Lock:   NewLockHandler(lock),
		SimOps: NewSimOpsHandler(simops),
		Form:   NewFormHandler(form),
		ITR:    NewITRHandler(itr),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict 选择已失效响应
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// parseIndex reads the positional :index route parameter.
func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		BadRequest(c, "índice inválido")
		return 0, false
	}
	return index, true
}

// serveFile streams a generated artifact as an attachment download.
func serveFile(c *gin.Context, f *service.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	c.Data(200, f.MIME, f.Data)
}
