package api

import (
	"errors"
	"net/http"

	"ledgerboard/config"
	"ledgerboard/logger"
	"ledgerboard/models"
	"ledgerboard/store"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封，code 与 HTTP 状态码一致
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Page 分页结果，Total 为过滤后的总条数
type Page[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	List     []T   `json:"list"`
}

// newPage 从已排序的完整结果中截取第 page 页，越界时 List 为空数组
func newPage[T any](items []T, page, pageSize int) Page[T] {
	p := Page[T]{Total: int64(len(items)), Page: page, PageSize: pageSize, List: []T{}}
	start := (page - 1) * pageSize
	if start < len(items) {
		p.List = items[start:min(start+pageSize, len(items))]
	}
	return p
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

// Success 成功响应
func Success(c *gin.Context, data any) {
	respond(c, http.StatusOK, "success", data)
}

// SuccessWithMessage 写操作成功，message 说明做了什么
func SuccessWithMessage(c *gin.Context, message string, data any) {
	respond(c, http.StatusOK, message, data)
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, message, nil)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, message, nil)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, message, nil)
}

// respondError 校验错误 400，记录不存在 404，其余 500 并记录日志
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case models.IsValidationError(err):
		BadRequest(c, err.Error())
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, err.Error())
	default:
		logger.L().Errorw(fallback, "path", c.FullPath(), "error", err)
		InternalError(c, config.SafeErrorMessage(err, fallback))
	}
}
