package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rakshit-singh2/fundraising-backend/internal/logger"
	"github.com/rakshit-singh2/fundraising-backend/internal/logic"
)

// Response 统一响应信封，HTTP 状态码与 statusCode 保持一致
type Response gin.H

// SuccessResponse 成功响应，payload 中的键平铺到信封顶层
func SuccessResponse(c *gin.Context, message string, payload gin.H) {
	resp := Response{"statusCode": http.StatusOK}
	if message != "" {
		resp["responseMessage"] = message
	}
	for k, v := range payload {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		"statusCode":      statusCode,
		"responseMessage": message,
	})
}

// errorWriter 将业务错误映射为 HTTP 响应
type errorWriter struct {
	exposeErrors bool
}

func (w errorWriter) writeError(c *gin.Context, err error) {
	var e *logic.Error
	if errors.As(err, &e) {
		ErrorResponse(c, statusFor(e.Kind), e.Message)
		return
	}

	_ = c.Error(err)
	logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)

	resp := Response{
		"statusCode":      http.StatusInternalServerError,
		"responseMessage": "Something went wrong",
	}
	if w.exposeErrors {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

func (w errorWriter) badRequest(c *gin.Context, err error) {
	ErrorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
}

func statusFor(kind logic.Kind) int {
	switch kind {
	case logic.KindNotFound:
		return http.StatusNotFound
	case logic.KindInvalidInput:
		return http.StatusBadRequest
	case logic.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
