package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"fitforge/internal/api/middleware"
	"fitforge/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorStatus 將服務錯誤轉為 HTTP 狀態碼與訊息
// 只回傳固定訊息，原始錯誤（可能含上游 URL）只寫進日誌
func ErrorStatus(err error) (int, string, string) {
	var ce *common.CustomError
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, common.ErrCodeGatewayTimeout, "Request timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, common.ErrCodeRequestTimeout, "Request canceled"
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large"
	case errors.As(err, &ce):
		return ce.Status, ce.Code, ce.Message
	case common.IsValidationError(err):
		return http.StatusBadRequest, common.ErrCodeInvalidRequest, err.Error()
	default:
		return http.StatusInternalServerError, common.ErrCodeInternalError, common.ErrInternalError.Message
	}
}

// RespondError 以 {"error","code"} 回應錯誤
func RespondError(c *gin.Context, err error) {
	status, code, msg := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		common.LogError("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error": msg,
		"code":  code,
	})
}

// UserID 目前請求的使用者
func UserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

// BindJSON 解析請求體；allowEmpty 為 true 時空請求體視為零值
func BindJSON(c *gin.Context, v interface{}, allowEmpty bool) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		if allowEmpty {
			return nil
		}
		return common.NewValidationError("request body is required")
	}

	if err := common.DecodeJSON(c.Request.Body, v); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return common.NewValidationError("Invalid request format: " + err.Error())
	}
	return nil
}
