package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUserID 指定追蹤狀態的使用者
	HeaderUserID = "X-User-ID"
	// ContextUserID gin.Context 中的使用者 ID
	ContextUserID = "user_id"
)

// UserID 從標頭取得使用者，未提供時使用預設值
func UserID(defaultID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if id == "" {
			id = defaultID
		}
		c.Set(ContextUserID, id)
		c.Next()
	}
}
