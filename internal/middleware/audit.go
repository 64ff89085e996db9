package middleware

import (
	"github.com/giganoto/fast-beta/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware 记录已登录管理员的写操作，读请求不落库。
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// only mutations by an authenticated admin
		if c.Request.Method == "GET" {
			return
		}
		admin, ok := CurrentAdmin(c)
		if !ok {
			return
		}

		adminID := admin.ID
		entry := models.AuditLog{
			AdminID:   &adminID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
