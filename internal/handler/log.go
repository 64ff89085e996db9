package handler

import (
	"net/http"
	"time"

	"github.com/giganoto/fast-beta/internal/models"
	"github.com/giganoto/fast-beta/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// LogHandler 负责审计日志查询接口
type LogHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewLogHandler(db *gorm.DB, pageSize int) *LogHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &LogHandler{DB: db, PageSize: pageSize}
}

type logResp struct {
	ID        uint      `json:"id"`
	AdminID   *uint     `json:"admin_id"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogs 按时间倒序分页列出审计日志
func (h *LogHandler) ListLogs(c *gin.Context) {
	limit, offset, err := util.ParsePagination(c, h.PageSize)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid pagination parameters")
		return
	}

	var logs []models.AuditLog
	if err := h.DB.Order("id DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	out := make([]logResp, 0, len(logs))
	for _, l := range logs {
		out = append(out, logResp{
			ID:        l.ID,
			AdminID:   l.AdminID,
			Method:    l.Method,
			Path:      l.Path,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt,
		})
	}
	util.Success(c, util.Response{"logs": out})
}
