package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of a successful API reply.
type Response map[string]interface{}

// Business status codes carried in the envelope next to the HTTP
// status. The first three digits mirror the HTTP status; the trailing
// two leave room for finer variants per status.
const (
	CodeOK = 0

	CodeInvalidParam = 40001 // malformed id, body or pagination
	CodeAuth         = 40101 // gate rejections, see middleware.RequireAuth
	CodeNotFound     = 40401
	CodeConflict     = 40901 // unique constraint hit (name, title)
	CodeServerErr    = 50001
)

// Success writes the uniform success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the uniform error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}
