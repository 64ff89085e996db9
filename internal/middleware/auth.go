package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/giganoto/fast-beta/internal/auth"
	"github.com/giganoto/fast-beta/internal/models"
	"github.com/giganoto/fast-beta/internal/util"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxAdmin = "currentAdmin"
	CtxToken = "authToken"
)

// RequireAuth 校验 Bearer token，并把解析出的管理员和原始 token 放进请求
// 上下文。任何校验失败都在业务 handler 之前 abort。
func RequireAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))

		admin, err := verifier.Verify(token)
		if err != nil {
			abortAuth(c, err)
			return
		}

		c.Set(CtxAdmin, admin)
		c.Set(CtxToken, token)
		c.Next()
	}
}

// extractBearer strips the "Bearer " scheme prefix. A malformed header
// is treated the same as an absent one.
func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// abortAuth is the single translation point from verification errors to
// HTTP responses. Store faults are server errors, never a 401.
func abortAuth(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing auth token")
	case errors.Is(err, auth.ErrAdminNotFound):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Admin not found")
	case errors.Is(err, auth.ErrStoreUnavailable):
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
	default:
		// revoked, expired and bad signature all read the same to the
		// client
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Invalid token")
	}
	c.Abort()
}

// CurrentAdmin returns the admin resolved by RequireAuth.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(CtxAdmin)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok && admin != nil
}

// CurrentToken returns the raw token the request authenticated with.
func CurrentToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxToken)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok && token != ""
}
