package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/giganoto/fast-beta/internal/auth"
	"github.com/giganoto/fast-beta/internal/config"
	"github.com/giganoto/fast-beta/internal/middleware"
	"github.com/giganoto/fast-beta/internal/models"
	"github.com/giganoto/fast-beta/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const stateCookie = "oauth_state"

// googleEndpoint mirrors the URLs of Google's OAuth 2.0 server.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// AuthHandler 负责 Google OAuth 登录、登出和会话探测接口
type AuthHandler struct {
	DB     *gorm.DB
	Issuer *auth.Issuer
	Store  auth.RevocationStore

	OAuth *oauth2.Config
	// UserInfoURL is Google's userinfo endpoint; overridable in tests.
	UserInfoURL string
}

func NewAuthHandler(db *gorm.DB, issuer *auth.Issuer, store auth.RevocationStore, google config.GoogleConfig) *AuthHandler {
	return &AuthHandler{
		DB:     db,
		Issuer: issuer,
		Store:  store,
		OAuth: &oauth2.Config{
			ClientID:     google.ClientID,
			ClientSecret: google.ClientSecret,
			RedirectURL:  google.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleEndpoint,
		},
		UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

// Login redirects to Google's consent page (OAuth2 step 1).
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.OAuth.AuthCodeURL(state))
}

// Callback handles Google's response (OAuth2 steps 2 and 3): exchanges
// the code for an access token, fetches the user info, and issues a
// session token — but only for a provisioned admin email.
func (h *AuthHandler) Callback(c *gin.Context) {
	if state, err := c.Cookie(stateCookie); err != nil || state == "" || state != c.Query("state") {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Missing authorization code")
		return
	}

	oauthToken, err := h.OAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Something went wrong")
		return
	}

	email, err := h.fetchEmail(c, oauthToken)
	if err != nil || email == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Something went wrong")
		return
	}

	// refuse authentication before minting anything: tokens are only
	// ever issued for provisioned admins
	var admin models.Admin
	if err := h.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Something went wrong")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return
	}

	sessionToken, err := h.Issuer.Issue(admin.Email)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	util.Success(c, util.Response{"token": sessionToken})
}

func (h *AuthHandler) fetchEmail(c *gin.Context, token *oauth2.Token) (string, error) {
	client := h.OAuth.Client(c.Request.Context(), token)
	resp, err := client.Get(h.UserInfoURL)
	if err != nil {
		return "", fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode userinfo: %w", err)
	}
	return info.Email, nil
}

// Logout 把当前请求携带的 token 写入吊销表。重复登出同样返回成功。
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.CurrentToken(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing auth token")
		return
	}

	if err := h.Store.Record(token); err != nil {
		// the logout did not happen; the client can retry with the
		// same token
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	util.Success(c, util.Response{"message": "Logged out successfully"})
}

// SecurePing is a trivial gated endpoint used to probe session validity.
func (h *AuthHandler) SecurePing(c *gin.Context) {
	util.Success(c, util.Response{"message": "Secure Ping"})
}

// Me returns the current admin's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Missing auth token")
		return
	}

	util.Success(c, util.Response{
		"admin": gin.H{
			"id":         admin.ID,
			"name":       admin.Name,
			"email":      admin.Email,
			"created_at": admin.CreatedAt,
		},
	})
}
