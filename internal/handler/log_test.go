package handler_test

import (
	"net/http"
	"testing"

	"github.com/giganoto/fast-beta/internal/models"

	"github.com/stretchr/testify/require"
)

func TestAuditTrail(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	tok, err := issuer.Issue(adminEmail)
	require.NoError(t, err)

	// a gated mutation leaves an audit row
	w := doJSON(t, r, http.MethodPost, "/api/blog/tag", tok,
		`{"name":"go","description":"Posts about Go"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// public reads do not
	w = doJSON(t, r, http.MethodGet, "/api/blog/tag/all", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, "POST", logs[0].Method)
	require.Equal(t, "/api/blog/tag", logs[0].Path)
	require.NotNil(t, logs[0].AdminID)

	// the trail is queryable through the admin API
	w = doJSON(t, r, http.MethodGet, "/api/admin/logs", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "/api/blog/tag")

	w = doJSON(t, r, http.MethodGet, "/api/admin/logs", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportCSV(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	category, _ := seedContent(t, db)
	require.NoError(t, db.Create(&models.Blog{
		Title:       "Exported Post",
		Description: "d",
		Content:     "c",
		CategoryID:  category.ID,
	}).Error)

	tok, err := issuer.Issue(adminEmail)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/blog/export/csv", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Contains(t, w.Body.String(), "Exported Post")
	require.Contains(t, w.Body.String(), "exported-post") // slug column

	// export is admin-only
	w = doJSON(t, r, http.MethodGet, "/api/blog/export/csv", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportXLSX(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	category, _ := seedContent(t, db)
	require.NoError(t, db.Create(&models.Blog{
		Title:       "Exported Post",
		Description: "d",
		Content:     "c",
		CategoryID:  category.ID,
	}).Error)

	tok, err := issuer.Issue(adminEmail)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/blog/export/xlsx", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	require.NotZero(t, w.Body.Len())
}
