package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/giganoto/fast-beta/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedContent(t *testing.T, db *gorm.DB) (models.BlogCategory, models.BlogTag) {
	t.Helper()

	category := models.BlogCategory{Name: "engineering", Description: "Engineering posts"}
	require.NoError(t, db.Create(&category).Error)
	tag := models.BlogTag{Name: "go", Description: "Posts about Go"}
	require.NoError(t, db.Create(&tag).Error)
	return category, tag
}

func decodeData(t *testing.T, body []byte) map[string]json.RawMessage {
	t.Helper()

	var envelope struct {
		Code int                        `json:"code"`
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Equal(t, 0, envelope.Code)
	return envelope.Data
}

func TestBlogCRUD(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	category, tag := seedContent(t, db)
	tok, err := issuer.Issue(adminEmail)
	require.NoError(t, err)

	// create
	payload := fmt.Sprintf(`{"title":"Hello World","description":"first post","content":"body text","category_id":%d,"tags":[%d]}`,
		category.ID, tag.ID)
	w := doJSON(t, r, http.MethodPost, "/api/blog", tok, payload)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Blog struct {
			ID   uint   `json:"id"`
			Slug string `json:"slug"`
			Tags []struct {
				Name string `json:"name"`
			} `json:"tags"`
		} `json:"blog"`
	}
	data := decodeData(t, w.Body.Bytes())
	require.NoError(t, json.Unmarshal(data["blog"], &created.Blog))
	require.NotZero(t, created.Blog.ID)
	require.Equal(t, "hello-world", created.Blog.Slug)
	require.Len(t, created.Blog.Tags, 1)

	// read back, publicly
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/blog/%d", created.Blog.ID), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Hello World")
	require.Contains(t, w.Body.String(), "engineering")

	// partial update
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/blog/%d", created.Blog.ID), tok,
		`{"title":"Hello Again"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Hello Again")
	require.Contains(t, w.Body.String(), "body text") // untouched fields survive

	// delete
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/blog/%d", created.Blog.ID), tok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Blog deleted successfully")

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/blog/%d", created.Blog.ID), "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Blog does not exist")
}

func TestBlogWritesRequireAuth(t *testing.T) {
	r, db, _ := newTestRouter(t)
	category, _ := seedContent(t, db)

	payload := fmt.Sprintf(`{"title":"t","description":"d","content":"c","category_id":%d}`, category.ID)
	w := doJSON(t, r, http.MethodPost, "/api/blog", "", payload)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Missing auth token")

	// nothing was written
	var count int64
	require.NoError(t, db.Model(&models.Blog{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestBlogValidation(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	category, _ := seedContent(t, db)
	tok, err := issuer.Issue(adminEmail)
	require.NoError(t, err)

	longTitle := make([]byte, 81)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	cases := []string{
		`{}`,
		fmt.Sprintf(`{"title":%q,"description":"d","content":"c","category_id":%d}`, longTitle, category.ID),
		fmt.Sprintf(`{"description":"d","content":"c","category_id":%d}`, category.ID),
	}
	for _, payload := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/blog", tok, payload)
		require.Equal(t, http.StatusBadRequest, w.Code, "payload: %s", payload)
	}
}

func TestBlogListFilters(t *testing.T) {
	r, db, issuer := newTestRouter(t)
	category, tag := seedContent(t, db)
	other := models.BlogCategory{Name: "news", Description: "News"}
	require.NoError(t, db.Create(&other).Error)
	tok, err := issuer.Issue(adminEmail)
	require.NoError(t, err)

	mkBlog := func(title string, categoryID uint, tagIDs []uint) {
		tags := ""
		if len(tagIDs) > 0 {
			tags = fmt.Sprintf(`,"tags":[%d]`, tagIDs[0])
		}
		payload := fmt.Sprintf(`{"title":%q,"description":"d","content":"c","category_id":%d%s}`,
			title, categoryID, tags)
		w := doJSON(t, r, http.MethodPost, "/api/blog", tok, payload)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	mkBlog("tagged in engineering", category.ID, []uint{tag.ID})
	mkBlog("plain in engineering", category.ID, nil)
	mkBlog("plain in news", other.ID, nil)

	count := func(path string) int {
		w := doJSON(t, r, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var blogs []json.RawMessage
		data := decodeData(t, w.Body.Bytes())
		require.NoError(t, json.Unmarshal(data["blogs"], &blogs))
		return len(blogs)
	}

	require.Equal(t, 3, count("/api/blog/all"))
	require.Equal(t, 2, count(fmt.Sprintf("/api/blog/all-by-category/%d", category.ID)))
	require.Equal(t, 1, count(fmt.Sprintf("/api/blog/all-by-tag/%d", tag.ID)))
	require.Equal(t, 2, count("/api/blog/all?limit=2"))
	require.Equal(t, 1, count("/api/blog/all?limit=2&offset=2"))
}
