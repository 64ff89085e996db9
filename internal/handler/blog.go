package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/giganoto/fast-beta/internal/models"
	"github.com/giganoto/fast-beta/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlogHandler 负责博客文章的增删改查
type BlogHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewBlogHandler(db *gorm.DB, pageSize int) *BlogHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &BlogHandler{DB: db, PageSize: pageSize}
}

// ---------- 请求/响应结构 ----------

type createBlogReq struct {
	Title       string `json:"title" binding:"required,max=80"`
	Description string `json:"description" binding:"required,max=160"`
	Content     string `json:"content" binding:"required"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Tags        []uint `json:"tags"`
}

type updateBlogReq struct {
	Title       string  `json:"title" binding:"omitempty,max=80"`
	Description string  `json:"description" binding:"omitempty,max=160"`
	Content     string  `json:"content"`
	CategoryID  uint    `json:"category_id"`
	Tags        *[]uint `json:"tags"`
}

type categoryResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type tagResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type blogResp struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Content     string       `json:"content"`
	Category    categoryResp `json:"category"`
	Tags        []tagResp    `json:"tags"`
	CreatedAt   time.Time    `json:"created_at"`
}

func toCategoryResp(c *models.BlogCategory) categoryResp {
	return categoryResp{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

func toTagResp(t *models.BlogTag) tagResp {
	return tagResp{ID: t.ID, Name: t.Name, Description: t.Description, CreatedAt: t.CreatedAt}
}

func toBlogResp(b *models.Blog) blogResp {
	tags := make([]tagResp, 0, len(b.Tags))
	for i := range b.Tags {
		tags = append(tags, toTagResp(&b.Tags[i]))
	}
	return blogResp{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.SlugURL(),
		Description: b.Description,
		Content:     b.Content,
		Category:    toCategoryResp(&b.Category),
		Tags:        tags,
		CreatedAt:   b.CreatedAt,
	}
}

// ---------- 查询 ----------

func (h *BlogHandler) listBlogs(c *gin.Context, scope func(*gorm.DB) *gorm.DB) {
	limit, offset, err := util.ParsePagination(c, h.PageSize)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid pagination parameters")
		return
	}

	var blogs []models.Blog
	q := h.DB.Preload("Category").Preload("Tags").
		Limit(limit).Offset(offset).Order("id")
	if scope != nil {
		q = scope(q)
	}
	if err := q.Find(&blogs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	out := make([]blogResp, 0, len(blogs))
	for i := range blogs {
		out = append(out, toBlogResp(&blogs[i]))
	}
	util.Success(c, util.Response{"blogs": out})
}

// ListBlogs returns all blog posts with limit/offset pagination.
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	h.listBlogs(c, nil)
}

// ListBlogsByCategory returns blog posts in one category.
func (h *BlogHandler) ListBlogsByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid category id")
		return
	}
	h.listBlogs(c, func(q *gorm.DB) *gorm.DB {
		return q.Where("category_id = ?", categoryID)
	})
}

// ListBlogsByTag returns blog posts carrying one tag.
func (h *BlogHandler) ListBlogsByTag(c *gin.Context) {
	tagID, err := strconv.Atoi(c.Param("tag_id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid tag id")
		return
	}
	h.listBlogs(c, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN blog_tags_association bta ON bta.blog_id = blogs.id").
			Where("bta.blog_tag_id = ?", tagID)
	})
}

// GetBlog returns a single blog post by id.
func (h *BlogHandler) GetBlog(c *gin.Context) {
	blog, ok := h.findBlog(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"blog": toBlogResp(blog)})
}

func (h *BlogHandler) findBlog(c *gin.Context) (*models.Blog, bool) {
	id, err := strconv.Atoi(c.Param("blog_id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid blog id")
		return nil, false
	}

	var blog models.Blog
	err = h.DB.Preload("Category").Preload("Tags").First(&blog, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Blog does not exist")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return nil, false
	}
	return &blog, true
}

// ---------- 写操作（需要登录） ----------

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req createBlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid blog payload")
		return
	}

	var tags []models.BlogTag
	if len(req.Tags) > 0 {
		if err := h.DB.Where("id IN ?", req.Tags).Find(&tags).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
			return
		}
	}

	blog := models.Blog{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		CategoryID:  req.CategoryID,
		Tags:        tags,
	}
	if err := h.DB.Omit("Category").Create(&blog).Error; err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Blog already exists")
		return
	}

	if err := h.DB.Preload("Category").Preload("Tags").First(&blog, blog.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}
	util.Success(c, util.Response{"blog": toBlogResp(&blog)})
}

// UpdateBlog applies a partial update: only fields present in the
// request change.
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	blog, ok := h.findBlog(c)
	if !ok {
		return
	}

	var req updateBlogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid blog payload")
		return
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Description != "" {
		blog.Description = req.Description
	}
	if req.Content != "" {
		blog.Content = req.Content
	}
	if req.CategoryID != 0 {
		blog.CategoryID = req.CategoryID
	}

	// associations are replaced explicitly below, not upserted by Save
	if err := h.DB.Omit(clause.Associations).Save(blog).Error; err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Blog does not exist")
		return
	}

	if req.Tags != nil {
		var tags []models.BlogTag
		if err := h.DB.Where("id IN ?", *req.Tags).Find(&tags).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
			return
		}
		if err := h.DB.Model(blog).Association("Tags").Replace(tags); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
			return
		}
	}

	if err := h.DB.Preload("Category").Preload("Tags").First(blog, blog.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}
	util.Success(c, util.Response{"blog": toBlogResp(blog)})
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	blog, ok := h.findBlog(c)
	if !ok {
		return
	}

	if err := h.DB.Select("Tags").Delete(blog).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}
	util.Success(c, util.Response{"message": "Blog deleted successfully"})
}
