package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/giganoto/fast-beta/internal/models"
	"github.com/giganoto/fast-beta/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TagHandler 负责博客标签接口
type TagHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewTagHandler(db *gorm.DB, pageSize int) *TagHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TagHandler{DB: db, PageSize: pageSize}
}

type tagReq struct {
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"required,max=160"`
}

type updateTagReq struct {
	Name        string `json:"name" binding:"omitempty,max=80"`
	Description string `json:"description" binding:"omitempty,max=160"`
}

func (h *TagHandler) ListTags(c *gin.Context) {
	limit, offset, err := util.ParsePagination(c, h.PageSize)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid pagination parameters")
		return
	}

	var tags []models.BlogTag
	if err := h.DB.Limit(limit).Offset(offset).Order("id").Find(&tags).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	out := make([]tagResp, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResp(&tags[i]))
	}
	util.Success(c, util.Response{"tags": out})
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req tagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid tag payload")
		return
	}

	tag := models.BlogTag{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&tag).Error; err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Tag already exists")
		return
	}
	util.Success(c, util.Response{"tag": toTagResp(&tag)})
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	tag, ok := h.findTag(c)
	if !ok {
		return
	}

	var req updateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid tag payload")
		return
	}

	if req.Name != "" {
		tag.Name = req.Name
	}
	if req.Description != "" {
		tag.Description = req.Description
	}

	if err := h.DB.Save(tag).Error; err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Tag already exists")
		return
	}
	util.Success(c, util.Response{"tag": toTagResp(tag)})
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	tag, ok := h.findTag(c)
	if !ok {
		return
	}

	// drop association rows first so no blog keeps a dangling tag
	if err := h.DB.Exec("DELETE FROM blog_tags_association WHERE blog_tag_id = ?", tag.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}
	if err := h.DB.Delete(tag).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}
	util.Success(c, util.Response{"message": "Tag deleted successfully"})
}

func (h *TagHandler) findTag(c *gin.Context) (*models.BlogTag, bool) {
	id, err := strconv.Atoi(c.Param("tag_id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid tag id")
		return nil, false
	}

	var tag models.BlogTag
	if err := h.DB.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Tag does not exist")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return nil, false
	}
	return &tag, true
}
