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

// CategoryHandler 负责博客分类接口
type CategoryHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewCategoryHandler(db *gorm.DB, pageSize int) *CategoryHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &CategoryHandler{DB: db, PageSize: pageSize}
}

type categoryReq struct {
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"required,max=160"`
}

type updateCategoryReq struct {
	Name        string `json:"name" binding:"omitempty,max=80"`
	Description string `json:"description" binding:"omitempty,max=160"`
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	limit, offset, err := util.ParsePagination(c, h.PageSize)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid pagination parameters")
		return
	}

	var categories []models.BlogCategory
	if err := h.DB.Limit(limit).Offset(offset).Order("id").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}

	out := make([]categoryResp, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResp(&categories[i]))
	}
	util.Success(c, util.Response{"categories": out})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid category payload")
		return
	}

	category := models.BlogCategory{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&category).Error; err != nil {
		// unique name constraint
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Category already exists")
		return
	}
	util.Success(c, util.Response{"category": toCategoryResp(&category)})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	category, ok := h.findCategory(c)
	if !ok {
		return
	}

	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid category payload")
		return
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := h.DB.Save(category).Error; err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Category already exists")
		return
	}
	util.Success(c, util.Response{"category": toCategoryResp(category)})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, ok := h.findCategory(c)
	if !ok {
		return
	}

	if err := h.DB.Delete(category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return
	}
	util.Success(c, util.Response{"message": "Category deleted successfully"})
}

func (h *CategoryHandler) findCategory(c *gin.Context) (*models.BlogCategory, bool) {
	id, err := strconv.Atoi(c.Param("category_id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Invalid category id")
		return nil, false
	}

	var category models.BlogCategory
	if err := h.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Category does not exist")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		}
		return nil, false
	}
	return &category, true
}
