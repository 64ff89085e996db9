package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/giganoto/fast-beta/internal/models"
	"github.com/giganoto/fast-beta/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler 把全部博客导出为 CSV / XLSX，供后台备份或迁移
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"ID", "Title", "Slug", "Category", "Tags", "Description", "Created At"}

func (h *ExportHandler) loadBlogs(c *gin.Context) ([]models.Blog, bool) {
	var blogs []models.Blog
	err := h.DB.Preload("Category").Preload("Tags").Order("id").Find(&blogs).Error
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
		return nil, false
	}
	return blogs, true
}

func exportRow(b *models.Blog) []string {
	tags := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		tags = append(tags, t.Name)
	}
	return []string{
		strconv.FormatUint(uint64(b.ID), 10),
		b.Title,
		b.SlugURL(),
		b.Category.Name,
		strings.Join(tags, ","),
		b.Description,
		b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ExportCSV 导出博客列表为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	blogs, ok := h.loadBlogs(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"blogs_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeader)
	for i := range blogs {
		writer.Write(exportRow(&blogs[i]))
	}
}

// ExportXLSX 导出博客列表为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	blogs, ok := h.loadBlogs(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Blogs"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, name)
	}
	for rowIdx := range blogs {
		row := exportRow(&blogs[rowIdx])
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"blogs_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Something went wrong")
	}
}
