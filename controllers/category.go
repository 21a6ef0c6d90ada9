package controllers

import (
	"net/http"
	"strings"
	"time"

	"review-portal-api/config"
	"review-portal-api/models"

	"github.com/gin-gonic/gin"
)

// GetCategories lists categories, optionally filtered by artifact kind.
func GetCategories(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")

	if kind := strings.TrimSpace(c.Query("category_for")); kind != "" {
		query = query.Where("category_for = ?", kind)
	}

	var categories []models.Category
	if err := query.Order("category_name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"total":      len(categories),
	})
}

// CreateCategory adds a category for one artifact kind.
func CreateCategory(c *gin.Context) {
	var req struct {
		CategoryName string `json:"category_name" binding:"required"`
		CategoryFor  string `json:"category_for" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validSubmissionType(req.CategoryFor) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_for must be abstract, best_paper or award"})
		return
	}

	now := time.Now()
	category := models.Category{
		CategoryName: strings.TrimSpace(req.CategoryName),
		CategoryFor:  req.CategoryFor,
		CreateAt:     now,
		UpdateAt:     now,
	}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"category": category,
	})
}

func validSubmissionType(kind string) bool {
	switch kind {
	case models.SubmissionTypeAbstract, models.SubmissionTypeBestPaper, models.SubmissionTypeAward:
		return true
	}
	return false
}
