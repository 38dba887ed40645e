package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"schoolms/internal/database"
	"schoolms/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClassHandler struct{}

func NewClassHandler() *ClassHandler {
	return &ClassHandler{}
}

type CreateClassRequest struct {
	Name           string `json:"name" binding:"required"`    // "10", "11"
	Section        string `json:"section" binding:"required"` // "A", "B"
	ClassTeacherID *uint  `json:"class_teacher_id,omitempty"`
}

// CreateClass creates a class+section grouping. The composite unique index
// is the authoritative duplicate guard; the pre-check is a fast path only.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ClassTeacherID != nil {
		var teacher models.TeacherProfile
		if err := database.DB.First(&teacher, *req.ClassTeacherID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Class teacher not found"})
			return
		}
	}

	var existing models.Class
	if err := database.DB.Where("name = ? AND section = ?", req.Name, req.Section).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class with this name and section already exists"})
		return
	}

	class := models.Class{
		Name:           req.Name,
		Section:        req.Section,
		ClassTeacherID: req.ClassTeacherID,
	}

	if err := database.DB.Create(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Class with this name and section already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create class"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"class": class})
}

// ListClasses returns all classes in insertion order.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	var classes []models.Class
	if err := database.DB.Preload("ClassTeacher").Order("id").Find(&classes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// GetClass returns a single class with its class teacher.
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	var class models.Class
	if err := database.DB.Preload("ClassTeacher").Preload("ClassTeacher.User").First(&class, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Class not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"class": class})
}
