package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"schoolms/internal/config"
	"schoolms/internal/database"
	"schoolms/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TeacherHandler struct {
	cfg *config.Config
}

func NewTeacherHandler(cfg *config.Config) *TeacherHandler {
	return &TeacherHandler{cfg: cfg}
}

type CreateTeacherRequest struct {
	Name          string   `json:"name" binding:"required,min=2,max=100"`
	Email         string   `json:"email" binding:"required,email"`
	Password      string   `json:"password"` // optional, falls back to the configured default
	EmployeeID    string   `json:"employee_id" binding:"required"`
	Qualification string   `json:"qualification"`
	Subjects      []string `json:"subjects"`
	Phone         string   `json:"phone"`
}

var errDuplicateEmployeeID = errors.New("employee ID already exists")

// CreateTeacher creates the principal and its teacher profile as one unit,
// same transactional pairing as CreateStudent minus the class check.
func (h *TeacherHandler) CreateTeacher(c *gin.Context) {
	var req CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	password := req.Password
	if password == "" {
		password = h.cfg.Auth.DefaultTeacherPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var profile models.TeacherProfile

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return errDuplicateEmail
		}

		user := models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         models.RoleTeacher,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateEmail
			}
			return err
		}

		profile = models.TeacherProfile{
			UserID:        user.ID,
			EmployeeID:    req.EmployeeID,
			Qualification: req.Qualification,
			Subjects:      strings.Join(req.Subjects, ","),
			Phone:         req.Phone,
		}
		if err := tx.Create(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateEmployeeID
			}
			return err
		}

		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	case errors.Is(err, errDuplicateEmployeeID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee ID already exists"})
		return
	default:
		log.Printf("CreateTeacher: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create teacher"})
		return
	}

	database.DB.Preload("User").First(&profile, profile.ID)

	c.JSON(http.StatusCreated, gin.H{"teacher": profile})
}

// ListTeachers returns teacher profiles joined with safe principal fields.
func (h *TeacherHandler) ListTeachers(c *gin.Context) {
	var teachers []models.TeacherProfile
	if err := database.DB.Preload("User").Order("id").Find(&teachers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teachers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"teachers": teachers})
}

// GetTeacher returns one teacher profile with its principal.
func (h *TeacherHandler) GetTeacher(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid teacher ID"})
		return
	}

	var teacher models.TeacherProfile
	if err := database.DB.Preload("User").First(&teacher, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Teacher not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"teacher": teacher})
}
