package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"schoolms/internal/config"
	"schoolms/internal/database"
	"schoolms/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StudentHandler struct {
	cfg *config.Config
}

func NewStudentHandler(cfg *config.Config) *StudentHandler {
	return &StudentHandler{cfg: cfg}
}

type CreateStudentRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"` // optional, falls back to the configured default
	StudentID string `json:"student_id" binding:"required"`
	ClassID   uint   `json:"class_id" binding:"required"`
	RollNum   int    `json:"roll_num" binding:"required"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob"` // YYYY-MM-DD
	Address   string `json:"address"`
}

var (
	errDuplicateEmail     = errors.New("email already exists")
	errInvalidClass       = errors.New("class not found")
	errDuplicateStudentID = errors.New("student ID already exists")
)

// CreateStudent creates the principal and its student profile as one unit.
// Both writes run in a single transaction so a failed profile step can never
// leave an orphan principal behind.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date of birth format (use YYYY-MM-DD)"})
			return
		}
		dob = &parsed
	}

	password := req.Password
	if password == "" {
		password = h.cfg.Auth.DefaultStudentPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var profile models.StudentProfile

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			return errDuplicateEmail
		}

		user := models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateEmail
			}
			return err
		}

		var class models.Class
		if err := tx.First(&class, req.ClassID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errInvalidClass
			}
			return err
		}

		profile = models.StudentProfile{
			UserID:    user.ID,
			StudentID: req.StudentID,
			ClassID:   class.ID,
			RollNum:   req.RollNum,
			Gender:    req.Gender,
			DOB:       dob,
			Address:   req.Address,
		}
		if err := tx.Create(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateStudentID
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
	case errors.Is(err, errInvalidClass):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class not found"})
		return
	case errors.Is(err, errDuplicateStudentID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID already exists"})
		return
	default:
		log.Printf("CreateStudent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
		return
	}

	database.DB.Preload("User").Preload("Class").First(&profile, profile.ID)

	c.JSON(http.StatusCreated, gin.H{"student": profile})
}

// ListStudents returns student profiles joined with safe principal fields.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	query := database.DB.Preload("User").Preload("Class").Order("id")

	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}

	var students []models.StudentProfile
	if err := query.Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}

// GetStudent returns one student profile with its principal and class.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.StudentProfile
	if err := database.DB.Preload("User").Preload("Class").First(&student, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}
