package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"schoolms/internal/database"
	"schoolms/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler {
	return &AttendanceHandler{}
}

type BulkAttendanceRequest struct {
	ClassID uint              `json:"class_id" binding:"required"`
	Date    string            `json:"date" binding:"required"` // YYYY-MM-DD
	Records []AttendanceEntry `json:"records" binding:"required,min=1"`
}

type AttendanceEntry struct {
	StudentProfileID uint   `json:"student_profile_id" binding:"required"`
	Status           string `json:"status" binding:"required"` // Present, Absent, Late, Excused
	Remarks          string `json:"remarks,omitempty"`
}

type attendanceEntryError struct {
	StudentProfileID uint   `json:"student_profile_id"`
	Error            string `json:"error"`
}

var validStatuses = map[string]bool{
	models.AttendancePresent: true,
	models.AttendanceAbsent:  true,
	models.AttendanceLate:    true,
	models.AttendanceExcused: true,
}

// normalizeDay parses a YYYY-MM-DD string to midnight UTC so the
// (student, date) unique index means the same day for every client.
func normalizeDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// MarkBulk records one attendance entry per student for one day. Entries are
// independent writes: a (student, date) duplicate rejects that entry only and
// the response reports the partial success count.
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := normalizeDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (use YYYY-MM-DD)"})
		return
	}

	var class models.Class
	if err := database.DB.First(&class, req.ClassID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class not found"})
		return
	}

	markedByID := userID.(uint)
	count := 0
	var entryErrors []attendanceEntryError

	for _, record := range req.Records {
		if !validStatuses[record.Status] {
			entryErrors = append(entryErrors, attendanceEntryError{
				StudentProfileID: record.StudentProfileID,
				Error:            fmt.Sprintf("Invalid status %q", record.Status),
			})
			continue
		}

		var student models.StudentProfile
		if err := database.DB.Where("id = ? AND class_id = ?", record.StudentProfileID, req.ClassID).First(&student).Error; err != nil {
			entryErrors = append(entryErrors, attendanceEntryError{
				StudentProfileID: record.StudentProfileID,
				Error:            "Student not found in this class",
			})
			continue
		}

		attendance := models.Attendance{
			StudentProfileID: record.StudentProfileID,
			ClassID:          req.ClassID,
			Date:             date,
			Status:           record.Status,
			Remarks:          record.Remarks,
			MarkedBy:         &markedByID,
		}

		if err := database.DB.Create(&attendance).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				entryErrors = append(entryErrors, attendanceEntryError{
					StudentProfileID: record.StudentProfileID,
					Error:            "Attendance already marked for this date",
				})
			} else {
				entryErrors = append(entryErrors, attendanceEntryError{
					StudentProfileID: record.StudentProfileID,
					Error:            "Failed to create attendance record",
				})
			}
			continue
		}
		count++
	}

	switch {
	case len(entryErrors) == 0:
		c.JSON(http.StatusCreated, gin.H{"count": count})
	case count > 0:
		c.JSON(http.StatusMultiStatus, gin.H{"count": count, "errors": entryErrors})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"count": 0, "errors": entryErrors})
	}
}

// GetClassAttendance returns a class's attendance records joined with minimal
// student identity. Without ?date= all records for the class are returned.
func (h *AttendanceHandler) GetClassAttendance(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid class ID"})
		return
	}

	var class models.Class
	if err := database.DB.First(&class, classID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class not found"})
		return
	}

	query := database.DB.Where("class_id = ?", classID)

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := normalizeDay(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format (use YYYY-MM-DD)"})
			return
		}
		query = query.Where("date >= ? AND date < ?", date, date.AddDate(0, 0, 1))
	}

	var attendance []models.Attendance
	if err := query.
		Preload("Student").
		Preload("Student.User").
		Order("date, student_profile_id").
		Find(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": attendance})
}

// GetStudentStats returns per-status attendance counts for one student.
func (h *AttendanceHandler) GetStudentStats(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.StudentProfile
	if err := database.DB.Preload("User").First(&student, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var stats []struct {
		Status string
		Count  int
	}

	if err := database.DB.Model(&models.Attendance{}).
		Select("status, COUNT(*) as count").
		Where("student_profile_id = ?", studentID).
		Group("status").
		Scan(&stats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	result := map[string]int{
		models.AttendancePresent: 0,
		models.AttendanceAbsent:  0,
		models.AttendanceLate:    0,
		models.AttendanceExcused: 0,
	}

	total := 0
	for _, stat := range stats {
		result[stat.Status] = stat.Count
		total += stat.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"student": student,
		"stats":   result,
		"total":   total,
	})
}
