package handlers

import (
	"net/http"
	"strconv"
	"time"

	"schoolms/internal/database"
	"schoolms/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FeeHandler struct{}

func NewFeeHandler() *FeeHandler {
	return &FeeHandler{}
}

type AssignFeeRequest struct {
	StudentProfileID uint    `json:"student_profile_id" binding:"required"`
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	DueDate          string  `json:"due_date" binding:"required"` // YYYY-MM-DD
}

type PayFeeRequest struct {
	TransactionID string `json:"transaction_id"`
}

// AssignFee creates a billable obligation in state Pending.
func (h *FeeHandler) AssignFee(c *gin.Context) {
	var req AssignFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dueDate, err := normalizeDay(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date format (use YYYY-MM-DD)"})
		return
	}

	var student models.StudentProfile
	if err := database.DB.First(&student, req.StudentProfileID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student not found"})
		return
	}

	fee := models.Fee{
		StudentProfileID: req.StudentProfileID,
		Title:            req.Title,
		Description:      req.Description,
		Amount:           req.Amount,
		DueDate:          dueDate,
		Status:           models.FeePending,
	}

	if err := database.DB.Create(&fee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fee record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"fee": fee})
}

// ListStudentFees returns all fee records for one student.
func (h *FeeHandler) ListStudentFees(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("studentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student models.StudentProfile
	if err := database.DB.First(&student, studentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var fees []models.Fee
	if err := database.DB.Where("student_profile_id = ?", studentID).Order("due_date, id").Find(&fees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fees": fees})
}

// PayFee transitions a fee Pending->Paid, stamping the payment instant and a
// transaction id. Paying an already-Paid fee is a no-op: the record comes
// back unchanged, keeping the first PaidDate and TransactionID.
func (h *FeeHandler) PayFee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fee ID"})
		return
	}

	// body is optional: an empty PUT means "generate a transaction id"
	var req PayFeeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var fee models.Fee
	if err := database.DB.First(&fee, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fee not found"})
		return
	}

	if fee.Status == models.FeePaid {
		c.JSON(http.StatusOK, gin.H{"fee": fee})
		return
	}

	transactionID := req.TransactionID
	if transactionID == "" {
		transactionID = "TXN-" + uuid.NewString()
	}

	now := time.Now().UTC()
	fee.Status = models.FeePaid
	fee.PaidDate = &now
	fee.TransactionID = transactionID

	if err := database.DB.Save(&fee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee": fee})
}
