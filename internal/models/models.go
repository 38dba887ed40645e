package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a User can hold. Role is fixed at creation and never upgraded in place.
const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
	RoleParent  = "PARENT"
)

// Attendance statuses
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
	AttendanceExcused = "Excused"
)

// Fee statuses
const (
	FeePending = "Pending"
	FeePaid    = "Paid"
	FeeOverdue = "Overdue"
)

// User is the authenticable principal: credentials plus a fixed role.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null;size:100" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null;size:100" json:"email"`
	PasswordHash string         `gorm:"not null;size:255" json:"-"`
	Role         string         `gorm:"not null;size:20" json:"role"` // ADMIN, TEACHER, STUDENT, PARENT
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// StudentProfile owns exactly one User with role STUDENT.
type StudentProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	StudentID string         `gorm:"uniqueIndex;not null;size:50" json:"student_id"` // admission number
	ClassID   uint           `gorm:"not null;index" json:"class_id"`
	RollNum   int            `gorm:"not null" json:"roll_num"`
	Gender    string         `gorm:"size:20" json:"gender,omitempty"`
	DOB       *time.Time     `gorm:"type:date" json:"dob,omitempty"`
	Address   string         `gorm:"type:text" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Class Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// TeacherProfile owns exactly one User with role TEACHER.
type TeacherProfile struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	EmployeeID    string         `gorm:"uniqueIndex;not null;size:50" json:"employee_id"`
	Qualification string         `gorm:"size:255" json:"qualification,omitempty"`
	Subjects      string         `gorm:"size:255" json:"subjects,omitempty"` // comma-separated subject names
	Phone         string         `gorm:"size:20" json:"phone,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Class is a single class+section grouping, e.g. "10"+"A".
// The (name, section) pair is enforced unique at the storage layer.
type Class struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null;size:50;uniqueIndex:idx_classes_name_section" json:"name"`
	Section        string         `gorm:"not null;size:10;uniqueIndex:idx_classes_name_section" json:"section"`
	ClassTeacherID *uint          `json:"class_teacher_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	ClassTeacher *TeacherProfile `gorm:"foreignKey:ClassTeacherID" json:"class_teacher,omitempty"`
}

// Attendance is one status observation for one student on one calendar day.
// Date is normalized to midnight UTC; the (student, date) pair is enforced
// unique at the storage layer so concurrent submissions cannot double-mark.
type Attendance struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StudentProfileID uint      `gorm:"not null;uniqueIndex:idx_attendance_student_date" json:"student_profile_id"`
	ClassID          uint      `gorm:"not null;index" json:"class_id"`
	Date             time.Time `gorm:"not null;type:date;uniqueIndex:idx_attendance_student_date" json:"date"`
	Status           string    `gorm:"not null;size:20" json:"status"` // Present, Absent, Late, Excused
	Remarks          string    `gorm:"type:text" json:"remarks,omitempty"`
	MarkedBy         *uint     `json:"marked_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Student StudentProfile `gorm:"foreignKey:StudentProfileID" json:"student,omitempty"`
	Class   Class          `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// Fee is one billable obligation for a student. Status moves Pending->Paid
// exactly once; Overdue is reserved for an external due-date sweep.
type Fee struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	StudentProfileID uint       `gorm:"not null;index" json:"student_profile_id"`
	Title            string     `gorm:"not null;size:255" json:"title"`
	Description      string     `gorm:"type:text" json:"description,omitempty"`
	Amount           float64    `gorm:"not null" json:"amount"`
	DueDate          time.Time  `gorm:"not null;type:date" json:"due_date"`
	Status           string     `gorm:"not null;size:20;default:Pending" json:"status"`
	PaidDate         *time.Time `json:"paid_date,omitempty"`
	TransactionID    string     `gorm:"size:100" json:"transaction_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Student StudentProfile `gorm:"foreignKey:StudentProfileID" json:"student,omitempty"`
}
