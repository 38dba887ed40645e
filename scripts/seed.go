package main

import (
	"fmt"
	"log"
	"time"

	"schoolms/internal/config"
	"schoolms/internal/database"
	"schoolms/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a development database with an admin, two classes, a teacher and a
// handful of students with attendance and fee records.
func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.DB

	adminHash := mustHash("adminpassword")
	admin := models.User{
		Name:         "School Admin",
		Email:        "admin@school.com",
		PasswordHash: adminHash,
		Role:         models.RoleAdmin,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	teacherUser := models.User{
		Name:         "Jane Mwangi",
		Email:        "jane.mwangi@school.com",
		PasswordHash: mustHash(cfg.Auth.DefaultTeacherPassword),
		Role:         models.RoleTeacher,
	}
	if err := db.Where("email = ?", teacherUser.Email).FirstOrCreate(&teacherUser).Error; err != nil {
		log.Fatalf("Failed to seed teacher user: %v", err)
	}
	teacher := models.TeacherProfile{
		UserID:        teacherUser.ID,
		EmployeeID:    "EMP-001",
		Qualification: "B.Ed Mathematics",
		Subjects:      "Mathematics,Physics",
		Phone:         "+254700000001",
	}
	if err := db.Where("user_id = ?", teacherUser.ID).FirstOrCreate(&teacher).Error; err != nil {
		log.Fatalf("Failed to seed teacher profile: %v", err)
	}

	classes := []models.Class{
		{Name: "10", Section: "A", ClassTeacherID: &teacher.ID},
		{Name: "10", Section: "B"},
	}
	for i := range classes {
		if err := db.Where("name = ? AND section = ?", classes[i].Name, classes[i].Section).
			FirstOrCreate(&classes[i]).Error; err != nil {
			log.Fatalf("Failed to seed class: %v", err)
		}
	}

	studentNames := []string{"Amina Hassan", "Brian Otieno", "Cynthia Wanjiru", "David Kiprop"}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for i, name := range studentNames {
		email := fmt.Sprintf("student%d@school.com", i+1)
		user := models.User{
			Name:         name,
			Email:        email,
			PasswordHash: mustHash(cfg.Auth.DefaultStudentPassword),
			Role:         models.RoleStudent,
		}
		if err := db.Where("email = ?", email).FirstOrCreate(&user).Error; err != nil {
			log.Fatalf("Failed to seed student user: %v", err)
		}

		profile := models.StudentProfile{
			UserID:    user.ID,
			StudentID: fmt.Sprintf("ADM-%03d", i+1),
			ClassID:   classes[i%len(classes)].ID,
			RollNum:   i + 1,
		}
		if err := db.Where("user_id = ?", user.ID).FirstOrCreate(&profile).Error; err != nil {
			log.Fatalf("Failed to seed student profile: %v", err)
		}

		attendance := models.Attendance{
			StudentProfileID: profile.ID,
			ClassID:          profile.ClassID,
			Date:             today,
			Status:           models.AttendancePresent,
			MarkedBy:         &teacherUser.ID,
		}
		if err := db.Where("student_profile_id = ? AND date = ?", profile.ID, today).
			FirstOrCreate(&attendance).Error; err != nil {
			log.Fatalf("Failed to seed attendance: %v", err)
		}

		fee := models.Fee{
			StudentProfileID: profile.ID,
			Title:            "Term 1 Tuition",
			Amount:           500,
			DueDate:          today.AddDate(0, 1, 0),
			Status:           models.FeePending,
		}
		if err := db.Where("student_profile_id = ? AND title = ?", profile.ID, fee.Title).
			FirstOrCreate(&fee).Error; err != nil {
			log.Fatalf("Failed to seed fee: %v", err)
		}
	}

	log.Println("Seed completed")
	log.Println("Admin login: admin@school.com / adminpassword")
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}
