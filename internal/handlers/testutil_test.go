package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"schoolms/internal/config"
	"schoolms/internal/database"
	"schoolms/internal/router"

	"github.com/gin-gonic/gin"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        "0",
			Environment: "test",
		},
		Database: config.DatabaseConfig{
			Type: "sqlite",
		},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			AccessTokenExpiry: time.Hour,
		},
		Auth: config.AuthConfig{
			DefaultStudentPassword: "student123",
			DefaultTeacherPassword: "teacher123",
		},
	}
}

// setupTest gives each test a fresh in-memory schema behind the real router.
func setupTest(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	// a file-backed database per test: sqlite in-memory mode gives every
	// pooled connection its own empty database
	cfg.Database.SQLPath = filepath.Join(t.TempDir(), "test.db")
	if err := database.Connect(cfg); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return router.New(cfg), cfg
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return out
}

// registerAndLoginAdmin registers an admin principal and returns its token.
func registerAndLoginAdmin(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/register-admin", "", map[string]interface{}{
		"name":     "School Admin",
		"email":    "admin@school.com",
		"password": "adminpassword",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register admin: got %d: %s", w.Code, w.Body.String())
	}

	return login(t, r, "admin@school.com", "adminpassword")
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: got %d: %s", email, w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("login returned empty token")
	}
	return token
}

// createClass creates a class via the API and returns its id.
func createClass(t *testing.T, r *gin.Engine, token, name, section string) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/classes", token, map[string]interface{}{
		"name":    name,
		"section": section,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create class %s-%s: got %d: %s", name, section, w.Code, w.Body.String())
	}
	class := decodeBody(t, w)["class"].(map[string]interface{})
	return uint(class["id"].(float64))
}

// createStudent creates a student in the given class and returns the profile id.
func createStudent(t *testing.T, r *gin.Engine, token string, classID uint, n int) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/students", token, map[string]interface{}{
		"name":       fmt.Sprintf("Student %d", n),
		"email":      fmt.Sprintf("student%d@school.com", n),
		"student_id": fmt.Sprintf("ADM-%03d", n),
		"class_id":   classID,
		"roll_num":   n,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create student %d: got %d: %s", n, w.Code, w.Body.String())
	}
	student := decodeBody(t, w)["student"].(map[string]interface{})
	return uint(student["id"].(float64))
}
