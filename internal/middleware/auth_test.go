package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"schoolms/internal/config"
	"schoolms/internal/middleware"
	"schoolms/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func testRouter(cfg *config.Config, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", middleware.AuthMiddleware(cfg))
	if len(allowed) > 0 {
		group.Use(middleware.RequireRole(allowed...))
	}
	group.GET("/ping", func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return r
}

func signToken(t *testing.T, secret string, role string, expiry time.Duration) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID: 1,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	r := testRouter(cfg)

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no header: got %d, want 401", w.Code)
	}
	if w := get(r, "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Errorf("non-bearer header: got %d, want 401", w.Code)
	}
	if w := get(r, "Bearer not.a.jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: got %d, want 401", w.Code)
	}

	expired := signToken(t, cfg.JWT.Secret, models.RoleAdmin, -time.Minute)
	if w := get(r, "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: got %d, want 401", w.Code)
	}

	wrongKey := signToken(t, "other-secret", models.RoleAdmin, time.Hour)
	if w := get(r, "Bearer "+wrongKey); w.Code != http.StatusUnauthorized {
		t.Errorf("token signed with wrong key: got %d, want 401", w.Code)
	}

	valid := signToken(t, cfg.JWT.Secret, models.RoleAdmin, time.Hour)
	if w := get(r, "Bearer "+valid); w.Code != http.StatusOK {
		t.Errorf("valid token: got %d, want 200", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}
	r := testRouter(cfg, models.RoleAdmin, models.RoleTeacher)

	teacher := signToken(t, cfg.JWT.Secret, models.RoleTeacher, time.Hour)
	if w := get(r, "Bearer "+teacher); w.Code != http.StatusOK {
		t.Errorf("allowed role: got %d, want 200", w.Code)
	}

	student := signToken(t, cfg.JWT.Secret, models.RoleStudent, time.Hour)
	if w := get(r, "Bearer "+student); w.Code != http.StatusForbidden {
		t.Errorf("excluded role: got %d, want 403", w.Code)
	}
}
