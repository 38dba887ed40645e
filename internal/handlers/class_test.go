package handlers_test

import (
	"net/http"
	"testing"

	"schoolms/internal/database"
	"schoolms/internal/models"
)

func TestCreateClassDuplicate(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLoginAdmin(t, r)

	createClass(t, r, token, "10", "A")

	w := doRequest(t, r, http.MethodPost, "/api/classes", token, map[string]interface{}{
		"name":    "10",
		"section": "A",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate class: got %d, want 400", w.Code)
	}

	var count int64
	database.DB.Model(&models.Class{}).Count(&count)
	if count != 1 {
		t.Errorf("class count = %d after duplicate attempt, want 1", count)
	}
}

func TestSameNameDifferentSection(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLoginAdmin(t, r)

	createClass(t, r, token, "10", "A")
	createClass(t, r, token, "10", "B")

	var count int64
	database.DB.Model(&models.Class{}).Count(&count)
	if count != 2 {
		t.Errorf("class count = %d, want 2", count)
	}
}

func TestListClassesInsertionOrder(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLoginAdmin(t, r)

	createClass(t, r, token, "10", "B")
	createClass(t, r, token, "9", "A")
	createClass(t, r, token, "11", "C")

	w := doRequest(t, r, http.MethodGet, "/api/classes", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list classes: got %d", w.Code)
	}

	classes := decodeBody(t, w)["classes"].([]interface{})
	if len(classes) != 3 {
		t.Fatalf("got %d classes, want 3", len(classes))
	}
	wantNames := []string{"10", "9", "11"}
	for i, raw := range classes {
		class := raw.(map[string]interface{})
		if class["name"] != wantNames[i] {
			t.Errorf("classes[%d].name = %v, want %s", i, class["name"], wantNames[i])
		}
	}
}

func TestCreateClassUnknownTeacher(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLoginAdmin(t, r)

	w := doRequest(t, r, http.MethodPost, "/api/classes", token, map[string]interface{}{
		"name":             "10",
		"section":          "A",
		"class_teacher_id": 42,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown class teacher: got %d, want 400", w.Code)
	}
}

func TestGetClassNotFound(t *testing.T) {
	r, _ := setupTest(t)
	token := registerAndLoginAdmin(t, r)

	w := doRequest(t, r, http.MethodGet, "/api/classes/99", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing class: got %d, want 404", w.Code)
	}
}
