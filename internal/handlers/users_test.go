package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aymanElshayeb/reactExampleBackend/internal/models"
)

func TestCreateUser(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := performJSON(t, r, http.MethodPost, "/api/users", models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "ROLE_USER",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created models.User
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected assigned id in response")
	}
	if created.Username != "alice" {
		t.Errorf("expected username alice, got %q", created.Username)
	}
}

func TestGetUsers(t *testing.T) {
	r, db := setupTestRouter(t)

	t.Run("empty collection", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", w.Code)
		}
	})

	t.Run("with users", func(t *testing.T) {
		seedRouterUser(t, db, "alice")
		seedRouterUser(t, db, "bob")

		req, _ := http.NewRequest(http.MethodGet, "/api/users", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var users []models.User
		if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(users) != 2 {
			t.Errorf("expected 2 users, got %d", len(users))
		}
	})
}

func TestGetUserByID(t *testing.T) {
	r, db := setupTestRouter(t)
	user := seedRouterUser(t, db, "alice")

	t.Run("existing user", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var found models.User
		if err := json.Unmarshal(w.Body.Bytes(), &found); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("expected id %d, got %d", user.ID, found.ID)
		}
	})

	t.Run("nonexistent user", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/users/9999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/users/abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestGetUserByUsername(t *testing.T) {
	r, db := setupTestRouter(t)
	seedRouterUser(t, db, "alice")

	t.Run("existing username", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/users/username/alice", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var found models.User
		if err := json.Unmarshal(w.Body.Bytes(), &found); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if found.Username != "alice" {
			t.Errorf("expected alice, got %q", found.Username)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/users/username/nobody", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}

func TestGetTasksOfUser(t *testing.T) {
	r, db := setupTestRouter(t)
	user := seedRouterUser(t, db, "alice")

	t.Run("existing user with no tasks", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%d/tasks", user.ID), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("expected 204 for empty task list, got %d", w.Code)
		}
	})

	t.Run("nonexistent user", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/users/9999/tasks", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 for missing user, got %d", w.Code)
		}
	})

	t.Run("user with tasks", func(t *testing.T) {
		task := &models.Task{UserID: user.ID, Name: "T1"}
		if err := db.Create(task).Error; err != nil {
			t.Fatalf("failed to seed task: %v", err)
		}

		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/users/%d/tasks", user.ID), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		var tasks []models.Task
		if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(tasks) != 1 || tasks[0].Name != "T1" {
			t.Errorf("expected the seeded task, got %+v", tasks)
		}
	})
}
