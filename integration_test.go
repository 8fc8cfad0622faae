package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edumate/ai"
	"edumate/handlers"
	"edumate/middleware"
	"edumate/models"
	"edumate/store"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

type fakeUpstream struct {
	text string
	keys []string
}

func (f *fakeUpstream) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	f.keys = append(f.keys, apiKey)
	return f.text, nil
}

func setupIntegrationTest(t *testing.T, upstream ai.Upstream) *chi.Mux {
	t.Helper()
	godotenv.Load(".env.test")

	// Fresh in-memory state per test
	handlers.Users = store.NewUsers()
	handlers.Projects = store.NewCollection[models.Project]()
	handlers.Notes = store.NewCollection[models.Note]()

	rotator, err := ai.NewKeyRotator([]string{"test-key-1", "test-key-2", "test-key-3"})
	if err != nil {
		t.Fatalf("NewKeyRotator returned error: %v", err)
	}
	handlers.AI = ai.NewGenerator(rotator, upstream)

	// Same routing as main
	router := chi.NewRouter()
	router.Post("/api/auth/register", handlers.Register)
	router.Post("/api/auth/login", handlers.Login)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/api/auth/verify", handlers.Verify)
		r.Get("/api/projects", handlers.GetProjects)
		r.Post("/api/projects", handlers.CreateProject)
		r.Get("/api/projects/{id}", handlers.GetProject)
		r.Put("/api/projects/{id}", handlers.UpdateProject)
		r.Delete("/api/projects/{id}", handlers.DeleteProject)
		r.Get("/api/notes", handlers.GetNotes)
		r.Post("/api/notes", handlers.CreateNote)
		r.Get("/api/notes/project/{projectId}", handlers.GetProjectNotes)
		r.Delete("/api/notes/{id}", handlers.DeleteNote)
		r.Post("/api/ai/generate-summary", handlers.GenerateSummary)
		r.Post("/api/ai/generate-quiz", handlers.GenerateQuiz)
		r.Post("/api/ai/generate-flashcards", handlers.GenerateFlashcards)
	})
	return router
}

func doJSON(router *chi.Mux, method, target, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func registerAndLogin(t *testing.T, router *chi.Mux, email string) string {
	t.Helper()
	resp := doJSON(router, "POST", "/api/auth/register", "", map[string]string{
		"firstName": "Inte",
		"lastName":  "Gration",
		"email":     email,
		"password":  "integration123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Register failed with status %v: %s", resp.Code, resp.Body.String())
	}
	var out map[string]any
	json.Unmarshal(resp.Body.Bytes(), &out)
	return out["token"].(string)
}

func TestAuthFlow(t *testing.T) {
	router := setupIntegrationTest(t, &fakeUpstream{})

	token := registerAndLogin(t, router, "a@x.com")

	// A fresh token passes verification
	resp := doJSON(router, "GET", "/api/auth/verify", token, nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Verify failed with status %v", resp.Code)
	}

	// Login issues a working token too
	resp = doJSON(router, "POST", "/api/auth/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "integration123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Login failed with status %v", resp.Code)
	}
	var loginOut map[string]any
	json.Unmarshal(resp.Body.Bytes(), &loginOut)
	if loginOut["token"] == "" {
		t.Errorf("Login response missing token")
	}

	// Registering the same email again is rejected
	resp = doJSON(router, "POST", "/api/auth/register", "", map[string]string{
		"firstName": "Dup",
		"lastName":  "Licate",
		"email":     "a@x.com",
		"password":  "whatever",
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Duplicate register: got status %v want %v", resp.Code, http.StatusBadRequest)
	}

	// No token, no access
	resp = doJSON(router, "GET", "/api/projects", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Unauthenticated request: got status %v want %v", resp.Code, http.StatusUnauthorized)
	}
}

func TestProjectOwnershipAcrossUsers(t *testing.T) {
	router := setupIntegrationTest(t, &fakeUpstream{})

	tokenU1 := registerAndLogin(t, router, "u1@x.com")
	tokenU2 := registerAndLogin(t, router, "u2@x.com")

	// U1 creates a project
	resp := doJSON(router, "POST", "/api/projects", tokenU1, map[string]string{
		"name": "Private research",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Create project failed with status %v", resp.Code)
	}

	// U2 cannot see it by id, and the response matches a genuinely
	// missing project
	foreign := doJSON(router, "GET", "/api/projects/1", tokenU2, nil)
	missing := doJSON(router, "GET", "/api/projects/999", tokenU2, nil)
	if foreign.Code != http.StatusNotFound {
		t.Errorf("Foreign project read: got status %v want %v", foreign.Code, http.StatusNotFound)
	}
	if foreign.Code != missing.Code || foreign.Body.String() != missing.Body.String() {
		t.Errorf("Foreign and missing responses differ: %q vs %q", foreign.Body.String(), missing.Body.String())
	}

	// U2's listing stays empty
	resp = doJSON(router, "GET", "/api/projects", tokenU2, nil)
	var projects []any
	json.Unmarshal(resp.Body.Bytes(), &projects)
	if len(projects) != 0 {
		t.Errorf("Expected no projects for U2, got %d", len(projects))
	}
}

func TestNotesLifecycle(t *testing.T) {
	router := setupIntegrationTest(t, &fakeUpstream{})
	token := registerAndLogin(t, router, "notes@x.com")

	// A note attached to a project id that was never created
	resp := doJSON(router, "POST", "/api/notes", token, map[string]any{
		"title":     "Orphan",
		"content":   "references project 42",
		"projectId": 42,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Create note failed with status %v", resp.Code)
	}

	doJSON(router, "POST", "/api/notes", token, map[string]any{
		"title":   "Loose",
		"content": "no project",
	})

	resp = doJSON(router, "GET", "/api/notes/project/42", token, nil)
	var notes []map[string]any
	json.Unmarshal(resp.Body.Bytes(), &notes)
	if len(notes) != 1 || notes[0]["title"] != "Orphan" {
		t.Errorf("Expected only the orphan note for project 42, got %v", notes)
	}

	resp = doJSON(router, "DELETE", "/api/notes/1", token, nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Delete note failed with status %v", resp.Code)
	}

	resp = doJSON(router, "GET", "/api/notes", token, nil)
	json.Unmarshal(resp.Body.Bytes(), &notes)
	if len(notes) != 1 || notes[0]["title"] != "Loose" {
		t.Errorf("Expected only the loose note to remain, got %v", notes)
	}
}

func TestGenerateEndpoints(t *testing.T) {
	upstream := &fakeUpstream{text: `Of course! [{"front": "HTTP", "back": "Hypertext Transfer Protocol"}]`}
	router := setupIntegrationTest(t, upstream)
	token := registerAndLogin(t, router, "gen@x.com")

	resp := doJSON(router, "POST", "/api/ai/generate-flashcards", token, map[string]any{
		"content":       "networking basics",
		"numberOfCards": 1,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Generate flashcards failed with status %v: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Flashcards []ai.Flashcard `json:"flashcards"`
	}
	json.Unmarshal(resp.Body.Bytes(), &out)
	if len(out.Flashcards) != 1 || out.Flashcards[0].Front != "HTTP" {
		t.Errorf("Unexpected flashcards: %+v", out.Flashcards)
	}

	// Missing content is the caller's error
	resp = doJSON(router, "POST", "/api/ai/generate-quiz", token, map[string]any{})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Missing content: got status %v want %v", resp.Code, http.StatusBadRequest)
	}

	// Generation requires a token like everything else
	resp = doJSON(router, "POST", "/api/ai/generate-summary", "", map[string]any{"content": "x"})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Unauthenticated generate: got status %v want %v", resp.Code, http.StatusUnauthorized)
	}

	// Consecutive calls rotate through the key pool
	doJSON(router, "POST", "/api/ai/generate-summary", token, map[string]any{"content": "x"})
	if len(upstream.keys) < 2 || upstream.keys[0] == upstream.keys[1] {
		t.Errorf("Expected consecutive calls to use different keys, got %v", upstream.keys)
	}
}
