package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"edumate/ai"
	"edumate/handlers"
	appmw "edumate/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	rotator, err := ai.NewKeyRotator(splitKeys(os.Getenv("GEMINI_API_KEYS")))
	if err != nil {
		log.Fatal("GEMINI_API_KEYS must list at least one key")
	}
	handlers.AI = ai.NewGenerator(rotator, ai.NewGemini())

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/api/auth/register", handlers.Register)
	r.Post("/api/auth/login", handlers.Login)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth)
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

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Println("Server running on http://localhost:" + port)
	http.ListenAndServe(":"+port, r)
}

func splitKeys(s string) []string {
	var keys []string
	for _, key := range strings.Split(s, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
