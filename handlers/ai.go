package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"edumate/ai"
)

type generateRequest struct {
	Content           string `json:"content"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	NumberOfCards     int    `json:"numberOfCards"`
}

func GenerateSummary(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	json.NewDecoder(r.Body).Decode(&req)

	summary, err := AI.Summary(r.Context(), req.Content)
	if err != nil {
		writeGenerateError(w, err, "Failed to generate summary")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	json.NewDecoder(r.Body).Decode(&req)

	quiz, err := AI.Quiz(r.Context(), req.Content, req.NumberOfQuestions)
	if err != nil {
		writeGenerateError(w, err, "Failed to generate quiz")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quiz": quiz})
}

func GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	json.NewDecoder(r.Body).Decode(&req)

	cards, err := AI.Flashcards(r.Context(), req.Content, req.NumberOfCards)
	if err != nil {
		writeGenerateError(w, err, "Failed to generate flashcards")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"flashcards": cards})
}

// Missing content is the caller's fault; everything else that surfaces
// from the facade is an upstream failure and stays a generic 500.
func writeGenerateError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, ai.ErrNoContent) {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	writeError(w, http.StatusInternalServerError, message)
}
