package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"edumate/models"
)

func GetNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, Notes.ListByOwner(userID))
}

func CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Title     string `json:"title"`
		Content   string `json:"content"`
		ProjectID *int   `json:"projectId"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	// The project link is taken as-is: it may name a deleted or
	// foreign project and the note is still valid.
	note := Notes.Insert(func(id int) models.Note {
		return models.Note{
			ID:        id,
			UserID:    userID,
			ProjectID: req.ProjectID,
			Title:     req.Title,
			Content:   req.Content,
			CreatedAt: time.Now(),
		}
	})
	writeJSON(w, http.StatusCreated, note)
}

func GetProjectNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	projectID, ok := idParam(r, "projectId")
	if !ok {
		writeJSON(w, http.StatusOK, []models.Note{})
		return
	}
	notes := Notes.ListWhere(userID, func(n models.Note) bool {
		return n.ProjectID != nil && *n.ProjectID == projectID
	})
	writeJSON(w, http.StatusOK, notes)
}

func DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := idParam(r, "id")
	if !ok || !Notes.Delete(id, userID) {
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
