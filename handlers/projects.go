package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"edumate/models"

	"github.com/go-chi/chi/v5"
)

func getUserID(r *http.Request) (int, bool) {
	userID, ok := r.Context().Value("userID").(int)
	return userID, ok
}

// idParam parses the named URL parameter. A non-numeric id can't match
// any record, so callers treat a parse failure like a lookup miss.
func idParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil
}

func GetProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, Projects.ListByOwner(userID))
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	project := Projects.Insert(func(id int) models.Project {
		return models.Project{
			ID:          id,
			UserID:      userID,
			Name:        req.Name,
			Description: req.Description,
			CreatedAt:   time.Now(),
		}
	})
	writeJSON(w, http.StatusCreated, project)
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	project, ok := Projects.Find(id, userID)
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var patch struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	json.NewDecoder(r.Body).Decode(&patch)

	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	project, ok := Projects.Update(id, userID, func(p *models.Project) {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		now := time.Now()
		p.UpdatedAt = &now
	})
	if !ok {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := idParam(r, "id")
	if !ok || !Projects.Delete(id, userID) {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}
