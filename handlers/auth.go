package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"edumate/ai"
	"edumate/models"
	"edumate/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Application state shared by all handlers. main wires AI at startup;
// tests swap in fresh stores and a stubbed generator.
var (
	Users    = store.NewUsers()
	Projects = store.NewCollection[models.Project]()
	Notes    = store.NewCollection[models.Note]()
	AI       *ai.Generator
)

type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func getJWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func issueToken(userID int, email string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	json.NewDecoder(r.Body).Decode(&req)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := Users.Create(models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := issueToken(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	json.NewDecoder(r.Body).Decode(&req)

	// Unknown email and wrong password take the same exit so the
	// response can't be used to probe which emails are registered.
	user, ok := Users.FindByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := issueToken(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Verify has nothing left to check: RequireAuth already rejected any
// request that reaches here with a bad token.
func Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}
