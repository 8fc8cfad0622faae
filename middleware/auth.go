package middleware

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

func getJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	return []byte(secret)
}

// RequireAuth verifies the bearer token and puts the embedded user id
// into the request context. Every rejection uses the same status and
// body, whatever actually failed; details only go to the log.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			log.Printf("Auth Middleware - Bearer prefix missing in header")
			unauthorized(w)
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			return getJWTSecret(), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			log.Printf("Auth Middleware - Token parsing error: %v\n", err)
			unauthorized(w)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(w)
			return
		}

		// JWT numbers decode as float64
		userID, ok := claims["user_id"].(float64)
		if !ok {
			log.Printf("Auth Middleware - Missing or invalid user_id in claims")
			unauthorized(w)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), "userID", int(userID)))
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"Unauthorized"}`))
}
