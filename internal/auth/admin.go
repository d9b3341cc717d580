// Package auth guards the administrative routes with a shared bearer token.
// Only a bcrypt hash of the token is configured.
package auth

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashToken hashes the admin token for the configuration file
func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckToken checks if the token matches the hash
func CheckToken(token, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
	return err == nil
}

// extractToken extracts the token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// AdminMiddleware rejects requests without a bearer token matching hash.
// With an empty hash every request passes, which is how the demo runs.
func AdminMiddleware(hash string, unauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" || !CheckToken(token, hash) {
				unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
