package middleware

import (
	"net/http"
	"strings"
)

// BearerToken extracts the credential from an "Authorization: Bearer <token>" header.
// Anything else yields an empty string, which the verifier rejects.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
