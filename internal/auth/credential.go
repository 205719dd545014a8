package auth

import (
	"net/http"
	"strings"
)

// ExtractCredential pulls the session token off a request. The
// Authorization header wins when it carries a Bearer token; otherwise
// the raw Cookie header is scanned for the first auth_token entry.
// The cookie scan intentionally works on the raw header — split on
// ';', prefix match, no URL decoding — matching what existing clients
// were issued.
func ExtractCredential(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tok := strings.TrimPrefix(authHeader, "Bearer ")
		if tok != "" {
			return tok, true
		}
	}
	for _, part := range strings.Split(r.Header.Get("Cookie"), ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, CookieName+"=") {
			tok := strings.TrimPrefix(part, CookieName+"=")
			if tok != "" {
				return tok, true
			}
			return "", false
		}
	}
	return "", false
}
