package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

// requireAdmin guards mutating handlers with the configured bearer token.
// When no token is configured the daemon is in local-trust mode and admin
// calls pass through; that matches a loopback-only deployment.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expected := strings.TrimSpace(s.cfg.APIToken)
		if expected == "" {
			next(w, r)
			return
		}
		presented, ok := parseBearerToken(r.Header.Get("Authorization"))
		if !ok || !constantTimeTokenEqual(expected, presented) {
			s.logger.Warn("unauthorized admin request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			writeAPIError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next(w, r)
	}
}

func parseBearerToken(headerValue string) (string, bool) {
	parts := strings.Fields(strings.TrimSpace(headerValue))
	if len(parts) != 2 {
		return "", false
	}
	// RFC 7235 treats auth-scheme tokens as case-insensitive.
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func constantTimeTokenEqual(expected, presented string) bool {
	expectedDigest := sha256.Sum256([]byte(expected))
	presentedDigest := sha256.Sum256([]byte(presented))
	return subtle.ConstantTimeCompare(expectedDigest[:], presentedDigest[:]) == 1
}

func actorFromRequest(r *http.Request) string {
	actor := strings.TrimSpace(r.Header.Get("X-Actor"))
	if actor == "" {
		return "local"
	}
	return actor
}
