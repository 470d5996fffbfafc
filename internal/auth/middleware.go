package auth

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// RequireAuth is middleware that redirects unauthenticated requests to
// the login page for session-gated paths. The catalog, property detail
// pages, agent roster, and inquiry submission stay public; API paths
// (/api/...) are handled separately by RequireAPIKey.
func RequireAuth(sessions *SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isProtectedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if _, err := sessions.Validate(r); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimiter tracks failed API key attempts per IP.
type rateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

var apiKeyLimiter = &rateLimiter{
	attempts: make(map[string][]time.Time),
}

const (
	rateLimitWindow  = 1 * time.Minute
	rateLimitMaxFail = 10
)

// recordFailure records a failed attempt.
func (rl *rateLimiter) recordFailure(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.attempts[ip] = append(rl.prune(ip), time.Now())
}

// isLimited returns true if the IP has too many recent failures.
func (rl *rateLimiter) isLimited(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	recent := rl.prune(ip)
	rl.attempts[ip] = recent
	return len(recent) >= rateLimitMaxFail
}

// prune drops entries older than the window. Caller holds the lock.
func (rl *rateLimiter) prune(ip string) []time.Time {
	cutoff := time.Now().Add(-rateLimitWindow)
	valid := rl.attempts[ip][:0]
	for _, t := range rl.attempts[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}

// RequireAPIKey is middleware that validates Bearer token auth for /api/
// routes. Non-API routes pass through untouched. API key management
// paths (/api/keys) require session auth instead of bearer tokens.
// Returns 401 for missing/invalid keys, 429 for rate-limited IPs.
func RequireAPIKey(apiKeys *APIKeyStore, sessions *SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only intercept /api/ paths
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		// API key management endpoints require session auth (web UI), not bearer tokens
		if isAPIKeyManagementPath(r.URL.Path) {
			if _, err := sessions.Validate(r); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		ip := r.RemoteAddr

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		key := strings.TrimPrefix(authHeader, "Bearer ")

		if apiKeyLimiter.isLimited(ip) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		valid, err := apiKeys.Validate(key)
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if !valid {
			apiKeyLimiter.recordFailure(ip)
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isProtectedPath lists the session-gated parts of the site: the user
// panel (saved listings, own inquiries) and the admin back-office.
// Admin role is checked by the admin handlers themselves.
func isProtectedPath(path string) bool {
	if path == "/saved" || path == "/inquiries" || strings.HasPrefix(path, "/inquiries/") {
		return true
	}
	if strings.HasPrefix(path, "/admin/") {
		return true
	}
	// Saving a listing requires an account; sending an inquiry does not.
	if strings.HasPrefix(path, "/property/") && strings.HasSuffix(path, "/save") {
		return true
	}
	return false
}

func isAPIKeyManagementPath(path string) bool {
	return path == "/api/keys" || strings.HasPrefix(path, "/api/keys/")
}
