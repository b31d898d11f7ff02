package middleware

import (
	"net/http"
)

// APIKeyHeader is the request header carrying the API key.
const APIKeyHeader = "X-API-KEY"

// AuthConfig holds the accepted API keys. An empty config disables
// authentication entirely.
type AuthConfig struct {
	keys map[string]struct{}
}

// NewAuthConfigWithKeys creates an AuthConfig accepting the given keys.
func NewAuthConfigWithKeys(keys []string) AuthConfig {
	if len(keys) == 0 {
		return AuthConfig{}
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k != "" {
			set[k] = struct{}{}
		}
	}
	return AuthConfig{keys: set}
}

// Enabled reports whether any keys are configured.
func (c AuthConfig) Enabled() bool { return len(c.keys) > 0 }

// Valid reports whether key is one of the configured keys.
func (c AuthConfig) Valid(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// WriteProtect returns a middleware that requires a valid API key for
// mutating requests. Safe methods (GET, HEAD, OPTIONS) always pass, as
// does everything when no keys are configured.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() || safeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			if !config.Valid(r.Header.Get(APIKeyHeader)) {
				WriteError(w, r, NewAuthenticationError("invalid or missing API key"), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteProtectAuth is a convenience wrapper building the middleware
// straight from a key list.
func WriteProtectAuth(keys []string) func(http.Handler) http.Handler {
	return WriteProtect(NewAuthConfigWithKeys(keys))
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
