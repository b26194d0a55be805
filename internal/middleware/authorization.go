package middleware

import (
	"net/http"

	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

// RequireAuth blocks when no caller is present in context (set by WithAuth).
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CallerFrom(r.Context()); !ok {
			utils.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles allows the request only if the caller's role is in the
// allowed list.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFrom(r.Context())
			if !ok {
				utils.Error(w, http.StatusUnauthorized, "Access token required")
				return
			}
			if _, ok := allowed[caller.Role]; !ok {
				utils.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
