package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhishek-kr07/quickdesk/internal/config"
	"github.com/abhishek-kr07/quickdesk/internal/repository"
	"github.com/abhishek-kr07/quickdesk/internal/service"
	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

type ctxKey string

const ctxCaller ctxKey = "caller"

// CallerFrom returns the authenticated identity, if any.
func CallerFrom(ctx context.Context) (service.Caller, bool) {
	c, ok := ctx.Value(ctxCaller).(service.Caller)
	return c, ok
}

// WithAuth resolves the JWT from the "session" cookie or a Bearer
// header to a full caller profile. Requests without a valid token pass
// through unauthenticated; the gates downstream decide.
func WithAuth(log zerolog.Logger, cfg config.Config, users repository.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tok string
			if c, err := r.Cookie("session"); err == nil {
				tok = c.Value
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tok = strings.TrimPrefix(h, "Bearer ")
			}

			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.ParseJWT(cfg.SessionSecret, tok)
			if err != nil {
				// clear broken/expired cookie so it stops being sent
				http.SetCookie(w, &http.Cookie{
					Name:     "session",
					Value:    "",
					Path:     "/",
					HttpOnly: true,
					MaxAge:   -1,
				})
				next.ServeHTTP(w, r)
				return
			}

			// token subject must still exist
			u, err := users.Get(r.Context(), claims.UserID)
			if err != nil {
				log.Error().Err(err).Msg("caller lookup failed")
				utils.Error(w, http.StatusInternalServerError, "internal error")
				return
			}
			if u == nil {
				next.ServeHTTP(w, r)
				return
			}

			caller := service.Caller{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Role: u.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxCaller, caller)))
		})
	}
}
