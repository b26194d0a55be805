package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/abhishek-kr07/quickdesk/internal/middleware"
	"github.com/abhishek-kr07/quickdesk/internal/service"
	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

type AuthHTTP struct {
	svc *service.AuthService
}

func NewAuthHTTP(s *service.AuthService) *AuthHTTP {
	return &AuthHTTP{svc: s}
}

func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Register(r.Context(), in.Name, in.Email, in.Password)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully",
			"user":    u,
		})
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, u, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			respondError(w, err)
			return
		}

		// httpOnly session cookie; token also returned for bearer use
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  time.Now().Add(24 * time.Hour),
		})

		utils.JSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   token,
			"user":    u,
		})
	}
}

func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := middleware.CallerFrom(r.Context())
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		u, err := h.svc.Me(r.Context(), caller.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"user": u})
	}
}
