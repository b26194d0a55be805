package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhishek-kr07/quickdesk/internal/middleware"
	"github.com/abhishek-kr07/quickdesk/internal/service"
	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

// UserHTTP covers the admin user-management endpoints. Passwords never
// appear in responses (the model field is json:"-").
type UserHTTP struct {
	svc *service.UserService
}

func NewUserHTTP(svc *service.UserService) *UserHTTP {
	return &UserHTTP{svc: svc}
}

// GET /api/users
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		users, err := h.svc.List(r.Context(), caller)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"users": users})
	}
}

// GET /api/users/{id}
func (h *UserHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		u, err := h.svc.Get(r.Context(), caller, chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"user": u})
	}
}

// PUT /api/users/{id}
func (h *UserHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Update(r.Context(), caller, chi.URLParam(r, "id"), service.UpdateUserInput{
			Name:  in.Name,
			Email: in.Email,
			Role:  in.Role,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message": "User updated successfully",
			"user":    u,
		})
	}
}

// DELETE /api/users/{id}
func (h *UserHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		u, err := h.svc.Delete(r.Context(), caller, chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message": "User deleted successfully",
			"user":    u,
		})
	}
}

// GET /api/users/stats/overview
func (h *UserHTTP) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		st, err := h.svc.Stats(r.Context(), caller)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"stats": st})
	}
}
