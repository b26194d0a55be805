package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhishek-kr07/quickdesk/internal/middleware"
	"github.com/abhishek-kr07/quickdesk/internal/service"
	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

type CategoryHTTP struct {
	svc *service.CategoryService
}

func NewCategoryHTTP(svc *service.CategoryService) *CategoryHTTP {
	return &CategoryHTTP{svc: svc}
}

// GET /api/categories
func (h *CategoryHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := h.svc.List(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"categories": cats})
	}
}

// GET /api/categories/{id}
func (h *CategoryHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"category": c})
	}
}

// POST /api/categories
func (h *CategoryHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		c, err := h.svc.Create(r.Context(), caller, service.CategoryInput{
			Name:        in.Name,
			Description: in.Description,
			Color:       in.Color,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message":  "Category created successfully",
			"category": c,
		})
	}
}

// PUT /api/categories/{id}
func (h *CategoryHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Color       string `json:"color"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		c, err := h.svc.Update(r.Context(), caller, chi.URLParam(r, "id"), service.CategoryInput{
			Name:        in.Name,
			Description: in.Description,
			Color:       in.Color,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message":  "Category updated successfully",
			"category": c,
		})
	}
}

// DELETE /api/categories/{id}
func (h *CategoryHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		if err := h.svc.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Category deleted successfully"})
	}
}
