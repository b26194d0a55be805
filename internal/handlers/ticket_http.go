package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhishek-kr07/quickdesk/internal/middleware"
	"github.com/abhishek-kr07/quickdesk/internal/service"
	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

// TicketHTTP wires HTTP endpoints to the ticket service.
type TicketHTTP struct {
	svc *service.TicketService
}

func NewTicketHTTP(svc *service.TicketService) *TicketHTTP {
	return &TicketHTTP{svc: svc}
}

// -----------------------------------------------------------------------------
// GET /api/tickets
// -----------------------------------------------------------------------------
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		qv := r.URL.Query()

		in := service.ListTicketsInput{
			Status:     strings.TrimSpace(qv.Get("status")),
			CategoryID: strings.TrimSpace(qv.Get("category")),
			Priority:   strings.TrimSpace(qv.Get("priority")),
			AssignedTo: strings.TrimSpace(qv.Get("assignedTo")),
			Page:       utils.QueryInt(qv, "page", 1),
			Limit:      utils.QueryInt(qv, "limit", 10),
			SortBy:     qv.Get("sortBy"),
			SortOrder:  qv.Get("sortOrder"),
		}

		items, pagination, err := h.svc.List(r.Context(), caller, in)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"tickets":    items,
			"pagination": pagination,
		})
	}
}

// -----------------------------------------------------------------------------
// GET /api/tickets/{id}
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		t, err := h.svc.Get(r.Context(), caller, id)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"ticket": t})
	}
}

// -----------------------------------------------------------------------------
// POST /api/tickets
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Subject     string   `json:"subject"`
		Description string   `json:"description"`
		CategoryID  string   `json:"categoryId"`
		Priority    string   `json:"priority"`
		Attachments []string `json:"attachments"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := h.svc.Create(r.Context(), caller, service.CreateTicketInput{
			Subject:     in.Subject,
			Description: in.Description,
			CategoryID:  in.CategoryID,
			Priority:    in.Priority,
			Attachments: in.Attachments,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message": "Ticket created successfully",
			"ticket":  t,
		})
	}
}

// -----------------------------------------------------------------------------
// PUT /api/tickets/{id}
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Status             string `json:"status"`
		AssignedTo         string `json:"assignedTo"`
		Priority           string `json:"priority"`
		StatusChangeReason string `json:"statusChangeReason"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := h.svc.Update(r.Context(), caller, id, service.UpdateTicketInput{
			Status:             in.Status,
			AssignedTo:         in.AssignedTo,
			Priority:           in.Priority,
			StatusChangeReason: in.StatusChangeReason,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message": "Ticket updated successfully",
			"ticket":  t,
		})
	}
}

// -----------------------------------------------------------------------------
// POST /api/tickets/{id}/comments
// -----------------------------------------------------------------------------
func (h *TicketHTTP) AddComment() http.HandlerFunc {
	type inDTO struct {
		Content string `json:"content"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := middleware.CallerFrom(r.Context())
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := h.svc.AddComment(r.Context(), caller, id, in.Content)
		if err != nil {
			respondError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message": "Comment added successfully",
			"comment": c,
		})
	}
}
