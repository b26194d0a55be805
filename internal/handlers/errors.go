package handlers

import (
	"errors"
	"net/http"

	"github.com/abhishek-kr07/quickdesk/internal/apperr"
	"github.com/abhishek-kr07/quickdesk/internal/utils"
)

// respondError maps a service error kind to an HTTP status. Validation
// errors carry their per-field detail.
func respondError(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		utils.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case apperr.Validation:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.AccessDenied:
		status = http.StatusForbidden
	case apperr.Unauthenticated:
		status = http.StatusUnauthorized
	case apperr.Conflict:
		status = http.StatusConflict
	}

	if len(e.Fields) > 0 {
		utils.JSON(w, status, map[string]any{"message": e.Message, "errors": e.Fields})
		return
	}
	utils.Error(w, status, e.Message)
}
