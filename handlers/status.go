package handlers

import (
	"errors"
	"net/http"

	"github.com/Aayush9266/gtd-app/services"
	"github.com/Aayush9266/gtd-app/storage"
)

// statusForError maps the service error taxonomy to HTTP status codes.
func statusForError(err error) int {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, storage.ErrStorageFull):
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}
