package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wordnest/wordnest-backend/internal/domain"
)

// writeServiceError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged; domain errors are the client's
// problem and are not.
func writeServiceError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		log.ErrorContext(ctx, "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
