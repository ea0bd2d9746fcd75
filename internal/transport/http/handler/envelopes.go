package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-auth-api/internal/domain"
	"github.com/go-auth-api/internal/transport/http/envelope"
)

func writeData(w http.ResponseWriter, status int, data interface{}) {
	envelope.WriteData(w, status, data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	envelope.WriteError(w, status, msg)
}

// WriteDomainError is the single boundary translator from the error taxonomy
// to HTTP statuses. Anything outside the taxonomy becomes a generic 500 with
// a safe message.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrInvalidVerification):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		slog.Error("unexpected error", "err", err)
		writeError(w, http.StatusInternalServerError, "unexpected error")
	}
}
