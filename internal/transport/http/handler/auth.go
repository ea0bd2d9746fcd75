package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-auth-api/internal/application/auth"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/go-auth-api/internal/pkg/validate"
	"github.com/go-auth-api/internal/transport/http/middleware"
)

// AuthHandler handles the passwordless email-code flow.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req auth.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, err := h.svc.RequestEmailCode(r.Context(), req.Email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"token": token})
}

func (h *AuthHandler) ConfirmCode(w http.ResponseWriter, r *http.Request) {
	var req auth.ConfirmCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	signed, err := h.svc.ConfirmEmailCode(r.Context(), req.Token, req.Code)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	setSessionCookie(w, signed)
	writeData(w, http.StatusOK, map[string]bool{"result": true})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	payload, ok := middleware.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	signed, err := h.svc.Refresh(r.Context(), payload)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	setSessionCookie(w, signed)
	writeData(w, http.StatusOK, map[string]bool{"result": true})
}

func setSessionCookie(w http.ResponseWriter, signed jwtinfra.SignedToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    signed.Token,
		Path:     "/",
		Expires:  signed.ExpiresAt.UTC().Truncate(time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
