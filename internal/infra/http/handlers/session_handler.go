package handlers

import (
	"log"
	"net/http"

	"github.com/xavierca1/sankhya-leads/internal/infra/session"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Me devolve o usuário da sessão atual.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := session.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "", "Não autenticado")
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, user)
}

// Logout apaga o cookie de sessão.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	log.Printf("👋 Sessão encerrada")
	w.WriteHeader(http.StatusNoContent)
}
