package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/session"
)

// SessionReader é implementado por *session.Signer.
type SessionReader interface {
	FromRequest(r *http.Request) (*entity.SessionUser, error)
}

// RequireSession responde 401 quando o cookie "user" falta ou não é válido.
func RequireSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := sessions.FromRequest(r)
			if err != nil {
				message := "Sessão inválida"
				if errors.Is(err, session.ErrNoSession) {
					message = "Não autenticado"
				} else {
					log.Printf("⚠️ Cookie de sessão rejeitado: %v", err)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": message})
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), user)))
		})
	}
}
