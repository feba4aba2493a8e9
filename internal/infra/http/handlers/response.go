package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Erro ao escrever resposta: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeUseCaseError mapeia DomainError para 4xx e o resto para 500.
func writeUseCaseError(w http.ResponseWriter, err error, fallback string) {
	code := usecase.ErrorCode(err)
	message := err.Error()
	if message == "" {
		message = fallback
	}

	switch {
	case code == usecase.CodeInvalidSession:
		writeErrorResponse(w, http.StatusUnauthorized, code, message)
	case usecase.IsDomainError(err):
		writeErrorResponse(w, http.StatusBadRequest, code, message)
	default:
		log.Printf("❌ %s: %v", fallback, err)
		writeErrorResponse(w, http.StatusInternalServerError, code, message)
	}
}
