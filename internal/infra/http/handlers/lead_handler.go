package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/session"
)

const defaultHistoryLimit = 50

type LeadListExecutor interface {
	Execute(ctx context.Context, user entity.SessionUser) ([]entity.Lead, error)
}

type HistoryReader interface {
	ListByLead(ctx context.Context, codLead string, limit int) ([]entity.LeadProductLog, error)
}

type LeadHandler struct {
	ListLeadsUC LeadListExecutor
	History     HistoryReader
}

// NewLeadHandler aceita history nil quando o banco de auditoria não está configurado.
func NewLeadHandler(uc LeadListExecutor, history HistoryReader) *LeadHandler {
	return &LeadHandler{ListLeadsUC: uc, History: history}
}

// List atende GET /api/leads. A sessão já foi validada pelo middleware.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	user, ok := session.UserFromContext(r.Context())
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "", "Não autenticado")
		return
	}

	leads, err := h.ListLeadsUC.Execute(r.Context(), *user)
	if err != nil {
		writeUseCaseError(w, err, "Erro ao consultar leads")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// ProductHistory atende GET /api/leads/{codLead}/produtos/historico.
func (h *LeadHandler) ProductHistory(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "HISTORY_DISABLED", "Histórico não configurado")
		return
	}

	codLead := strings.TrimSpace(chi.URLParam(r, "codLead"))
	if codLead == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "codLead é obrigatório")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_LIMIT", "limit inválido")
			return
		}
		limit = min(n, 500)
	}

	logs, err := h.History.ListByLead(r.Context(), codLead, limit)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "Erro ao consultar histórico")
		return
	}
	if logs == nil {
		logs = []entity.LeadProductLog{}
	}

	writeJSON(w, http.StatusOK, logs)
}
