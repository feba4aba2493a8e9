package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/sankhya-leads/internal/infra/http/middleware"
	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

type AddProductExecutor interface {
	Execute(ctx context.Context, input usecase.AddProductInput) (*usecase.AddProductOutput, error)
}

type LeadProductHandler struct {
	AddProductUC AddProductExecutor
}

func NewLeadProductHandler(uc AddProductExecutor) *LeadProductHandler {
	return &LeadProductHandler{AddProductUC: uc}
}

// Add atende POST /api/leads/produtos/adicionar.
func (h *LeadProductHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.RecordLeadProductAdded("invalid")
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.AddProductUC.Execute(r.Context(), input)
	if err != nil {
		switch {
		case usecase.IsDomainError(err):
			middleware.RecordLeadProductAdded("invalid")
		case usecase.ErrorCode(err) == usecase.CodeLeadTotalStale:
			middleware.RecordLeadProductAdded("stale")
		default:
			middleware.RecordLeadProductAdded("error")
		}
		writeUseCaseError(w, err, "Erro ao adicionar produto")
		return
	}

	middleware.RecordLeadProductAdded("ok")
	writeJSON(w, http.StatusOK, output)
}
