package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/http/middleware"
	"github.com/xavierca1/sankhya-leads/internal/infra/integration/sankhya"
	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

// MinSearchChars é o tamanho mínimo do termo para consultar o ERP.
const MinSearchChars = 2

type BatchInfoExecutor interface {
	Execute(ctx context.Context, codigos []string) map[string]usecase.ProductInfo
}

type ProductHandler struct {
	Catalog     entity.ProductCatalog
	BatchInfoUC BatchInfoExecutor
}

func NewProductHandler(catalog entity.ProductCatalog, batch BatchInfoExecutor) *ProductHandler {
	return &ProductHandler{Catalog: catalog, BatchInfoUC: batch}
}

type batchInfoRequest struct {
	Codigos []entity.Code `json:"codigos"`
}

// BatchInfo atende POST /api/sankhya/produtos/batch-info.
func (h *ProductHandler) BatchInfo(w http.ResponseWriter, r *http.Request) {
	var req batchInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Codigos == nil {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "Códigos de produtos são obrigatórios")
		return
	}

	codigos := make([]string, len(req.Codigos))
	for i, c := range req.Codigos {
		codigos[i] = c.String()
	}

	result := h.BatchInfoUC.Execute(r.Context(), codigos)
	for _, info := range result {
		if info.Error {
			middleware.RecordBatchItem("error")
		} else {
			middleware.RecordBatchItem("ok")
		}
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, result)
}

type searchResponse struct {
	Produtos []entity.Product `json:"produtos"`
	Total    int              `json:"total"`
}

// Search atende GET /api/sankhya/produtos/search?q=&limit=.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len([]rune(q)) < MinSearchChars {
		writeJSON(w, http.StatusOK, searchResponse{Produtos: []entity.Product{}})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "INVALID_LIMIT", "limit inválido")
			return
		}
		limit = n
	}

	produtos, err := h.Catalog.Search(r.Context(), q, limit)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeSankhya, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Produtos: produtos, Total: len(produtos)})
}

type stockResponse struct {
	Estoques     []entity.StockLocation `json:"estoques"`
	EstoqueTotal float64                `json:"estoqueTotal"`
	Total        int                    `json:"total"`
}

// Stock atende GET /api/sankhya/produtos/estoque?codProd=&searchLocal=.
func (h *ProductHandler) Stock(w http.ResponseWriter, r *http.Request) {
	codProd := strings.TrimSpace(r.URL.Query().Get("codProd"))
	if codProd == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "codProd é obrigatório")
		return
	}

	summary, err := h.Catalog.Stock(r.Context(), codProd, r.URL.Query().Get("searchLocal"))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeSankhya, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, stockResponse{
		Estoques:     summary.Locations,
		EstoqueTotal: summary.Total,
		Total:        len(summary.Locations),
	})
}

// Price atende GET /api/sankhya/produtos/preco?codProd=.
func (h *ProductHandler) Price(w http.ResponseWriter, r *http.Request) {
	codProd := strings.TrimSpace(r.URL.Query().Get("codProd"))
	if codProd == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "codProd é obrigatório")
		return
	}

	preco, err := h.Catalog.Price(r.Context(), codProd)
	if errors.Is(err, sankhya.ErrProductNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", err.Error())
		return
	}
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodePriceLookup, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"preco": preco})
}
