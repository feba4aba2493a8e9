package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/integration/sankhya"
	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

func TestBatchInfoHandler(t *testing.T) {
	batch := new(MockBatchInfo)
	batch.On("Execute", mock.Anything, []string{"100", "200"}).Return(map[string]usecase.ProductInfo{
		"100": {Preco: 19.9, Estoque: 7.5},
		"200": {Error: true},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sankhya/produtos/batch-info", strings.NewReader(`{"codigos":[100,"200"]}`))
	rec := httptest.NewRecorder()
	NewProductHandler(new(MockCatalog), batch).BatchInfo(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=300", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"100":{"preco":19.9,"estoque":7.5},"200":{"preco":0,"estoque":0,"error":true}}`, rec.Body.String())
}

func TestBatchInfoHandlerRequiresCodes(t *testing.T) {
	for _, body := range []string{`{}`, `{"codigos":null}`, `{"codigos":"100"}`, `nada`} {
		t.Run(body, func(t *testing.T) {
			batch := new(MockBatchInfo)
			req := httptest.NewRequest(http.MethodPost, "/api/sankhya/produtos/batch-info", strings.NewReader(body))
			rec := httptest.NewRecorder()
			NewProductHandler(new(MockCatalog), batch).BatchInfo(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Códigos de produtos são obrigatórios","code":"MISSING_FIELDS"}`, rec.Body.String())
			assert.Empty(t, batch.Calls)
		})
	}
}

func TestBatchInfoHandlerEmptyList(t *testing.T) {
	batch := new(MockBatchInfo)
	batch.On("Execute", mock.Anything, []string{}).Return(map[string]usecase.ProductInfo{})

	req := httptest.NewRequest(http.MethodPost, "/api/sankhya/produtos/batch-info", strings.NewReader(`{"codigos":[]}`))
	rec := httptest.NewRecorder()
	NewProductHandler(new(MockCatalog), batch).BatchInfo(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestSearchHandler(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("Search", mock.Anything, "cimento", 5).Return([]entity.Product{{CodProd: "100", DescrProd: "CIMENTO CP-II"}}, nil)

	h := NewProductHandler(catalog, new(MockBatchInfo))

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/sankhya/produtos/search?q=cimento&limit=5", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"DESCRPROD":"CIMENTO CP-II"`)

	rec = httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/api/sankhya/produtos/search?q=c", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"produtos":[],"total":0}`, rec.Body.String())
	catalog.AssertNumberOfCalls(t, "Search", 1)
}

func TestStockHandler(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("Stock", mock.Anything, "100", "10").Return(entity.NewStockSummary("100", []entity.StockLocation{
		{ID: "100-101-", CodProd: "100", CodLocal: "101", Estoque: "4"},
		{ID: "100-102-", CodProd: "100", CodLocal: "102", Estoque: "3.5"},
	}), nil)
	catalog.On("Stock", mock.Anything, "200", "").Return(nil, errors.New("timeout"))

	h := NewProductHandler(catalog, new(MockBatchInfo))

	rec := httptest.NewRecorder()
	h.Stock(rec, httptest.NewRequest(http.MethodGet, "/api/sankhya/produtos/estoque?codProd=100&searchLocal=10", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"estoqueTotal":7.5`)
	assert.Contains(t, rec.Body.String(), `"total":2`)

	rec = httptest.NewRecorder()
	h.Stock(rec, httptest.NewRequest(http.MethodGet, "/api/sankhya/produtos/estoque?codProd=200", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.Stock(rec, httptest.NewRequest(http.MethodGet, "/api/sankhya/produtos/estoque", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceHandler(t *testing.T) {
	catalog := new(MockCatalog)
	catalog.On("Price", mock.Anything, "100").Return(19.9, nil)
	catalog.On("Price", mock.Anything, "999").Return(0.0, fmt.Errorf("produto 999: %w", sankhya.ErrProductNotFound))
	catalog.On("Price", mock.Anything, "500").Return(0.0, errors.New("502"))

	h := NewProductHandler(catalog, new(MockBatchInfo))

	cases := map[string]int{"100": http.StatusOK, "999": http.StatusNotFound, "500": http.StatusInternalServerError, "": http.StatusBadRequest}
	for codProd, want := range cases {
		rec := httptest.NewRecorder()
		h.Price(rec, httptest.NewRequest(http.MethodGet, "/api/sankhya/produtos/preco?codProd="+codProd, nil))
		assert.Equal(t, want, rec.Code, codProd)
	}

	rec := httptest.NewRecorder()
	h.Price(rec, httptest.NewRequest(http.MethodGet, "/api/sankhya/produtos/preco?codProd=100", nil))
	assert.JSONEq(t, `{"preco":19.9}`, rec.Body.String())
}
