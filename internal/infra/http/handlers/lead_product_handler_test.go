package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

func postAdd(h *LeadProductHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/leads/produtos/adicionar", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Add(rec, req)
	return rec
}

func TestAddProductHandlerSuccess(t *testing.T) {
	uc := new(MockAddProduct)
	uc.On("Execute", mock.Anything, usecase.AddProductInput{
		CodLead:    "55",
		CodProd:    "100",
		DescrProd:  "CIMENTO",
		Quantidade: entity.Number(2),
	}).Return(&usecase.AddProductOutput{Success: true, NovoValorTotal: 39.8}, nil)

	rec := postAdd(NewLeadProductHandler(uc), `{"CODLEAD":55,"CODPROD":"100","DESCRPROD":"CIMENTO","QUANTIDADE":"2"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"novoValorTotal":39.8}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestAddProductHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "json inválido",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"JSON inválido","code":"INVALID_JSON"}`,
		},
		{
			name:       "quantidade não finita",
			body:       `{"CODLEAD":"55","CODPROD":"100","DESCRPROD":"X","QUANTIDADE":"NaN"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"JSON inválido","code":"INVALID_JSON"}`,
		},
		{
			name:       "validação",
			body:       `{}`,
			err:        &usecase.DomainError{Code: usecase.CodeValidation, Message: "CODLEAD, CODPROD, DESCRPROD e QUANTIDADE são obrigatórios"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"CODLEAD, CODPROD, DESCRPROD e QUANTIDADE são obrigatórios","code":"VALIDATION_ERROR"}`,
		},
		{
			name:       "total desatualizado",
			body:       `{}`,
			err:        &usecase.TechnicalError{Code: usecase.CodeLeadTotalStale, Message: "produto adicionado, mas o valor total do lead não foi atualizado"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"produto adicionado, mas o valor total do lead não foi atualizado","code":"LEAD_TOTAL_STALE"}`,
		},
		{
			name:       "erro genérico",
			body:       `{}`,
			err:        errors.New(""),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Erro ao adicionar produto"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockAddProduct)
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := postAdd(NewLeadProductHandler(uc), tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
