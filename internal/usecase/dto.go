package usecase

import "github.com/xavierca1/sankhya-leads/internal/entity"

// AddProductInput é o corpo de POST /api/leads/produtos/adicionar.
// VLRTOTAL é aceito mas sempre recalculado.
type AddProductInput struct {
	CodLead    entity.Code   `json:"CODLEAD"`
	CodProd    entity.Code   `json:"CODPROD"`
	DescrProd  string        `json:"DESCRPROD"`
	Quantidade entity.Number `json:"QUANTIDADE"`
	VlrUnit    entity.Number `json:"VLRUNIT,omitempty"`
	VlrTotal   entity.Number `json:"VLRTOTAL,omitempty"`
}

type AddProductOutput struct {
	Success        bool    `json:"success"`
	NovoValorTotal float64 `json:"novoValorTotal"`
}

// ProductInfo é a entrada de cada código no batch-info.
type ProductInfo struct {
	Preco   float64 `json:"preco"`
	Estoque float64 `json:"estoque"`
	Error   bool    `json:"error,omitempty"`
}
