package entity

import (
	"context"
	"strings"
)

type Product struct {
	CodProd         string `json:"CODPROD"`
	DescrProd       string `json:"DESCRPROD"`
	Marca           string `json:"MARCA,omitempty"`
	Caracteristicas string `json:"CARACTERISTICAS,omitempty"`
	Unidade         string `json:"UNIDADE,omitempty"`
	VlrComerc       string `json:"VLRCOMERC,omitempty"`
	VlrVenda        string `json:"VLRVENDA,omitempty"`
	Ativo           string `json:"ATIVO,omitempty"`
}

// ListPrice é o preço de tabela do cadastro: VLRVENDA, ou VLRCOMERC quando não há valor de venda.
func (p Product) ListPrice() float64 {
	if v := ParseAmount(p.VlrVenda); v != 0 {
		return v
	}
	return ParseAmount(p.VlrComerc)
}

// StockLocation é o saldo de um produto num local/controle.
type StockLocation struct {
	ID       string `json:"_id"`
	CodProd  string `json:"CODPROD"`
	CodLocal string `json:"CODLOCAL"`
	Controle string `json:"CONTROLE"`
	Estoque  string `json:"ESTOQUE"`
	Ativo    string `json:"ATIVO"`
}

func (s StockLocation) Quantity() float64 {
	return ParseAmount(s.Estoque)
}

type StockSummary struct {
	CodProd   string          `json:"codProd"`
	Locations []StockLocation `json:"estoques"`
	Total     float64         `json:"estoqueTotal"`
}

// NewStockSummary soma os saldos dos locais informados.
func NewStockSummary(codProd string, locations []StockLocation) *StockSummary {
	if locations == nil {
		locations = []StockLocation{}
	}
	var total float64
	for _, loc := range locations {
		total += loc.Quantity()
	}
	return &StockSummary{CodProd: codProd, Locations: locations, Total: Round2(total)}
}

// Filter mantém só os locais cujo código ou controle contém o termo.
func (s *StockSummary) Filter(term string) *StockSummary {
	term = strings.ToUpper(strings.TrimSpace(term))
	if term == "" {
		return s
	}
	var kept []StockLocation
	for _, loc := range s.Locations {
		if strings.Contains(strings.ToUpper(loc.CodLocal), term) ||
			strings.Contains(strings.ToUpper(loc.Controle), term) {
			kept = append(kept, loc)
		}
	}
	return NewStockSummary(s.CodProd, kept)
}

type ProductCatalog interface {
	Price(ctx context.Context, codProd string) (float64, error)
	Stock(ctx context.Context, codProd, searchLocal string) (*StockSummary, error)
	Search(ctx context.Context, q string, limit int) ([]Product, error)
}
