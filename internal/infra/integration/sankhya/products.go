package sankhya

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xavierca1/sankhya-leads/internal/entity"
)

const (
	entityProduto = "Produto"
	entityEstoque = "Estoque"

	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

var ErrProductNotFound = errors.New("produto não encontrado")

var (
	productFields = []string{"CODPROD", "DESCRPROD", "MARCA", "CARACTERISTICAS", "CODVOL", "VLRCOMERC", "VLRVENDA", "ATIVO"}
	stockFields   = []string{"CODPROD", "CODLOCAL", "CONTROLE", "ESTOQUE", "ATIVO"}
)

// ProductService consulta o catálogo de produtos, preços e estoque do ERP.
type ProductService struct {
	client *Client
}

func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

// Price devolve VLRVENDA do produto; sem valor de venda, usa VLRCOMERC.
func (s *ProductService) Price(ctx context.Context, codProd string) (float64, error) {
	records, err := s.client.LoadRecords(ctx, Query{
		RootEntity: entityProduto,
		Fields:     []string{"CODPROD", "VLRVENDA", "VLRCOMERC"},
		Expression: "CODPROD = ?",
		Parameters: []Parameter{IntParam(codProd)},
	})
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar preço do produto %s: %w", codProd, err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrProductNotFound, codProd)
	}

	if v := records[0].Float("VLRVENDA"); v != 0 {
		return v, nil
	}
	return records[0].Float("VLRCOMERC"), nil
}

func (s *ProductService) Stock(ctx context.Context, codProd, searchLocal string) (*entity.StockSummary, error) {
	records, err := s.client.LoadRecords(ctx, Query{
		RootEntity: entityEstoque,
		Fields:     stockFields,
		Expression: "CODPROD = ?",
		Parameters: []Parameter{IntParam(codProd)},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar estoque do produto %s: %w", codProd, err)
	}

	locations := make([]entity.StockLocation, 0, len(records))
	for _, rec := range records {
		loc := entity.StockLocation{
			CodProd:  rec.String("CODPROD"),
			CodLocal: rec.String("CODLOCAL"),
			Controle: strings.TrimSpace(rec.String("CONTROLE")),
			Estoque:  rec.String("ESTOQUE"),
			Ativo:    rec.String("ATIVO"),
		}
		if loc.CodProd == "" {
			loc.CodProd = codProd
		}
		loc.ID = loc.CodProd + "-" + loc.CodLocal + "-" + loc.Controle
		locations = append(locations, loc)
	}

	return entity.NewStockSummary(codProd, locations).Filter(searchLocal), nil
}

// Search procura produtos ativos pela descrição, ou também pelo código quando q é numérico.
func (s *ProductService) Search(ctx context.Context, q string, limit int) ([]entity.Product, error) {
	q = strings.TrimSpace(q)
	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	like := StringParam("%" + strings.ToUpper(q) + "%")
	query := Query{
		RootEntity: entityProduto,
		Fields:     productFields,
		Expression: "UPPER(DESCRPROD) LIKE ? AND ATIVO = 'S'",
		Parameters: []Parameter{like},
	}
	if _, err := strconv.ParseInt(q, 10, 64); err == nil {
		query.Expression = "(CODPROD = ? OR UPPER(DESCRPROD) LIKE ?) AND ATIVO = 'S'"
		query.Parameters = []Parameter{IntParam(q), like}
	}

	records, err := s.client.LoadRecords(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos: %w", err)
	}

	products := make([]entity.Product, 0, min(len(records), limit))
	for _, rec := range records {
		if len(products) == limit {
			break
		}
		products = append(products, entity.Product{
			CodProd:         rec.String("CODPROD"),
			DescrProd:       rec.String("DESCRPROD"),
			Marca:           rec.String("MARCA"),
			Caracteristicas: rec.String("CARACTERISTICAS"),
			Unidade:         rec.String("CODVOL"),
			VlrComerc:       rec.String("VLRCOMERC"),
			VlrVenda:        rec.String("VLRVENDA"),
			Ativo:           rec.String("ATIVO"),
		})
	}
	return products, nil
}
