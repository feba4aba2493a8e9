package entity

import (
	"context"
	"time"
)

// Lead é a oportunidade de venda gravada na tabela AD_LEADS do Sankhya.
type Lead struct {
	CodLead         string  `json:"CODLEAD"`
	Nome            string  `json:"NOME"`
	Descricao       string  `json:"DESCRICAO,omitempty"`
	Valor           float64 `json:"VALOR"`
	CodUsuario      string  `json:"CODUSUARIO"`
	CodParc         string  `json:"CODPARC,omitempty"`
	CodFunil        string  `json:"CODFUNIL,omitempty"`
	CodEstagio      string  `json:"CODESTAGIO,omitempty"`
	StatusLead      string  `json:"STATUS_LEAD,omitempty"`
	DataVencimento  string  `json:"DATA_VENCIMENTO,omitempty"`
	DataCriacao     string  `json:"DATA_CRIACAO,omitempty"`
	DataAtualizacao string  `json:"DATA_ATUALIZACAO,omitempty"`
	Ativo           string  `json:"ATIVO,omitempty"`
}

// LeadProduct é uma linha de AD_ADLEADSPRODUTOS. Nunca é apagada, só desativada (ATIVO = 'N').
type LeadProduct struct {
	CodLead      string  `json:"CODLEAD"`
	CodProd      string  `json:"CODPROD"`
	DescrProd    string  `json:"DESCRPROD"`
	Quantidade   float64 `json:"QUANTIDADE"`
	VlrUnit      float64 `json:"VLRUNIT"`
	VlrTotal     float64 `json:"VLRTOTAL"`
	Ativo        string  `json:"ATIVO"`
	DataInclusao string  `json:"DATA_INCLUSAO"`
}

const (
	Ativo   = "S"
	Inativo = "N"
)

// IsActive considera ativa toda linha que não foi desativada explicitamente.
func (p LeadProduct) IsActive() bool {
	return p.Ativo != Inativo
}

// Status gravados no histórico de inclusão de produtos
const (
	LogStatusOK          = "OK"
	LogStatusLineFailed  = "LINE_FAILED"
	LogStatusTotalStale  = "TOTAL_STALE"
	LogStatusPriceFailed = "PRICE_FAILED"
	// LogStatusRecalculated marca um total desatualizado que foi corrigido depois.
	LogStatusRecalculated = "RECALCULATED"
)

// LeadProductLog registra cada tentativa de inclusão de produto num lead.
type LeadProductLog struct {
	ID             string    `json:"id"`
	CodLead        string    `json:"codlead"`
	CodProd        string    `json:"codprod"`
	Quantidade     float64   `json:"quantidade"`
	VlrUnit        float64   `json:"vlrunit"`
	VlrTotal       float64   `json:"vlrtotal"`
	NovoValorTotal float64   `json:"novo_valor_total"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LeadGateway é o acesso remoto aos leads e às linhas de produto no ERP.
type LeadGateway interface {
	InsertProduct(ctx context.Context, line *LeadProduct) error
	ActiveProducts(ctx context.Context, codLead string) ([]LeadProduct, error)
	UpdateTotal(ctx context.Context, codLead string, total float64, updatedAt string) error
	List(ctx context.Context, ownerID string, all bool) ([]Lead, error)
}

type LeadProductLogRepositoryInterface interface {
	Record(ctx context.Context, log *LeadProductLog) error
	ListByLead(ctx context.Context, codLead string, limit int) ([]LeadProductLog, error)
	StaleLeads(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)
}
