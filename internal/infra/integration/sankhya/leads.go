package sankhya

import (
	"context"
	"fmt"

	"github.com/xavierca1/sankhya-leads/internal/entity"
)

const (
	entityLeads         = "AD_LEADS"
	entityLeadsProdutos = "AD_ADLEADSPRODUTOS"
)

var (
	leadFields        = []string{"CODLEAD", "NOME", "DESCRICAO", "VALOR", "CODUSUARIO", "CODPARC", "CODFUNIL", "CODESTAGIO", "STATUS_LEAD", "DATA_VENCIMENTO", "DATA_CRIACAO", "DATA_ATUALIZACAO", "ATIVO"}
	leadProductFields = []string{"CODLEAD", "CODPROD", "DESCRPROD", "QUANTIDADE", "VLRUNIT", "VLRTOTAL", "ATIVO", "DATA_INCLUSAO"}
)

// LeadService grava e consulta leads e suas linhas de produto no ERP.
type LeadService struct {
	client *Client
}

func NewLeadService(client *Client) *LeadService {
	return &LeadService{client: client}
}

func (s *LeadService) InsertProduct(ctx context.Context, line *entity.LeadProduct) error {
	err := s.client.Save(ctx, SaveRequest{
		EntityName: entityLeadsProdutos,
		Fields:     leadProductFields,
		Records: []SaveRecord{{
			Values: []string{
				line.CodLead,
				line.CodProd,
				line.DescrProd,
				entity.FormatNumber(line.Quantidade),
				entity.FormatNumber(line.VlrUnit),
				entity.FormatAmount(line.VlrTotal),
				line.Ativo,
				line.DataInclusao,
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("erro ao adicionar produto %s ao lead %s: %w", line.CodProd, line.CodLead, err)
	}
	return nil
}

func (s *LeadService) ActiveProducts(ctx context.Context, codLead string) ([]entity.LeadProduct, error) {
	records, err := s.client.LoadRecords(ctx, Query{
		RootEntity: entityLeadsProdutos,
		Fields:     []string{"CODPROD", "QUANTIDADE", "VLRUNIT", "VLRTOTAL"},
		Expression: "CODLEAD = ? AND ATIVO = 'S'",
		Parameters: []Parameter{StringParam(codLead)},
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar produtos do lead %s: %w", codLead, err)
	}

	lines := make([]entity.LeadProduct, 0, len(records))
	for _, rec := range records {
		lines = append(lines, entity.LeadProduct{
			CodLead:    codLead,
			CodProd:    rec.String("CODPROD"),
			Quantidade: rec.Float("QUANTIDADE"),
			VlrUnit:    rec.Float("VLRUNIT"),
			VlrTotal:   rec.Float("VLRTOTAL"),
			Ativo:      entity.Ativo,
		})
	}
	return lines, nil
}

func (s *LeadService) UpdateTotal(ctx context.Context, codLead string, total float64, updatedAt string) error {
	err := s.client.Save(ctx, SaveRequest{
		EntityName: entityLeads,
		Fields:     []string{"VALOR", "DATA_ATUALIZACAO"},
		Records: []SaveRecord{{
			PK:     map[string]string{"CODLEAD": codLead},
			Values: []string{entity.FormatAmount(total), updatedAt},
		}},
	})
	if err != nil {
		return fmt.Errorf("erro ao atualizar valor do lead %s: %w", codLead, err)
	}
	return nil
}

// List devolve os leads do dono informado, ou todos quando all é true.
func (s *LeadService) List(ctx context.Context, ownerID string, all bool) ([]entity.Lead, error) {
	query := Query{RootEntity: entityLeads, Fields: leadFields}
	if !all {
		query.Expression = "CODUSUARIO = ?"
		query.Parameters = []Parameter{StringParam(ownerID)}
	}

	records, err := s.client.LoadRecords(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar leads: %w", err)
	}

	leads := make([]entity.Lead, 0, len(records))
	for _, rec := range records {
		leads = append(leads, entity.Lead{
			CodLead:         rec.String("CODLEAD"),
			Nome:            rec.String("NOME"),
			Descricao:       rec.String("DESCRICAO"),
			Valor:           rec.Float("VALOR"),
			CodUsuario:      rec.String("CODUSUARIO"),
			CodParc:         rec.String("CODPARC"),
			CodFunil:        rec.String("CODFUNIL"),
			CodEstagio:      rec.String("CODESTAGIO"),
			StatusLead:      rec.String("STATUS_LEAD"),
			DataVencimento:  rec.String("DATA_VENCIMENTO"),
			DataCriacao:     rec.String("DATA_CRIACAO"),
			DataAtualizacao: rec.String("DATA_ATUALIZACAO"),
			Ativo:           rec.String("ATIVO"),
		})
	}
	return leads, nil
}
