package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/xavierca1/sankhya-leads/internal/entity"
)

const createLeadProductLogTable = `
	CREATE TABLE IF NOT EXISTS lead_product_log (
		id               UUID PRIMARY KEY,
		codlead          TEXT NOT NULL,
		codprod          TEXT NOT NULL,
		quantidade       NUMERIC(15,4) NOT NULL DEFAULT 0,
		vlrunit          NUMERIC(15,4) NOT NULL DEFAULT 0,
		vlrtotal         NUMERIC(15,2) NOT NULL DEFAULT 0,
		novo_valor_total NUMERIC(15,2) NOT NULL DEFAULT 0,
		status           TEXT NOT NULL,
		error            TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_lead_product_log_codlead ON lead_product_log (codlead, created_at DESC);
`

// LeadProductLogRepository guarda o histórico de inclusões de produto nos leads.
type LeadProductLogRepository struct {
	DB *sql.DB
}

func NewLeadProductLogRepository(db *sql.DB) *LeadProductLogRepository {
	return &LeadProductLogRepository{DB: db}
}

func (r *LeadProductLogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createLeadProductLogTable); err != nil {
		return fmt.Errorf("erro ao criar tabela lead_product_log: %w", err)
	}
	return nil
}

func (r *LeadProductLogRepository) Record(ctx context.Context, log *entity.LeadProductLog) error {
	query := `
		INSERT INTO lead_product_log
			(id, codlead, codprod, quantidade, vlrunit, vlrtotal, novo_valor_total, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		log.ID,
		log.CodLead,
		log.CodProd,
		log.Quantidade,
		log.VlrUnit,
		log.VlrTotal,
		log.NovoValorTotal,
		log.Status,
		nullString(log.Error),
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("erro ao gravar histórico do lead %s: %w", log.CodLead, err)
	}
	return nil
}

// ListByLead devolve as tentativas mais recentes primeiro.
func (r *LeadProductLogRepository) ListByLead(ctx context.Context, codLead string, limit int) ([]entity.LeadProductLog, error) {
	query := `
		SELECT id, codlead, codprod, quantidade, vlrunit, vlrtotal, novo_valor_total, status, COALESCE(error, ''), created_at
		FROM lead_product_log
		WHERE codlead = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.QueryContext(ctx, query, codLead, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []entity.LeadProductLog{}
	for rows.Next() {
		var l entity.LeadProductLog
		if err := rows.Scan(
			&l.ID,
			&l.CodLead,
			&l.CodProd,
			&l.Quantidade,
			&l.VlrUnit,
			&l.VlrTotal,
			&l.NovoValorTotal,
			&l.Status,
			&l.Error,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

// Status que refletem o estado de AD_LEADS.VALOR. PRICE_FAILED e LINE_FAILED
// param antes de mexer no total e não mudam se ele está desatualizado.
var totalStatuses = []string{entity.LogStatusOK, entity.LogStatusTotalStale, entity.LogStatusRecalculated}

// StaleLeads devolve os leads cujo último registro que afeta o total ficou
// desatualizado há mais de olderThan.
func (r *LeadProductLogRepository) StaleLeads(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	query := `
		SELECT codlead FROM (
			SELECT DISTINCT ON (codlead) codlead, status, created_at
			FROM lead_product_log
			WHERE status = ANY($1)
			ORDER BY codlead, created_at DESC
		) latest
		WHERE status = $2 AND created_at < $3
		ORDER BY created_at
		LIMIT $4
	`

	rows, err := r.DB.QueryContext(ctx, query,
		pq.Array(totalStatuses), entity.LogStatusTotalStale, time.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []string
	for rows.Next() {
		var codLead string
		if err := rows.Scan(&codLead); err != nil {
			return nil, err
		}
		leads = append(leads, codLead)
	}
	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
