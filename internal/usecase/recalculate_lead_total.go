package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/sankhya-leads/internal/entity"
)

// RecalculateLeadTotalUseCase soma o VLRTOTAL das linhas ativas e grava o resultado em AD_LEADS.VALOR.
type RecalculateLeadTotalUseCase struct {
	Leads entity.LeadGateway
	Locks *LeadLocker
	Now   func() time.Time
}

func NewRecalculateLeadTotalUseCase(leads entity.LeadGateway, locks *LeadLocker) *RecalculateLeadTotalUseCase {
	if locks == nil {
		locks = NewLeadLocker()
	}
	return &RecalculateLeadTotalUseCase{
		Leads: leads,
		Locks: locks,
		Now:   time.Now,
	}
}

func (uc *RecalculateLeadTotalUseCase) Execute(ctx context.Context, codLead string) (float64, error) {
	codLead = strings.TrimSpace(codLead)
	if codLead == "" {
		return 0, &DomainError{Code: CodeValidation, Message: "CODLEAD é obrigatório"}
	}

	unlock := uc.Locks.Lock(codLead)
	defer unlock()

	return uc.recalculate(ctx, codLead)
}

// recalculate assume que o lock de codLead já está com quem chama.
func (uc *RecalculateLeadTotalUseCase) recalculate(ctx context.Context, codLead string) (float64, error) {
	lines, err := uc.Leads.ActiveProducts(ctx, codLead)
	if err != nil {
		return 0, err
	}

	var total float64
	active := 0
	for _, line := range lines {
		if !line.IsActive() {
			continue
		}
		total += line.VlrTotal
		active++
	}
	total = entity.Round2(total)

	if err := uc.Leads.UpdateTotal(ctx, codLead, total, entity.ERPDate(uc.Now())); err != nil {
		return 0, err
	}

	log.Printf("💰 Lead %s: novo valor total %s (%d produtos ativos)", codLead, entity.FormatAmount(total), active)
	return total, nil
}
