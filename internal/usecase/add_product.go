package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/queue"
)

type AddProductUseCase struct {
	Leads  entity.LeadGateway
	Prices PriceLookup
	Recalc *RecalculateLeadTotalUseCase
	Queue  QueueProducerInterface
	Audit  AuditRecorder
	Now    func() time.Time
}

// NewAddProductUseCase aceita queue e audit nil; nesse caso a recuperação do total e o histórico ficam desligados.
func NewAddProductUseCase(
	leads entity.LeadGateway,
	prices PriceLookup,
	recalc *RecalculateLeadTotalUseCase,
	queue QueueProducerInterface,
	audit AuditRecorder,
) *AddProductUseCase {
	return &AddProductUseCase{
		Leads:  leads,
		Prices: prices,
		Recalc: recalc,
		Queue:  queue,
		Audit:  audit,
		Now:    time.Now,
	}
}

func (uc *AddProductUseCase) Execute(ctx context.Context, input AddProductInput) (*AddProductOutput, error) {
	if errs := ValidateAddProductInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: CodeValidation, Message: validationMessage(errs)}
	}

	codLead := input.CodLead.String()
	codProd := input.CodProd.String()
	quantidade := float64(input.Quantidade)

	unlock := uc.Recalc.Locks.Lock(codLead)
	defer unlock()

	entry := &entity.LeadProductLog{CodLead: codLead, CodProd: codProd, Quantidade: quantidade}

	vlrUnit := float64(input.VlrUnit)
	if vlrUnit == 0 {
		log.Printf("🔍 Buscando preço do produto %s...", codProd)
		price, err := uc.Prices.Price(ctx, codProd)
		if err != nil {
			uc.audit(ctx, entry, entity.LogStatusPriceFailed, err)
			return nil, &TechnicalError{Code: CodePriceLookup, Message: "erro ao buscar preço do produto: " + err.Error(), Err: err}
		}
		vlrUnit = price
		log.Printf("💰 Preço encontrado: %s", entity.FormatNumber(vlrUnit))
	}

	// O VLRTOTAL enviado pelo cliente é descartado.
	line := &entity.LeadProduct{
		CodLead:      codLead,
		CodProd:      codProd,
		DescrProd:    input.DescrProd,
		Quantidade:   quantidade,
		VlrUnit:      vlrUnit,
		VlrTotal:     entity.Round2(quantidade * vlrUnit),
		Ativo:        entity.Ativo,
		DataInclusao: entity.ERPDate(uc.Now()),
	}
	entry.VlrUnit = line.VlrUnit
	entry.VlrTotal = line.VlrTotal

	if err := uc.Leads.InsertProduct(ctx, line); err != nil {
		uc.audit(ctx, entry, entity.LogStatusLineFailed, err)
		return nil, &TechnicalError{Code: CodeSankhya, Message: err.Error(), Err: err}
	}
	log.Printf("✅ Produto %s adicionado ao lead %s", codProd, codLead)

	total, err := uc.Recalc.recalculate(ctx, codLead)
	if err != nil {
		log.Printf("⚠️ CRITICAL: Produto gravado no lead %s, mas o total não foi atualizado: %v", codLead, err)
		uc.audit(ctx, entry, entity.LogStatusTotalStale, err)
		uc.scheduleRecalculation(ctx, codLead, err)
		return nil, &TechnicalError{
			Code:    CodeLeadTotalStale,
			Message: "produto adicionado, mas o valor total do lead não foi atualizado: " + err.Error(),
			Err:     err,
		}
	}

	entry.NovoValorTotal = total
	uc.audit(ctx, entry, entity.LogStatusOK, nil)

	return &AddProductOutput{Success: true, NovoValorTotal: total}, nil
}

func (uc *AddProductUseCase) scheduleRecalculation(ctx context.Context, codLead string, cause error) {
	if uc.Queue == nil {
		return
	}
	payload := queue.RecalculationPayload{
		CodLead:     codLead,
		Reason:      cause.Error(),
		RequestedAt: uc.Now(),
	}
	if err := uc.Queue.PublishRecalculation(context.WithoutCancel(ctx), payload); err != nil {
		log.Printf("❌ Falha ao agendar recálculo do lead %s: %v", codLead, err)
		return
	}
	log.Printf("📨 Recálculo do lead %s enviado para a fila", codLead)
}

func (uc *AddProductUseCase) audit(ctx context.Context, entry *entity.LeadProductLog, status string, cause error) {
	if uc.Audit == nil {
		return
	}
	entry.ID = uuid.New().String()
	entry.Status = status
	entry.CreatedAt = uc.Now()
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := uc.Audit.Record(context.WithoutCancel(ctx), entry); err != nil {
		log.Printf("⚠️ Falha ao gravar histórico do lead %s: %v", entry.CodLead, err)
	}
}
