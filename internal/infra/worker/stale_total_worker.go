package worker

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/sankhya-leads/internal/entity"
)

type StaleLeadStore interface {
	StaleLeads(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)
	Record(ctx context.Context, log *entity.LeadProductLog) error
}

type LeadTotalRecalculator interface {
	Execute(ctx context.Context, codLead string) (float64, error)
}

// StaleTotalWorker varre o histórico atrás de leads que ficaram com o total
// desatualizado e refaz o cálculo. Cobre o caso em que a fila não está configurada
// ou a mensagem foi para a DLQ.
type StaleTotalWorker struct {
	store        StaleLeadStore
	recalc       LeadTotalRecalculator
	graceWindow  time.Duration
	tickInterval time.Duration
	batchSize    int
	now          func() time.Time
}

func NewStaleTotalWorker(store StaleLeadStore, recalc LeadTotalRecalculator) *StaleTotalWorker {
	return &StaleTotalWorker{
		store:        store,
		recalc:       recalc,
		graceWindow:  2 * time.Minute, // tempo para o worker da fila resolver antes
		tickInterval: 1 * time.Minute,
		batchSize:    50,
		now:          time.Now,
	}
}

func (w *StaleTotalWorker) Start(ctx context.Context) {
	log.Println("🕒 Stale Total Worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.reconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Stale Total Worker encerrado")
			return
		case <-ticker.C:
			w.reconcile(ctx)
		}
	}
}

func (w *StaleTotalWorker) reconcile(ctx context.Context) int {
	leads, err := w.store.StaleLeads(ctx, w.graceWindow, w.batchSize)
	if err != nil {
		log.Printf("❌ Erro ao buscar leads com total desatualizado: %v", err)
		return 0
	}

	fixed := 0
	for _, codLead := range leads {
		if ctx.Err() != nil {
			break
		}

		total, err := w.recalc.Execute(ctx, codLead)
		if err != nil {
			log.Printf("⚠️ Lead %s continua com total desatualizado: %v", codLead, err)
			continue
		}

		entry := &entity.LeadProductLog{
			ID:             uuid.New().String(),
			CodLead:        codLead,
			NovoValorTotal: total,
			Status:         entity.LogStatusRecalculated,
			CreatedAt:      w.now(),
		}
		if err := w.store.Record(ctx, entry); err != nil {
			log.Printf("⚠️ Erro ao registrar recálculo do lead %s: %v", codLead, err)
			continue
		}

		log.Printf("⏱️ Total do lead %s recalculado: %s", codLead, entity.FormatAmount(total))
		fixed++
	}

	if fixed > 0 {
		log.Printf("✅ %d lead(s) com total corrigido", fixed)
	}
	return fixed
}
