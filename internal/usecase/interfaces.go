package usecase

import (
	"context"

	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/queue"
)

type PriceLookup interface {
	Price(ctx context.Context, codProd string) (float64, error)
}

type StockLookup interface {
	Stock(ctx context.Context, codProd, searchLocal string) (*entity.StockSummary, error)
}

type LeadLister interface {
	List(ctx context.Context, ownerID string, all bool) ([]entity.Lead, error)
}

type QueueProducerInterface interface {
	PublishRecalculation(ctx context.Context, payload queue.RecalculationPayload) error
}

type AuditRecorder interface {
	Record(ctx context.Context, log *entity.LeadProductLog) error
}
