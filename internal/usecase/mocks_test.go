package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/infra/queue"
)

type MockLeadGateway struct {
	mock.Mock
}

func (m *MockLeadGateway) InsertProduct(ctx context.Context, line *entity.LeadProduct) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockLeadGateway) ActiveProducts(ctx context.Context, codLead string) ([]entity.LeadProduct, error) {
	args := m.Called(ctx, codLead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadProduct), args.Error(1)
}

func (m *MockLeadGateway) UpdateTotal(ctx context.Context, codLead string, total float64, updatedAt string) error {
	args := m.Called(ctx, codLead, total, updatedAt)
	return args.Error(0)
}

func (m *MockLeadGateway) List(ctx context.Context, ownerID string, all bool) ([]entity.Lead, error) {
	args := m.Called(ctx, ownerID, all)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

type MockPriceLookup struct {
	mock.Mock
}

func (m *MockPriceLookup) Price(ctx context.Context, codProd string) (float64, error) {
	args := m.Called(ctx, codProd)
	return args.Get(0).(float64), args.Error(1)
}

type MockStockLookup struct {
	mock.Mock
}

func (m *MockStockLookup) Stock(ctx context.Context, codProd, searchLocal string) (*entity.StockSummary, error) {
	args := m.Called(ctx, codProd, searchLocal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StockSummary), args.Error(1)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishRecalculation(ctx context.Context, payload queue.RecalculationPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, log *entity.LeadProductLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
