package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/sankhya-leads/internal/entity"
	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

type MockAddProduct struct {
	mock.Mock
}

func (m *MockAddProduct) Execute(ctx context.Context, input usecase.AddProductInput) (*usecase.AddProductOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AddProductOutput), args.Error(1)
}

type MockListLeads struct {
	mock.Mock
}

func (m *MockListLeads) Execute(ctx context.Context, user entity.SessionUser) ([]entity.Lead, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

type MockBatchInfo struct {
	mock.Mock
}

func (m *MockBatchInfo) Execute(ctx context.Context, codigos []string) map[string]usecase.ProductInfo {
	args := m.Called(ctx, codigos)
	return args.Get(0).(map[string]usecase.ProductInfo)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Price(ctx context.Context, codProd string) (float64, error) {
	args := m.Called(ctx, codProd)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCatalog) Stock(ctx context.Context, codProd, searchLocal string) (*entity.StockSummary, error) {
	args := m.Called(ctx, codProd, searchLocal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StockSummary), args.Error(1)
}

func (m *MockCatalog) Search(ctx context.Context, q string, limit int) ([]entity.Product, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) ListByLead(ctx context.Context, codLead string, limit int) ([]entity.LeadProductLog, error) {
	args := m.Called(ctx, codLead, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadProductLog), args.Error(1)
}
