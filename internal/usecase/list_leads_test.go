package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/sankhya-leads/internal/entity"
)

func TestListLeadsAdminSeesAll(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadGateway)
	leads.On("List", ctx, "1", true).Return([]entity.Lead{
		{CodLead: "10", CodUsuario: "1"},
		{CodLead: "11", CodUsuario: "2"},
	}, nil)

	result, err := NewListLeadsUseCase(leads, "Administrador").Execute(ctx, entity.SessionUser{ID: "1", Name: "Ana", Role: "Administrador"})

	require.NoError(t, err)
	assert.Len(t, result, 2)
	leads.AssertExpectations(t)
}

func TestListLeadsRegularUserSeesOnlyOwnLeads(t *testing.T) {
	ctx := context.Background()
	leads := new(MockLeadGateway)
	leads.On("List", ctx, "2", false).Return([]entity.Lead{
		{CodLead: "11", CodUsuario: "2"},
		{CodLead: "12", CodUsuario: "3"},
	}, nil)

	result, err := NewListLeadsUseCase(leads, "Administrador").Execute(ctx, entity.SessionUser{ID: " 2 ", Role: "Vendedor"})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "11", result[0].CodLead)
}

func TestListLeadsEmptyIsNotNil(t *testing.T) {
	leads := new(MockLeadGateway)
	leads.On("List", mock.Anything, "2", false).Return(nil, nil)

	result, err := NewListLeadsUseCase(leads, "Administrador").Execute(context.Background(), entity.SessionUser{ID: "2"})

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListLeadsErrors(t *testing.T) {
	leads := new(MockLeadGateway)
	uc := NewListLeadsUseCase(leads, "Administrador")

	_, err := uc.Execute(context.Background(), entity.SessionUser{Role: "Vendedor"})
	assert.Equal(t, CodeInvalidSession, ErrorCode(err))
	assert.Empty(t, leads.Calls)

	leads.On("List", mock.Anything, "2", false).Return(nil, errors.New("502 bad gateway"))
	_, err = uc.Execute(context.Background(), entity.SessionUser{ID: "2"})
	assert.True(t, IsTechnicalError(err))
	assert.Equal(t, CodeSankhya, ErrorCode(err))
}
