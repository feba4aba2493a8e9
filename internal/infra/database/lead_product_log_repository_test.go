package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/sankhya-leads/internal/entity"
)

// Os testes de banco só rodam com TEST_DATABASE_URL apontando para um Postgres descartável.
func openTestDB(t *testing.T) *LeadProductLogRepository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL não definido")
	}

	db, err := NewDBConnection(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewLeadProductLogRepository(db)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestLeadProductLogRepository(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()
	codLead := "test-" + uuid.NewString()[:8]
	base := time.Now().UTC().Truncate(time.Second)

	first := &entity.LeadProductLog{
		ID: uuid.NewString(), CodLead: codLead, CodProd: "100",
		Quantidade: 2, VlrUnit: 19.9, VlrTotal: 39.8, NovoValorTotal: 39.8,
		Status: entity.LogStatusOK, CreatedAt: base,
	}
	second := &entity.LeadProductLog{
		ID: uuid.NewString(), CodLead: codLead, CodProd: "200",
		Quantidade: 1, VlrUnit: 5, VlrTotal: 5,
		Status: entity.LogStatusTotalStale, Error: "timeout", CreatedAt: base.Add(time.Minute),
	}
	require.NoError(t, repo.Record(ctx, first))
	require.NoError(t, repo.Record(ctx, second))

	logs, err := repo.ListByLead(ctx, codLead, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, second.ID, logs[0].ID)
	assert.Equal(t, "timeout", logs[0].Error)
	assert.Equal(t, first.ID, logs[1].ID)
	assert.Empty(t, logs[1].Error)
	assert.Equal(t, 39.8, logs[1].VlrTotal)

	limited, err := repo.ListByLead(ctx, codLead, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := repo.ListByLead(ctx, "inexistente-"+uuid.NewString(), 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStaleLeads(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()
	old := time.Now().Add(-time.Hour)

	stale := "stale-" + uuid.NewString()[:8]
	fixed := "fixed-" + uuid.NewString()[:8]
	fresh := "fresh-" + uuid.NewString()[:8]
	retried := "retried-" + uuid.NewString()[:8]

	for _, l := range []*entity.LeadProductLog{
		{ID: uuid.NewString(), CodLead: stale, CodProd: "1", Status: entity.LogStatusTotalStale, CreatedAt: old},
		{ID: uuid.NewString(), CodLead: fixed, CodProd: "1", Status: entity.LogStatusTotalStale, CreatedAt: old},
		{ID: uuid.NewString(), CodLead: fixed, Status: entity.LogStatusRecalculated, CreatedAt: old.Add(time.Minute)},
		{ID: uuid.NewString(), CodLead: fresh, CodProd: "1", Status: entity.LogStatusTotalStale, CreatedAt: time.Now()},
		{ID: uuid.NewString(), CodLead: retried, CodProd: "1", Status: entity.LogStatusTotalStale, CreatedAt: old},
		{ID: uuid.NewString(), CodLead: retried, CodProd: "2", Status: entity.LogStatusPriceFailed, CreatedAt: old.Add(10 * time.Minute)},
		{ID: uuid.NewString(), CodLead: retried, CodProd: "3", Status: entity.LogStatusLineFailed, CreatedAt: old.Add(20 * time.Minute)},
	} {
		require.NoError(t, repo.Record(ctx, l))
	}

	leads, err := repo.StaleLeads(ctx, 10*time.Minute, 1000)
	require.NoError(t, err)

	assert.Contains(t, leads, stale)
	assert.Contains(t, leads, retried)
	assert.NotContains(t, leads, fixed)
	assert.NotContains(t, leads, fresh)
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	require.NotNil(t, nullString("x"))
	assert.Equal(t, "x", *nullString("x"))
}
