package repository

import (
	"context"
	"errors"
	"testing"

	"tutor-board/internal/database/dbtest"
	"tutor-board/internal/domain/demand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demandRow(id, city string, max float64) []any {
	return []any{id, "title " + id, city, "南山", "初二", "数学", 100.0, max, "2026-02-16 10:30", "desc", "loc"}
}

func TestListDemands_ScansRows(t *testing.T) {
	db := dbtest.New().OnQuery("FROM tutoring_demands", [][]any{
		demandRow("A", "深圳", 260),
		demandRow("B", "广州", 300),
	}, nil)
	repo := NewPostgresDemandRepository(db)

	items, err := repo.ListDemands(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].ID)
	assert.Equal(t, "广州", items[1].City)
	assert.Equal(t, 300.0, items[1].SalaryMax)

	calls := db.Executed("FROM tutoring_demands")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{500}, calls[0].Args)
}

func TestListDemands_QueryError(t *testing.T) {
	boom := errors.New("boom")
	repo := NewPostgresDemandRepository(dbtest.New().OnQuery("FROM tutoring_demands", nil, boom))

	_, err := repo.ListDemands(context.Background(), 10)
	assert.ErrorIs(t, err, boom)
}

func TestFindByID(t *testing.T) {
	db := dbtest.New().OnQuery("WHERE id = $1", [][]any{demandRow("A", "深圳", 260)}, nil)
	repo := NewPostgresDemandRepository(db)

	d, err := repo.FindByID(context.Background(), " A ")
	require.NoError(t, err)
	assert.Equal(t, "A", d.ID)
	assert.Equal(t, []any{"A"}, db.Executed("WHERE id = $1")[0].Args)

	_, err = NewPostgresDemandRepository(dbtest.New()).FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDemandNotFound)

	_, err = repo.FindByID(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrDemandNotFound)
}

func TestUpsertDemands(t *testing.T) {
	db := dbtest.New()
	repo := NewPostgresDemandRepository(db)

	n, err := repo.UpsertDemands(context.Background(), []DemandUpsert{
		{Demand: demand.Demand{ID: "A-1", Title: "t"}, SourceURL: "https://example.com/a"},
		{Demand: demand.Demand{ID: "A-2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1, db.Commits)

	calls := db.Executed("INSERT INTO tutoring_demands")
	require.Len(t, calls, 2)
	assert.Equal(t, "https://example.com/a", calls[0].Args[11])
	assert.Nil(t, calls[1].Args[11])
}

func TestUpsertDemands_Empty(t *testing.T) {
	db := dbtest.New()
	n, err := NewPostgresDemandRepository(db).UpsertDemands(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, db.Calls)
}
