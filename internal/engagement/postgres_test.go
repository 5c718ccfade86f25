package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lighthouise/engine/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func mockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PostgresStore{pool: mock}, mock
}

func TestPostgresMigrate(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS engagement_snapshots").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSave(t *testing.T) {
	store, mock := mockStore(t)

	snap := testSnapshot("Acme SaaS")
	mock.ExpectExec("INSERT INTO engagement_snapshots").
		WithArgs(pgxmock.AnyArg(), "Acme SaaS", pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Save(context.Background(), snap))
	assert.NotEmpty(t, snap.ID)
	assert.False(t, snap.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet(t *testing.T) {
	store, mock := mockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM engagement_snapshots WHERE id").
		WithArgs("snap-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "context", "answers", "diagnostic", "findings", "assumptions", "created_at",
		}).AddRow(
			"snap-1",
			`{"company_name":"Acme","industry":"Technology","company_size":"mid-market"}`,
			`[{"workflow_id":"ap","team_size":10,"answers":null}]`,
			`{"company_archetype":"scaling-software","archetype_description":"","challenges":null,"priority_areas":null}`,
			`{}`,
			`{"cost_per_person":90000,"range_factor":0.25}`,
			now,
		))

	got, err := store.Get(context.Background(), "snap-1")
	require.NoError(t, err)
	assert.Equal(t, "snap-1", got.ID)
	assert.Equal(t, "Acme", got.Context.CompanyName)
	assert.Equal(t, model.SizeMidMarket, got.Context.CompanySize)
	require.Len(t, got.PerProcessAnswers, 1)
	assert.Equal(t, "ap", got.PerProcessAnswers[0].WorkflowID)
	assert.Equal(t, 90_000.0, got.Assumptions.CostPerPerson)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetNotFound(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM engagement_snapshots WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList(t *testing.T) {
	store, mock := mockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM engagement_snapshots ORDER BY created_at DESC").
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "context", "answers", "diagnostic", "findings", "assumptions", "created_at",
		}).AddRow(
			"snap-1", `{"company_name":"Alpha"}`, `[]`, `{}`, `{}`, `{}`, now,
		).AddRow(
			"snap-2", `{"company_name":"Beta"}`, `[]`, `{}`, `{}`, `{}`, now.Add(-time.Hour),
		))

	snaps, err := store.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, "Alpha", snaps[0].Context.CompanyName)
	assert.Equal(t, "Beta", snaps[1].Context.CompanyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListDefaultsLimit(t *testing.T) {
	store, mock := mockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM engagement_snapshots ORDER BY created_at DESC").
		WithArgs(50).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "context", "answers", "diagnostic", "findings", "assumptions", "created_at",
		}))

	snaps, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, snaps)
	assert.NoError(t, mock.ExpectationsWereMet())
}
