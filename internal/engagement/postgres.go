package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/lighthouise/engine/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool with JSONB payload
// columns.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "engagement: postgres parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "engagement: postgres create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "engagement: postgres ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS engagement_snapshots (
	id          UUID PRIMARY KEY,
	company     TEXT NOT NULL,
	context     JSONB NOT NULL,
	answers     JSONB NOT NULL,
	diagnostic  JSONB NOT NULL,
	findings    JSONB NOT NULL,
	assumptions JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_engagement_snapshots_company ON engagement_snapshots(company);
CREATE INDEX IF NOT EXISTS idx_engagement_snapshots_created_at ON engagement_snapshots(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "engagement: postgres migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *model.EngagementSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	cols, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO engagement_snapshots
		 (id, company, context, answers, diagnostic, findings, assumptions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		snap.ID, snap.Context.CompanyName,
		cols.context, cols.answers, cols.diagnostic, cols.findings, cols.assumptions,
		snap.CreatedAt,
	)
	return eris.Wrap(err, "engagement: postgres insert snapshot")
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*model.EngagementSnapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, context, answers, diagnostic, findings, assumptions, created_at
		 FROM engagement_snapshots WHERE id = $1`, id)

	snap, err := scanSnapshot(row.Scan)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "engagement: postgres get snapshot %s", id)
	}
	return snap, nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]model.EngagementSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, context, answers, diagnostic, findings, assumptions, created_at
		 FROM engagement_snapshots ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "engagement: postgres list snapshots")
	}
	defer rows.Close()

	var out []model.EngagementSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "engagement: postgres scan snapshot")
		}
		out = append(out, *snap)
	}
	return out, eris.Wrap(rows.Err(), "engagement: postgres iterate snapshots")
}
