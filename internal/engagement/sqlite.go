package engagement

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/lighthouise/engine/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "engagement: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "engagement: sqlite exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS engagement_snapshots (
	id          TEXT PRIMARY KEY,
	company     TEXT NOT NULL,
	context     TEXT NOT NULL,
	answers     TEXT NOT NULL,
	diagnostic  TEXT NOT NULL,
	findings    TEXT NOT NULL,
	assumptions TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_engagement_snapshots_company ON engagement_snapshots(company);
CREATE INDEX IF NOT EXISTS idx_engagement_snapshots_created_at ON engagement_snapshots(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "engagement: sqlite migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, snap *model.EngagementSnapshot) error {
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

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO engagement_snapshots
		 (id, company, context, answers, diagnostic, findings, assumptions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Context.CompanyName,
		cols.context, cols.answers, cols.diagnostic, cols.findings, cols.assumptions,
		snap.CreatedAt,
	)
	return eris.Wrap(err, "engagement: sqlite insert snapshot")
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.EngagementSnapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, context, answers, diagnostic, findings, assumptions, created_at
		 FROM engagement_snapshots WHERE id = ?`, id)

	snap, err := scanSnapshot(row.Scan)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "engagement: sqlite get snapshot %s", id)
	}
	return snap, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]model.EngagementSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, context, answers, diagnostic, findings, assumptions, created_at
		 FROM engagement_snapshots ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "engagement: sqlite list snapshots")
	}
	defer rows.Close()

	var out []model.EngagementSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "engagement: sqlite scan snapshot")
		}
		out = append(out, *snap)
	}
	return out, eris.Wrap(rows.Err(), "engagement: sqlite iterate snapshots")
}

// snapshotColumns holds the JSON-encoded payload columns.
type snapshotColumns struct {
	context     string
	answers     string
	diagnostic  string
	findings    string
	assumptions string
}

func encodeSnapshot(snap *model.EngagementSnapshot) (*snapshotColumns, error) {
	var cols snapshotColumns
	for _, enc := range []struct {
		name string
		v    any
		dst  *string
	}{
		{"context", snap.Context, &cols.context},
		{"answers", snap.PerProcessAnswers, &cols.answers},
		{"diagnostic", snap.Diagnostic, &cols.diagnostic},
		{"findings", snap.FindingsByProcess, &cols.findings},
		{"assumptions", snap.Assumptions, &cols.assumptions},
	} {
		b, err := json.Marshal(enc.v)
		if err != nil {
			return nil, eris.Wrapf(err, "engagement: marshal %s", enc.name)
		}
		*enc.dst = string(b)
	}
	return &cols, nil
}

func scanSnapshot(scan func(dest ...any) error) (*model.EngagementSnapshot, error) {
	var (
		snap model.EngagementSnapshot
		cols snapshotColumns
	)
	if err := scan(&snap.ID, &cols.context, &cols.answers, &cols.diagnostic,
		&cols.findings, &cols.assumptions, &snap.CreatedAt); err != nil {
		return nil, err
	}
	for _, dec := range []struct {
		name string
		raw  string
		dst  any
	}{
		{"context", cols.context, &snap.Context},
		{"answers", cols.answers, &snap.PerProcessAnswers},
		{"diagnostic", cols.diagnostic, &snap.Diagnostic},
		{"findings", cols.findings, &snap.FindingsByProcess},
		{"assumptions", cols.assumptions, &snap.Assumptions},
	} {
		if err := json.Unmarshal([]byte(dec.raw), dec.dst); err != nil {
			return nil, eris.Wrapf(err, "engagement: unmarshal %s", dec.name)
		}
	}
	return &snap, nil
}
