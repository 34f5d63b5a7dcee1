// Package journal keeps a sqlite record of every document run so operators
// can audit what the pipeline did to each paper. The journal is advisory:
// the pipeline runs fine without it.
package journal

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/research-center/paper-ingest/constants"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	operation      TEXT NOT NULL,
	paper_id       TEXT NOT NULL,
	pdf_id         TEXT NOT NULL,
	classification TEXT NOT NULL DEFAULT '',
	pages          INTEGER NOT NULL DEFAULT 0,
	figures        INTEGER NOT NULL DEFAULT 0,
	status         TEXT NOT NULL,
	error          TEXT NOT NULL DEFAULT '',
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP
);
CREATE INDEX IF NOT EXISTS runs_paper_idx ON runs (paper_id, started_at);
`

// Run is one journal row: a single document passing through one operation.
type Run struct {
	ID             uuid.UUID
	Operation      string
	PaperID        string
	PDFID          string
	Classification string
	Pages          int
	Figures        int
	Status         constants.RunStatus
	Error          string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Journal wraps the sqlite database. A nil *Journal is valid and records
// nothing, so callers don't have to guard every call site.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and if needed creates) the journal database at path.
// ":memory:" gives an ephemeral journal.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("run journal open", "path", path)
	return &Journal{db: db, logger: logger}, nil
}

func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Begin inserts a RUNNING row and returns its ID. Journal failures are logged
// and swallowed: bookkeeping must never stop the pipeline.
func (j *Journal) Begin(ctx context.Context, operation, paperID, pdfID string, pages int) uuid.UUID {
	if j == nil {
		return uuid.Nil
	}
	id := uuid.New()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, operation, paper_id, pdf_id, pages, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), operation, paperID, pdfID, pages, string(constants.RunStatusRunning), time.Now().UTC())
	if err != nil {
		j.logger.Warn("journal insert failed", "paper_id", paperID, "error", err)
		return uuid.Nil
	}
	return id
}

// Finish closes a run row with its outcome.
func (j *Journal) Finish(ctx context.Context, id uuid.UUID, classification string, figures int, status constants.RunStatus, errMsg string) {
	if j == nil || id == uuid.Nil {
		return
	}
	_, err := j.db.ExecContext(ctx,
		`UPDATE runs SET classification = ?, figures = ?, status = ?, error = ?, finished_at = ? WHERE id = ?`,
		classification, figures, string(status), errMsg, time.Now().UTC(), id.String())
	if err != nil {
		j.logger.Warn("journal update failed", "run_id", id, "error", err)
	}
}

// Runs returns every journal row, oldest first.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	if j == nil {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, operation, paper_id, pdf_id, classification, pages, figures, status, error, started_at, finished_at
		 FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var id string
		var finished sql.NullTime
		if err := rows.Scan(&id, &r.Operation, &r.PaperID, &r.PDFID, &r.Classification,
			&r.Pages, &r.Figures, &r.Status, &r.Error, &r.StartedAt, &finished); err != nil {
			return nil, err
		}
		r.ID, _ = uuid.Parse(id)
		if finished.Valid {
			r.FinishedAt = finished.Time
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
