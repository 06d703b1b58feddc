package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dotcommander/codecred/internal/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS contributions (
	id          TEXT PRIMARY KEY,
	contributor TEXT NOT NULL,
	file_id     TEXT NOT NULL,
	start_line  INTEGER NOT NULL,
	end_line    INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluations (
	contribution_id TEXT NOT NULL REFERENCES contributions(id) ON DELETE CASCADE,
	kind            TEXT NOT NULL,
	score           REAL NOT NULL,
	rationale       TEXT NOT NULL,
	PRIMARY KEY (contribution_id, kind)
);

CREATE TABLE IF NOT EXISTS payments (
	id          TEXT PRIMARY KEY,
	contributor TEXT NOT NULL,
	wallet      TEXT NOT NULL,
	amount      REAL NOT NULL,
	tx_id       TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contributions_file ON contributions(file_id);
CREATE INDEX IF NOT EXISTS idx_contributions_contributor ON contributions(contributor);
CREATE INDEX IF NOT EXISTS idx_payments_contributor ON payments(contributor);
`

// PaymentRecord is a settled payout persisted alongside contributions.
type PaymentRecord struct {
	ID          string    `json:"id"`
	Contributor string    `json:"contributor"`
	Wallet      string    `json:"wallet"`
	Amount      float64   `json:"amount"`
	TxID        string    `json:"txId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store persists the ledger in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the ledger database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	// WAL keeps readers from blocking the writer.
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping ledger database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveContribution writes a contribution and its evaluations in one
// transaction. Re-saving an existing contribution replaces its evaluations.
func (s *Store) SaveContribution(ctx context.Context, c *Contribution) error {
	if err := c.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contributions (id, contributor, file_id, start_line, end_line, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			contributor = excluded.contributor,
			file_id     = excluded.file_id,
			start_line  = excluded.start_line,
			end_line    = excluded.end_line`,
		c.ID, c.Contributor, c.FileID, c.StartLine, c.EndLine, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save contribution: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM evaluations WHERE contribution_id = ?`, c.ID); err != nil {
		return fmt.Errorf("failed to clear evaluations: %w", err)
	}
	for _, e := range c.Evaluations {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO evaluations (contribution_id, kind, score, rationale)
			VALUES (?, ?, ?, ?)`,
			c.ID, e.Kind.String(), e.Score, e.Rationale)
		if err != nil {
			return fmt.Errorf("failed to save evaluation: %w", err)
		}
	}

	return tx.Commit()
}

// Contributions loads every stored contribution with its evaluations,
// ordered by creation time.
func (s *Store) Contributions(ctx context.Context) ([]*Contribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contributor, file_id, start_line, end_line, created_at
		FROM contributions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer rows.Close()

	var out []*Contribution
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.ID, &c.Contributor, &c.FileID,
			&c.StartLine, &c.EndLine, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range out {
		if err := s.loadEvaluations(ctx, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) loadEvaluations(ctx context.Context, c *Contribution) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, score, rationale
		FROM evaluations WHERE contribution_id = ? ORDER BY kind`, c.ID)
	if err != nil {
		return fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kindName string
		var e metrics.Evaluation
		if err := rows.Scan(&kindName, &e.Score, &e.Rationale); err != nil {
			return fmt.Errorf("failed to scan evaluation: %w", err)
		}
		kind, err := metrics.ParseKind(kindName)
		if err != nil {
			return err
		}
		e.Kind = kind
		c.Evaluations = append(c.Evaluations, e)
	}
	return rows.Err()
}

// LoadLedger builds an in-memory ledger from the store. Overlap invariants
// were enforced at registration, so stored rows are registered directly.
func (s *Store) LoadLedger(ctx context.Context) (*Ledger, error) {
	contributions, err := s.Contributions(ctx)
	if err != nil {
		return nil, err
	}
	l := New()
	l.contributions = contributions
	return l, nil
}

// SavePayment records a settled payout.
func (s *Store) SavePayment(ctx context.Context, p PaymentRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, contributor, wallet, amount, tx_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Contributor, p.Wallet, p.Amount, p.TxID, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

// Payments loads every recorded payout, ordered by creation time.
func (s *Store) Payments(ctx context.Context) ([]PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, contributor, wallet, amount, tx_id, created_at
		FROM payments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var out []PaymentRecord
	for rows.Next() {
		var p PaymentRecord
		if err := rows.Scan(&p.ID, &p.Contributor, &p.Wallet,
			&p.Amount, &p.TxID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
