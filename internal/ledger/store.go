// Package ledger is the SQLite-backed expense store. Each Store is keyed
// by the database file path it was opened with; rows are durable once a
// call returns successfully. Ordering is most-recent-first everywhere
// (ORDER BY id DESC), which is what the dialogue engine's "last" and
// candidate semantics rely on.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
	errx "github.com/kdhyo/ledger-ai/internal/core/error"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    item TEXT NOT NULL,
    amount INTEGER NOT NULL,
    note TEXT,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the ledger database at path and applies
// the schema, including the legacy merchant -> item column rename.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errx.WrapLedger(fmt.Errorf("create db directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errx.WrapLedger(fmt.Errorf("open %q: %w", path, err))
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errx.WrapLedger(fmt.Errorf("init schema: %w", err))
	}
	if err := migrateMerchantColumn(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// migrateMerchantColumn renames the legacy merchant column to item when a
// pre-rename database file is opened.
func migrateMerchantColumn(db *sql.DB) error {
	rows, err := db.Query(`PRAGMA table_info(ledger)`)
	if err != nil {
		return errx.WrapLedger(fmt.Errorf("table info: %w", err))
	}
	defer rows.Close()

	var hasMerchant, hasItem bool
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return errx.WrapLedger(fmt.Errorf("table info scan: %w", err))
		}
		switch name {
		case "merchant":
			hasMerchant = true
		case "item":
			hasItem = true
		}
	}
	if err := rows.Err(); err != nil {
		return errx.WrapLedger(fmt.Errorf("table info rows: %w", err))
	}

	if hasMerchant && !hasItem {
		if _, err := db.Exec(`ALTER TABLE ledger RENAME COLUMN merchant TO item`); err != nil {
			return errx.WrapLedger(fmt.Errorf("rename merchant column: %w", err))
		}
	}
	return nil
}

// Path returns the database file path this store was opened with.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

const entryColumns = `id, date, item, amount, COALESCE(note, ''), created_at`

func scanEntry(row interface{ Scan(...any) error }) (model.Entry, error) {
	var e model.Entry
	err := row.Scan(&e.ID, &e.Date, &e.Item, &e.Amount, &e.Note, &e.CreatedAt)
	return e, err
}

func (s *Store) Insert(ctx context.Context, date, item string, amount int64) (model.Entry, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger (date, item, amount) VALUES (?, ?, ?)`,
		date, item, amount,
	)
	if err != nil {
		return model.Entry{}, errx.WrapLedger(fmt.Errorf("insert: %w", err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Entry{}, errx.WrapLedger(fmt.Errorf("insert id: %w", err))
	}

	entry, err := scanEntry(s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger WHERE id = ?`, id,
	))
	if err != nil {
		return model.Entry{}, errx.WrapLedger(fmt.Errorf("read inserted row: %w", err))
	}
	return entry, nil
}

func (s *Store) List(ctx context.Context, date string, limit int) ([]model.Entry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+entryColumns+` FROM ledger WHERE date = ? ORDER BY id DESC LIMIT ?`,
			date, limit,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+entryColumns+` FROM ledger ORDER BY id DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, errx.WrapLedger(fmt.Errorf("list: %w", err))
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errx.WrapLedger(fmt.Errorf("list scan: %w", err))
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapLedger(fmt.Errorf("list rows: %w", err))
	}
	return entries, nil
}

func (s *Store) Sum(ctx context.Context, date string) (int64, error) {
	var (
		total int64
		err   error
	)
	if date != "" {
		err = s.db.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM ledger WHERE date = ?`, date,
		).Scan(&total)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM ledger`,
		).Scan(&total)
	}
	if err != nil {
		return 0, errx.WrapLedger(fmt.Errorf("sum: %w", err))
	}
	return total, nil
}

func (s *Store) Last(ctx context.Context) (*model.Entry, error) {
	entry, err := scanEntry(s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger ORDER BY id DESC LIMIT 1`,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errx.WrapLedger(fmt.Errorf("last: %w", err))
	}
	return &entry, nil
}

func (s *Store) UpdateAmount(ctx context.Context, id int64, amount int64) (*model.Entry, error) {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE ledger SET amount = ? WHERE id = ?`, amount, id,
	); err != nil {
		return nil, errx.WrapLedger(fmt.Errorf("update amount: %w", err))
	}

	entry, err := scanEntry(s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errx.WrapLedger(fmt.Errorf("read updated row: %w", err))
	}
	return &entry, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ledger WHERE id = ?`, id)
	if err != nil {
		return false, errx.WrapLedger(fmt.Errorf("delete: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errx.WrapLedger(fmt.Errorf("delete rows affected: %w", err))
	}
	return n > 0, nil
}
