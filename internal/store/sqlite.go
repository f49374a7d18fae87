// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore serves mapping records from a local SQLite database so the
// cascade can run without network access.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and runs migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS mapping_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL,
			keywords_json TEXT NOT NULL DEFAULT '[]',
			keyword TEXT NOT NULL DEFAULT '',
			action TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			groovy_code TEXT NOT NULL DEFAULT '',
			meaning TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_mapping_records_collection ON mapping_records(collection, id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}

const selectRecord = `SELECT r.keywords_json, r.keyword, r.action, r.type, r.groovy_code, r.meaning
	FROM mapping_records r`

const keywordsContain = `EXISTS (SELECT 1 FROM json_each(r.keywords_json) WHERE json_each.value = ?)`

func (s *SQLiteStore) FindByKeyword(ctx context.Context, collection, keyword string) (*Record, error) {
	if _, err := specFor(collection); err != nil {
		return nil, err
	}
	query := selectRecord + ` WHERE r.collection = ? AND ` + keywordsContain + ` ORDER BY r.id LIMIT 1`
	return s.queryOne(ctx, query, collection, keyword)
}

func (s *SQLiteStore) Search(ctx context.Context, collection, term string) (*Record, error) {
	spec, err := specFor(collection)
	if err != nil {
		return nil, err
	}

	var conds []string
	args := []any{collection}
	if spec.keywordsContain {
		conds = append(conds, keywordsContain)
		args = append(args, term)
	}
	pattern := "%" + escapeLike(term) + "%"
	for _, col := range spec.likeColumns {
		conds = append(conds, "r."+col+` LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}

	query := selectRecord + ` WHERE r.collection = ? AND (` + strings.Join(conds, " OR ") + `) ORDER BY r.id LIMIT 1`
	return s.queryOne(ctx, query, args...)
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Import replaces the stored contents of every collection present in dict.
func (s *SQLiteStore) Import(ctx context.Context, dict Dictionary) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO mapping_records
		(collection, keywords_json, keyword, action, type, groovy_code, meaning)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, name := range dict.Names() {
		if _, err := tx.ExecContext(ctx, `DELETE FROM mapping_records WHERE collection = ?`, name); err != nil {
			return 0, fmt.Errorf("clear %s: %w", name, err)
		}
		for _, rec := range dict.Collections[name] {
			kws := rec.Keywords
			if kws == nil {
				kws = []string{}
			}
			kwJSON, err := json.Marshal(kws)
			if err != nil {
				return 0, fmt.Errorf("marshal keywords: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, name, string(kwJSON), rec.Keyword, rec.Action, rec.Type, rec.GroovyCode, rec.Meaning); err != nil {
				return 0, fmt.Errorf("insert %s record: %w", name, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) queryOne(ctx context.Context, query string, args ...any) (*Record, error) {
	var (
		rec    Record
		kwJSON string
	)
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&kwJSON, &rec.Keyword, &rec.Action, &rec.Type, &rec.GroovyCode, &rec.Meaning)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query mapping record: %w", err)
	}
	if err := json.Unmarshal([]byte(kwJSON), &rec.Keywords); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}
	if len(rec.Keywords) == 0 {
		rec.Keywords = nil
	}
	return &rec, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
