package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/shopd/internal/model"
)

// SQLiteStore keeps one row per item; position preserves list order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store, err := NewSQLiteStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (model.ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, checked FROM items ORDER BY position ASC`)
	if err != nil {
		return model.NewShoppingList(), fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	out := model.NewShoppingList()
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return model.NewShoppingList(), fmt.Errorf("%w: %v", ErrCorrupt, scanErr)
		}
		out.Items = append(out.Items, item)
	}
	if err := rows.Err(); err != nil {
		return model.NewShoppingList(), err
	}
	if err := out.Validate(); err != nil {
		return model.NewShoppingList(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return out, nil
}

// Save replaces every row in one transaction. Lists that break the name
// invariants are rejected before the table is touched.
func (s *SQLiteStore) Save(ctx context.Context, list model.ShoppingList) error {
	if err := list.Validate(); err != nil {
		return fmt.Errorf("save items: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items (position, name, name_key, checked) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, item := range list.Items {
		if _, err := stmt.ExecContext(ctx, i, item.Name, model.NameKey(item.Name), boolInt(item.Checked)); err != nil {
			return fmt.Errorf("insert item %q: %w", item.Name, err)
		}
	}
	return tx.Commit()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (model.Item, error) {
	var out model.Item
	var checked int
	if err := s.Scan(&out.Name, &checked); err != nil {
		return model.Item{}, err
	}
	out.Checked = checked == 1
	return out, nil
}
