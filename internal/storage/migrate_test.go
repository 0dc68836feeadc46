package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/shopd/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store after roundtrip: %v", err)
	}

	in := model.ShoppingList{Items: []model.Item{{Name: "Roundtrip", Checked: true}}}
	if err := store.Save(context.Background(), in); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load after roundtrip failed: %v", err)
	}
	if !got.Equal(in) {
		t.Fatalf("unexpected list after roundtrip: %+v", got.Items)
	}
}
