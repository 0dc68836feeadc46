package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/shopd/internal/model"
)

const DefaultFilePath = "shopping_list.json"

const jsonIndent = "    "

// JSONFileStore keeps the list in a single pretty-printed JSON file.
type JSONFileStore struct {
	path string
}

func NewJSONFileStore(path string) *JSONFileStore {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = DefaultFilePath
	}
	return &JSONFileStore{path: trimmed}
}

func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Load(ctx context.Context) (model.ShoppingList, error) {
	if err := ctx.Err(); err != nil {
		return model.NewShoppingList(), err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewShoppingList(), nil
		}
		return model.NewShoppingList(), fmt.Errorf("read %s: %w", s.path, err)
	}
	return DecodeList(raw)
}

func (s *JSONFileStore) Save(ctx context.Context, list model.ShoppingList) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := EncodeList(list)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFileStore) Close() error {
	return nil
}

// EncodeList renders the document with a 4-space indent and a trailing newline.
func EncodeList(list model.ShoppingList) ([]byte, error) {
	doc := list
	if doc.Items == nil {
		doc.Items = []model.Item{}
	}
	payload, err := json.MarshalIndent(doc, "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}
	return append(payload, '\n'), nil
}

// DecodeList parses a stored document. Blank input is an empty list; anything
// that is not a JSON object with an items array is ErrCorrupt.
func DecodeList(raw []byte) (model.ShoppingList, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return model.NewShoppingList(), nil
	}
	var doc model.ShoppingList
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.NewShoppingList(), fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Items == nil {
		doc.Items = []model.Item{}
	}
	return doc.Normalize(), nil
}
