package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyName     = errors.New("model: item name is required")
	ErrDuplicateName = errors.New("model: item already in the list")
	ErrItemNotFound  = errors.New("model: item not in the list")
)

type Item struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// ShoppingList is the whole persisted document. Items keep insertion order;
// display order is derived by SortForDisplay.
type ShoppingList struct {
	Items []Item `json:"items"`
}

func NewShoppingList() ShoppingList {
	return ShoppingList{Items: []Item{}}
}

// NameKey folds a name to the key used for uniqueness. Only case is folded:
// "Milk " and "milk" are different names.
func NameKey(name string) string {
	return strings.ToLower(name)
}

func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

func (l ShoppingList) Len() int {
	return len(l.Items)
}

func (l ShoppingList) IsEmpty() bool {
	return len(l.Items) == 0
}

func (l ShoppingList) Index(name string) int {
	key := NameKey(name)
	for i, item := range l.Items {
		if NameKey(item.Name) == key {
			return i
		}
	}
	return -1
}

func (l ShoppingList) Contains(name string) bool {
	return l.Index(name) >= 0
}

// Lookup resolves a name typed by a user. An exact case-insensitive match
// wins; otherwise surrounding whitespace in the input is ignored.
func (l ShoppingList) Lookup(name string) int {
	if idx := l.Index(name); idx >= 0 {
		return idx
	}
	return l.Index(strings.TrimSpace(name))
}

func (l ShoppingList) Find(name string) (Item, bool) {
	idx := l.Index(name)
	if idx < 0 {
		return Item{}, false
	}
	return l.Items[idx], true
}

func (l ShoppingList) CheckedCount() int {
	n := 0
	for _, item := range l.Items {
		if item.Checked {
			n++
		}
	}
	return n
}

// Clone returns a deep copy; reducers never alias the caller's slice.
func (l ShoppingList) Clone() ShoppingList {
	out := make([]Item, len(l.Items))
	copy(out, l.Items)
	return ShoppingList{Items: out}
}

func (l ShoppingList) Validate() error {
	seen := make(map[string]struct{}, len(l.Items))
	for i, item := range l.Items {
		if item.Name == "" {
			return fmt.Errorf("%w: item %d", ErrEmptyName, i)
		}
		key := NameKey(item.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, item.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Normalize drops entries that break the list invariants (empty names, later
// case-insensitive duplicates). Used when reading documents edited by hand.
// Names are kept byte for byte.
func (l ShoppingList) Normalize() ShoppingList {
	out := make([]Item, 0, len(l.Items))
	seen := make(map[string]struct{}, len(l.Items))
	for _, item := range l.Items {
		if item.Name == "" {
			continue
		}
		key := NameKey(item.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return ShoppingList{Items: out}
}

// SortForDisplay returns unchecked items first, then checked items, each group
// ordered by case-insensitive name. The receiver is not modified.
func (l ShoppingList) SortForDisplay() []Item {
	out := make([]Item, len(l.Items))
	copy(out, l.Items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Checked != out[j].Checked {
			return !out[i].Checked
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (l ShoppingList) Equal(other ShoppingList) bool {
	if len(l.Items) != len(other.Items) {
		return false
	}
	for i := range l.Items {
		if l.Items[i] != other.Items[i] {
			return false
		}
	}
	return true
}
