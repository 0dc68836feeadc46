package model

import (
	"fmt"
	"strings"
)

type ActionKind string

const (
	ActionAdd           ActionKind = "add"
	ActionToggle        ActionKind = "toggle"
	ActionFlip          ActionKind = "flip"
	ActionRemoveChecked ActionKind = "remove_checked"
	ActionReset         ActionKind = "reset"
)

type Action struct {
	Kind    ActionKind
	Name    string
	Checked bool
}

// Outcome reports what a reducer did. Changed is the only signal callers use
// to decide whether the list must be written back.
type Outcome struct {
	Changed bool
	Message string
}

func Add(name string) Action { return Action{Kind: ActionAdd, Name: name} }

func Toggle(name string, checked bool) Action {
	return Action{Kind: ActionToggle, Name: name, Checked: checked}
}

func Flip(name string) Action { return Action{Kind: ActionFlip, Name: name} }

func RemoveChecked() Action { return Action{Kind: ActionRemoveChecked} }

func Reset() Action { return Action{Kind: ActionReset} }

// Apply is the pure transition function of the list. It never mutates in and
// returns in unchanged together with an error for rejected actions.
func Apply(in ShoppingList, action Action) (ShoppingList, Outcome, error) {
	switch action.Kind {
	case ActionAdd:
		return applyAdd(in, action.Name)
	case ActionToggle:
		return applyToggle(in, action.Name, action.Checked)
	case ActionFlip:
		idx := in.Lookup(action.Name)
		if idx < 0 {
			return in, Outcome{}, fmt.Errorf("%w: %q", ErrItemNotFound, strings.TrimSpace(action.Name))
		}
		return applyToggle(in, action.Name, !in.Items[idx].Checked)
	case ActionRemoveChecked:
		return applyRemoveChecked(in)
	case ActionReset:
		return NewShoppingList(), Outcome{Changed: true, Message: "list reset"}, nil
	default:
		return in, Outcome{}, fmt.Errorf("model: unknown action %q", action.Kind)
	}
}

func applyAdd(in ShoppingList, name string) (ShoppingList, Outcome, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return in, Outcome{}, ErrEmptyName
	}
	if in.Contains(trimmed) {
		return in, Outcome{}, fmt.Errorf("%w: %q", ErrDuplicateName, trimmed)
	}
	out := in.Clone()
	out.Items = append(out.Items, Item{Name: trimmed, Checked: false})
	return out, Outcome{Changed: true, Message: fmt.Sprintf("'%s' added to the list", trimmed)}, nil
}

func applyToggle(in ShoppingList, name string, checked bool) (ShoppingList, Outcome, error) {
	idx := in.Lookup(name)
	if idx < 0 {
		return in, Outcome{}, fmt.Errorf("%w: %q", ErrItemNotFound, strings.TrimSpace(name))
	}
	current := in.Items[idx]
	if current.Checked == checked {
		return in, Outcome{Message: fmt.Sprintf("'%s' %s", current.Name, checkedWord(checked, true))}, nil
	}
	out := in.Clone()
	out.Items[idx].Checked = checked
	return out, Outcome{Changed: true, Message: fmt.Sprintf("'%s' %s", current.Name, checkedWord(checked, false))}, nil
}

func applyRemoveChecked(in ShoppingList) (ShoppingList, Outcome, error) {
	keep := make([]Item, 0, len(in.Items))
	for _, item := range in.Items {
		if !item.Checked {
			keep = append(keep, item)
		}
	}
	if len(keep) == len(in.Items) {
		return in, Outcome{Message: "no item was checked"}, nil
	}
	removed := len(in.Items) - len(keep)
	return ShoppingList{Items: keep}, Outcome{Changed: true, Message: fmt.Sprintf("removed %d checked %s", removed, plural(removed, "item", "items"))}, nil
}

func checkedWord(checked, already bool) string {
	switch {
	case checked && already:
		return "already checked"
	case checked:
		return "checked"
	case already:
		return "already unchecked"
	default:
		return "unchecked"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
