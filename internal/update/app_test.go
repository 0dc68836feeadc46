package update

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/shopd/internal/model"
	"github.com/sandeepkv93/shopd/internal/service"
	"github.com/sandeepkv93/shopd/internal/storage"
	"github.com/sandeepkv93/shopd/internal/views"
)

func newTestModel(t *testing.T, items ...model.Item) (Model, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore(model.ShoppingList{Items: items})
	svc := service.New(store, nil)
	return NewModel(context.Background(), Options{Service: svc}), store
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func stored(t *testing.T, store *storage.MemoryStore) model.ShoppingList {
	t.Helper()
	list, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return list
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t, model.Item{Name: "milk", Checked: true}, model.Item{Name: "Bread"})
	if m.Title != DefaultTitle {
		t.Fatalf("expected title %q, got %q", DefaultTitle, m.Title)
	}
	if !m.InputFocused {
		t.Fatal("expected add input to start focused")
	}
	if len(m.Items) != 2 || m.Items[0].Name != "Bread" || m.Items[1].Name != "milk" {
		t.Fatalf("expected items in display order, got %+v", m.Items)
	}
}

func TestEnterAddsItem(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "Milk", "enter")

	list := stored(t, store)
	if list.Len() != 1 || list.Items[0] != (model.Item{Name: "Milk"}) {
		t.Fatalf("unexpected stored list: %+v", list.Items)
	}
	if m.Status.Kind != views.StatusSuccess || m.Status.Text != "'Milk' added to the list" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if m.AddInputValue() != "" {
		t.Fatalf("expected input cleared, got %q", m.AddInputValue())
	}
	if len(m.Items) != 1 {
		t.Fatalf("expected reloaded items, got %+v", m.Items)
	}
}

func TestEnterWithEmptyNameWarns(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "   ", "enter")
	if m.Status.Kind != views.StatusWarning || m.Status.Text != "Please enter an item name." {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if store.Saves() != 0 {
		t.Fatalf("expected no writes, got %d", store.Saves())
	}
}

func TestEnterWithDuplicateNameWarnsAndKeepsInput(t *testing.T) {
	m, store := newTestModel(t, model.Item{Name: "Milk"})
	m = press(t, m, "milk", "enter")
	if m.Status.Kind != views.StatusWarning || m.Status.Text != "'milk' is already in the list." {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if m.AddInputValue() != "milk" {
		t.Fatalf("expected input kept for editing, got %q", m.AddInputValue())
	}
	if store.Saves() != 0 {
		t.Fatalf("expected no writes, got %d", store.Saves())
	}
}

func TestQuitKeyIsTextWhileTyping(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyMsg("q"))
	next := updated.(Model)
	if next.Quitting {
		t.Fatal("q should be typed into the input, not quit")
	}
	if next.AddInputValue() != "q" {
		t.Fatalf("expected q in input, got %q", next.AddInputValue())
	}

	next = press(t, next, "esc")
	updated, cmd := next.Update(keyMsg("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("q should quit from the list")
	}
}

func TestTypingInsertsAtCursor(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "mlk", "left", "left", "i")
	if m.AddInputValue() != "milk" {
		t.Fatalf("expected insertion at the cursor, got %q", m.AddInputValue())
	}
	m = press(t, m, "enter")
	if list := stored(t, store); list.Len() != 1 || list.Items[0].Name != "milk" {
		t.Fatalf("unexpected stored list: %+v", list.Items)
	}
}

func TestCtrlCAlwaysQuits(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(keyMsg("ctrl+c"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if updated.(Model).View() != "" {
		t.Fatal("expected empty view after quitting")
	}
}

func TestCursorMovesWithinBounds(t *testing.T) {
	m, _ := newTestModel(t, model.Item{Name: "a"}, model.Item{Name: "b"})
	m = press(t, m, "esc", "k")
	if m.Cursor != 0 {
		t.Fatalf("cursor should stay at top, got %d", m.Cursor)
	}
	m = press(t, m, "j", "j", "j")
	if m.Cursor != 1 {
		t.Fatalf("cursor should stop at last row, got %d", m.Cursor)
	}
}

func TestSpaceTogglesSelectedItemAndFollowsIt(t *testing.T) {
	m, store := newTestModel(t, model.Item{Name: "Bread"}, model.Item{Name: "Milk"})
	m = press(t, m, "esc", "space")

	list := stored(t, store)
	item, ok := list.Find("Bread")
	if !ok || !item.Checked {
		t.Fatalf("expected Bread checked, got %+v", list.Items)
	}
	if m.Items[0].Name != "Milk" || m.Items[1].Name != "Bread" {
		t.Fatalf("expected checked item moved down, got %+v", m.Items)
	}
	if m.Cursor != 1 {
		t.Fatalf("expected cursor to follow Bread, got %d", m.Cursor)
	}
	if m.Status.Kind != views.StatusSuccess {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, "space")
	item, _ = stored(t, store).Find("Bread")
	if item.Checked {
		t.Fatal("second space should uncheck Bread")
	}
}

func TestRemoveChecked(t *testing.T) {
	m, store := newTestModel(t, model.Item{Name: "A", Checked: true}, model.Item{Name: "B"})
	m = press(t, m, "esc", "D")

	list := stored(t, store)
	if list.Len() != 1 || list.Items[0] != (model.Item{Name: "B"}) {
		t.Fatalf("unexpected stored list: %+v", list.Items)
	}
	if len(m.Items) != 1 {
		t.Fatalf("expected reloaded items, got %+v", m.Items)
	}
}

func TestRemoveCheckedWithNothingChecked(t *testing.T) {
	m, store := newTestModel(t, model.Item{Name: "A"})
	m = press(t, m, "esc", "D")
	if m.Status.Kind != views.StatusInfo || m.Status.Text != "no item was checked" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if store.Saves() != 0 {
		t.Fatalf("expected no writes, got %d", store.Saves())
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	m, store := newTestModel(t, model.Item{Name: "A"}, model.Item{Name: "B", Checked: true})
	m = press(t, m, "esc", "R")
	if !m.ConfirmReset {
		t.Fatal("expected reset confirmation prompt")
	}
	if !strings.Contains(m.View(), "reset the whole list?") {
		t.Fatal("expected confirmation in view")
	}

	m = press(t, m, "n")
	if m.ConfirmReset || stored(t, store).Len() != 2 {
		t.Fatal("any key other than y should cancel the reset")
	}

	m = press(t, m, "R", "y")
	if !stored(t, store).IsEmpty() || len(m.Items) != 0 {
		t.Fatalf("expected empty list after reset, got %+v", m.Items)
	}
	if !strings.Contains(m.View(), views.EmptyListMessage) {
		t.Fatal("expected empty list message in view")
	}
}

func TestResetIgnoredOnEmptyList(t *testing.T) {
	m, store := newTestModel(t)
	m = press(t, m, "esc", "R")
	if m.ConfirmReset {
		t.Fatal("reset is not offered for an empty list")
	}
	if store.Saves() != 0 {
		t.Fatalf("expected no writes, got %d", store.Saves())
	}
}

func TestPaletteRunsCommand(t *testing.T) {
	m, store := newTestModel(t, model.Item{Name: "Milk"})
	m = press(t, m, "esc", "/")
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = press(t, m, "check milk", "enter")
	if m.Palette.Active {
		t.Fatal("expected palette closed after running")
	}
	item, _ := stored(t, store).Find("Milk")
	if !item.Checked {
		t.Fatal("expected Milk checked via palette")
	}
	if m.Status.Kind != views.StatusSuccess {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestPaletteTypingInsertsAtCursor(t *testing.T) {
	m, store := newTestModel(t, model.Item{Name: "Milk"})
	m = press(t, m, "esc", "/", "chck milk")
	for i := 0; i < len(" milk")+2; i++ {
		m = press(t, m, "left")
	}
	m = press(t, m, "e")
	if m.Palette.Input != "check milk" {
		t.Fatalf("expected palette insertion at the cursor, got %q", m.Palette.Input)
	}
	m = press(t, m, "enter")
	if item, _ := stored(t, store).Find("Milk"); !item.Checked {
		t.Fatal("expected Milk checked via palette")
	}
}

func TestPaletteReportsErrors(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "esc", "/", "frobnicate", "enter")
	if m.Status.Kind != views.StatusError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, "/", "toggle eggs", "enter")
	if m.Status.Kind != views.StatusWarning || m.Status.Text != "'eggs' is not in the list." {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, "/", "esc")
	if m.Palette.Active {
		t.Fatal("esc should close the palette")
	}
}

func TestSaveFailureShowsError(t *testing.T) {
	m, store := newTestModel(t)
	store.SaveErr = errors.New("disk full")
	m = press(t, m, "Milk", "enter")
	if m.Status.Kind != views.StatusError || !strings.Contains(m.Status.Text, "disk full") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if m.LastError == nil {
		t.Fatal("expected last error to be recorded")
	}
	if len(m.Items) != 0 {
		t.Fatalf("expected no items after failed save, got %+v", m.Items)
	}
}

func TestListChangedReloads(t *testing.T) {
	m, store := newTestModel(t)
	if err := store.Save(context.Background(), model.ShoppingList{Items: []model.Item{{Name: "Eggs"}}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated, _ := m.Update(ListChangedMsg{})
	next := updated.(Model)
	if len(next.Items) != 1 || next.Items[0].Name != "Eggs" {
		t.Fatalf("expected reload after external change, got %+v", next.Items)
	}
}

func TestWaitForChangeCmd(t *testing.T) {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	if _, ok := waitForChangeCmd(ch)().(ListChangedMsg); !ok {
		t.Fatal("expected ListChangedMsg")
	}
	close(ch)
	if msg := waitForChangeCmd(ch)(); msg != nil {
		t.Fatalf("expected nil msg on closed channel, got %T", msg)
	}
}

func TestStatusClearsAfterTimeout(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(keyMsg("Milk"))
	m = updated.(Model)
	updated, cmd = m.Update(keyMsg("enter"))
	m = updated.(Model)
	if cmd == nil || m.statusSeq != 1 {
		t.Fatalf("expected a clear timer for the new status, seq=%d", m.statusSeq)
	}

	m = press(t, m, "Milk", "enter")
	if m.statusSeq != 2 || m.Status.Kind != views.StatusWarning {
		t.Fatalf("expected a newer warning status, got seq=%d %+v", m.statusSeq, m.Status)
	}

	updated, _ = m.Update(ClearStatusMsg{Seq: 1})
	m = updated.(Model)
	if m.Status.Text == "" {
		t.Fatal("a stale timer must not clear a newer status")
	}
	updated, _ = m.Update(ClearStatusMsg{Seq: 2})
	m = updated.(Model)
	if m.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func TestNegativeStatusTimeoutKeepsStatus(t *testing.T) {
	store := storage.NewMemoryStore(model.NewShoppingList())
	m := NewModel(context.Background(), Options{Service: service.New(store, nil), StatusTimeout: -1})
	m = press(t, m, "Milk", "enter")
	if m.statusSeq != 0 || m.Status.Text == "" {
		t.Fatalf("expected status without a timer, seq=%d %+v", m.statusSeq, m.Status)
	}
}

func TestViewShowsTitleRowsAndHelp(t *testing.T) {
	m, _ := newTestModel(t, model.Item{Name: "Milk", Checked: true}, model.Item{Name: "Bread"})
	view := m.View()
	for _, want := range []string{DefaultTitle, "[ ] Bread", "[x]", "Milk", "remove checked"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	m = press(t, m, "esc", "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "/clear") {
		t.Fatal("expected help panel")
	}
}
