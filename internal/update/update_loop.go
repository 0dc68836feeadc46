package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/shopd/internal/service"
	"github.com/sandeepkv93/shopd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.changes != nil {
		cmds = append(cmds, waitForChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

func waitForChangeCmd(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return ListChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(typed, m.Keys.ForceQuit) {
			m.Quitting = true
			return m, tea.Quit
		}
		before := m.Status
		next, cmd := m.handleKey(typed)
		return next.scheduleStatusClear(before, cmd)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case ListChangedMsg:
		m.logger.Debug("store changed externally, reloading")
		m.reload(m.cursorName())
		if m.changes != nil {
			return m, waitForChangeCmd(m.changes)
		}
		return m, nil
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.ConfirmReset {
		return m.handleConfirmResetKey(msg), nil
	}
	if m.InputFocused {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

// scheduleStatusClear arms a timer for a status line set by the last key.
// Older timers carry a stale sequence number and are ignored.
func (m Model) scheduleStatusClear(before StatusBar, cmd tea.Cmd) (Model, tea.Cmd) {
	if m.Quitting || m.statusTTL <= 0 || m.Status.Text == "" || m.Status == before {
		return m, cmd
	}
	m.statusSeq++
	seq := m.statusSeq
	expire := tea.Tick(m.statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
	if cmd == nil {
		return m, expire
	}
	return m, tea.Batch(cmd, expire)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Add):
		name := m.addInput.Value()
		res, err := m.svc.Add(m.ctx, name)
		m = m.applyResult(res, err, name)
		if err == nil {
			m.addInput.SetValue("")
		}
		return m, nil
	case key.Matches(msg, m.Keys.FocusList):
		m.InputFocused = false
		m.addInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Palette):
		m.Palette = CommandPaletteState{Active: true}
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active", Kind: views.StatusInfo}
		return m, nil
	case key.Matches(msg, m.Keys.FocusInput):
		m.InputFocused = true
		cmd := m.addInput.Focus()
		return m, cmd
	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
		return m, nil
	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case key.Matches(msg, m.Keys.Toggle):
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		res, err := m.svc.Flip(m.ctx, item.Name)
		return m.applyResult(res, err, item.Name), nil
	case key.Matches(msg, m.Keys.RemoveChecked):
		if len(m.Items) == 0 {
			return m, nil
		}
		res, err := m.svc.RemoveChecked(m.ctx)
		return m.applyResult(res, err, m.cursorName()), nil
	case key.Matches(msg, m.Keys.Reset):
		if len(m.Items) == 0 {
			return m, nil
		}
		m.ConfirmReset = true
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmResetKey(msg tea.KeyMsg) Model {
	m.ConfirmReset = false
	if !key.Matches(msg, m.Keys.Confirm) {
		m.Status = StatusBar{Text: "reset cancelled", Kind: views.StatusInfo}
		return m
	}
	res, err := m.svc.Reset(m.ctx)
	return m.applyResult(res, err, "")
}

// applyResult turns an action result into a status line and reloads the list
// from the store.
func (m Model) applyResult(res service.Result, err error, follow string) Model {
	switch {
	case service.IsWarning(err):
		m.Status = StatusBar{Text: err.Error(), Kind: views.StatusWarning}
	case err != nil:
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), Kind: views.StatusError}
		m.logger.Error("action failed", zap.Error(err))
	case res.Outcome.Changed:
		m.Status = StatusBar{Text: res.Outcome.Message, Kind: views.StatusSuccess}
	default:
		m.Status = StatusBar{Text: res.Outcome.Message, Kind: views.StatusInfo}
	}
	m.reload(follow)
	return m
}

func (m Model) cursorName() string {
	if item, ok := m.selected(); ok {
		return item.Name
	}
	return ""
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	rows := make([]views.ItemRow, 0, len(m.Items))
	for i, item := range m.Items {
		rows = append(rows, views.ItemRow{
			Name:     item.Name,
			Checked:  item.Checked,
			Selected: !m.InputFocused && i == m.Cursor,
		})
	}
	body := views.RenderListPanel(views.ListPanelData{
		InputView:    m.addInput.View(),
		Items:        rows,
		ConfirmReset: m.ConfirmReset,
	})
	side := strings.TrimSpace(strings.Join([]string{
		views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()),
		m.renderHelpIfVisible(),
	}, "\n\n"))

	return views.RenderApp(views.AppData{
		Header:     m.Title,
		Body:       body,
		Side:       side,
		StatusLine: m.Status.Text,
		StatusKind: m.Status.Kind,
		Footer:     m.footer(),
	})
}

func (m Model) footer() string {
	if m.InputFocused {
		return "enter add | esc list | ctrl+c quit"
	}
	checked := 0
	for _, item := range m.Items {
		if item.Checked {
			checked++
		}
	}
	return fmt.Sprintf("%d items, %d checked | i add | space toggle | / cmd | ? help | q quit", len(m.Items), checked)
}
