package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/shopd/internal/commands"
	"github.com/sandeepkv93/shopd/internal/service"
	"github.com/sandeepkv93/shopd/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", Kind: views.StatusInfo}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand(), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), Kind: views.StatusError}
		return m
	}

	res, err := commands.Execute(cmd, m.svc.Handlers(m.ctx))
	switch {
	case service.IsWarning(err):
		m.Status = StatusBar{Text: err.Error(), Kind: views.StatusWarning}
	case err != nil:
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), Kind: views.StatusError}
	case res.Changed:
		m.Status = StatusBar{Text: res.Message, Kind: views.StatusSuccess}
	default:
		m.Status = StatusBar{Text: res.Message, Kind: views.StatusInfo}
	}

	follow := m.cursorName()
	if cmd.Item != nil {
		follow = cmd.Item.Name
	}
	m.reload(follow)
	return m
}

func (m Model) closePalette() Model {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}
