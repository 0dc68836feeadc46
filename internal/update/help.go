package update

import (
	"fmt"

	"github.com/sandeepkv93/shopd/internal/views"
)

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: paletteBindings(),
		HelpView: m.helpModel.View(m.Keys),
	})
}

func paletteBindings() []string {
	return []string{
		fmt.Sprintf("%-22s %s", "/add NAME", "add an item"),
		fmt.Sprintf("%-22s %s", "/check NAME", "mark as bought"),
		fmt.Sprintf("%-22s %s", "/uncheck NAME", "mark as still needed"),
		fmt.Sprintf("%-22s %s", "/toggle NAME", "flip the checkbox"),
		fmt.Sprintf("%-22s %s", "/clear", "remove checked items"),
		fmt.Sprintf("%-22s %s", "/reset", "empty the list"),
		fmt.Sprintf("%-22s %s", "/list", "count items"),
	}
}
