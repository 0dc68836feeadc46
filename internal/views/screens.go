package views

import (
	"fmt"
	"strings"
)

const EmptyListMessage = "The shopping list is empty!"

type ItemRow struct {
	Name     string
	Checked  bool
	Selected bool
}

type ListPanelData struct {
	Title        string
	InputView    string
	Items        []ItemRow
	ConfirmReset bool
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Add an item") + "\n")
	b.WriteString(data.InputView + "\n\n")

	if len(data.Items) > 0 {
		b.WriteString("actions: [D]remove checked [R]reset\n")
		if data.ConfirmReset {
			b.WriteString(warningStyle.Render("reset the whole list? [y/N]") + "\n")
		}
		b.WriteString("\n")
	}

	title := data.Title
	if title == "" {
		title = "To buy"
	}
	b.WriteString(sectionStyle.Render(title) + "\n")
	if len(data.Items) == 0 {
		b.WriteString(infoStyle.Render(EmptyListMessage))
		return b.String()
	}
	for _, row := range data.Items {
		b.WriteString(renderRow(row) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderRow(row ItemRow) string {
	prefix := "  "
	if row.Selected {
		prefix = cursorStyle.Render("> ")
	}
	box := "[ ]"
	name := row.Name
	if row.Checked {
		box = "[x]"
		name = checkedStyle.Render(name)
	}
	return fmt.Sprintf("%s%s %s", prefix, box, name)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView + "\n(enter to run, esc to cancel)"
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	if data.HelpView != "" {
		b.WriteString(data.HelpView + "\n")
	}
	for _, line := range data.Bindings {
		b.WriteString("  " + line + "\n")
	}
	return strings.TrimSpace(b.String())
}

// PlainList renders rows as "[x] name" lines for non-interactive output.
func PlainList(rows []ItemRow) string {
	if len(rows) == 0 {
		return EmptyListMessage
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		box := "[ ]"
		if row.Checked {
			box = "[x]"
		}
		lines = append(lines, box+" "+row.Name)
	}
	return strings.Join(lines, "\n")
}

// MarkdownList renders rows as a GitHub-style task list under a heading.
func MarkdownList(title string, rows []ItemRow) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	if len(rows) == 0 {
		b.WriteString("_" + EmptyListMessage + "_\n")
		return b.String()
	}
	for _, row := range rows {
		box := "[ ]"
		if row.Checked {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("- %s %s\n", box, escapeMarkdown(row.Name)))
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
