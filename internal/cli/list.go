package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/shopd/internal/model"
	"github.com/sandeepkv93/shopd/internal/storage"
	"github.com/sandeepkv93/shopd/internal/update"
	"github.com/sandeepkv93/shopd/internal/views"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func (a *app) newListCommand() *cobra.Command {
	var (
		format string
		raw    bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the list in display order",
		Long: `Print the list with unchecked items first, each group sorted by name
ignoring case. The stored order is not changed.

Formats:
  text      one "[ ] name" line per item
  json      the stored document layout with a 4-space indent
  markdown  a task list, styled when printing to a terminal`,
		Example: `  shopd list
  shopd list --format json > snapshot.json
  shopd list --format markdown --raw`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			switch format {
			case formatText, formatJSON, formatMarkdown:
			default:
				return fmt.Errorf("unknown format %q (want text, json or markdown)", format)
			}
			return a.withSession(cmd, false, func(ctx context.Context, s session) error {
				items := s.svc.List(ctx)
				out, err := renderList(items, format, raw || !isTerminal(cmd.OutOrStdout()))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or markdown")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown source even on a terminal")
	return cmd
}

func renderList(items []model.Item, format string, raw bool) (string, error) {
	rows := make([]views.ItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, views.ItemRow{Name: item.Name, Checked: item.Checked})
	}
	switch format {
	case formatJSON:
		payload, err := storage.EncodeList(model.ShoppingList{Items: items})
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(payload), "\n"), nil
	case formatMarkdown:
		md := views.MarkdownList(update.DefaultTitle, rows)
		if raw {
			return strings.TrimRight(md, "\n"), nil
		}
		return views.RenderMarkdown(md), nil
	default:
		return views.PlainList(rows), nil
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
