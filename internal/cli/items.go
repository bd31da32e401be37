package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/editor"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/store"
	"github.com/idilsaglam/todolists/internal/ui"
)

// itemsOpts is shared by every items subcommand.
type itemsOpts struct {
	list  int // 1-based; 0 means the active list
	group bool
}

func newItemsCmd(app *App) *cobra.Command {
	opts := &itemsOpts{}
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Add, complete, edit and remove items of a list",
	}
	cmd.PersistentFlags().IntVar(&opts.list, "list", 0, "1-based list index (default: the selected list)")

	ls := &cobra.Command{
		Use:   "ls",
		Short: "Show the items of a list",
		Args:  noArgs("todo items ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withItems(cmd.Context(), opts, func(_ *store.Store, _ *editor.Editor, _ int, l model.TodoList) error {
				ui.Panel(cmd.OutOrStdout(), itemLines(l, opts.group))
				return nil
			})
		},
	}
	ls.Flags().BoolVar(&opts.group, "group", false, "group output by pending/done")

	add := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item",
		Args:  minArgs(1, "todo items add <text...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return errUsage("add: empty text")
			}
			return app.withItems(cmd.Context(), opts, func(s *store.Store, e *editor.Editor, li int, l model.TodoList) error {
				items, _ := e.AddItem(l, text)
				return replace(cmd, s, li, items, "added")
			})
		},
	}

	done := &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the item at a 1-based index",
		Args:  exactArgs(1, "todo items done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withItems(cmd.Context(), opts, func(s *store.Store, e *editor.Editor, li int, l model.TodoList) error {
				i, err := parseIndex("done", args[0], len(l.Items))
				if err != nil {
					return err
				}
				items, _ := e.ToggleFinished(l, i)
				msg := "toggled"
				if len(items) < len(l.Items) {
					msg = "done and dismissed"
				}
				return replace(cmd, s, li, items, msg)
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the item at a 1-based index",
		Args:  exactArgs(1, "todo items rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withItems(cmd.Context(), opts, func(s *store.Store, e *editor.Editor, li int, l model.TodoList) error {
				i, err := parseIndex("rm", args[0], len(l.Items))
				if err != nil {
					return err
				}
				items, _ := e.DeleteItem(l, i)
				return replace(cmd, s, li, items, "removed")
			})
		},
	}

	edit := &cobra.Command{
		Use:   "edit <index> <text...>",
		Short: "Replace the text of the item at a 1-based index",
		Args:  minArgs(2, "todo items edit <index> <text...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if strings.TrimSpace(text) == "" {
				return errUsage("edit: empty text")
			}
			return app.withItems(cmd.Context(), opts, func(s *store.Store, e *editor.Editor, li int, l model.TodoList) error {
				i, err := parseIndex("edit", args[0], len(l.Items))
				if err != nil {
					return err
				}
				e.BeginEdit(i)
				items, _ := e.ConfirmEdit(l, i, text)
				return replace(cmd, s, li, items, "edited")
			})
		},
	}

	cmd.AddCommand(ls, add, done, rm, edit)
	return cmd
}

// withItems resolves the target list and hands it, with a fresh editor,
// to fn.
func (app *App) withItems(ctx context.Context, opts *itemsOpts, fn func(s *store.Store, e *editor.Editor, index int, l model.TodoList) error) error {
	return app.withStore(ctx, func(s *store.Store) error {
		index := s.ActiveIndex()
		if opts.list != 0 {
			i, err := checkIndex(opts.list, s.Len())
			if err != nil {
				return err
			}
			index = i
		}
		l, ok := s.List(index)
		if !ok {
			return errUsageHint("create one with `todo lists new <name>` or pick one with `todo lists use <index>`",
				"no list selected")
		}
		return fn(s, editor.New(editor.Options{Logger: app.log}), index, l)
	})
}

func replace(cmd *cobra.Command, s *store.Store, index int, items []model.TodoItem, msg string) error {
	if err := s.ReplaceItems(cmd.Context(), index, items); err != nil {
		return err
	}
	ui.OK(cmd.OutOrStdout(), msg)
	return nil
}

// -------------- rendering helpers --------------

func itemLines(l model.TodoList, group bool) []string {
	t := ui.Current()
	d, p := l.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, l.Name),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), len(l.Items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	if l.AutoDismiss {
		lines = append(lines, ui.C(t.Muted, "auto-dismiss: completed items are removed"))
	}
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(l.Items)...)
	} else {
		lines = append(lines, flatLines(numbered(l.Items))...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `todo items add \"Buy milk\"`"))
	return lines
}

type numberedItem struct {
	n  int
	it model.TodoItem
}

func numbered(items []model.TodoItem) []numberedItem {
	out := make([]numberedItem, 0, len(items))
	for i, it := range items {
		out = append(out, numberedItem{n: i + 1, it: it})
	}
	return out
}

func flatLines(items []numberedItem) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for _, ni := range items {
		box, color := t.BoxUnchecked, t.Muted
		if ni.it.Finished {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			ui.Dim(fmt.Sprintf("%2d.", ni.n)), ui.C(color, box), ui.Truncate(ni.it.Text, 80)))
	}
	return out
}

// groupLines keeps the original 1-based numbers so they still work with
// `todo items done <index>`.
func groupLines(items []model.TodoItem) []string {
	t := ui.Current()
	var pend, done []numberedItem
	for _, ni := range numbered(items) {
		if ni.it.Finished {
			done = append(done, ni)
		} else {
			pend = append(pend, ni)
		}
	}
	var lines []string
	lines = append(lines, ui.C(t.Accent, "Pending"))
	if len(pend) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Accent, "Done"))
	if len(done) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	} else {
		lines = append(lines, flatLines(done)...)
	}
	return lines
}
