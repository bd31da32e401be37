package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolists/internal/store"
	"github.com/idilsaglam/todolists/internal/ui"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Create, select, rename and delete lists",
	}
	cmd.AddCommand(newListsLsCmd(app))
	cmd.AddCommand(newListsNewCmd(app))
	cmd.AddCommand(newListsRmCmd(app))
	cmd.AddCommand(newListsRenameCmd(app))
	cmd.AddCommand(newListsUseCmd(app))
	cmd.AddCommand(newListsDismissCmd(app))
	return cmd
}

func newListsLsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Show all lists",
		Args:  noArgs("todo lists ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withStore(cmd.Context(), func(s *store.Store) error {
				ui.Panel(cmd.OutOrStdout(), listLines(s))
				return nil
			})
		},
	}
}

func newListsNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name...>",
		Short: "Create a list and select it",
		Args:  minArgs(1, "todo lists new <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return app.withStore(cmd.Context(), func(s *store.Store) error {
				if err := s.CreateList(cmd.Context(), name); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("created %q", strings.TrimSpace(name)))
				return nil
			})
		},
	}
}

func newListsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Delete the list at a 1-based index",
		Args:  exactArgs(1, "todo lists rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withStore(cmd.Context(), func(s *store.Store) error {
				i, err := parseIndex("rm", args[0], s.Len())
				if err != nil {
					return err
				}
				l, _ := s.List(i)
				if err := s.DeleteList(cmd.Context(), i); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("removed %q", l.Name))
				return nil
			})
		},
	}
}

func newListsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <index> <name...>",
		Short: "Rename the list at a 1-based index",
		Args:  minArgs(2, "todo lists rename <index> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withStore(cmd.Context(), func(s *store.Store) error {
				i, err := parseIndex("rename", args[0], s.Len())
				if err != nil {
					return err
				}
				if err := s.RenameList(cmd.Context(), i, strings.Join(args[1:], " ")); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "renamed")
				return nil
			})
		},
	}
}

func newListsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <index>",
		Short: "Select the list that item commands act on",
		Args:  exactArgs(1, "todo lists use <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withStore(cmd.Context(), func(s *store.Store) error {
				i, err := parseIndex("use", args[0], s.Len())
				if err != nil {
					return err
				}
				if err := s.SelectList(cmd.Context(), i); err != nil {
					return err
				}
				l, _ := s.List(i)
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("using %q", l.Name))
				return nil
			})
		},
	}
}

func newListsDismissCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <index> on|off",
		Short: "Remove items as soon as they are completed",
		Args:  exactArgs(2, "todo lists dismiss <index> on|off"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch strings.ToLower(args[1]) {
			case "on", "true", "yes":
				on = true
			case "off", "false", "no":
			default:
				return errUsage("dismiss: want on|off, got %q", args[1])
			}
			return app.withStore(cmd.Context(), func(s *store.Store) error {
				i, err := parseIndex("dismiss", args[0], s.Len())
				if err != nil {
					return err
				}
				if err := s.SetAutoDismiss(cmd.Context(), i, on); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "auto-dismiss "+onOff(on))
				return nil
			})
		},
	}
}

func listLines(s *store.Store) []string {
	t := ui.Current()
	lists := s.Lists()
	lines := []string{
		fmt.Sprintf("%s  %s %d", ui.C(t.Title, "Lists"), ui.C(t.Accent, "Total"), len(lists)),
		"",
	}
	if len(lists) == 0 {
		lines = append(lines, ui.C(t.Muted, "no lists"))
		lines = append(lines, "", ui.C(t.Muted, "Tip: create one with `todo lists new \"Groceries\"`"))
		return lines
	}
	for i, l := range lists {
		marker := " "
		name := l.Name
		if i == s.ActiveIndex() {
			marker = ui.C(t.Accent, t.SymActive)
			name = ui.C(t.Title, name)
		}
		done, pending := l.Stats()
		extra := ""
		if l.AutoDismiss {
			extra = ui.C(t.Muted, " auto-dismiss")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s%s",
			ui.Dim(fmt.Sprintf("%2d.", i+1)), marker, ui.Truncate(name, 60),
			ui.C(t.Muted, fmt.Sprintf("(%d/%d)", done, done+pending)), extra))
	}
	return lines
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// parseIndex converts a 1-based argument into a 0-based index below n.
func parseIndex(verb, arg string, n int) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errUsage("%s: not a number: %s", verb, arg)
	}
	return checkIndex(v, n)
}

func checkIndex(v, n int) (int, error) {
	if v < 1 || v > n {
		return 0, errUsageHint("run `todo lists ls` or `todo items ls` to see valid indexes",
			"index out of range: have %d, got %d", n, v)
	}
	return v - 1, nil
}

func noArgs(usage string) cobra.PositionalArgs {
	return exactArgs(0, usage)
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errUsage("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return errUsage("usage: %s", usage)
		}
		return nil
	}
}
