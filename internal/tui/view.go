package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// chromeHeight is the rows taken by header, pane borders, prompt and help.
const chromeHeight = 9

// drawerItem adapts a list summary to bubbles/list.Item.
type drawerItem struct {
	name        string
	done, total int
	active      bool
	autoDismiss bool
}

func (i drawerItem) FilterValue() string { return i.name }

// drawerDelegate renders one drawer row per list.
type drawerDelegate struct {
	focused bool
}

func (d drawerDelegate) Height() int                               { return 1 }
func (d drawerDelegate) Spacing() int                              { return 0 }
func (d drawerDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d drawerDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(drawerItem)
	marker := " "
	name := it.name
	if it.active {
		marker = accentStyle.Render(activeMarker)
		name = titleStyle.Render(name)
	}
	counts := mutedStyle.Render(fmt.Sprintf("%d/%d", it.done, it.total))
	if it.autoDismiss {
		counts = mutedStyle.Render("auto")
	}

	line := fmt.Sprintf("%s %s %s", marker, name, counts)
	if width := m.Width(); width > 2 {
		line = ansi.Truncate(line, width-2, "…")
	}
	prefix := "  "
	if d.focused && index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

func (m appModel) drawerWidth() int {
	if m.compact() {
		return max(10, m.width-4)
	}
	return max(18, m.width/3)
}

func (m appModel) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	switch {
	case m.mode == modeConfig || m.mode == modeConfirmDelete:
		b.WriteString(m.configView())
	case m.compact() && m.pane == paneLists:
		b.WriteString(m.drawerView())
	case m.compact():
		b.WriteString(m.itemsView())
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.drawerView(), m.itemsView()))
	}
	b.WriteString("\n")

	if p := m.promptView(); p != "" {
		b.WriteString(p)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.helpKeys()))
	return b.String()
}

func (m appModel) header() string {
	l, ok := m.store.Active()
	if !ok {
		return titleStyle.Render("Todo lists")
	}
	if m.mode == modeRenameList {
		title := "Rename list"
		if m.promptErr != "" {
			title += " - " + errorStyle.Render(m.promptErr)
		}
		return title + "\n" + m.input.View()
	}
	done, pending := l.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(l.Name),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), len(l.Items),
	)
}

func (m appModel) drawerView() string {
	style := paneStyle
	if m.pane == paneLists {
		style = focusedPaneStyle
	}
	if m.store.Len() == 0 {
		return style.Render(titleStyle.Render("Lists") + "\n\n" + mutedStyle.Render("no lists"))
	}
	return style.Render(m.drawer.View())
}

func (m appModel) itemsView() string {
	style := paneStyle
	if m.pane == paneItems {
		style = focusedPaneStyle
	}
	if m.width > 0 && !m.compact() {
		style = style.Width(max(20, m.width-m.drawerWidth()-6))
	}

	l, ok := m.store.Active()
	if !ok {
		lines := []string{
			titleStyle.Render("Nothing selected"),
			"",
			mutedStyle.Render("Create a list with n, or pick one from the drawer."),
		}
		return style.Render(strings.Join(lines, "\n"))
	}
	if len(l.Items) == 0 {
		return style.Render(mutedStyle.Render("No items yet. Press a to add one."))
	}

	rows := make([]string, 0, len(l.Items))
	edited := m.editor.Edited()
	for i, it := range l.Items {
		prefix := "  "
		if m.pane == paneItems && i == m.itemCursor {
			prefix = selectedStyle.Render("> ")
		}
		box := mutedStyle.Render(boxUnchecked)
		text := it.Text
		if it.Finished {
			box = successStyle.Render(boxChecked)
			text = doneStyle.Render(text)
		}
		if m.mode == modeEditItem && i == edited {
			text = m.input.View()
		}
		rows = append(rows, fmt.Sprintf("%s%s %s", prefix, box, text))
	}
	return style.Render(strings.Join(rows, "\n"))
}

// promptView is the input bar for add and new-list; edit and rename are
// drawn inline.
func (m appModel) promptView() string {
	var title string
	switch m.mode {
	case modeAddItem:
		title = "Add new item"
	case modeNewList:
		title = "New list"
	default:
		return ""
	}
	if m.promptErr != "" {
		title += " - " + errorStyle.Render(m.promptErr)
	}
	return paneStyle.Render(title + "\n" + m.input.View())
}

func (m appModel) configView() string {
	l, ok := m.store.List(m.store.ConfigIndex())
	if !ok {
		return ""
	}
	box := boxUnchecked
	if l.AutoDismiss {
		box = boxChecked
	}
	lines := []string{
		titleStyle.Render(l.Name + " settings"),
		"",
		fmt.Sprintf("%s Remove items once they are done", box),
		"",
	}
	if m.mode == modeConfirmDelete {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Delete %q and all its items? y/n", l.Name)))
	} else {
		lines = append(lines, mutedStyle.Render("d delete this list"))
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}
