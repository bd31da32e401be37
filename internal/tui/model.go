// Package tui is the interactive front end: a drawer of named lists next to
// the items of the selected list, with inline add/edit and a per-list
// settings modal.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolists/internal/editor"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/store"
)

// blurDelay is how long an input may stay unfocused before it closes.
// Pressing enter inside that window still confirms.
const blurDelay = 100 * time.Millisecond

// compactWidth is the terminal width below which only one pane is shown.
const compactWidth = 64

type Options struct {
	Logger *slog.Logger
}

type mode int

const (
	modeNormal mode = iota
	modeAddItem
	modeEditItem
	modeNewList
	modeRenameList
	modeConfig
	modeConfirmDelete
)

type pane int

const (
	paneItems pane = iota
	paneLists
)

type (
	itemBlurMsg   struct{ token uint64 }
	renameBlurMsg struct{ gen uint64 }
)

type appModel struct {
	ctx   context.Context
	store *store.Store
	log   *slog.Logger

	// editor is per list; it is replaced whenever another list becomes
	// active.
	editor   *editor.Editor
	activeID string

	keys   keyMap
	help   help.Model
	drawer list.Model
	input  textinput.Model

	mode       mode
	pane       pane
	itemCursor int

	// renameGen invalidates pending rename blur timers.
	renameGen uint64

	promptErr string
	status    string

	width, height int
}

// Run starts the TUI on s and blocks until the user quits.
func Run(ctx context.Context, s *store.Store, opts Options) error {
	applyColorProfilePreference()
	m := newAppModel(ctx, s, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func newAppModel(ctx context.Context, s *store.Store, opts Options) appModel {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	d := list.New(nil, drawerDelegate{}, 0, 0)
	d.Title = "Lists"
	d.SetShowHelp(false)
	d.SetShowStatusBar(false)
	d.SetFilteringEnabled(false)
	d.SetShowPagination(true)
	d.Styles.Title = titleStyle
	d.Styles.PaginationStyle = mutedStyle

	m := appModel{
		ctx:    ctx,
		store:  s,
		log:    log,
		editor: editor.New(editor.Options{Logger: log}),
		keys:   defaultKeyMap(),
		help:   help.New(),
		drawer: d,
		input:  ti,
	}
	if l, ok := s.Active(); ok {
		m.activeID = l.ID
	}
	if s.Len() == 0 {
		m.pane = paneLists
	}
	m.refreshDrawer()
	if a := s.ActiveIndex(); a != model.NoList {
		m.drawer.Select(a)
	}
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// refreshDrawer rebuilds the drawer rows from the store, keeping the
// cursor on the same row where possible.
func (m *appModel) refreshDrawer() {
	lists := m.store.Lists()
	rows := make([]list.Item, 0, len(lists))
	for i, l := range lists {
		done, pending := l.Stats()
		rows = append(rows, drawerItem{
			name:        l.Name,
			done:        done,
			total:       done + pending,
			active:      i == m.store.ActiveIndex(),
			autoDismiss: l.AutoDismiss,
		})
	}
	cur := m.drawer.Index()
	m.drawer.SetItems(rows)
	m.drawer.SetDelegate(drawerDelegate{focused: m.pane == paneLists})
	if cur >= len(rows) {
		cur = len(rows) - 1
	}
	if cur >= 0 {
		m.drawer.Select(cur)
	}
}

// syncActive resets per-list state when the active list changed identity.
func (m *appModel) syncActive() {
	id := ""
	if l, ok := m.store.Active(); ok {
		id = l.ID
	}
	if id != m.activeID {
		m.activeID = id
		m.editor = editor.New(editor.Options{Logger: m.log})
		m.itemCursor = 0
		if m.mode == modeAddItem || m.mode == modeEditItem || m.mode == modeRenameList {
			m.closeInput()
		}
	}
	m.clampItemCursor()
	m.refreshDrawer()
}

func (m *appModel) activeItems() []model.TodoItem {
	l, _ := m.store.Active()
	return l.Items
}

func (m *appModel) clampItemCursor() {
	n := len(m.activeItems())
	if m.itemCursor >= n {
		m.itemCursor = n - 1
	}
	if m.itemCursor < 0 {
		m.itemCursor = 0
	}
}

// apply hands an editor result to the store.
func (m *appModel) apply(items []model.TodoItem, changed bool) {
	if !changed {
		return
	}
	if err := m.store.ReplaceItems(m.ctx, m.store.ActiveIndex(), items); err != nil {
		m.fail("save items", err)
	}
	m.clampItemCursor()
	m.refreshDrawer()
}

func (m *appModel) fail(what string, err error) {
	m.log.Error(what+" failed", "error", err)
	m.status = errorStyle.Render("✖ " + what + ": " + err.Error())
}

func (m *appModel) openInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.promptErr = ""
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *appModel) closeInput() {
	if m.mode == modeEditItem {
		m.editor.CancelEdit()
	}
	if m.mode == modeRenameList {
		m.renameGen++
	}
	m.mode = modeNormal
	m.promptErr = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m appModel) compact() bool {
	return m.width > 0 && m.width < compactWidth
}
