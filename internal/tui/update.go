package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/store"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		row := m.drawer.Index()
		m.drawer.SetSize(m.drawerWidth(), max(3, msg.Height-chromeHeight))
		if row >= 0 && row < m.store.Len() {
			m.drawer.Select(row)
		}
		return m, nil

	case tea.BlurMsg:
		return m.blurInput()

	case itemBlurMsg:
		if m.mode == modeEditItem && m.editor.BlurElapsed(msg.token) {
			m.closeInput()
		}
		return m, nil

	case renameBlurMsg:
		if m.mode == modeRenameList && msg.gen == m.renameGen {
			m.closeInput()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAddItem:
			return m.updateAddItem(msg)
		case modeEditItem:
			return m.updateEditItem(msg)
		case modeNewList:
			return m.updateNewList(msg)
		case modeRenameList:
			return m.updateRename(msg)
		case modeConfig:
			return m.updateConfig(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateNormal(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.SwitchPane):
		if m.pane == paneLists {
			m.pane = paneItems
		} else {
			m.pane = paneLists
		}
		m.refreshDrawer()
		return m, nil

	case key.Matches(msg, k.NewList):
		return m, m.openInput(modeNewList, m.store.SuggestName(), "List name")

	case key.Matches(msg, k.Settings):
		index := m.store.ActiveIndex()
		if m.pane == paneLists {
			index = m.drawer.Index()
		}
		if err := m.store.OpenConfig(index); err != nil {
			m.status = mutedStyle.Render("no list to configure")
			return m, nil
		}
		m.mode = modeConfig
		return m, nil

	case key.Matches(msg, k.Rename):
		l, ok := m.store.Active()
		if !ok {
			return m, nil
		}
		m.renameGen++
		return m, m.openInput(modeRenameList, l.Name, "List name")
	}

	if m.pane == paneLists {
		return m.updateDrawer(msg)
	}
	return m.updateItems(msg)
}

func (m appModel) updateDrawer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		m.drawer.CursorUp()
	case key.Matches(msg, k.Down):
		m.drawer.CursorDown()
	case key.Matches(msg, k.Select):
		if m.store.Len() == 0 {
			return m, nil
		}
		if err := m.store.SelectList(m.ctx, m.drawer.Index()); err != nil {
			m.fail("select list", err)
		}
		m.pane = paneItems
		m.syncActive()
	}
	return m, nil
}

func (m appModel) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l, ok := m.store.Active()
	if !ok {
		return m, nil
	}
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		if m.itemCursor > 0 {
			m.itemCursor--
		}
	case key.Matches(msg, k.Down):
		if m.itemCursor < len(l.Items)-1 {
			m.itemCursor++
		}
	case key.Matches(msg, k.Toggle):
		m.apply(m.editor.ToggleFinished(l, m.itemCursor))
	case key.Matches(msg, k.Delete):
		m.apply(m.editor.DeleteItem(l, m.itemCursor))
	case key.Matches(msg, k.Add):
		return m, m.openInput(modeAddItem, "", "New item...")
	case key.Matches(msg, k.Edit):
		if m.itemCursor >= len(l.Items) {
			return m, nil
		}
		m.editor.BeginEdit(m.itemCursor)
		return m, m.openInput(modeEditItem, l.Items[m.itemCursor].Text, "Item text")
	}
	return m, nil
}

func (m appModel) updateAddItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		l, ok := m.store.Active()
		if !ok {
			m.closeInput()
			return m, nil
		}
		items, changed := m.editor.AddItem(l, m.input.Value())
		m.apply(items, changed)
		if changed {
			m.itemCursor = len(items) - 1
		}
		// Stay open for the next item.
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateEditItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Cancel):
		m.closeInput()
		return m, nil

	case key.Matches(msg, k.Confirm):
		l, _ := m.store.Active()
		items, changed := m.editor.ConfirmEdit(l, m.editor.Edited(), m.input.Value())
		m.closeInput()
		m.apply(items, changed)
		return m, nil

	case msg.Type == tea.KeyTab:
		return m.blurInput()

	case msg.Type == tea.KeyUp || msg.Type == tea.KeyDown:
		// Moving to a neighbour starts a new edit; the pending text is lost.
		l, _ := m.store.Active()
		next := m.itemCursor - 1
		if msg.Type == tea.KeyDown {
			next = m.itemCursor + 1
		}
		if next < 0 || next >= len(l.Items) {
			return m, nil
		}
		m.itemCursor = next
		m.editor.BeginEdit(next)
		return m, m.openInput(modeEditItem, l.Items[next].Text, "Item text")
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateNewList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.promptErr = "Name cannot be empty"
			return m, nil
		}
		if m.store.NameTaken(name) {
			m.promptErr = fmt.Sprintf("A list named %q already exists", name)
			return m, nil
		}
		if err := m.store.CreateList(m.ctx, name); err != nil {
			m.fail("create list", err)
		}
		m.closeInput()
		m.pane = paneItems
		m.syncActive()
		m.drawer.Select(m.store.ActiveIndex())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		err := m.store.RenameList(m.ctx, m.store.ActiveIndex(), m.input.Value())
		switch {
		case errors.Is(err, store.ErrEmptyName):
			m.promptErr = "Name cannot be empty"
			m.renameGen++
			return m, m.input.Focus()
		case errors.Is(err, store.ErrDuplicateName):
			m.promptErr = "Another list already has that name"
			m.renameGen++
			return m, m.input.Focus()
		case err != nil:
			m.fail("rename list", err)
		}
		m.closeInput()
		m.refreshDrawer()
		return m, nil
	case msg.Type == tea.KeyTab:
		return m.blurInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateConfig(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	index := m.store.ConfigIndex()
	l, ok := m.store.List(index)
	if !ok {
		m.mode = modeNormal
		return m, nil
	}
	switch msg.String() {
	case " ", "enter", "a":
		if err := m.store.SetAutoDismiss(m.ctx, index, !l.AutoDismiss); err != nil {
			m.fail("auto-dismiss", err)
		}
		m.refreshDrawer()
	case "d":
		m.mode = modeConfirmDelete
	case "esc", "c", "s", "q":
		m.store.CloseConfig()
		m.mode = modeNormal
	}
	return m, nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		index := m.store.ConfigIndex()
		l, _ := m.store.List(index)
		if err := m.store.DeleteList(m.ctx, index); err != nil {
			m.fail("delete list", err)
		} else {
			m.status = successStyle.Render(fmt.Sprintf("✔ deleted %q", l.Name))
		}
		m.store.CloseConfig()
		m.mode = modeNormal
		if m.store.Len() == 0 {
			m.pane = paneLists
		}
		m.syncActive()
		if a := m.store.ActiveIndex(); a != model.NoList {
			m.drawer.Select(a)
		}
	case key.Matches(msg, m.keys.No):
		m.mode = modeConfig
	}
	return m, nil
}

// blurInput handles focus leaving an inline input. Edit and rename close
// after blurDelay unless something settles them first.
func (m appModel) blurInput() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEditItem:
		token := m.editor.Blur()
		m.input.Blur()
		return m, tea.Tick(blurDelay, func(time.Time) tea.Msg { return itemBlurMsg{token: token} })
	case modeRenameList:
		gen := m.renameGen
		m.input.Blur()
		return m, tea.Tick(blurDelay, func(time.Time) tea.Msg { return renameBlurMsg{gen: gen} })
	}
	return m, nil
}
