package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T, lists ...string) (appModel, *store.Store) {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, store.NewMemory(nil), store.Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for _, name := range lists {
		if err := s.CreateList(ctx, name); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}
	m := newAppModel(ctx, s, Options{Logger: quietLogger()})
	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mAny.(appModel), s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m appModel, keys ...string) appModel {
	for _, k := range keys {
		mAny, _ := m.Update(keyMsg(k))
		m = mAny.(appModel)
	}
	return m
}

func typeAndEnter(m appModel, text string) appModel {
	m.input.SetValue(text)
	return press(m, "enter")
}

func seedItems(t *testing.T, s *store.Store, texts ...string) {
	t.Helper()
	items := make([]model.TodoItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, model.TodoItem{Text: text})
	}
	if err := s.ReplaceItems(context.Background(), s.ActiveIndex(), items); err != nil {
		t.Fatalf("seed items: %v", err)
	}
}

func itemTexts(s *store.Store) []string {
	l, _ := s.Active()
	out := make([]string, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, it.Text)
	}
	return out
}

func TestNewList_FromEmptyStateUsesSuggestedName(t *testing.T) {
	m, s := newTestModel(t)
	if m.pane != paneLists {
		t.Fatalf("expected drawer focus with no lists, got %v", m.pane)
	}

	m = press(m, "n")
	if m.mode != modeNewList {
		t.Fatalf("expected modeNewList, got %v", m.mode)
	}
	if got := m.input.Value(); got != "List #1" {
		t.Fatalf("expected suggested name %q, got %q", "List #1", got)
	}

	m = press(m, "enter")
	if m.mode != modeNormal {
		t.Fatalf("expected modeNormal after create, got %v", m.mode)
	}
	if m.pane != paneItems {
		t.Fatalf("expected items pane after create, got %v", m.pane)
	}
	l, ok := s.Active()
	if !ok || l.Name != "List #1" {
		t.Fatalf("expected active list %q, got %+v (ok=%v)", "List #1", l, ok)
	}
}

func TestNewList_RepromptsOnEmptyAndDuplicate(t *testing.T) {
	m, s := newTestModel(t, "Groceries")

	m = press(m, "n")
	m = typeAndEnter(m, "Groceries")
	if m.mode != modeNewList || !strings.Contains(m.promptErr, "already exists") {
		t.Fatalf("expected duplicate re-prompt, mode=%v err=%q", m.mode, m.promptErr)
	}

	m = typeAndEnter(m, "   ")
	if m.mode != modeNewList || m.promptErr != "Name cannot be empty" {
		t.Fatalf("expected empty-name re-prompt, mode=%v err=%q", m.mode, m.promptErr)
	}

	m = press(m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("expected esc to cancel, got %v", m.mode)
	}
	if s.Len() != 1 {
		t.Fatalf("expected no new list, have %d", s.Len())
	}
}

func TestAddItem_StaysOpenAndIgnoresBlank(t *testing.T) {
	m, s := newTestModel(t, "Groceries")

	m = press(m, "a")
	if m.mode != modeAddItem {
		t.Fatalf("expected modeAddItem, got %v", m.mode)
	}
	m = typeAndEnter(m, "Milk")
	m = typeAndEnter(m, "  ")
	m = typeAndEnter(m, "Eggs")
	if m.mode != modeAddItem {
		t.Fatalf("expected add prompt to stay open, got %v", m.mode)
	}
	m = press(m, "esc")

	if got := itemTexts(s); strings.Join(got, ",") != "Milk,Eggs" {
		t.Fatalf("unexpected items: %v", got)
	}
	if m.itemCursor != 1 {
		t.Fatalf("expected cursor on the last added item, got %d", m.itemCursor)
	}
}

func TestToggle_AutoDismissRemovesFinishedItem(t *testing.T) {
	m, s := newTestModel(t, "Groceries")
	seedItems(t, s, "Milk", "Eggs")

	m = press(m, " ")
	l, _ := s.Active()
	if !l.Items[0].Finished {
		t.Fatalf("expected first item finished")
	}

	if err := s.SetAutoDismiss(context.Background(), 0, true); err != nil {
		t.Fatalf("auto-dismiss: %v", err)
	}
	m = press(m, "down", " ")
	if got := itemTexts(s); strings.Join(got, ",") != "Milk" {
		t.Fatalf("expected Eggs dismissed, got %v", got)
	}
	if m.itemCursor != 0 {
		t.Fatalf("expected cursor clamped to 0, got %d", m.itemCursor)
	}

	// Un-finishing is a plain toggle even with auto-dismiss on.
	press(m, " ")
	l, _ = s.Active()
	if len(l.Items) != 1 || l.Items[0].Finished {
		t.Fatalf("expected Milk kept and unfinished, got %+v", l.Items)
	}
}

func TestDeleteItem(t *testing.T) {
	m, s := newTestModel(t, "Groceries")
	seedItems(t, s, "Milk", "Eggs", "Bread")

	press(m, "down", "d")
	if got := itemTexts(s); strings.Join(got, ",") != "Milk,Bread" {
		t.Fatalf("unexpected items: %v", got)
	}
}

func TestEditItem_ConfirmAndCancel(t *testing.T) {
	m, s := newTestModel(t, "Groceries")
	seedItems(t, s, "Milk")

	m = press(m, "e")
	if m.mode != modeEditItem || m.editor.Edited() != 0 {
		t.Fatalf("expected edit of item 0, mode=%v edited=%d", m.mode, m.editor.Edited())
	}
	if m.input.Value() != "Milk" {
		t.Fatalf("expected input prefilled with item text, got %q", m.input.Value())
	}
	m = typeAndEnter(m, "Oat milk")
	if m.mode != modeNormal || m.editor.Editing() {
		t.Fatalf("expected edit closed, mode=%v", m.mode)
	}
	if got := itemTexts(s); got[0] != "Oat milk" {
		t.Fatalf("expected edited text, got %v", got)
	}

	m = press(m, "e")
	m.input.SetValue("Soy milk")
	m = press(m, "esc")
	if got := itemTexts(s); got[0] != "Oat milk" {
		t.Fatalf("expected cancel to keep text, got %v", got)
	}

	// Blank confirmation leaves the item alone.
	m = press(m, "e")
	typeAndEnter(m, "  ")
	if got := itemTexts(s); got[0] != "Oat milk" {
		t.Fatalf("expected blank confirm to keep text, got %v", got)
	}
}

func TestEditItem_MovingToNeighbourDiscardsPendingText(t *testing.T) {
	m, s := newTestModel(t, "Groceries")
	seedItems(t, s, "Milk", "Eggs")

	m = press(m, "e")
	m.input.SetValue("changed")
	m = press(m, "down")
	if m.editor.Edited() != 1 || m.itemCursor != 1 {
		t.Fatalf("expected edit to move to item 1, edited=%d cursor=%d", m.editor.Edited(), m.itemCursor)
	}
	if m.input.Value() != "Eggs" {
		t.Fatalf("expected input to show the neighbour text, got %q", m.input.Value())
	}
	press(m, "esc")
	if got := itemTexts(s); strings.Join(got, ",") != "Milk,Eggs" {
		t.Fatalf("expected no change, got %v", got)
	}
}

func TestEditItem_BlurClosesAfterDelayUnlessConfirmed(t *testing.T) {
	m, s := newTestModel(t, "Groceries")
	seedItems(t, s, "Milk", "Eggs")

	// Blur then let the timer fire: edit closes, nothing saved.
	m = press(m, "e")
	m.input.SetValue("changed")
	mAny, cmd := m.Update(keyMsg("tab"))
	m = mAny.(appModel)
	if cmd == nil {
		t.Fatalf("expected a blur timer command")
	}
	if m.mode != modeEditItem {
		t.Fatalf("expected edit to stay open until the timer fires, got %v", m.mode)
	}
	mAny, _ = m.Update(itemBlurMsg{token: m.editor.Blur()})
	m = mAny.(appModel)
	if m.mode != modeNormal || m.editor.Editing() {
		t.Fatalf("expected blur to close edit, mode=%v", m.mode)
	}
	if got := itemTexts(s); got[0] != "Milk" {
		t.Fatalf("expected blur not to save, got %v", got)
	}

	// Confirm inside the blur window wins; the stale timer is ignored.
	m = press(m, "e")
	m = press(m, "tab")
	stale := m.editor.Blur()
	m = typeAndEnter(m, "Oat milk")
	if got := itemTexts(s); got[0] != "Oat milk" {
		t.Fatalf("expected confirm after blur to save, got %v", got)
	}
	m = press(m, "down", "e")
	mAny, _ = m.Update(itemBlurMsg{token: stale})
	m = mAny.(appModel)
	if m.mode != modeEditItem || m.editor.Edited() != 1 {
		t.Fatalf("expected stale blur to leave the new edit open, mode=%v edited=%d", m.mode, m.editor.Edited())
	}
}

func TestEditItem_TerminalFocusLossStartsBlurTimer(t *testing.T) {
	m, s := newTestModel(t, "Groceries")
	seedItems(t, s, "Milk")
	m = press(m, "e")
	_, cmd := m.Update(tea.BlurMsg{})
	if cmd == nil {
		t.Fatalf("expected focus loss to schedule a blur")
	}
}

func TestRename_ConfirmRejectAndBlur(t *testing.T) {
	m, s := newTestModel(t, "Groceries", "Work")

	m = press(m, "r")
	if m.mode != modeRenameList || m.input.Value() != "Work" {
		t.Fatalf("expected rename prefilled with %q, mode=%v value=%q", "Work", m.mode, m.input.Value())
	}
	m = typeAndEnter(m, "Groceries")
	if m.mode != modeRenameList || m.promptErr == "" {
		t.Fatalf("expected duplicate name to be rejected, mode=%v", m.mode)
	}
	m = typeAndEnter(m, "Office")
	if m.mode != modeNormal {
		t.Fatalf("expected rename to close, got %v", m.mode)
	}
	if l, _ := s.Active(); l.Name != "Office" {
		t.Fatalf("expected renamed list, got %q", l.Name)
	}

	m = press(m, "r")
	m.input.SetValue("Elsewhere")
	m = press(m, "tab")
	mAny, _ := m.Update(renameBlurMsg{gen: m.renameGen})
	m = mAny.(appModel)
	if m.mode != modeNormal {
		t.Fatalf("expected blur to close rename, got %v", m.mode)
	}
	if l, _ := s.Active(); l.Name != "Office" {
		t.Fatalf("expected blur not to rename, got %q", l.Name)
	}
}

func TestConfigModal_AutoDismissAndDelete(t *testing.T) {
	m, s := newTestModel(t, "Groceries", "Work")

	m = press(m, "c")
	if m.mode != modeConfig || s.ConfigIndex() != 1 {
		t.Fatalf("expected config for active list, mode=%v index=%d", m.mode, s.ConfigIndex())
	}
	m = press(m, " ")
	if l, _ := s.List(1); !l.AutoDismiss {
		t.Fatalf("expected auto-dismiss on")
	}

	m = press(m, "d")
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected delete confirmation, got %v", m.mode)
	}
	m = press(m, "n")
	if m.mode != modeConfig || s.Len() != 2 {
		t.Fatalf("expected decline to return to config, mode=%v lists=%d", m.mode, s.Len())
	}

	m = press(m, "d", "y")
	if m.mode != modeNormal || s.ConfigIndex() != model.NoList {
		t.Fatalf("expected modal closed after delete, mode=%v index=%d", m.mode, s.ConfigIndex())
	}
	if s.Len() != 1 || s.ActiveIndex() != 0 {
		t.Fatalf("expected Groceries left and active, lists=%d active=%d", s.Len(), s.ActiveIndex())
	}

	m = press(m, "c", "d", "y")
	if s.Len() != 0 || s.ActiveIndex() != model.NoList {
		t.Fatalf("expected no lists, lists=%d active=%d", s.Len(), s.ActiveIndex())
	}
	if m.pane != paneLists {
		t.Fatalf("expected drawer focus once the last list is gone")
	}
}

func TestDrawer_SelectList(t *testing.T) {
	m, s := newTestModel(t, "A", "B", "C")
	seedItems(t, s, "c1", "c2")
	m = press(m, "down")
	if m.itemCursor != 1 {
		t.Fatalf("expected item cursor 1, got %d", m.itemCursor)
	}

	m = press(m, "tab")
	if m.pane != paneLists || m.drawer.Index() != 2 {
		t.Fatalf("expected drawer focus on the active row, pane=%v row=%d", m.pane, m.drawer.Index())
	}
	m = press(m, "up", "enter")
	if s.ActiveIndex() != 1 {
		t.Fatalf("expected B active, got %d", s.ActiveIndex())
	}
	if m.pane != paneItems || m.itemCursor != 0 {
		t.Fatalf("expected items pane with reset cursor, pane=%v cursor=%d", m.pane, m.itemCursor)
	}
}

func TestSwitchingListResetsEdit(t *testing.T) {
	m, s := newTestModel(t, "A", "B")
	seedItems(t, s, "b1")

	m = press(m, "e", "tab")
	m.mode = modeNormal
	m.pane = paneLists
	m = press(m, "up", "enter")
	if m.editor.Editing() {
		t.Fatalf("expected a fresh editor for the newly selected list")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestView_EmptyStateAndCompactLayout(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "Nothing selected") || !strings.Contains(out, "no lists") {
		t.Fatalf("expected both panes in the wide layout, got:\n%s", out)
	}

	mAny, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	m = mAny.(appModel)
	out = m.View()
	if !strings.Contains(out, "no lists") || strings.Contains(out, "Nothing selected") {
		t.Fatalf("expected only the drawer in the compact layout, got:\n%s", out)
	}

	m = press(m, "tab")
	out = m.View()
	if !strings.Contains(out, "Nothing selected") || strings.Contains(out, "no lists") {
		t.Fatalf("expected only the items pane after switching, got:\n%s", out)
	}
}

func TestView_ShowsItemsAndConfig(t *testing.T) {
	m, s := newTestModel(t, "Groceries")
	seedItems(t, s, "Milk")
	m.refreshDrawer()

	out := m.View()
	for _, want := range []string{"Groceries", "Milk", boxUnchecked} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, out)
		}
	}

	m = press(m, "c", "d")
	if out := m.View(); !strings.Contains(out, "Delete \"Groceries\"") {
		t.Fatalf("expected delete confirmation in view, got:\n%s", out)
	}
}
