package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/todolists/internal/model"
)

// Options configure a Store. Zero values pick sensible defaults.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// Store owns the ordered list collection and the active index, and writes
// the whole state to its Backend after every change.
//
// A Store is not safe for concurrent use; callers serialize intents
// (the TUI update loop, or one CLI command per process).
type Store struct {
	backend Backend
	log     *slog.Logger
	now     func() time.Time
	newID   func() string

	lists  []model.TodoList
	active int
	config int
}

// Open loads state from b. A malformed key is logged and falls back to its
// default on its own; only backend read errors are returned.
func Open(ctx context.Context, b Backend, opts Options) (*Store, error) {
	s := &Store{
		backend: b,
		log:     opts.Logger,
		now:     opts.Now,
		newID:   opts.NewID,
		active:  model.NoList,
		config:  model.NoList,
		lists:   []model.TodoList{},
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	values, err := readValues(ctx, b)
	if err != nil {
		return nil, err
	}
	st, err := Decode(values)
	if err != nil {
		s.log.Warn("persisted state is malformed; keeping what decoded", "error", err, "lists", len(st.Lists))
	}
	s.lists = st.Lists
	s.active = st.ActiveIndex

	for i := range s.lists {
		if s.lists[i].ID == "" {
			s.lists[i].ID = s.newID()
		}
	}
	if s.active < model.NoList || s.active >= len(s.lists) {
		clamped := len(s.lists) - 1
		if s.active < model.NoList {
			clamped = model.NoList
		}
		s.log.Warn("persisted active index out of range", "index", s.active, "lists", len(s.lists), "clamped", clamped)
		s.active = clamped
	}
	return s, nil
}

// State returns a deep copy of the lists and the active index.
func (s *Store) State() model.AppState {
	return model.AppState{Lists: model.CloneLists(s.lists), ActiveIndex: s.active}
}

// Lists returns a deep copy of every list, in order.
func (s *Store) Lists() []model.TodoList { return model.CloneLists(s.lists) }

// Len is the number of lists.
func (s *Store) Len() int { return len(s.lists) }

// ActiveIndex is the selected list, or model.NoList.
func (s *Store) ActiveIndex() int { return s.active }

// List returns a copy of the list at index.
func (s *Store) List(index int) (model.TodoList, bool) {
	if !s.inRange(index) {
		return model.TodoList{}, false
	}
	return s.lists[index].Clone(), true
}

// Active returns the selected list, if any.
func (s *Store) Active() (model.TodoList, bool) {
	return s.List(s.active)
}

// NameTaken reports whether a list already uses name (after trimming).
func (s *Store) NameTaken(name string) bool {
	return s.indexByName(s.lists, strings.TrimSpace(name)) >= 0
}

// SuggestName returns the default name offered for a new list.
func (s *Store) SuggestName() string {
	return fmt.Sprintf("List #%d", len(s.lists)+1)
}

// SelectList makes index the active list; model.NoList clears the selection.
func (s *Store) SelectList(ctx context.Context, index int) error {
	if index != model.NoList && !s.inRange(index) {
		return fmt.Errorf("select %d: %w", index, ErrIndexOutOfRange)
	}
	s.active = index
	return s.persistActive(ctx)
}

// CreateList appends a new empty list and selects it.
func (s *Store) CreateList(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if s.NameTaken(name) {
		return fmt.Errorf("create %q: %w", name, ErrDuplicateName)
	}
	next := model.CloneLists(s.lists)
	next = append(next, model.NewList(s.newID(), name, s.now()))
	s.lists = next
	s.active = len(next) - 1
	s.log.Debug("list created", "name", name, "index", s.active)
	return s.persistAll(ctx)
}

// DeleteList removes the list at index and rebases the active index so it
// keeps pointing at the same list where that list survives.
func (s *Store) DeleteList(ctx context.Context, index int) error {
	if !s.inRange(index) {
		return fmt.Errorf("delete %d: %w", index, ErrIndexOutOfRange)
	}
	prevLen := len(s.lists)
	prevActive := s.active
	var prev model.TodoList
	if s.inRange(prevActive) {
		prev = s.lists[prevActive]
	}

	next := make([]model.TodoList, 0, prevLen-1)
	for i, l := range s.lists {
		if i != index {
			next = append(next, l.Clone())
		}
	}

	active := prevActive
	switch {
	case len(next) == 0:
		active = model.NoList
	case index == prevActive:
		if index == prevLen-1 {
			active = max(model.NoList, prevActive-1)
		}
	case index < prevActive:
		active = s.relocate(next, prev)
	}

	switch {
	case s.config == index:
		s.config = model.NoList
	case s.config > index:
		s.config--
	}

	s.lists = next
	s.active = active
	s.log.Debug("list deleted", "index", index, "active", active)
	return s.persistAll(ctx)
}

// RenameList renames the list at index. Empty names and names used by a
// sibling list are rejected.
func (s *Store) RenameList(ctx context.Context, index int, name string) error {
	if !s.inRange(index) {
		return fmt.Errorf("rename %d: %w", index, ErrIndexOutOfRange)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if j := s.indexByName(s.lists, name); j >= 0 && j != index {
		return fmt.Errorf("rename %q: %w", name, ErrDuplicateName)
	}
	return s.update(ctx, index, func(l *model.TodoList) { l.Name = name })
}

// SetAutoDismiss switches whether finished items are dropped from the list at index.
func (s *Store) SetAutoDismiss(ctx context.Context, index int, value bool) error {
	if !s.inRange(index) {
		return fmt.Errorf("auto-dismiss %d: %w", index, ErrIndexOutOfRange)
	}
	return s.update(ctx, index, func(l *model.TodoList) { l.AutoDismiss = value })
}

// ReplaceItems swaps in a whole new item collection for the list at index.
func (s *Store) ReplaceItems(ctx context.Context, index int, items []model.TodoItem) error {
	if !s.inRange(index) {
		return fmt.Errorf("replace items %d: %w", index, ErrIndexOutOfRange)
	}
	items = model.CloneItems(items)
	return s.update(ctx, index, func(l *model.TodoList) { l.Items = items })
}

// OpenConfig marks the configuration view as open for the list at index.
func (s *Store) OpenConfig(index int) error {
	if !s.inRange(index) {
		return fmt.Errorf("config %d: %w", index, ErrIndexOutOfRange)
	}
	s.config = index
	return nil
}

func (s *Store) CloseConfig() { s.config = model.NoList }

// ConfigIndex is the list whose configuration view is open, or -1.
func (s *Store) ConfigIndex() int { return s.config }

func (s *Store) update(ctx context.Context, index int, fn func(l *model.TodoList)) error {
	next := model.CloneLists(s.lists)
	fn(&next[index])
	now := s.now()
	next[index].LastUpdated = &now
	s.lists = next
	return s.persistLists(ctx)
}

func (s *Store) relocate(lists []model.TodoList, prev model.TodoList) int {
	if prev.ID != "" {
		for i, l := range lists {
			if l.ID == prev.ID {
				return i
			}
		}
	}
	if i := s.indexByName(lists, prev.Name); i >= 0 {
		return i
	}
	s.log.Warn("active list not found after delete", "name", prev.Name)
	return min(len(lists)-1, max(model.NoList, s.active-1))
}

func (s *Store) indexByName(lists []model.TodoList, name string) int {
	for i, l := range lists {
		if l.Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.lists)
}

func (s *Store) persistAll(ctx context.Context) error {
	if err := s.persistLists(ctx); err != nil {
		return err
	}
	return s.persistActive(ctx)
}

func (s *Store) persistLists(ctx context.Context) error {
	v, err := EncodeLists(s.lists)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, KeyLists, v); err != nil {
		s.log.Error("failed to save lists", "error", err)
		return fmt.Errorf("save lists: %w", err)
	}
	s.log.Debug("lists saved", "count", len(s.lists))
	return nil
}

func (s *Store) persistActive(ctx context.Context) error {
	if err := s.backend.Set(ctx, KeyActive, EncodeActive(s.active)); err != nil {
		s.log.Error("failed to save active list", "error", err)
		return fmt.Errorf("save active list: %w", err)
	}
	return nil
}
