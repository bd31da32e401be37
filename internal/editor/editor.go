// Package editor turns item intents into whole-collection replacements.
//
// An Editor never mutates the list it is given. Every operation returns a
// fresh item slice plus a changed flag; the caller hands the slice to the
// list store. The only state kept here is which item, if any, is being
// text-edited.
package editor

import (
	"log/slog"
	"strings"
	"time"

	"github.com/idilsaglam/todolists/internal/model"
)

// None is the edited index when no item is in edit mode.
const None = -1

type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
}

type Editor struct {
	log *slog.Logger
	now func() time.Time

	edited int
	// gen invalidates outstanding blur tokens whenever edit mode settles.
	gen uint64
}

func New(opts Options) *Editor {
	e := &Editor{log: opts.Logger, now: opts.Now, edited: None}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.now == nil {
		e.now = func() time.Time { return time.Now().UTC() }
	}
	return e
}

// Edited is the index of the item in edit mode, or None.
func (e *Editor) Edited() int { return e.edited }

func (e *Editor) Editing() bool { return e.edited != None }

// ToggleFinished flips the finished flag of the item at index. On an
// auto-dismiss list an item that becomes finished is dropped instead.
func (e *Editor) ToggleFinished(list model.TodoList, index int) ([]model.TodoItem, bool) {
	if !inRange(list.Items, index) {
		return model.CloneItems(list.Items), false
	}
	if index == e.edited {
		e.log.Debug("toggle ignored while item is being edited", "index", index)
		return model.CloneItems(list.Items), false
	}
	target := list.Items[index]
	finished := !target.Finished
	out := make([]model.TodoItem, 0, len(list.Items))
	for i, it := range model.CloneItems(list.Items) {
		if i != index {
			out = append(out, it)
			continue
		}
		if list.AutoDismiss && finished {
			continue
		}
		out = append(out, it.WithFinished(finished, e.now()))
	}
	if len(out) < len(list.Items) {
		e.removed(index)
	}
	return out, true
}

// AddItem appends a new unfinished item. Blank text is ignored.
func (e *Editor) AddItem(list model.TodoList, text string) ([]model.TodoItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.CloneItems(list.Items), false
	}
	out := model.CloneItems(list.Items)
	out = append(out, model.NewItem(text, e.now()))
	return out, true
}

func (e *Editor) DeleteItem(list model.TodoList, index int) ([]model.TodoItem, bool) {
	if !inRange(list.Items, index) {
		return model.CloneItems(list.Items), false
	}
	out := make([]model.TodoItem, 0, len(list.Items)-1)
	for i, it := range model.CloneItems(list.Items) {
		if i != index {
			out = append(out, it)
		}
	}
	e.removed(index)
	return out, true
}

// BeginEdit puts the item at index in edit mode. Starting a new edit
// always wins; an unsaved edit on another item is dropped.
func (e *Editor) BeginEdit(index int) {
	if e.edited != None && e.edited != index {
		e.log.Info("unsaved item text change discarded", "index", e.edited, "next", index)
	}
	e.edited = index
	e.gen++
}

// ConfirmEdit applies text to the item under edit. A confirmation for any
// other index is reported and ignored. Blank text leaves the item alone.
func (e *Editor) ConfirmEdit(list model.TodoList, index int, text string) ([]model.TodoItem, bool) {
	if index != e.edited {
		e.log.Warn("edit confirmation for an item that is not being edited", "index", index, "edited", e.edited)
		return model.CloneItems(list.Items), false
	}
	e.settle()
	text = strings.TrimSpace(text)
	if !inRange(list.Items, index) || text == "" {
		return model.CloneItems(list.Items), false
	}
	out := model.CloneItems(list.Items)
	out[index] = out[index].WithText(text, e.now())
	return out, true
}

func (e *Editor) CancelEdit() { e.settle() }

// Blur records that the edit input lost focus and returns a token for a
// delayed close. Pass the token to BlurElapsed when the delay expires.
func (e *Editor) Blur() uint64 {
	return e.gen
}

// BlurElapsed closes edit mode if nothing settled it since token was
// issued. It reports whether edit mode was closed.
func (e *Editor) BlurElapsed(token uint64) bool {
	if token != e.gen || e.edited == None {
		return false
	}
	e.settle()
	return true
}

func (e *Editor) settle() {
	e.edited = None
	e.gen++
}

// removed rebases the edited index after the item at index went away.
func (e *Editor) removed(index int) {
	switch {
	case e.edited == None:
	case e.edited == index:
		e.settle()
	case e.edited > index:
		e.edited--
	}
}

func inRange(items []model.TodoItem, index int) bool {
	return index >= 0 && index < len(items)
}
