package model

import "time"

// TodoList is a named, ordered collection of items.
type TodoList struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Items       []TodoItem `json:"todos"`
	AutoDismiss bool       `json:"autoDismiss"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// NewList returns an empty list with auto-dismiss off.
func NewList(id, name string, now time.Time) TodoList {
	return TodoList{
		ID:        id,
		Name:      name,
		Items:     []TodoItem{},
		CreatedAt: now,
	}
}

// Clone returns a deep copy.
func (l TodoList) Clone() TodoList {
	l.Items = CloneItems(l.Items)
	if l.LastUpdated != nil {
		t := *l.LastUpdated
		l.LastUpdated = &t
	}
	return l
}

// Stats counts finished and pending items.
func (l TodoList) Stats() (done, pending int) {
	for _, it := range l.Items {
		if it.Finished {
			done++
		} else {
			pending++
		}
	}
	return
}

// CloneLists copies lists into a fresh, never-nil slice.
func CloneLists(lists []TodoList) []TodoList {
	out := make([]TodoList, 0, len(lists))
	for _, l := range lists {
		out = append(out, l.Clone())
	}
	return out
}

// AppState is everything that gets persisted.
type AppState struct {
	Lists       []TodoList
	ActiveIndex int
}

// NoList is the active index when nothing is selected.
const NoList = -1

// EmptyState is the state of a fresh install.
func EmptyState() AppState {
	return AppState{Lists: []TodoList{}, ActiveIndex: NoList}
}
