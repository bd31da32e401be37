package model

import "time"

// TodoItem is a single checkable entry. It has no identity beyond its
// position in the parent list.
type TodoItem struct {
	Text        string     `json:"text"`
	Finished    bool       `json:"finished"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// NewItem returns an unfinished item created at now.
func NewItem(text string, now time.Time) TodoItem {
	return TodoItem{Text: text, CreatedAt: now}
}

// WithText returns a copy with the new text, stamped at now.
func (it TodoItem) WithText(text string, now time.Time) TodoItem {
	it.Text = text
	it.LastUpdated = &now
	return it
}

// WithFinished returns a copy with the finished flag set, stamped at now.
func (it TodoItem) WithFinished(finished bool, now time.Time) TodoItem {
	it.Finished = finished
	it.LastUpdated = &now
	return it
}

func (it TodoItem) clone() TodoItem {
	if it.LastUpdated != nil {
		t := *it.LastUpdated
		it.LastUpdated = &t
	}
	return it
}

// CloneItems copies items into a fresh, never-nil slice.
func CloneItems(items []TodoItem) []TodoItem {
	out := make([]TodoItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.clone())
	}
	return out
}
