package store

import "errors"

var (
	ErrEmptyName       = errors.New("list name is empty")
	ErrDuplicateName   = errors.New("list name already used")
	ErrIndexOutOfRange = errors.New("list index out of range")
)
