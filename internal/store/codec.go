package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/todolists/internal/model"
)

// Storage keys. They match the layout the browser version kept in
// localStorage, so exported data stays readable by both.
const (
	KeyLists  = "lists"
	KeyActive = "list"
)

func EncodeLists(lists []model.TodoList) (string, error) {
	if lists == nil {
		lists = []model.TodoList{}
	}
	b, err := json.Marshal(lists)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

func DecodeLists(s string) ([]model.TodoList, error) {
	var lists []model.TodoList
	if err := json.Unmarshal([]byte(s), &lists); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if lists == nil {
		lists = []model.TodoList{}
	}
	for i := range lists {
		if lists[i].Items == nil {
			lists[i].Items = []model.TodoItem{}
		}
	}
	return lists, nil
}

func EncodeActive(index int) string {
	return strconv.Itoa(index)
}

func DecodeActive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return model.NoList, fmt.Errorf("parse active index: %w", err)
	}
	return n, nil
}

// Encode returns the keyed values for st.
func Encode(st model.AppState) (map[string]string, error) {
	lists, err := EncodeLists(st.Lists)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		KeyLists:  lists,
		KeyActive: EncodeActive(st.ActiveIndex),
	}, nil
}

// Decode is the inverse of Encode. Missing keys decode to the empty state.
// The keys are decoded independently: on error the returned state still
// holds every key that decoded cleanly, and a bad active index reads as
// NoList.
func Decode(values map[string]string) (model.AppState, error) {
	st := model.EmptyState()
	var errs []error
	if s, ok := values[KeyLists]; ok {
		lists, err := DecodeLists(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyLists, err))
		} else {
			st.Lists = lists
		}
	}
	if s, ok := values[KeyActive]; ok {
		n, err := DecodeActive(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyActive, err))
		} else {
			st.ActiveIndex = n
		}
	}
	return st, errors.Join(errs...)
}

func readValues(ctx context.Context, b Backend) (map[string]string, error) {
	values := map[string]string{}
	for _, k := range []string{KeyLists, KeyActive} {
		v, ok, err := b.Get(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", k, err)
		}
		if ok {
			values[k] = v
		}
	}
	return values, nil
}
