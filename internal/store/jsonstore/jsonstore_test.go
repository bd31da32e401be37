package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStore_SetGet_RoundTripAcrossOpen(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	ctx := context.Background()

	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "lists"); ok {
		t.Fatalf("expected missing key on fresh store")
	}
	if err := s.Set(ctx, "lists", `[]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "list", "-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	again, err := Open(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for k, want := range map[string]string{"lists": "[]", "list": "-1"} {
		got, ok, err := again.Get(ctx, k)
		if err != nil || !ok || got != want {
			t.Fatalf("Get(%q) = %q, %v, %v; want %q", k, got, ok, err, want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, FileName+".tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away; stat err=%v", err)
	}
}

func TestOpen_EmptyAndCorruptFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(empty); err != nil {
		t.Fatalf("empty file should open: %v", err)
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(corrupt)
	if err != nil {
		t.Fatalf("corrupt file should open empty: %v", err)
	}
	if s.Recovered != corrupt+".corrupt" {
		t.Fatalf("Recovered = %q", s.Recovered)
	}
	if _, ok, _ := s.Get(context.Background(), "lists"); ok {
		t.Fatalf("expected empty store after recovery")
	}
	if b, err := os.ReadFile(s.Recovered); err != nil || string(b) != "{not json" {
		t.Fatalf("expected original bytes kept aside; got %q, %v", b, err)
	}
}

func TestStore_SetFailureKeepsPreviousValue(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()
	s, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	if err := s.Set(ctx, "list", "0"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Point the store at a directory that does not exist so the write fails.
	s.path = filepath.Join(dir, "missing", FileName)
	if err := s.Set(ctx, "list", "1"); err == nil {
		t.Fatalf("expected write error")
	}
	if got, _, _ := s.Get(ctx, "list"); got != "0" {
		t.Fatalf("expected previous value kept; got %q", got)
	}
}
