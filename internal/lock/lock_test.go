package lock

import (
	"errors"
	"os"
	"testing"
)

func TestWithExclusiveDirLockRunsFn(t *testing.T) {
	dir := t.TempDir()
	called := false
	if err := WithExclusiveDirLock(dir, func() error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("WithExclusiveDirLock: %v", err)
	}
	if !called {
		t.Fatalf("expected fn to run")
	}
}

func TestWithExclusiveDirLockReturnsFnError(t *testing.T) {
	dir := t.TempDir()
	sentinel := errors.New("boom")
	if err := WithExclusiveDirLock(dir, func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("expected fn error, got %v", err)
	}
	// Lock is released: a second acquisition must not block.
	if err := WithExclusiveDirLock(dir, func() error { return nil }); err != nil {
		t.Fatalf("second lock: %v", err)
	}
}

func TestWithExclusiveDirLockCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	if err := WithExclusiveDirLock(dir, func() error { return nil }); err != nil {
		t.Fatalf("WithExclusiveDirLock: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries", len(entries))
	}
}
