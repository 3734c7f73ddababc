package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mkdirs(t *testing.T, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
}

func TestLocatePicksFirstInboxDir(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t,
		filepath.Join(dir, "photos"),
		filepath.Join(dir, "inbox-20240812T070227Z-002"),
		filepath.Join(dir, "inbox-20240812T070227Z-001"),
	)
	// A regular file named like a root is not an export root.
	if err := os.WriteFile(filepath.Join(dir, "inbox.zip"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	roots, err := FindRoots(dir)
	if err != nil {
		t.Fatalf("FindRoots: %v", err)
	}
	want := []string{
		filepath.Join(dir, "inbox-20240812T070227Z-001"),
		filepath.Join(dir, "inbox-20240812T070227Z-002"),
	}
	if diff := cmp.Diff(want, roots); diff != "" {
		t.Fatalf("roots mismatch (-want +got):\n%s", diff)
	}

	root, err := Locate(dir)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if root != want[0] {
		t.Fatalf("expected %s, got %s", want[0], root)
	}
}

func TestLocateNoExport(t *testing.T) {
	dir := t.TempDir()
	mkdirs(t, filepath.Join(dir, "photos"))
	if _, err := Locate(dir); !errors.Is(err, ErrNoExport) {
		t.Fatalf("expected ErrNoExport, got %v", err)
	}
}

func TestFindShards(t *testing.T) {
	root := filepath.Join(t.TempDir(), "inbox-001")
	inbox := InboxDir(root)
	mkdirs(t,
		filepath.Join(inbox, "alice_111"),
		filepath.Join(inbox, "alice_222"),
		filepath.Join(inbox, "Alice_333"),
		filepath.Join(inbox, "bob_444"),
	)

	got, err := FindShards(root, "alice")
	if err != nil {
		t.Fatalf("FindShards: %v", err)
	}
	if diff := cmp.Diff([]string{"alice_111", "alice_222"}, got); diff != "" {
		t.Fatalf("shards mismatch (-want +got):\n%s", diff)
	}

	if _, err := FindShards(root, "carol"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestSelectShard(t *testing.T) {
	matches := []string{"alice_111", "alice_222"}

	got, err := SelectShard(matches, 1)
	if err != nil {
		t.Fatalf("SelectShard: %v", err)
	}
	if got != "alice_222" {
		t.Fatalf("expected alice_222, got %s", got)
	}

	for _, idx := range []int{2, -1} {
		_, err := SelectShard(matches, idx)
		var rangeErr *IndexOutOfRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("index %d: expected IndexOutOfRangeError, got %v", idx, err)
		}
		if rangeErr.Index != idx || rangeErr.Count != 2 {
			t.Fatalf("unexpected error fields: %+v", rangeErr)
		}
	}
}

func TestShardLabels(t *testing.T) {
	got := ShardLabels([]string{"alice_111", "bob", "carol_x_2"})
	if diff := cmp.Diff([]string{"alice", "bob", "carol"}, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}
