package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMessageParts(t *testing.T) {
	shard := t.TempDir()
	for _, name := range []string{"message_2.json", "message_1.json", ".message_3.json.tmp", "photo.jpg"} {
		if err := os.WriteFile(filepath.Join(shard, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mkdirs(t, filepath.Join(shard, "message_media"))

	got, err := MessageParts(shard)
	if err != nil {
		t.Fatalf("MessageParts: %v", err)
	}
	want := []string{
		filepath.Join(shard, "message_1.json"),
		filepath.Join(shard, "message_2.json"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parts mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotPartsDetectsChange(t *testing.T) {
	shard := t.TempDir()
	path := filepath.Join(shard, "message_1.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	before, err := SnapshotParts(shard)
	if err != nil {
		t.Fatalf("SnapshotParts: %v", err)
	}
	again, err := SnapshotParts(shard)
	if err != nil {
		t.Fatalf("SnapshotParts: %v", err)
	}
	if !SameParts(before, again) {
		t.Fatalf("expected identical snapshots")
	}

	if err := os.WriteFile(path, []byte(`{"messages": []}`), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	after, err := SnapshotParts(shard)
	if err != nil {
		t.Fatalf("SnapshotParts: %v", err)
	}
	if SameParts(before, after) {
		t.Fatalf("expected snapshots to differ after rewrite")
	}
}

func TestSnapshotPartsMissingDir(t *testing.T) {
	got, err := SnapshotParts(filepath.Join(t.TempDir(), "gone"))
	if err != nil {
		t.Fatalf("SnapshotParts: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %v", got)
	}
}
