package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	rootMarker = "inbox"
	inboxDir   = "inbox"
	partMarker = "message"
)

// Sentinel errors for export lookup.
var (
	ErrNoExport = errors.New(`no inbox directories found; inbox directories should include "inbox"`)
	ErrNoMatch  = errors.New("no files found")
)

// IndexOutOfRangeError reports a shard index beyond the number of matches.
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index out of range: %d (found %d)", e.Index, e.Count)
}

// InboxDir returns the shard directory of an export root: <root>/inbox.
func InboxDir(root string) string {
	return filepath.Join(root, inboxDir)
}

// FindRoots lists directories in dir whose name contains "inbox".
func FindRoots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), rootMarker) {
			out = append(out, filepath.Join(dir, entry.Name()))
		}
	}
	return out, nil
}

// Locate returns the first export root in dir. Additional roots are ignored.
func Locate(dir string) (string, error) {
	roots, err := FindRoots(dir)
	if err != nil {
		return "", err
	}
	if len(roots) == 0 {
		return "", ErrNoExport
	}
	return roots[0], nil
}

// FindShards returns the names of entries under <root>/inbox that contain
// name (case-sensitive).
func FindShards(root, name string) ([]string, error) {
	entries, err := os.ReadDir(InboxDir(root))
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), name) {
			out = append(out, entry.Name())
		}
	}
	if len(out) == 0 {
		return nil, ErrNoMatch
	}
	return out, nil
}

// SelectShard returns matches[index], or an *IndexOutOfRangeError.
func SelectShard(matches []string, index int) (string, error) {
	if index < 0 || index >= len(matches) {
		return "", &IndexOutOfRangeError{Index: index, Count: len(matches)}
	}
	return matches[index], nil
}

// ShardDir joins a shard name onto the root's inbox directory.
func ShardDir(root, shard string) string {
	return filepath.Join(InboxDir(root), shard)
}

// ShardLabel trims the numeric suffix from a shard name ("alice_1234" -> "alice").
func ShardLabel(shard string) string {
	if i := strings.Index(shard, "_"); i >= 0 {
		return shard[:i]
	}
	return shard
}

// ShardLabels applies ShardLabel to every name.
func ShardLabels(shards []string) []string {
	out := make([]string, len(shards))
	for i, shard := range shards {
		out[i] = ShardLabel(shard)
	}
	return out
}
