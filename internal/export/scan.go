package export

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MessageParts lists the message part files of a shard directory.
func MessageParts(shardDir string) ([]string, error) {
	entries, err := os.ReadDir(shardDir)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsMessagePart(entry.Name()) {
			out = append(out, filepath.Join(shardDir, entry.Name()))
		}
	}
	return out, nil
}

// IsMessagePart reports whether a file name belongs to a message part.
// Dotfiles are skipped so editor and tmp files never count.
func IsMessagePart(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.Contains(name, partMarker)
}

// PartStamp identifies one observed version of a message part.
type PartStamp struct {
	Size    int64
	ModTime time.Time
}

// SnapshotParts records size and mtime of every message part in shardDir.
// Unreadable entries are skipped.
func SnapshotParts(shardDir string) (map[string]PartStamp, error) {
	entries, err := os.ReadDir(shardDir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]PartStamp{}, nil
		}
		return nil, err
	}
	out := make(map[string]PartStamp, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsMessagePart(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue // skip unreadable files instead of failing entire scan
		}
		out[entry.Name()] = PartStamp{Size: info.Size(), ModTime: info.ModTime()}
	}
	return out, nil
}

// SameParts reports whether two snapshots describe identical part sets.
func SameParts(a, b map[string]PartStamp) bool {
	if len(a) != len(b) {
		return false
	}
	for name, sa := range a {
		sb, ok := b[name]
		if !ok {
			return false
		}
		if sa.Size != sb.Size || !sa.ModTime.Equal(sb.ModTime) {
			return false
		}
	}
	return true
}
