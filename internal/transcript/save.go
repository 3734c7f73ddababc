package transcript

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/avivsinai/inboxview/internal/lock"
)

const maxNameTries = 1000

// FileName returns the save name for a search term at now:
// messages-<term>-<epochMillis>.txt. Path separators in the term become "_".
func FileName(searchTerm string, now time.Time) string {
	term := strings.NewReplacer("/", "_", "\\", "_", string(filepath.Separator), "_").Replace(searchTerm)
	return fmt.Sprintf("messages-%s-%d.txt", term, now.UnixMilli())
}

// Save writes data to dir under FileName(searchTerm, now) and returns the
// final path. An existing file is never replaced; the millisecond stamp is
// bumped until a free name is found. Only the transcript is left in dir.
func Save(dir, searchTerm string, now time.Time, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	var saved string
	err := lock.WithExclusiveDirLock(dir, func() error {
		path, err := writeFileNoClobber(dir, data, 0o644, func(i int) string {
			return FileName(searchTerm, now.Add(time.Duration(i)*time.Millisecond))
		})
		saved = path
		return err
	})
	if err != nil {
		return "", err
	}
	return saved, nil
}

// writeFileNoClobber writes data to a temporary file in dir, then hard-links
// it to the first name(i) that does not exist yet. The temporary file is
// always removed.
func writeFileNoClobber(dir string, data []byte, perm os.FileMode, name func(i int) string) (string, error) {
	tmpPath := filepath.Join(dir, fmt.Sprintf(".inboxview.tmp-%d", time.Now().UnixNano()))
	if err := writeAndSync(tmpPath, data, perm); err != nil {
		return "", err
	}
	for i := 0; i < maxNameTries; i++ {
		finalPath := filepath.Join(dir, name(i))
		err := os.Link(tmpPath, finalPath)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", cleanupTemp(tmpPath, err)
		}
		if err := os.Remove(tmpPath); err != nil {
			return "", err
		}
		if err := syncDir(dir); err != nil {
			return "", err
		}
		return finalPath, nil
	}
	return "", cleanupTemp(tmpPath, fmt.Errorf("no free transcript name in %s", dir))
}

func writeAndSync(path string, data []byte, perm os.FileMode) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	if _, err = file.Write(data); err != nil {
		return err
	}
	return file.Sync()
}

func cleanupTemp(path string, primary error) error {
	if primary == nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w (cleanup: %v)", primary, err)
	}
	return primary
}

func syncDir(dir string) error {
	file, err := os.Open(dir)
	if err != nil {
		return err
	}
	syncErr := file.Sync()
	closeErr := file.Close()
	if syncErr != nil {
		if errors.Is(syncErr, syscall.EINVAL) || errors.Is(syncErr, syscall.ENOTSUP) {
			return nil
		}
		return syncErr
	}
	return closeErr
}
