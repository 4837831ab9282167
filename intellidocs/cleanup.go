package intellidocs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/rs/zerolog/log"
)

// RemoveStaging deletes path and everything below it. If the first attempt
// fails, owner write permission is restored on the tree and removal is retried
// once; any error after that is returned. A missing path is not an error.
func RemoveStaging(path string) error {
	if path == "" {
		return nil
	}
	err := os.RemoveAll(path)
	if err == nil {
		return nil
	}
	if _, statErr := os.Lstat(path); os.IsNotExist(statErr) {
		return nil
	}
	log.Debug().Err(err).Str("path", path).Msg("relaxing permissions before removal")
	if relaxErr := relaxPermissions(path); relaxErr != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

func relaxPermissions(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable directory; chmod it and keep going
			if d != nil && d.IsDir() {
				_ = os.Chmod(path, 0o700)
				return nil
			}
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			return os.Chmod(path, 0o700)
		}
		return os.Chmod(path, 0o600)
	})
}
