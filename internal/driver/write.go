package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"frtypo/internal/source"
)

// WriteBack replaces the file with text, restoring the BOM and CRLF line
// endings it was loaded with and keeping its permissions. The content goes to
// a temporary file in the same directory first and is renamed over the
// original.
func WriteBack(f *source.File, text string) (err error) {
	if f == nil || f.Flags&source.FileVirtual != 0 {
		return fmt.Errorf("write back: not a file on disk")
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		return fmt.Errorf("write back: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return fmt.Errorf("write back: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(f.Encode([]byte(text))); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write back %s: %w", f.Path, err)
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write back %s: %w", f.Path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write back %s: %w", f.Path, err)
	}
	if err = os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("write back %s: %w", f.Path, err)
	}
	return nil
}
