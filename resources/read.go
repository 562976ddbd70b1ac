package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Read the named resource file. A missing file is not an error and results in
// an empty string
func Read(filename string) (string, error) {
	pth, err := JoinPath(filename)
	if err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}

	b, err := os.ReadFile(pth)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("resources: %w", err)
	}

	return string(b), nil
}

// Write content to the named resource file. The existing file is replaced in
// a single rename so a failed write leaves the previous content in place
func Write(filename string, content string) error {
	pth, err := JoinPath(filename)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(pth), filepath.Base(pth)+".*")
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	tmp := f.Name()

	_, err = f.WriteString(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("resources: %w", err)
	}

	if err := os.Rename(tmp, pth); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("resources: %w", err)
	}

	return nil
}
