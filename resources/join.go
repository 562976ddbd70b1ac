package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// base returns the directory that all resources are relative to. A portable
// installation takes precedence over the build specific location
func base() (string, error) {
	if p, ok := portablePath(); ok {
		return p, nil
	}
	return resourcePath()
}

// JoinPath returns the path of the named resource. Empty path elements are
// ignored and the base directory is only added once.
//
// Missing parent directories are created but the resource itself is never
// created or opened.
func JoinPath(path ...string) (string, error) {
	b, err := base()
	if err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}

	p := filepath.Join(path...)
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("resources: %w", err)
	}

	return p, nil
}
