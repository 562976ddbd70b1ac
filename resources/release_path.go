//go:build release

package resources

import (
	"os"
	"path/filepath"
)

// resources for release builds live in the user's configuration directory
func resourcePath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "cda"), nil
}
