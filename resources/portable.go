package resources

import (
	"os"
	"path/filepath"
)

// the presence of this file next to the executable selects portable mode
const portableIndicator = "portable.txt"

// directory next to the executable used in portable mode
const portableDir = "CDA_UserData"

func portablePath() (string, bool) {
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	d := filepath.Dir(exe)
	if _, err := os.Stat(filepath.Join(d, portableIndicator)); err != nil {
		return "", false
	}
	return filepath.Join(d, portableDir), true
}
