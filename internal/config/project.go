package config

import (
	"os"
	"path/filepath"
)

// EnvProjectDir pins the project overlay lookup to a single directory.
const EnvProjectDir = "DATAGRID_PROJECT_DIR"

// FindProjectOverlay returns the absolute path of the nearest project overlay
// (.datagrid.yaml), searching startDir and then each parent up to the
// filesystem root. When $DATAGRID_PROJECT_DIR is set only that directory is
// checked. It returns "" if no overlay exists.
func FindProjectOverlay(startDir string, lookupEnv func(string) (string, bool)) string {
	if lookupEnv != nil {
		if dir, ok := lookupEnv(EnvProjectDir); ok && dir != "" {
			return overlayIn(dir)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		dir = startDir
	}
	for {
		if p := overlayIn(dir); p != "" {
			return p
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func overlayIn(dir string) string {
	p := filepath.Join(dir, ProjectOverlayName)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return ""
	}
	if abs, absErr := filepath.Abs(p); absErr == nil {
		return abs
	}
	return p
}
