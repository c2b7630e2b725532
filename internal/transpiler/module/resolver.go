// Package module provides module root discovery by walking up a directory
// tree looking for go.mod.
package module

import (
	"os"
	"path/filepath"
	"strings"
)

// FindModuleRoot walks up from startPath looking for go.mod.
// Returns the module root path and module name, or empty strings if not found.
func FindModuleRoot(startPath string) (moduleRoot, moduleName string) {
	dir := startPath

	// If startPath is a file, use its directory
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	// Walk up looking for go.mod
	for {
		modPath := filepath.Join(dir, "go.mod")
		content, err := os.ReadFile(modPath)
		if err == nil {
			lines := strings.Split(string(content), "\n")
			for _, line := range lines {
				line = strings.TrimSpace(line)
				if strings.HasPrefix(line, "module ") {
					moduleName = strings.TrimSpace(strings.TrimPrefix(line, "module "))
					return dir, moduleName
				}
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, no go.mod found
			break
		}
		dir = parent
	}

	return "", ""
}
