package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct {
	root string
}

// NewDefaultPathManager creates a path manager rooted at root ("results" when empty)
func NewDefaultPathManager(root string) *DefaultPathManager {
	if strings.TrimSpace(root) == "" {
		root = "results"
	}
	return &DefaultPathManager{root: root}
}

// GetDefaultOutputDir returns the output directory for a problem and crowd size
func (p *DefaultPathManager) GetDefaultOutputDir(problem string, crowd int) string {
	name := strings.ToLower(strings.TrimSpace(problem))
	if name == "" {
		name = "unknown"
	}
	name = strings.NewReplacer(" ", "-", "/", "-").Replace(name)

	return filepath.Join(p.root, fmt.Sprintf("%s_crowd%d", name, crowd))
}

// EnsureDirectoryExists creates the parent directory of path if needed
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
