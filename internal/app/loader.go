package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/dagjobs/internal/config"
	"github.com/vk/dagjobs/internal/hcl_adapter"
	"github.com/vk/dagjobs/internal/yaml_adapter"
)

// loaderFor picks the descriptor loader for path by its extension.
// Directories are loaded as HCL.
func loaderFor(path string) (config.Loader, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return hcl_adapter.NewLoader(), nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return hcl_adapter.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml_adapter.NewLoader(), nil
	default:
		return nil, config.NewError(path, fmt.Errorf("unsupported file extension %q", ext))
	}
}
