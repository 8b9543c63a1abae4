package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yunesj/picture-rotation-fixer/internal/utils"
)

// discoverImageFiles enumerates supported image files under root, recursing
// into all subdirectories. Enumeration order is not a correctness concern:
// every file is processed independently. An invalid root fails the whole
// invocation.
func discoverImageFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var files []string
	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if utils.IsSupportedImage(path) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.Walk(root, walkFn); err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
