package console

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"recipebook-tracker/internal/chart"
)

// FileCanvas paints charts into a single file. Clearing it removes the file.
type FileCanvas struct {
	path string
}

func NewFileCanvas(path string) *FileCanvas {
	return &FileCanvas{path: path}
}

// Path is where the chart is written.
func (c *FileCanvas) Path() string { return c.path }

func (c *FileCanvas) Paint(image []byte, _ chart.Format) error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, image, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return os.Rename(tmp, c.path)
}

func (c *FileCanvas) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove chart: %w", err)
	}
	return nil
}
