// Package layouts loads fixed starting boards from YAML files.
package layouts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/dotpop/internal/board"
)

// Layout is a named starting board.
type Layout struct {
	ID       string
	Name     string
	Palette  board.Palette
	Rows     []string // Top row first
	Metadata map[string]string
	FilePath string
}

// Width returns the layout width in cells.
func (l Layout) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len(l.Rows[0])
}

// Height returns the layout height in cells.
func (l Layout) Height() int {
	return len(l.Rows)
}

// Board builds a board from the layout. Refills draw from rng.
func (l Layout) Board(rng board.Rand) (*board.Board, error) {
	b, err := board.FromRows(l.Rows, l.Palette, rng)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.ID, err)
	}
	return b, nil
}

// Loader handles loading layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all layout files.
// Files that fail to parse are skipped. Returns layouts sorted by ID.
func (l *Loader) LoadAll() ([]Layout, error) {
	var layouts []Layout

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		layout, err := LoadFile(path)
		if err != nil {
			return nil
		}

		layouts = append(layouts, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(layouts, func(i, j int) bool {
		return layouts[i].ID < layouts[j].ID
	})

	return layouts, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}

	for _, lay := range layouts {
		if lay.ID == id {
			return lay, nil
		}
	}

	return Layout{}, fmt.Errorf("layout not found: %s", id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(layouts))
	for i, lay := range layouts {
		ids[i] = lay.ID
	}
	return ids, nil
}

// LoadFile loads a single layout file.
func LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isSupportedExtension(ext) {
		return Layout{}, fmt.Errorf("unsupported extension: %s", ext)
	}

	layout, err := ParseYAML(data)
	if err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	// Catch ragged rows and palette mismatches at load time.
	if _, err := layout.Board(nil); err != nil {
		return Layout{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	layout.FilePath = path
	return layout, nil
}

// Resolve loads ref as a file path if it names an existing file, otherwise as
// a layout ID under root.
func Resolve(root, ref string) (Layout, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return LoadFile(ref)
	}
	return NewLoader(root).LoadByID(ref)
}

func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
