package layouts

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/dotpop/internal/board"
)

// YAMLLayout represents the YAML structure for a layout file.
type YAMLLayout struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Palette  []string          `yaml:"palette,omitempty"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML layout file.
//
// Rows run top to bottom and use color letters. Layouts describe stable
// boards, so '.' is rejected. Without a palette the layout refills with the
// colors its rows use.
func ParseYAML(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Layout{}, fmt.Errorf("layout has no id")
	}
	if len(yl.Rows) == 0 {
		return Layout{}, fmt.Errorf("layout %s: no rows", yl.ID)
	}

	rows := make([]string, len(yl.Rows))
	used := make(map[board.Color]bool)
	for i, row := range yl.Rows {
		row = strings.ToUpper(strings.ReplaceAll(row, " ", ""))
		for j, r := range row {
			c, ok := board.ParseColor(string(r))
			if !ok {
				return Layout{}, fmt.Errorf("layout %s: row %d col %d: %q is not a color", yl.ID, i, j, r)
			}
			used[c] = true
		}
		rows[i] = row
	}

	var palette board.Palette
	if len(yl.Palette) > 0 {
		p, err := board.ParsePalette(yl.Palette)
		if err != nil {
			return Layout{}, fmt.Errorf("layout %s: %w", yl.ID, err)
		}
		palette = p
	} else {
		for _, c := range board.AllColors() {
			if used[c] {
				palette = append(palette, c)
			}
		}
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Layout{
		ID:       yl.ID,
		Name:     name,
		Palette:  palette,
		Rows:     rows,
		Metadata: yl.Metadata,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
