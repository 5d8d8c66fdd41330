package desktop

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/RetroShell/internal/domain/catalog"
)

//go:embed layout.yaml
var defaultLayout []byte

// Format is a layout file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Placement is where one desktop icon sits.
type Placement struct {
	Kind  catalog.Kind `json:"kind" yaml:"kind" toml:"kind"`
	Label string       `json:"label" yaml:"label" toml:"label"`
	X     int          `json:"x" yaml:"x" toml:"x"`
	Y     int          `json:"y" yaml:"y" toml:"y"`
}

// Layout is the initial set of desktop icons.
type Layout struct {
	Icons []Placement `json:"icons" yaml:"icons" toml:"icons"`
}

// DefaultLayout returns the built-in icon layout.
func DefaultLayout() Layout {
	l, err := ParseLayout(defaultLayout, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded layout is invalid: %v", err))
	}
	return l
}

// LoadLayout reads a layout file, choosing the decoder by extension.
func LoadLayout(path string) (Layout, error) {
	format, err := formatFor(path)
	if err != nil {
		return Layout{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout: %w", err)
	}
	l, err := ParseLayout(data, format)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// ParseLayout decodes and validates a layout.
func ParseLayout(data []byte, format Format) (Layout, error) {
	var l Layout
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &l)
	case FormatTOML:
		err = toml.Unmarshal(data, &l)
	default:
		return Layout{}, fmt.Errorf("unsupported layout format %q", format)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("failed to parse %s layout: %w", format, err)
	}
	if err := l.normalize(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// normalize validates kinds, rejects duplicates and fills missing labels.
func (l *Layout) normalize() error {
	seen := make(map[catalog.Kind]bool, len(l.Icons))
	for i := range l.Icons {
		p := &l.Icons[i]
		kind, err := catalog.Parse(string(p.Kind))
		if err != nil {
			return fmt.Errorf("icon %d: %w", i, err)
		}
		if seen[kind] {
			return fmt.Errorf("icon %d: duplicate kind %q", i, kind)
		}
		seen[kind] = true
		p.Kind = kind
		if strings.TrimSpace(p.Label) == "" {
			p.Label = catalog.Resolve(kind).Title
		}
	}
	return nil
}

func formatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported layout file %q: want .yaml, .yml or .toml", path)
	}
}
