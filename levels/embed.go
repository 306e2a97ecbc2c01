package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile grid. One tile is one world unit; tile (x, y) covers
// [x, x+1) x [y, y+1) with y growing downward.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

// LayerMeta describes how a tile layer takes part in physics. Collision
// names the categories its tiles belong to: "ground", "obstacle" or both.
type LayerMeta struct {
	Name      string   `json:"name"`
	Physics   bool     `json:"physics"`
	Collision []string `json:"collision,omitempty"`
	Color     string   `json:"color,omitempty"`
}

// Entity places a non-tile object. X and Y are world units.
type Entity struct {
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Solid reports whether layer has a tile at (x, y).
func (l *Level) Solid(layer, x, y int) bool {
	if layer < 0 || layer >= len(l.Layers) || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	idx := y*l.Width + x
	if idx >= len(l.Layers[layer]) {
		return false
	}
	return l.Layers[layer][idx] > 0
}

func (l *Level) Validate() error {
	var errs []error
	if l.Width <= 0 || l.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", l.Width, l.Height))
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			errs = append(errs, fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height))
		}
	}
	if len(l.LayerMeta) > len(l.Layers) {
		errs = append(errs, fmt.Errorf("%d layer_meta entries for %d layers", len(l.LayerMeta), len(l.Layers)))
	}
	return errors.Join(errs...)
}

func Decode(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level: %w", err)
	}
	return &lvl, nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Decode(data)
}

// Load reads name from disk when it exists there, falling back to the
// embedded levels.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return Decode(data)
	}
	return LoadLevelFromFS(filepath.Base(name))
}
