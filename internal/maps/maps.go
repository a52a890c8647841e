// Package maps loads level data: the tile grid, an optional explicit
// collision layer, the player spawn and enemy and item spawn descriptors.
//
// Levels are YAML (JSON is accepted too, being a YAML subset). A set of
// built-in levels is embedded; survival arenas are generated procedurally.
package maps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a named level does not exist.
var ErrNotFound = errors.New("maps: level not found")

// DefaultStart is used when a level does not declare a player start.
var DefaultStart = Point{X: 100, Y: 100}

// Point is a world position.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// EnemySpawn places one enemy.
type EnemySpawn struct {
	X    float64 `yaml:"x" json:"x"`
	Y    float64 `yaml:"y" json:"y"`
	Type string  `yaml:"type" json:"type"`
}

// ItemSpawn places one pickup. Weapon optionally names the weapon a
// weapon pickup grants.
type ItemSpawn struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Type   string  `yaml:"type" json:"type"`
	Weapon string  `yaml:"weapon,omitempty" json:"weapon,omitempty"`
}

// Map is a parsed level.
type Map struct {
	Name           string       `yaml:"name" json:"name"`
	Tiles          [][]int      `yaml:"tiles" json:"tiles"`
	CollisionLayer [][]int      `yaml:"collision_layer,omitempty" json:"collision_layer,omitempty"`
	PlayerStart    Point        `yaml:"player_start" json:"player_start"`
	Enemies        []EnemySpawn `yaml:"enemies" json:"enemies"`
	Items          []ItemSpawn  `yaml:"items" json:"items"`
}

// Size returns the tile grid dimensions, taking the widest row.
func (m *Map) Size() (cols, rows int) {
	src := m.Tiles
	if len(m.CollisionLayer) > 0 {
		src = m.CollisionLayer
	}
	for _, row := range src {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols, len(src)
}

// Parse decodes a level. Missing fields get defaults; only malformed input
// is an error.
func Parse(data []byte) (*Map, error) {
	m := &Map{PlayerStart: DefaultStart}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("maps: parse: %w", err)
	}
	return m, nil
}

// LoadFile reads and parses a level file. The file name (without extension)
// becomes the level name when the file does not set one.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maps: read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("maps: %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}
