package maps

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed levels/*.yaml
var levelFS embed.FS

// DefaultLevel is the campaign's first level.
const DefaultLevel = "e1m1"

// List returns the names of the built-in levels in sorted order.
func List() []string {
	entries, err := fs.ReadDir(levelFS, "levels")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh copy of a built-in level.
func Get(name string) (*Map, error) {
	data, err := levelFS.ReadFile("levels/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		m.Name = name
	}
	return m, nil
}

// Resolve returns a built-in level by name, or loads name as a file path when
// it has a YAML or JSON extension.
func Resolve(name string) (*Map, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return LoadFile(name)
	}
	return Get(name)
}

// Default returns the first campaign level.
func Default() *Map {
	m, err := Get(DefaultLevel)
	if err != nil {
		// Embedded data is part of the binary; this only trips on a broken build.
		panic(err)
	}
	return m
}
