package playlist

import (
	"fmt"
	"os"
	"strings"

	"playlist-server/internal/dataset"

	"gopkg.in/yaml.v3"
)

const (
	defaultCrossSystemTravel = 9
	defaultSameSystemTravel  = 5
)

// TravelConfig is the travel-cost table as operators write it, with
// same-system costs keyed by system name (case-insensitive).
type TravelConfig struct {
	CrossSystem       int            `yaml:"cross_system" json:"crossSystem"`
	SameSystemDefault int            `yaml:"same_system_default" json:"sameSystemDefault"`
	Systems           map[string]int `yaml:"systems" json:"systems"`
}

// DefaultTravelConfig reproduces the in-game estimates for Stanton and Pyro
func DefaultTravelConfig() TravelConfig {
	return TravelConfig{
		CrossSystem:       defaultCrossSystemTravel,
		SameSystemDefault: defaultSameSystemTravel,
		Systems: map[string]int{
			"stanton": 5,
			"pyro":    7,
		},
	}
}

// LoadTravelConfig reads a YAML travel table. Values present in the file
// override the defaults; an empty path returns the defaults.
func LoadTravelConfig(path string) (TravelConfig, error) {
	cfg := DefaultTravelConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return TravelConfig{}, fmt.Errorf("failed to read travel config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TravelConfig{}, fmt.Errorf("failed to parse travel config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return TravelConfig{}, err
	}
	return cfg, nil
}

// Validate requires every cost to be positive so that only a same-planet
// repeat or the first stop travels for free
func (c TravelConfig) Validate() error {
	if c.CrossSystem <= 0 {
		return fmt.Errorf("cross_system travel must be positive, got %d", c.CrossSystem)
	}
	if c.SameSystemDefault <= 0 {
		return fmt.Errorf("same_system_default travel must be positive, got %d", c.SameSystemDefault)
	}
	for name, cost := range c.Systems {
		if cost <= 0 {
			return fmt.Errorf("travel cost for system %q must be positive, got %d", name, cost)
		}
	}
	return nil
}

// Resolve binds the named costs to the system keys of ds
func (c TravelConfig) Resolve(ds *dataset.Dataset) TravelTable {
	byName := make(map[string]int, len(c.Systems))
	for name, cost := range c.Systems {
		byName[strings.ToLower(name)] = cost
	}

	table := TravelTable{
		CrossSystem:       c.CrossSystem,
		SameSystemDefault: c.SameSystemDefault,
		PerSystem:         make(map[string]int),
	}
	for id, sys := range ds.Systems {
		if cost, ok := byName[strings.ToLower(sys.Name)]; ok {
			table.PerSystem[id] = cost
		}
	}
	return table
}

// TravelTable prices a move between stops, keyed by system key
type TravelTable struct {
	CrossSystem       int
	SameSystemDefault int
	PerSystem         map[string]int
}

// Stop is a visited location
type Stop struct {
	PlanetID string
	SystemID string
}

// Cost returns the travel time from prev to next; prev is nil for the first
// stop of a playlist.
func (t TravelTable) Cost(prev *Stop, next Stop) int {
	switch {
	case prev == nil:
		return 0
	case prev.SystemID != next.SystemID:
		return t.CrossSystem
	case prev.PlanetID != next.PlanetID:
		if cost, ok := t.PerSystem[next.SystemID]; ok {
			return cost
		}
		return t.SameSystemDefault
	default:
		return 0
	}
}
