package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioPoint is a YAML-friendly hex coordinate.
type ScenarioPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ScenarioPlayer names one seat in the fixture map: where its
// headquarters sits and which other seats it's at war with.
type ScenarioPlayer struct {
	ID           int           `yaml:"id"`
	Headquarters ScenarioPoint `yaml:"headquarters"`
	Enemies      []int         `yaml:"enemies"`
}

// Scenario is the standalone binary's stand-in for a real match: map
// dimensions, a terrain seed, and the seats to drive. Not part of the
// agent's own boundary — this shape exists only because cmd/agent has no
// live engine process to attach to (spec §10.6).
type Scenario struct {
	MapWidth  int              `yaml:"map_width"`
	MapHeight int              `yaml:"map_height"`
	Seed      int64            `yaml:"seed"`
	Players   []ScenarioPlayer `yaml:"players"`
}

// DefaultScenario is a small two-seat skirmish used when no scenario
// file is given.
func DefaultScenario() Scenario {
	return Scenario{
		MapWidth:  60,
		MapHeight: 60,
		Seed:      1,
		Players: []ScenarioPlayer{
			{ID: 0, Headquarters: ScenarioPoint{X: 10, Y: 10}, Enemies: []int{1}},
			{ID: 1, Headquarters: ScenarioPoint{X: 48, Y: 48}, Enemies: []int{0}},
		},
	}
}

// LoadScenario reads a YAML scenario file, falling back to
// DefaultScenario() for a blank path or any field the file omits.
func LoadScenario(path string) (Scenario, error) {
	s := DefaultScenario()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}
