// Package config holds the agent's tunable settings: military settings,
// decision-tick cadence/offset, and the threshold constants the
// expansion/production planners consult. Constructible from code for
// tests; cmd/agent additionally loads it from YAML for standalone runs.
//
// Grounded on the teacher's internal/engine/world.go GameSettings
// (a plain settings struct embedded in World), generalised to this
// module's planner-only scope.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"hearthold/internal/gameiface"
)

// Settings bundles every tunable constant the scheduler and planners
// read. Defaults() returns the reference AI's tuning.
type Settings struct {
	// DecisionTickInterval is how often (in engine ticks) recurrent
	// subsystems run; PlayerOffset staggers different players' decision
	// ticks within that interval (spec §4.13).
	DecisionTickInterval int `yaml:"decision_tick_interval"`
	PlayerOffset         int `yaml:"player_offset"`

	ExpansionTickInterval  int `yaml:"expansion_tick_interval"`
	ProductionTickInterval int `yaml:"production_tick_interval"`

	MinSoldiersToExpand int `yaml:"min_soldiers_to_expand"`
	MaxConcurrentMilitarySites int `yaml:"max_concurrent_military_sites"`
	MaxConcurrentBuilders      int `yaml:"max_concurrent_builders"`

	PromotableSoldiersForCoins int `yaml:"promotable_soldiers_for_coins"`

	UpperTrafficLimit int `yaml:"upper_traffic_limit"`

	Military gameiface.MilitarySettings `yaml:"military"`
}

// Defaults returns the reference AI's tuning (original_source
// ProductionConsts.h's UPPER_TRAFFIC_LIMIT=30 and the spec's own
// recurrent cadence numbers).
func Defaults() Settings {
	return Settings{
		DecisionTickInterval:       16,
		PlayerOffset:               0,
		ExpansionTickInterval:      10,
		ProductionTickInterval:     15,
		MinSoldiersToExpand:        5,
		MaxConcurrentMilitarySites: 3,
		MaxConcurrentBuilders:      6,
		PromotableSoldiersForCoins: 3,
		UpperTrafficLimit:          30,
		Military: gameiface.MilitarySettings{
			RecruitingRatio:      0.5,
			PreferStrongFirst:    0.7,
			ActiveDefenderChance: 0.3,
			AttackersToAvailable: 0.8,
			OccupationInland:     0.2,
			OccupationMiddle:     0.4,
			OccupationHarbour:    0.6,
			OccupationBorder:     0.9,
		},
	}
}

// Load reads settings from a YAML file at path, falling back to
// Defaults() for any field the file omits.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	return s, nil
}
