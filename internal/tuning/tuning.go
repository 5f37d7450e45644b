// Package tuning loads the pacing and limit values that the game core reads
// at session start. Values come from an optional YAML file layered over
// [Defaults].
package tuning

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable value.
type Config struct {
	// SwipeDelay is how long a door access panel takes to validate a card.
	SwipeDelay time.Duration `yaml:"swipe_delay"`

	// RepairDelay is how long the repair confirmation takes to be shown.
	RepairDelay time.Duration `yaml:"repair_delay"`

	// MaxCarryMass is the most loose mass in kg the player can carry.
	MaxCarryMass float64 `yaml:"max_carry_mass"`

	// OutputWidth is the console column count that text is wrapped to.
	OutputWidth int `yaml:"output_width"`

	// TravelMinutes is how far the ship clock advances on each move.
	TravelMinutes int `yaml:"travel_minutes"`

	// RepairMinutes is how far the ship clock advances on each repair.
	RepairMinutes int `yaml:"repair_minutes"`

	// Seed seeds flavor-text selection. 0 means seed from the clock.
	Seed int64 `yaml:"seed"`
}

// Defaults returns the stock tuning.
func Defaults() Config {
	return Config{
		SwipeDelay:    3 * time.Second,
		RepairDelay:   8 * time.Second,
		MaxCarryMass:  10.0,
		OutputWidth:   80,
		TravelMinutes: 1,
		RepairMinutes: 30,
	}
}

// Load reads the YAML file at path over the defaults. An empty path gives the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate returns an error if any value is out of range.
func (cfg Config) Validate() error {
	if cfg.SwipeDelay <= 0 {
		return fmt.Errorf("swipe_delay: must be positive")
	}
	if cfg.RepairDelay <= 0 {
		return fmt.Errorf("repair_delay: must be positive")
	}
	if cfg.MaxCarryMass <= 0 {
		return fmt.Errorf("max_carry_mass: must be positive")
	}
	if cfg.OutputWidth < 2 {
		return fmt.Errorf("output_width: must be at least 2")
	}
	if cfg.TravelMinutes < 0 {
		return fmt.Errorf("travel_minutes: must not be negative")
	}
	if cfg.RepairMinutes < 0 {
		return fmt.Errorf("repair_minutes: must not be negative")
	}
	return nil
}
