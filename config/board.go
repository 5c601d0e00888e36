package config

import "fmt"

// BoardConfig defines scheduling behaviour for the dispatch board.
type BoardConfig struct {
	// DepotID identifies this depot in published events.
	DepotID string `json:"depot_id"`
	// ViewDays is the visible week width: 5 (weekdays) or 7.
	ViewDays int `json:"view_days"`
	// WeekStartsOn is the first weekday of the board, 0=Sunday..6=Saturday.
	WeekStartsOn int `json:"week_starts_on"`
	// FallbackStart is the suggested start time when no prior job exists,
	// e.g. "08:00".
	FallbackStart string `json:"fallback_start"`
	// TravelMinutes is the flat travel allowance added between
	// consecutive jobs when suggesting start times.
	TravelMinutes int `json:"travel_minutes"`
}

// SetDefaults applies sane defaults.
func (c *BoardConfig) SetDefaults() {
	if c.DepotID == "" {
		c.DepotID = "default"
	}
	if c.ViewDays == 0 {
		c.ViewDays = 5
	}
	if c.WeekStartsOn == 0 {
		c.WeekStartsOn = 1
	}
	if c.FallbackStart == "" {
		c.FallbackStart = "08:00"
	}
	if c.TravelMinutes == 0 {
		c.TravelMinutes = 30
	}
}

// Validate checks mandatory fields.
func (c BoardConfig) Validate() error {
	if c.ViewDays != 5 && c.ViewDays != 7 {
		return fmt.Errorf("view_days must be 5 or 7, got %d", c.ViewDays)
	}
	if c.WeekStartsOn < 0 || c.WeekStartsOn > 6 {
		return fmt.Errorf("week_starts_on must be 0..6, got %d", c.WeekStartsOn)
	}
	return nil
}
