// Package engine validates and applies placements on the dispatch board.
//
// Every operation works against a read-only board snapshot and returns a
// batch of proposed mutations in ascending date order. Persistence,
// re-rendering and user messaging stay with the caller; the engine only
// decides what would change. Policy rejections (past dates, locked
// fields) are not errors: the affected items land on the Skipped list so
// the caller can notify the user.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/logger"
	"github.com/depotops/crewboard/core/model"
	"github.com/depotops/crewboard/core/travel"
)

// MutationKind classifies a proposed change.
type MutationKind string

const (
	MutationCreate  MutationKind = "create"
	MutationUpdate  MutationKind = "update"
	MutationDelete  MutationKind = "delete"
	MutationReorder MutationKind = "reorder"
)

// Mutation is one proposed change. Create and update carry the full item;
// delete carries only the id. Reorder is presentation state: it targets
// the display-order provider, never item storage.
type Mutation struct {
	Kind   MutationKind
	Item   model.ScheduleItem
	ItemID string

	// Reorder fields.
	CellKey  string
	Position int
}

// SkipReason explains why an item was excluded from a batch.
type SkipReason string

const (
	SkipPastDate   SkipReason = "past_date"
	SkipFieldLock  SkipReason = "past_item_field_locked"
	SkipPastTarget SkipReason = "past_target_date"
)

// Skipped records an item excluded by policy.
type Skipped struct {
	ItemID string
	Date   time.Time
	Reason SkipReason
}

// BatchResult is the outcome of one engine operation. Mutations are
// ordered by ascending date; the engine guarantees nothing about
// atomicity across them.
type BatchResult struct {
	Mutations []Mutation
	Skipped   []Skipped
}

// Empty reports whether the operation proposed no change at all.
func (r BatchResult) Empty() bool { return len(r.Mutations) == 0 }

// Config carries the board view settings expansions depend on.
type Config struct {
	ViewDays      int          `json:"view_days"`
	WeekStartsOn  time.Weekday `json:"week_starts_on"`
	FallbackStart string       `json:"fallback_start"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ViewDays == 0 {
		c.ViewDays = 5
	}
	if c.FallbackStart == "" {
		c.FallbackStart = "08:00"
	}
}

// Validate checks the view window size.
func (c Config) Validate() error {
	if c.ViewDays != 5 && c.ViewDays != 7 {
		return fmt.Errorf("view_days must be 5 or 7, got %d", c.ViewDays)
	}
	return nil
}

// Engine applies board operations against a snapshot.
type Engine struct {
	board  *model.Board
	clock  calendar.Clock
	newID  func() string
	travel travel.Estimator
	cfg    Config
	log    logger.Logger
}

// New creates an Engine over the given snapshot. newID supplies ids for
// created items and must never return duplicates; travel may be nil.
func New(board *model.Board, clock calendar.Clock, newID func() string, est travel.Estimator, cfg Config, log logger.Logger) (*Engine, error) {
	if board == nil {
		return nil, fmt.Errorf("board snapshot is required")
	}
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	if newID == nil {
		return nil, fmt.Errorf("id source is required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &Engine{board: board, clock: clock, newID: newID, travel: est, cfg: cfg, log: log}, nil
}

// CellKey identifies one crew/date cell. Display-order lists are scoped
// by this key.
func CellKey(crewID string, date time.Time) string {
	return crewID + "|" + calendar.DateOnly(date).Format("2006-01-02")
}

// sortMutations orders a batch by ascending item date. Deletes carry no
// item date and keep their relative position at the end.
func sortMutations(ms []Mutation) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Kind == MutationDelete || ms[j].Kind == MutationDelete {
			return false
		}
		return ms[i].Item.Date.Before(ms[j].Item.Date)
	})
}

// suggestStart proposes a start time for a job following prior work that
// day. Estimator failures fall back to the configured default.
func (e *Engine) suggestStart(prior *model.ScheduleItem, it model.ScheduleItem) string {
	if e.travel == nil || prior == nil {
		return e.cfg.FallbackStart
	}
	start, err := time.Parse("15:04", prior.StartTime)
	if err != nil {
		return e.cfg.FallbackStart
	}
	priorEnd := calendar.DateOnly(prior.Date).
		Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute).
		Add(time.Duration(prior.DurationHours * float64(time.Hour)))
	t, err := e.travel.Suggest(prior.Address, it.Address, priorEnd)
	if err != nil {
		e.log.Debugf("travel estimate failed, using fallback: %v", err)
		return e.cfg.FallbackStart
	}
	return t.Format("15:04")
}
