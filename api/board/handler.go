// Package board exposes the dispatch board over HTTP for wallboards and
// the scheduling UI.
package board

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/depotops/crewboard/core/calendar"
	"github.com/depotops/crewboard/core/engine"
	"github.com/depotops/crewboard/core/model"
	"github.com/depotops/crewboard/core/report"
)

// Source provides the board state backing the handlers.
type Source interface {
	Items(ctx context.Context) ([]model.ScheduleItem, error)
	Crews(ctx context.Context) ([]model.Crew, error)
}

// OrderProvider answers display-order positions inside cells.
type OrderProvider interface {
	Position(cellKey, itemID string) int
}

// Cell is one crew/date intersection of the rendered week.
type Cell struct {
	CrewID string               `json:"crew_id"`
	Date   string               `json:"date"`
	Items  []model.ScheduleItem `json:"items"`
}

// WeekView is the response of GET /api/board.
type WeekView struct {
	WeekStart string `json:"week_start"`
	ViewDays  int    `json:"view_days"`
	Cells     []Cell `json:"cells"`
}

// NewBoardHandler returns an HTTP handler rendering the viewed week via
// GET /api/board?week=2006-01-02. Only one free job ghost is surfaced
// per cell; items follow the cell's display order.
func NewBoardHandler(src Source, orders OrderProvider, viewDays int, weekStartsOn time.Weekday) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		anchor := time.Now()
		if s := r.URL.Query().Get("week"); s != "" {
			t, err := time.Parse("2006-01-02", s)
			if err != nil {
				http.Error(w, "invalid week date", http.StatusBadRequest)
				return
			}
			anchor = t
		}
		weekStart := calendar.StartOfWeek(anchor, weekStartsOn)
		weekEnd := calendar.EndOfWeek(weekStart, viewDays)

		items, err := src.Items(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		crews, err := src.Crews(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		byCell := map[string][]model.ScheduleItem{}
		for _, it := range items {
			d := it.Day()
			if d.Before(weekStart) || d.After(weekEnd) {
				continue
			}
			key := engine.CellKey(it.CrewID, d)
			byCell[key] = append(byCell[key], it)
		}

		view := WeekView{WeekStart: weekStart.Format("2006-01-02"), ViewDays: viewDays}
		for _, crew := range crews {
			if !crew.Active() {
				continue
			}
			for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
				key := engine.CellKey(crew.ID, d)
				cellItems := byCell[key]
				if len(cellItems) == 0 {
					continue
				}
				if orders != nil {
					sortByDisplayOrder(cellItems, orders, key)
				}
				view.Cells = append(view.Cells, Cell{
					CrewID: crew.ID,
					Date:   d.Format("2006-01-02"),
					Items:  model.VisibleInCell(cellItems),
				})
			}
		}

		writeJSON(w, view)
	})
}

// NewCrewsHandler returns an HTTP handler listing crews via
// GET /api/crews. Archived crews are hidden unless archived=1 is set.
func NewCrewsHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		crews, err := src.Crews(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		includeArchived := r.URL.Query().Get("archived") == "1"
		out := make([]model.Crew, 0, len(crews))
		for _, c := range crews {
			if c.Active() || includeArchived {
				out = append(out, c)
			}
		}
		writeJSON(w, out)
	})
}

// NewReportHandler returns an HTTP handler computing crew utilization via
// GET /api/report?from=2006-01-02&to=2006-01-02.
func NewReportHandler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		items, err := src.Items(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		crews, err := src.Crews(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		b := &model.Board{Items: items, Crews: crews}
		writeJSON(w, report.Utilization(b, from, to))
	})
}

func sortByDisplayOrder(items []model.ScheduleItem, orders OrderProvider, cellKey string) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := orders.Position(cellKey, items[i].ID), orders.Position(cellKey, items[j].ID)
		if pi < 0 {
			return false
		}
		if pj < 0 {
			return true
		}
		return pi < pj
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
