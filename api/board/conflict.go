package board

import (
	"context"
	"net/http"
	"time"

	"github.com/depotops/crewboard/core/conflict"
	"github.com/depotops/crewboard/core/model"
)

// SnapshotFunc loads a full board snapshot including workforce data.
type SnapshotFunc func(ctx context.Context) (*model.Board, error)

// ConflictResponse is the body of GET /api/conflict.
type ConflictResponse struct {
	Conflict       bool            `json:"conflict"`
	Reason         conflict.Reason `json:"reason,omitempty"`
	BlockingItemID string          `json:"blocking_item_id,omitempty"`
}

// NewConflictHandler returns an HTTP handler answering advisory
// availability checks via GET
// /api/conflict?kind=employee|vehicle&id=...&date=2006-01-02&shift=day
// (&exclude=itemID). onResult, when non-nil, observes every check.
func NewConflictHandler(snapshot SnapshotFunc, onResult func(conflict.ResourceKind, string, time.Time, conflict.Result)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		kind := conflict.ResourceKind(r.URL.Query().Get("kind"))
		if kind != conflict.KindEmployee && kind != conflict.KindVehicle {
			http.Error(w, "kind must be employee or vehicle", http.StatusBadRequest)
			return
		}
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		shift := model.Shift(r.URL.Query().Get("shift"))
		if shift == "" {
			shift = model.ShiftDay
		}

		b, err := snapshot(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		res := conflict.New(b).Check(kind, id, date, shift, r.URL.Query().Get("exclude"))
		if onResult != nil {
			onResult(kind, id, date, res)
		}
		writeJSON(w, ConflictResponse{
			Conflict:       res.Conflict,
			Reason:         res.Reason,
			BlockingItemID: res.BlockingItemID,
		})
	})
}
