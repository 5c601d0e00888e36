// Package order tracks presentation order inside board cells. Order is
// a display concern: it lives beside the store, never inside it, and
// losing it only degrades rendering, never data.
package order

import "sync"

// MemoryOrderProvider keeps per-cell item order in memory. It satisfies
// the engine's reorder sink and answers position queries for rendering.
type MemoryOrderProvider struct {
	mu    sync.RWMutex
	cells map[string][]string
}

// NewMemoryOrderProvider creates an empty provider.
func NewMemoryOrderProvider() *MemoryOrderProvider {
	return &MemoryOrderProvider{cells: map[string][]string{}}
}

// Reorder places itemID at position within the cell's order list. The
// item is removed from its current slot first; positions past the end
// append. A negative position appends.
func (p *MemoryOrderProvider) Reorder(cellKey, itemID string, position int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	list := remove(p.cells[cellKey], itemID)
	if position < 0 || position >= len(list) {
		list = append(list, itemID)
	} else {
		list = append(list[:position], append([]string{itemID}, list[position:]...)...)
	}
	p.cells[cellKey] = list
}

// Remove drops the item from the cell's order list, if present.
func (p *MemoryOrderProvider) Remove(cellKey, itemID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	list := remove(p.cells[cellKey], itemID)
	if len(list) == 0 {
		delete(p.cells, cellKey)
		return
	}
	p.cells[cellKey] = list
}

// Order returns the cell's item ids in display order. Items never
// reordered do not appear; callers render them after the ordered ones.
func (p *MemoryOrderProvider) Order(cellKey string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	list := p.cells[cellKey]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Position returns the item's index in the cell, or -1 when untracked.
func (p *MemoryOrderProvider) Position(cellKey, itemID string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i, id := range p.cells[cellKey] {
		if id == itemID {
			return i
		}
	}
	return -1
}

func remove(list []string, itemID string) []string {
	out := list[:0]
	for _, id := range list {
		if id != itemID {
			out = append(out, id)
		}
	}
	return out
}
