package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/depotops/crewboard/core/model"
)

// MemoryStore keeps the board in process memory. Used by tests and the
// dev server.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]model.ScheduleItem
	crews     map[string]model.Crew
	order     []string // crew insertion order, the board's display order
	employees map[string]model.Employee
	vehicles  map[string]model.Vehicle
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:     map[string]model.ScheduleItem{},
		crews:     map[string]model.Crew{},
		employees: map[string]model.Employee{},
		vehicles:  map[string]model.Vehicle{},
	}
}

func (s *MemoryStore) CreateItem(_ context.Context, it model.ScheduleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[it.ID]; ok {
		return fmt.Errorf("item %s already exists", it.ID)
	}
	s.items[it.ID] = it
	return nil
}

func (s *MemoryStore) UpdateItem(_ context.Context, it model.ScheduleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[it.ID]; !ok {
		return fmt.Errorf("item %s not found", it.ID)
	}
	s.items[it.ID] = it
	return nil
}

func (s *MemoryStore) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("item %s not found", id)
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) CreateCrew(_ context.Context, c model.Crew) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.crews[c.ID]; ok {
		return fmt.Errorf("crew %s already exists", c.ID)
	}
	s.crews[c.ID] = c
	s.order = append(s.order, c.ID)
	return nil
}

// ArchiveCrew sets the archive timestamp. Items referencing the crew are
// left untouched.
func (s *MemoryStore) ArchiveCrew(_ context.Context, crewID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.crews[crewID]
	if !ok {
		return fmt.Errorf("crew %s not found", crewID)
	}
	c.ArchivedAt = &at
	s.crews[crewID] = c
	return nil
}

func (s *MemoryStore) MoveItemsToCrew(_ context.Context, itemIDs []string, crewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.crews[crewID]; !ok {
		return fmt.Errorf("crew %s not found", crewID)
	}
	for _, id := range itemIDs {
		it, ok := s.items[id]
		if !ok {
			return fmt.Errorf("item %s not found", id)
		}
		it.CrewID = crewID
		s.items[id] = it
	}
	return nil
}

func (s *MemoryStore) PutEmployee(_ context.Context, e model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
	return nil
}

func (s *MemoryStore) PutVehicle(_ context.Context, v model.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = v
	return nil
}

// Items returns all items ordered by date then id.
func (s *MemoryStore) Items(_ context.Context) ([]model.ScheduleItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ScheduleItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Crews returns all crews in display order.
func (s *MemoryStore) Crews(_ context.Context) ([]model.Crew, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Crew, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.crews[id])
	}
	return out, nil
}

// Employees returns the workforce sorted by id.
func (s *MemoryStore) Employees(_ context.Context) ([]model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Vehicles returns the fleet sorted by id.
func (s *MemoryStore) Vehicles(_ context.Context) ([]model.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
