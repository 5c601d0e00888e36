package mqtt

import (
	"fmt"
	"sync"

	"github.com/depotops/crewboard/core/events"
)

// MockPublisher records published events. Used in tests and when the
// broker is disabled.
type MockPublisher struct {
	mu     sync.Mutex
	Events []events.Event
	Fail   bool
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishEvent records the event or returns an error if configured to fail.
func (m *MockPublisher) PublishEvent(ev events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Events = append(m.Events, ev)
	return nil
}

// Published returns a copy of the recorded events.
func (m *MockPublisher) Published() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.Event, len(m.Events))
	copy(out, m.Events)
	return out
}

// Disconnect is a no-op.
func (m *MockPublisher) Disconnect() {}

var _ Publisher = (*MockPublisher)(nil)
