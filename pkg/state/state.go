package state

import (
	"sync"
	"time"
)

// State represents the conversation state of a chat member
type State string

const (
	// StateNormal is the normal state
	StateNormal State = "normal"
	// StateAddingProducts is the state when the user is sending pantry items
	StateAddingProducts State = "adding_products"
)

// DefaultTTL is how long a non-normal state lasts without activity
const DefaultTTL = 10 * time.Minute

// ChatState is a stored state with the time it was set
type ChatState struct {
	State     State
	Timestamp time.Time
}

// Manager manages chat states
type Manager struct {
	states map[int64]ChatState
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
}

// New creates a new state manager
func New() *Manager {
	return &Manager{
		states: make(map[int64]ChatState),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
}

// SetState sets the state for a key
func (m *Manager) SetState(key int64, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[key] = ChatState{
		State:     state,
		Timestamp: m.now(),
	}
}

// GetState gets the state for a key. States older than the TTL reset to normal.
func (m *Manager) GetState(key int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[key]
	if !ok {
		return StateNormal
	}
	if m.now().Sub(st.Timestamp) > m.ttl {
		delete(m.states, key)
		return StateNormal
	}
	return st.State
}

// ClearState clears the state for a key
func (m *Manager) ClearState(key int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, key)
}
