package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultHours seeds every agent's ledger entry when a session starts.
const DefaultHours = 6.5

// HoursStep is the granularity of the direct hours input.
const HoursStep = 0.25

// Ledger is the per-session mutable hours store.
type Ledger interface {
	// Initialize seeds agents missing from the ledger with def; existing entries are kept.
	Initialize(agents []string, def float64)
	// Adjust adds delta to agent's total.
	Adjust(agent string, delta float64) error
	// Set overwrites agent's total.
	Set(agent string, value float64)
	// Get reports agent's total and whether it is tracked.
	Get(agent string) (float64, bool)
}

// State is one interactive session: its identity, selection, and ledger.
// Commands on a State must hold its lock; the ledger itself is not synchronized.
type State struct {
	ID           string
	CreatedAt    time.Time
	DefaultHours float64
	Manager      string
	Ledger       Ledger

	mu       sync.Mutex
	lastSeen atomic.Int64
}

func NewState(id string, ledger Ledger, defaultHours float64, now time.Time) *State {
	s := &State{
		ID:           id,
		CreatedAt:    now,
		DefaultHours: defaultHours,
		Ledger:       ledger,
	}
	s.Touch(now)
	return s
}

func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// Touch records activity on the session.
func (s *State) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *State) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
