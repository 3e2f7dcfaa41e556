package ledger

import (
	"fmt"

	"github.com/cmlabs-hris/agent-hours-go/internal/domain/session"
	"github.com/shopspring/decimal"
)

// Ledger tracks total hours per agent for a single session.
// Values are kept as decimals so repeated step adjustments stay exact.
type Ledger struct {
	hours map[string]decimal.Decimal
}

func NewLedger() *Ledger {
	return &Ledger{
		hours: make(map[string]decimal.Decimal),
	}
}

var _ session.Ledger = (*Ledger)(nil)

// Initialize seeds agents that have no entry yet. Existing entries, edited or not, are left alone.
func (l *Ledger) Initialize(agents []string, def float64) {
	seed := decimal.NewFromFloat(def)
	for _, agent := range agents {
		if _, ok := l.hours[agent]; ok {
			continue
		}
		l.hours[agent] = seed
	}
}

// Adjust adds delta to the agent's total. No floor or ceiling is applied.
func (l *Ledger) Adjust(agent string, delta float64) error {
	current, ok := l.hours[agent]
	if !ok {
		return fmt.Errorf("adjust %q: %w", agent, session.ErrAgentNotTracked)
	}
	l.hours[agent] = current.Add(decimal.NewFromFloat(delta))
	return nil
}

func (l *Ledger) Set(agent string, value float64) {
	l.hours[agent] = decimal.NewFromFloat(value)
}

func (l *Ledger) Get(agent string) (float64, bool) {
	v, ok := l.hours[agent]
	if !ok {
		return 0, false
	}
	return v.InexactFloat64(), true
}

func (l *Ledger) Len() int {
	return len(l.hours)
}
