package metrics

import (
	"sync/atomic"
	"time"

	"tictactoe/game"
)

// SearchMetric describes the work done by a single solver evaluation: how
// many positions were expanded by full minimax, answered from the memo table,
// or answered by immediate terminal detection.
type SearchMetric struct {
	Duration   time.Duration
	Expansions int64
	Hits       int64
	Terminals  int64
	TableSize  int
}

// MoveMetric ties a search to a committed move. Move is recorded in numpad
// form (1-9).
type MoveMetric struct {
	Step   int
	Player game.Mark
	Move   int
	SearchMetric
}

// GameMetric summarizes one finished game. Moves holds the committed moves in
// order, numpad form.
type GameMetric struct {
	Outcome   game.Outcome
	Moves     []int
	Plies     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Collector accumulates counters for one evaluation at a time: Start resets,
// Complete reads the totals. The counting implementation is safe for
// concurrent Add calls.
type Collector interface {
	Start()
	AddExpansion()
	AddHit()
	AddTerminal()
	SetTableSize(size int)
	Complete() SearchMetric
}

type collector struct {
	startTime  time.Time
	expansions atomic.Int64
	hits       atomic.Int64
	terminals  atomic.Int64
	tableSize  atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.expansions.Store(0)
	m.hits.Store(0)
	m.terminals.Store(0)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddHit() {
	m.hits.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) SetTableSize(size int) {
	m.tableSize.Store(int64(size))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:   time.Since(m.startTime),
		Expansions: m.expansions.Load(),
		Hits:       m.hits.Load(),
		Terminals:  m.terminals.Load(),
		TableSize:  int(m.tableSize.Load()),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op Collector for callers that do not record
// metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) AddHit()                {}
func (m *dummyCollector) AddTerminal()           {}
func (m *dummyCollector) SetTableSize(size int)  {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
