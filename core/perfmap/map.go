package perfmap

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/constraints"

	"github.com/kilianp07/perfmap/core/grid"
	"github.com/kilianp07/perfmap/core/logger"
)

// State is the lifecycle stage of a Map.
type State int

const (
	Building State = iota
	Finalized
	Failed
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Finalized:
		return "finalized"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNotBuilding indicates a mutation after Finalize was called.
	ErrNotBuilding = errors.New("performance map is not in building state")

	// ErrNotFinalized indicates a query before Finalize succeeded.
	ErrNotFinalized = errors.New("performance map is not finalized")

	// ErrFailed indicates a query on a map whose finalization was rejected.
	ErrFailed = errors.New("performance map failed to finalize")
)

// Number is any integer or floating point type accepted as axis or table data.
type Number interface {
	constraints.Integer | constraints.Float
}

// Map accumulates axes and tables and serves queries once finalized.
type Map struct {
	mu         sync.Mutex
	name       string
	log        logger.Logger
	engineOpts []grid.Option
	state      State
	axes       [][]float64
	tables     [][]float64
	axisNames  []string
	tableNames []string
	err        error

	engine atomic.Pointer[grid.Engine]
}

// Option configures a Map.
type Option func(*Map)

// WithLogger sets the diagnostics channel. A nil logger discards messages.
func WithLogger(l logger.Logger) Option {
	return func(m *Map) { m.log = logger.OrNop(l) }
}

// WithName labels the map in logs and errors.
func WithName(name string) Option {
	return func(m *Map) { m.name = name }
}

// WithEngineOptions forwards options to the engine built by Finalize.
func WithEngineOptions(opts ...grid.Option) Option {
	return func(m *Map) { m.engineOpts = append(m.engineOpts, opts...) }
}

// New returns an empty map in the Building state.
func New(opts ...Option) *Map {
	m := &Map{log: logger.Nop{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the label given with WithName.
func (m *Map) Name() string { return m.name }

// State returns the current lifecycle stage.
func (m *Map) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the finalization error of a Failed map.
func (m *Map) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// NumAxes returns the number of declared axes.
func (m *Map) NumAxes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.axisNames)
}

// NumTables returns the number of declared tables.
func (m *Map) NumTables() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tableNames)
}

// AddAxis appends a grid axis. Monotonicity is checked by Finalize.
func (m *Map) AddAxis(values []float64) error {
	return m.addAxis("", values)
}

// AddTable appends a data table. Its length is checked by Finalize.
func (m *Map) AddTable(values []float64) error {
	return m.addTable("", values)
}

func (m *Map) addAxis(name string, values []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Building {
		return fmt.Errorf("%w (state %s)", ErrNotBuilding, m.state)
	}
	m.axes = append(m.axes, append([]float64(nil), values...))
	m.axisNames = append(m.axisNames, name)
	return nil
}

func (m *Map) addTable(name string, values []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Building {
		return fmt.Errorf("%w (state %s)", ErrNotBuilding, m.state)
	}
	m.tables = append(m.tables, append([]float64(nil), values...))
	m.tableNames = append(m.tableNames, name)
	return nil
}

// AxisNames returns the names given to axes added with AddGridAxis. Unnamed
// axes have an empty name.
func (m *Map) AxisNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.axisNames...)
}

// TableNames returns the names given to tables added with AddDataTable.
func (m *Map) TableNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tableNames...)
}

// TableIndex returns the position of the table with the given name.
func (m *Map) TableIndex(name string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.tableNames {
		if n != "" && n == name {
			return i, true
		}
	}
	return 0, false
}

// AddAxisOf appends an axis of any numeric type, widened to float64.
func AddAxisOf[T Number](m *Map, values []T) error {
	return m.AddAxis(widen(values))
}

// AddTableOf appends a table of any numeric type, including integer-backed
// enumerations, converted to float64.
func AddTableOf[T Number](m *Map, values []T) error {
	return m.AddTable(widen(values))
}

func widen[T Number](values []T) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Finalize validates the accumulated data and builds the interpolation
// engine. On failure the map becomes Failed and the error names every
// offending axis or table index.
func (m *Map) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Building {
		return fmt.Errorf("%w (state %s)", ErrNotBuilding, m.state)
	}
	opts := m.engineOpts
	if m.name != "" {
		opts = append([]grid.Option{grid.WithName(m.name)}, opts...)
	}
	eng, err := grid.NewEngine(m.axes, m.tables, opts...)
	if err != nil {
		m.state = Failed
		m.err = err
		m.log.Errorf("finalize performance map %s: %v", m.name, err)
		return err
	}
	m.engine.Store(eng)
	m.state = Finalized
	m.axes, m.tables = nil, nil
	m.log.Debugw("performance map finalized", map[string]any{
		"map":    m.name,
		"shape":  eng.Shape(),
		"tables": eng.NumTables(),
	})
	return nil
}

// Engine returns the finalized engine.
func (m *Map) Engine() (*grid.Engine, error) {
	if e := m.engine.Load(); e != nil {
		return e, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Failed {
		return nil, fmt.Errorf("%w: %w", ErrFailed, m.err)
	}
	return nil, ErrNotFinalized
}

// Calculate interpolates one table at target. See grid.Engine.Value for the
// accepted method lists; no methods means linear on every axis.
func (m *Map) Calculate(target []float64, table int, methods ...grid.InterpolationMethod) (float64, error) {
	e, err := m.Engine()
	if err != nil {
		return 0, err
	}
	return e.Value(target, table, methods...)
}

// CalculateAll interpolates every table at target in declaration order.
func (m *Map) CalculateAll(target []float64, methods ...grid.InterpolationMethod) ([]float64, error) {
	e, err := m.Engine()
	if err != nil {
		return nil, err
	}
	return e.Values(target, methods...)
}
