package control

import "errors"

// ErrBadRipupPassNo is returned by WithRipupPassNo for a negative pass
// number.
var ErrBadRipupPassNo = errors.New("control: ripup pass number must be non-negative")

// ErrBadMaxIterations is returned by WithMaxIterations for a non-positive
// iteration cap.
var ErrBadMaxIterations = errors.New("control: maxIterations must be positive")

// Block is the per-net, per-pass control block §4.11 specifies: the cost
// model plus every policy switch and resource limit the maze search reads.
// It carries no methods that mutate search state itself — it is a plain,
// read-only configuration value for the duration of one maze.Search call,
// the way a classic Dijkstra options struct is read-only for the
// duration of one search call.
type Block struct {
	TraceCosts  map[int]TraceCost // per layer
	LayerActive map[int]bool      // per layer

	TraceHalfWidth       map[int]int32
	CompensatedHalfWidth map[int]int32

	ViaRadius        map[int]int32      // per layer
	AddViaCosts      map[[2]int]ViaCost // [fromLayer][toLayer] -> cost
	MinNormalViaCost float64
	MinCheapViaCost  float64

	ViasAllowed      bool
	AttachSmdAllowed bool
	WithNeckdown     bool

	RipupAllowed    bool
	RipupCosts      float64 // running budget limit for this pass
	RipupPassNo     int     // which escalation pass this is (0-based)
	RipupCapPerItem int     // max rip-ups of the same item within this pass

	// PushAndShoveEnabled is validated and threaded through but, per this
	// baseline's scope, never consulted by maze.Search: shove is a
	// documented future extension (see the design note on PushAndShove),
	// kept as an inert, self-documenting field rather than omitted.
	PushAndShoveEnabled bool

	MaxIterations int

	MaxShoveTraceRecursionDepth      int
	MaxShoveViaRecursionDepth        int
	MaxShoveSpringOverRecursionDepth int

	ViaLowerBound int
	ViaUpperBound int
	MaxViaRadius  int32

	BendPenalty float64
}

// Option configures a Block built from DefaultBlock.
type Option func(*Block)

// DefaultBlock returns this baseline's default policy: rip-up enabled
// with a starting budget equivalent to ~10 trace deletions, via radius 25
// units, max iterations 100,000, shove recursion depths 15/5/10, and a
// bend penalty of 0.5 grid units.
func DefaultBlock(layers int, gridUnit float64) Block {
	b := Block{
		TraceCosts:           make(map[int]TraceCost, layers),
		LayerActive:          make(map[int]bool, layers),
		TraceHalfWidth:       make(map[int]int32, layers),
		CompensatedHalfWidth: make(map[int]int32, layers),
		ViaRadius:            make(map[int]int32, layers),
		AddViaCosts:          make(map[[2]int]ViaCost),
		MinNormalViaCost:     1,
		MinCheapViaCost:      0,
		ViasAllowed:          true,
		AttachSmdAllowed:     false,
		WithNeckdown:         false,
		RipupAllowed:         true,
		RipupCosts:           10 * defaultTraceDeletionCost,
		RipupPassNo:          0,
		RipupCapPerItem:      3,
		PushAndShoveEnabled:  false,
		MaxIterations:        100000,
		MaxShoveTraceRecursionDepth:      15,
		MaxShoveViaRecursionDepth:        5,
		MaxShoveSpringOverRecursionDepth: 10,
		ViaLowerBound: 0,
		ViaUpperBound: layers - 1,
		MaxViaRadius:  25,
		BendPenalty:   0.5 * gridUnit,
	}
	for l := 0; l < layers; l++ {
		b.TraceCosts[l] = TraceCost{Horizontal: 1, Vertical: 1}
		b.LayerActive[l] = true
		b.ViaRadius[l] = 25
	}

	return b
}

// defaultTraceDeletionCost is the nominal cost of ripping up one trace
// segment, used to express the default rip-up budget as "~10 trace
// deletions" per §4.11.
const defaultTraceDeletionCost = 100.0

// WithRipupPassNo sets the escalation pass number (0-based); must be
// non-negative.
func WithRipupPassNo(n int) Option {
	return func(b *Block) {
		if n < 0 {
			panic(ErrBadRipupPassNo.Error())
		}
		b.RipupPassNo = n
	}
}

// WithRipupBudget overrides the pass's rip-up cost ceiling.
func WithRipupBudget(cost float64) Option {
	return func(b *Block) { b.RipupCosts = cost }
}

// WithMaxIterations overrides the hard cap on popped elements per search;
// must be positive.
func WithMaxIterations(n int) Option {
	return func(b *Block) {
		if n <= 0 {
			panic(ErrBadMaxIterations.Error())
		}
		b.MaxIterations = n
	}
}

// WithRipupAllowed toggles whether the maze search may take rip-up
// branches at all.
func WithRipupAllowed(allowed bool) Option {
	return func(b *Block) { b.RipupAllowed = allowed }
}

// WithLayerActive marks layer as (in)active for this net.
func WithLayerActive(layer int, active bool) Option {
	return func(b *Block) { b.LayerActive[layer] = active }
}

// Apply returns a copy of base with every opt applied.
func Apply(base Block, opts ...Option) Block {
	out := base
	for _, opt := range opts {
		opt(&out)
	}

	return out
}

// RipupCostFor returns the cost of tentatively ripping up an item whose
// base cost is baseCost and clearance class multiplier is classMult,
// escalated for the current pass by escalation (>= 1). This is the
// arithmetic behind §4.6.2 condition (iv).
func (b Block) RipupCostFor(baseCost, classMult, escalation float64) float64 {
	return baseCost * classMult * escalation
}
