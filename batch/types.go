package batch

import "github.com/openpcb/autoroute/control"

// Direction is a coarse preferred-routing-direction hint for a layer,
// consumed by the (currently inert) WithPreferredDirections option — see
// its doc comment.
type Direction int

const (
	// DirectionAny means no directional preference on this layer.
	DirectionAny Direction = iota
	DirectionHorizontal
	DirectionVertical
)

// Config is the per-run tunable struct for Run, built from DefaultConfig
// plus functional Options, mirroring control.Block's own
// defaults-function-plus-Option shape (§4.11).
type Config struct {
	// BaseBlock is the per-net control block template Run copies and
	// escalates (RipupCosts, RipupPassNo) for every pass/connection.
	BaseBlock control.Block
	// ClearanceClass is the clearance class index used for every
	// connection this run synthesizes.
	ClearanceClass int

	MaxPasses       int
	StartRipupCosts float64

	// RemoveUnconnectedVias, when true, has Run delete any router-owned
	// via left with nothing attached to one of its ends after a pass,
	// per §4.9's housekeeping step.
	RemoveUnconnectedVias bool

	// PreferredDirections is validated and threaded through Report but,
	// per this baseline's scope, never consulted by maze.Search:
	// directional preference is a documented future extension, kept
	// inert the same way control.PushAndShoveEnabled is (see the design
	// note on PushAndShove).
	PreferredDirections map[int]Direction

	// TracePullTightAccuracy is validated and threaded through but not
	// yet consulted: post-pass trace pull-tightening is a documented
	// future extension, not part of this baseline maze search.
	TracePullTightAccuracy float64
}

// Option configures a Config built from DefaultConfig.
type Option func(*Config)

// DefaultConfig returns this baseline's default batch policy: five
// passes, a starting rip-up budget equivalent to ~10 trace deletions
// (matching control.DefaultBlock), unconnected-via removal enabled.
func DefaultConfig(base control.Block) Config {
	return Config{
		BaseBlock:             base,
		MaxPasses:             5,
		StartRipupCosts:       base.RipupCosts,
		RemoveUnconnectedVias: true,
		PreferredDirections:   make(map[int]Direction),
	}
}

// WithMaxPasses overrides the pass cap.
func WithMaxPasses(n int) Option {
	return func(c *Config) { c.MaxPasses = n }
}

// WithStartRipupCosts overrides the pass-0 rip-up budget that later
// passes escalate from.
func WithStartRipupCosts(cost float64) Option {
	return func(c *Config) { c.StartRipupCosts = cost }
}

// WithRemoveUnconnectedVias toggles end-of-pass unconnected-via cleanup.
func WithRemoveUnconnectedVias(on bool) Option {
	return func(c *Config) { c.RemoveUnconnectedVias = on }
}

// WithPreferredDirections sets a per-layer routing-direction hint. See
// the PreferredDirections field doc comment: not yet consulted by the
// search itself.
func WithPreferredDirections(dirs map[int]Direction) Option {
	return func(c *Config) { c.PreferredDirections = dirs }
}

// WithTracePullTightAccuracy sets the post-pass pull-tight tolerance. See
// the TracePullTightAccuracy field doc comment: not yet consulted.
func WithTracePullTightAccuracy(accuracy float64) Option {
	return func(c *Config) { c.TracePullTightAccuracy = accuracy }
}

// Apply returns a copy of base with every opt applied.
func Apply(base Config, opts ...Option) Config {
	out := base
	for _, opt := range opts {
		opt(&out)
	}

	return out
}

// PassOutcome is the three-way result of one batch pass.
type PassOutcome int

const (
	// Progressed means this pass either reduced the incomplete count or
	// shortened the aggregate routed trace length.
	Progressed PassOutcome = iota
	// NoProgress means the pass ran but the progress rule did not hold;
	// the run terminates early.
	NoProgress
	// PassStopped means the pass was cut short by context cancellation
	// or its deadline.
	PassStopped
)

func (o PassOutcome) String() string {
	switch o {
	case Progressed:
		return "Progressed"
	case NoProgress:
		return "NoProgress"
	case PassStopped:
		return "PassStopped"
	default:
		return "Unknown"
	}
}

// PassReport summarizes one pass of Run.
type PassReport struct {
	PassNo            int
	IncompleteBefore  int
	IncompleteAfter   int
	RoutedConnections int
	AggregateLength   float64
	Outcome           PassOutcome
}

// Report is Run's final summary.
type Report struct {
	Passes    []PassReport
	Remaining int // incomplete connections still unrouted when Run returned
	Stopped   bool
	TimedOut  bool
}
