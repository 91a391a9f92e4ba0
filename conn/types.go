package conn

import (
	"errors"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/geom"
)

// ErrNotWalkable is returned by TraceConnection for an item that is not a
// trace: only traces have the two distinct endpoints a connection walk
// needs.
var ErrNotWalkable = errors.New("conn: item is not a trace")

// TerminalKind discriminates what stopped a connection walk.
type TerminalKind int

const (
	// TerminalPin means the walk reached a pin, a non-routable item.
	TerminalPin TerminalKind = iota
	// TerminalFork means more than one net item touches the stopping
	// point, so the walk cannot continue unambiguously.
	TerminalFork
	// TerminalFreeEnd means no further item touches the stopping point.
	TerminalFreeEnd
)

func (k TerminalKind) String() string {
	switch k {
	case TerminalPin:
		return "Pin"
	case TerminalFork:
		return "Fork"
	default:
		return "FreeEnd"
	}
}

// Terminal is one end of a Connection.
type Terminal struct {
	Kind  TerminalKind
	Item  board.ItemID // set only when Kind == TerminalPin
	Point geom.Point
}

// DetourAlpha and DetourBeta are the fixed constants of the detour
// formula, in internal units (hundredths of a millimeter at the board's
// usual 10,000-units-per-mm scale).
const (
	DetourAlpha = 100.0
	DetourBeta  = 0.1
)

// Connection is one precomputed trace run: the two terminals bounding it,
// the ordered chain of trace/via items between them (inclusive), and the
// length/detour scoring used to prioritize rerouting candidates.
type Connection struct {
	From, To Terminal
	Items    []board.ItemID

	// Length is the total trace length along the chain (vias contribute
	// zero length).
	Length float64
	// StraightLength is the center-to-center distance between From and To.
	StraightLength float64
	// Detour is (Length+alpha)/(StraightLength+alpha) + beta*(n_items-1);
	// 1.0 is a perfectly straight single-item run, larger values indicate
	// more wasted length or more splice points.
	Detour float64
}

func detourOf(length, straightLength float64, nItems int) float64 {
	return (length+DetourAlpha)/(straightLength+DetourAlpha) + DetourBeta*float64(nItems-1)
}
