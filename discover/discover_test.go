package discover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/discover"
	"github.com/openpcb/autoroute/geom"
)

func newBoard(t *testing.T) *board.Board {
	t.Helper()
	layers := board.LayerStack{{Name: "top", IsSignal: true}}
	rules := board.NewClearanceMatrix(1, 1)
	require.NoError(t, rules.SetValue(0, 0, 0, 20))

	return board.New(layers, rules)
}

func addPin(b *board.Board, net board.NetID, p geom.Point) board.ItemID {
	pin := board.NewPin(p, board.Padstack{FromLayer: 0, ToLayer: 0, Radius: 50}, "U1")
	pin.Nets = []board.NetID{net}
	pin.Fixed = board.UserFixed

	return b.AddItem(pin)
}

// TestDiscoverFindsGapBetweenTwoUnconnectedPins covers the basic case: two
// pins on the same net with nothing joining them yield one incomplete
// connection.
func TestDiscoverFindsGapBetweenTwoUnconnectedPins(t *testing.T) {
	b := newBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	p1 := addPin(b, 1, geom.Point{X: 0, Y: 0})
	p2 := addPin(b, 1, geom.Point{X: 10000, Y: 0})

	got, err := discover.Discover(b)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, board.NetID(1), got[0].Net)
	require.ElementsMatch(t, []board.ItemID{p1, p2}, []board.ItemID{got[0].From, got[0].To})
	require.InDelta(t, 10000.0, got[0].AirWireDistance, 0.001)
}

// TestDiscoverSingleItemNetYieldsNothing covers property 10: a net with
// only one item can never be incomplete.
func TestDiscoverSingleItemNetYieldsNothing(t *testing.T) {
	b := newBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	addPin(b, 1, geom.Point{X: 0, Y: 0})

	got, err := discover.Discover(b)
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestDiscoverFullyConnectedNetYieldsNothing covers property 11: a net
// whose items are all already physically connected reports no gaps.
func TestDiscoverFullyConnectedNetYieldsNothing(t *testing.T) {
	b := newBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	addPin(b, 1, geom.Point{X: 0, Y: 0})
	addPin(b, 1, geom.Point{X: 10, Y: 0}) // within ConnectionTolerance

	got, err := discover.Discover(b)
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestDiscoverIsIdempotent covers property 8: calling Discover twice on an
// unchanged board returns the same result.
func TestDiscoverIsIdempotent(t *testing.T) {
	b := newBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	addPin(b, 1, geom.Point{X: 0, Y: 0})
	addPin(b, 1, geom.Point{X: 10000, Y: 0})

	first, err := discover.Discover(b)
	require.NoError(t, err)
	second, err := discover.Discover(b)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestDiscoverSkipsPinlessComponent covers §4.8(4): a component made only
// of a routing artifact (a trace with no pin) is not emitted as a gap.
func TestDiscoverSkipsPinlessComponent(t *testing.T) {
	b := newBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	addPin(b, 1, geom.Point{X: 0, Y: 0})

	orphan := board.NewTrace(geom.Point{X: 50000, Y: 0}, geom.Point{X: 51000, Y: 0}, 0, 50)
	orphan.Nets = []board.NetID{1}
	b.AddItem(orphan)

	got, err := discover.Discover(b)
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestDiscoverSortsByAirWireDistanceAscending covers the priority ordering
// §4.8 requires across nets.
func TestDiscoverSortsByAirWireDistanceAscending(t *testing.T) {
	b := newBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	require.NoError(t, b.AddNet(board.Net{ID: 2, Name: "N2"}))

	addPin(b, 1, geom.Point{X: 0, Y: 0})
	addPin(b, 1, geom.Point{X: 50000, Y: 0})
	addPin(b, 2, geom.Point{X: 0, Y: 0})
	addPin(b, 2, geom.Point{X: 5000, Y: 0})

	got, err := discover.Discover(b)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, board.NetID(2), got[0].Net, "the shorter air-wire comes first")
	require.Less(t, got[0].AirWireDistance, got[1].AirWireDistance)
}
