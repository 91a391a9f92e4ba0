package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/geom"
)

func newTestBoard() *board.Board {
	layers := board.LayerStack{
		{Name: "F.Cu", IsSignal: true},
		{Name: "B.Cu", IsSignal: true},
	}
	rules := board.NewClearanceMatrix(1, 2)
	_ = rules.SetValue(0, 0, 0, 200)
	_ = rules.SetValue(0, 0, 1, 200)

	return board.New(layers, rules)
}

// TestClearanceMatrixRoundTrip checks property 9: SetValue followed by
// GetValue returns the evened-up value.
func TestClearanceMatrixRoundTrip(t *testing.T) {
	m := board.NewClearanceMatrix(2, 2)
	require.NoError(t, m.SetValue(0, 1, 0, 201))
	v, err := m.GetValue(0, 1, 0)
	require.NoError(t, err)
	require.Equal(t, int32(202), v, "odd input must round up to the next even value")

	// Symmetric: (1,0,0) mirrors (0,1,0).
	v2, err := m.GetValue(1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, v, v2)

	_, err = m.GetValue(5, 5, 5)
	require.ErrorIs(t, err, board.ErrClearanceIndexOutOfRange)
}

func TestCompensationOffsetIsHalfOfEvenSelfClearance(t *testing.T) {
	m := board.NewClearanceMatrix(1, 1)
	require.NoError(t, m.SetValue(0, 0, 0, 7)) // rounds to 8
	off, err := m.CompensationOffset(0, 0)
	require.NoError(t, err)
	require.Equal(t, int32(4), off)
}

// TestAddRemoveItemKeepsIndexBijective covers property 3: the spatial
// index's leaves correspond bijectively to on-board items.
func TestAddRemoveItemKeepsIndexBijective(t *testing.T) {
	b := newTestBoard()
	tr := board.NewTrace(geom.Point{X: 0, Y: 0}, geom.Point{X: 1000, Y: 0}, 0, 100)
	id := b.AddItem(tr)
	require.Equal(t, 1, b.Index().Len())

	_, err := b.Item(id)
	require.NoError(t, err)

	require.NoError(t, b.RemoveItem(id))
	require.Equal(t, 0, b.Index().Len())
	_, err = b.Item(id)
	require.ErrorIs(t, err, board.ErrItemNotFound)
}

func TestRemoveFixedItemRejected(t *testing.T) {
	b := newTestBoard()
	pin := board.NewPin(geom.Point{X: 0, Y: 0}, board.Padstack{FromLayer: 0, ToLayer: 1, Radius: 250}, "U1")
	pin.Fixed = board.UserFixed
	id := b.AddItem(pin)

	require.ErrorIs(t, b.RemoveItem(id), board.ErrFixedItem)
}

func TestPhysicallyConnectedRequiresSharedNetAndProximity(t *testing.T) {
	b := newTestBoard()
	near := board.NewTrace(geom.Point{X: 0, Y: 0}, geom.Point{X: 50, Y: 0}, 0, 100)
	near.Nets = []board.NetID{1}
	far := board.NewTrace(geom.Point{X: 0, Y: 0}, geom.Point{X: 100000, Y: 0}, 0, 100)
	far.Nets = []board.NetID{1}
	otherNet := board.NewTrace(geom.Point{X: 0, Y: 0}, geom.Point{X: 50, Y: 0}, 0, 100)
	otherNet.Nets = []board.NetID{2}

	aID := b.AddItem(near)
	_ = far
	cID := b.AddItem(otherNet)
	a, _ := b.Item(aID)
	c, _ := b.Item(cID)
	require.False(t, b.PhysicallyConnected(a, c), "different nets must not be physically connected")

	dID := b.AddItem(board.Item{Kind: board.KindTrace, TraceFrom: geom.Point{X: 10, Y: 0}, TraceTo: geom.Point{X: 60, Y: 0}, TraceLayer: 0, TraceHalfWidth: 50, Nets: []board.NetID{1}})
	d, _ := b.Item(dID)
	require.True(t, b.PhysicallyConnected(a, d), "same net, overlapping layer, centers within tolerance")
}

func TestAllNetsListsEveryRegisteredNet(t *testing.T) {
	b := newTestBoard()
	require.Empty(t, b.AllNets())

	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	require.NoError(t, b.AddNet(board.Net{ID: 2, Name: "N2"}))

	require.ElementsMatch(t, []board.NetID{1, 2}, b.AllNets())
}
