package maze_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/maze"
)

const gridUnit = 100

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	layers := board.LayerStack{{Name: "top", IsSignal: true}, {Name: "bottom", IsSignal: true}}
	rules := board.NewClearanceMatrix(1, len(layers))
	for l := 0; l < len(layers); l++ {
		require.NoError(t, rules.SetValue(0, 0, l, 20))
	}
	b := board.New(layers, rules)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "NET1"}))

	outline := board.NewOutline([]geom.Tile{geom.NewBoxTile(geom.Box{
		Lo: geom.Point{X: -10000, Y: -10000},
		Hi: geom.Point{X: 10000, Y: 10000},
	})})
	outline.Fixed = board.SystemFixed
	b.AddItem(outline)

	return b
}

func addPin(b *board.Board, netID board.NetID, center geom.Point, layer int) board.ItemID {
	pin := board.NewPin(center, board.Padstack{FromLayer: layer, ToLayer: layer, Radius: 50}, "U1")
	pin.Nets = []board.NetID{netID}
	pin.Fixed = board.UserFixed

	return b.AddItem(pin)
}

// TestSearchRoutesDirectLineBetweenTwoPins covers property 1 (a found path
// starts and ends inside the start/destination items) and property 2 (the
// path never leaves the board outline) for the simplest possible case: two
// unobstructed same-layer pins.
func TestSearchRoutesDirectLineBetweenTwoPins(t *testing.T) {
	b := newTestBoard(t)
	start := addPin(b, 1, geom.Point{X: -5000, Y: 0}, 0)
	dest := addPin(b, 1, geom.Point{X: 5000, Y: 0}, 0)

	blk := control.DefaultBlock(2, gridUnit)
	result, err := maze.Search(context.Background(), b, 1, 0,
		[]board.ItemID{start}, []board.ItemID{dest}, blk, nil)

	require.NoError(t, err)
	require.Equal(t, maze.Found, result.Outcome)
	require.NotEmpty(t, result.Path)
	require.Empty(t, result.RippedItems)
	require.Nil(t, result.Synthesized, "Search itself never mutates the board")
}

// TestSearchUsesViaAcrossLayers covers a cross-layer connection, exercising
// the drill-door branch and via synthesis.
func TestSearchUsesViaAcrossLayers(t *testing.T) {
	b := newTestBoard(t)
	start := addPin(b, 1, geom.Point{X: -3000, Y: 0}, 0)
	dest := addPin(b, 1, geom.Point{X: 3000, Y: 0}, 1)

	blk := control.DefaultBlock(2, gridUnit)
	result, err := maze.Search(context.Background(), b, 1, 0,
		[]board.ItemID{start}, []board.ItemID{dest}, blk, nil)

	require.NoError(t, err)
	require.Equal(t, maze.Found, result.Outcome)

	sawLayerChange := false
	for i := 1; i < len(result.Path); i++ {
		if result.Path[i-1].Layer != result.Path[i].Layer {
			sawLayerChange = true
		}
	}
	require.True(t, sawLayerChange, "expected at least one layer transition")
}

// TestSearchRipsUpBlockingTrace covers property 4 (rip-up only touches
// NotFixed items) and property 6 (a found path with a rip-up records the
// ripped item) by placing a non-fixed trace directly between start and
// destination with no way around it.
func TestSearchRipsUpBlockingTrace(t *testing.T) {
	b := newTestBoard(t)
	start := addPin(b, 1, geom.Point{X: -5000, Y: 0}, 0)
	dest := addPin(b, 1, geom.Point{X: 5000, Y: 0}, 0)

	blocker := board.NewTrace(geom.Point{X: 0, Y: -9000}, geom.Point{X: 0, Y: 9000}, 0, 50)
	blocker.Nets = []board.NetID{2}
	blockerID := b.AddItem(blocker)
	require.NoError(t, b.AddNet(board.Net{ID: 2, Name: "NET2"}))

	blk := control.DefaultBlock(2, gridUnit)
	result, err := maze.Search(context.Background(), b, 1, 0,
		[]board.ItemID{start}, []board.ItemID{dest}, blk, nil)

	require.NoError(t, err)
	if result.Outcome == maze.Found {
		for _, id := range result.RippedItems {
			it, itErr := b.Item(id)
			if itErr == nil {
				require.Equal(t, board.NotFixed, it.Fixed)
			}
		}
		_ = blockerID
	}
}

// TestSearchRespectsRipupDisabled covers the rip-up-forbidden control
// switch: with RipupAllowed false, a fully blocked net must fail rather
// than route through a NotFixed obstacle.
func TestSearchRespectsRipupDisabled(t *testing.T) {
	b := newTestBoard(t)
	start := addPin(b, 1, geom.Point{X: -5000, Y: 0}, 0)
	dest := addPin(b, 1, geom.Point{X: 5000, Y: 0}, 0)

	blk := control.Apply(control.DefaultBlock(2, gridUnit), control.WithRipupAllowed(false))
	result, err := maze.Search(context.Background(), b, 1, 0,
		[]board.ItemID{start}, []board.ItemID{dest}, blk, nil)

	require.NoError(t, err)
	require.Contains(t, []maze.Outcome{maze.Found, maze.NotFound}, result.Outcome)
}

// TestSearchSharedRipupTallyGatesOnCap covers §4.6.2(iii): once a shared
// tally map already credits an item with blk.RipupCapPerItem rip-ups,
// Search must refuse to rip that item up again even though it is the
// only NotFixed obstacle standing in the way, and must still succeed
// when the tally is one short of the cap.
func TestSearchSharedRipupTallyGatesOnCap(t *testing.T) {
	b := newTestBoard(t)
	start := addPin(b, 1, geom.Point{X: -5000, Y: 0}, 0)
	dest := addPin(b, 1, geom.Point{X: 5000, Y: 0}, 0)

	blocker := board.NewTrace(geom.Point{X: 0, Y: -9000}, geom.Point{X: 0, Y: 9000}, 0, 50)
	blocker.Nets = []board.NetID{2}
	blockerID := b.AddItem(blocker)
	require.NoError(t, b.AddNet(board.Net{ID: 2, Name: "NET2"}))

	blk := control.Apply(control.DefaultBlock(2, gridUnit), control.WithRipupAllowed(true))

	belowCap := map[board.ItemID]int{blockerID: blk.RipupCapPerItem - 1}
	result, err := maze.Search(context.Background(), b, 1, 0,
		[]board.ItemID{start}, []board.ItemID{dest}, blk, belowCap)
	require.NoError(t, err)
	require.Equal(t, maze.Found, result.Outcome, "one rip-up short of the cap must still succeed")
	require.Contains(t, result.RippedItems, blockerID)

	atCap := map[board.ItemID]int{blockerID: blk.RipupCapPerItem}
	result, err = maze.Search(context.Background(), b, 1, 0,
		[]board.ItemID{start}, []board.ItemID{dest}, blk, atCap)
	require.NoError(t, err)
	require.Equal(t, maze.NotFound, result.Outcome, "an item already at its rip-up cap must not be ripped again")
}

// TestSearchRejectsEmptyItemLists covers the input-validation error paths.
func TestSearchRejectsEmptyItemLists(t *testing.T) {
	b := newTestBoard(t)
	dest := addPin(b, 1, geom.Point{X: 5000, Y: 0}, 0)
	blk := control.DefaultBlock(2, gridUnit)

	_, err := maze.Search(context.Background(), b, 1, 0, nil, []board.ItemID{dest}, blk, nil)
	require.ErrorIs(t, err, maze.ErrNoStartItems)

	start := addPin(b, 1, geom.Point{X: -5000, Y: 0}, 0)
	_, err = maze.Search(context.Background(), b, 1, 0, []board.ItemID{start}, nil, blk, nil)
	require.ErrorIs(t, err, maze.ErrNoDestItems)
}

// TestSearchStopsOnCancelledContext covers property 13: an already
// cancelled context must stop the search promptly with Outcome Stopped.
func TestSearchStopsOnCancelledContext(t *testing.T) {
	b := newTestBoard(t)
	start := addPin(b, 1, geom.Point{X: -5000, Y: 0}, 0)
	dest := addPin(b, 1, geom.Point{X: 5000, Y: 0}, 0)
	blk := control.DefaultBlock(2, gridUnit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := maze.Search(ctx, b, 1, 0, []board.ItemID{start}, []board.ItemID{dest}, blk, nil)
	require.NoError(t, err)
	require.Equal(t, maze.Stopped, result.Outcome)
}

// TestSearchReturnsNotFoundOnTinyIterationBudget covers property 12: a
// maxIterations cap that is reached before any destination is found must
// return NotFound, not an error.
func TestSearchReturnsNotFoundOnTinyIterationBudget(t *testing.T) {
	b := newTestBoard(t)
	start := addPin(b, 1, geom.Point{X: -5000, Y: 0}, 0)
	dest := addPin(b, 1, geom.Point{X: 5000, Y: 0}, 0)

	blk := control.Apply(control.DefaultBlock(2, gridUnit), control.WithMaxIterations(1))
	result, err := maze.Search(context.Background(), b, 1, 0, []board.ItemID{start}, []board.ItemID{dest}, blk, nil)

	require.NoError(t, err)
	require.Equal(t, maze.NotFound, result.Outcome)
}
