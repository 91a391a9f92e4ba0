package routerapi_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openpcb/autoroute/batch"
	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/routerapi"
)

// TestRouteConnectionAlreadyConnected covers boundary behavior 12: a
// start item equal to the destination item returns AlreadyConnected
// without touching the board.
func TestRouteConnectionAlreadyConnected(t *testing.T) {
	b := twoLayerBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	p1 := pin(b, 1, geom.Point{X: 0, Y: 0}, 0)

	before := len(b.AllOnBoard())
	blk := control.DefaultBlock(2, gridUnit)
	result, synthesized, err := routerapi.RouteConnection(context.Background(), b, []board.ItemID{p1}, []board.ItemID{p1}, blk)

	require.NoError(t, err)
	require.Equal(t, routerapi.AlreadyConnected, result)
	require.Nil(t, synthesized)
	require.Equal(t, before, len(b.AllOnBoard()))
}

// TestRouteConnectionEmptySets covers the NoConnections boundary: an
// empty start or destination set short-circuits before anything else.
func TestRouteConnectionEmptySets(t *testing.T) {
	b := twoLayerBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	p1 := pin(b, 1, geom.Point{X: 0, Y: 0}, 0)

	blk := control.DefaultBlock(2, gridUnit)
	result, synthesized, err := routerapi.RouteConnection(context.Background(), b, nil, []board.ItemID{p1}, blk)
	require.NoError(t, err)
	require.Equal(t, routerapi.NoConnections, result)
	require.Nil(t, synthesized)

	result, synthesized, err = routerapi.RouteConnection(context.Background(), b, []board.ItemID{p1}, nil, blk)
	require.NoError(t, err)
	require.Equal(t, routerapi.NoConnections, result)
	require.Nil(t, synthesized)
}

// TestRouteConnectionZeroDeadline covers boundary behavior 13: a deadline
// already in the past returns TimedOut without popping any queue element
// (checked before Search is even called).
func TestRouteConnectionZeroDeadline(t *testing.T) {
	b := twoLayerBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	p1 := pin(b, 1, geom.Point{X: 0, Y: 0}, 0)
	p2 := pin(b, 1, geom.Point{X: 50000, Y: 0}, 0)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	blk := control.DefaultBlock(2, gridUnit)
	result, synthesized, err := routerapi.RouteConnection(ctx, b, []board.ItemID{p1}, []board.ItemID{p2}, blk)

	require.NoError(t, err)
	require.Equal(t, routerapi.TimedOut, result)
	require.Nil(t, synthesized)
}

// TestRouteConnectionUnknownItemFails covers the Failed path: an unknown
// start item id surfaces as an error rather than silently routing.
func TestRouteConnectionUnknownItemFails(t *testing.T) {
	b := twoLayerBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	p2 := pin(b, 1, geom.Point{X: 50000, Y: 0}, 0)

	blk := control.DefaultBlock(2, gridUnit)
	result, synthesized, err := routerapi.RouteConnection(context.Background(), b, []board.ItemID{9999}, []board.ItemID{p2}, blk)

	require.Error(t, err)
	require.Equal(t, routerapi.Failed, result)
	require.Nil(t, synthesized)
}

// TestBatchRouteDelegatesToBatchRun is a thin smoke test confirming
// BatchRoute actually drives package batch's controller end to end.
func TestBatchRouteDelegatesToBatchRun(t *testing.T) {
	b := twoLayerBoard(t)
	require.NoError(t, b.AddNet(board.Net{ID: 1, Name: "N1"}))
	pin(b, 1, geom.Point{X: 10000, Y: 10000}, 0)
	pin(b, 1, geom.Point{X: 50000, Y: 10000}, 0)

	cfg := batch.DefaultConfig(control.DefaultBlock(2, gridUnit))
	report, err := routerapi.BatchRoute(context.Background(), b, cfg)

	require.NoError(t, err)
	require.Equal(t, 0, report.Remaining)
}
