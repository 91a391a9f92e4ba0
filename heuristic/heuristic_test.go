package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/heuristic"
)

func TestEstimateSameLayerNoViaFloor(t *testing.T) {
	h := heuristic.New(4)
	h.Prime([]heuristic.Destination{
		{Shape: geom.NewBoxTile(geom.Box{Lo: geom.Point{X: 100, Y: 0}, Hi: geom.Point{X: 100, Y: 0}}), Layer: 0},
	})
	blk := control.DefaultBlock(4, 10)
	got := h.Estimate(geom.Point{X: 0, Y: 0}, 0, blk)
	require.InDelta(t, 100.0, got, 1e-9, "same side as destination: pure trace cost, no via floor")
}

func TestEstimateCrossSideAddsViaFloor(t *testing.T) {
	h := heuristic.New(4)
	h.Prime([]heuristic.Destination{
		{Shape: geom.NewBoxTile(geom.Box{Lo: geom.Point{X: 100, Y: 0}, Hi: geom.Point{X: 100, Y: 0}}), Layer: 0},
	})
	blk := control.DefaultBlock(4, 10)
	blk.MinNormalViaCost = 50
	blk.MinCheapViaCost = 0

	got := h.Estimate(geom.Point{X: 0, Y: 0}, 3, blk)
	require.InDelta(t, 150.0, got, 1e-9, "solder-side query to component-side destination pays one via floor")
}

func TestEstimatePrefersCheaperViaFloor(t *testing.T) {
	h := heuristic.New(4)
	h.Prime([]heuristic.Destination{
		{Shape: geom.NewBoxTile(geom.Box{Lo: geom.Point{X: 0, Y: 0}, Hi: geom.Point{X: 0, Y: 0}}), Layer: 0},
	})
	blk := control.DefaultBlock(4, 10)
	blk.MinNormalViaCost = 50
	blk.MinCheapViaCost = 10

	got := h.Estimate(geom.Point{X: 0, Y: 0}, 3, blk)
	require.InDelta(t, 10.0, got, 1e-9)
}

func TestEstimateInnerToInnerNeverOverestimates(t *testing.T) {
	h := heuristic.New(6)
	h.Prime([]heuristic.Destination{
		{Shape: geom.NewBoxTile(geom.Box{Lo: geom.Point{X: 0, Y: 0}, Hi: geom.Point{X: 0, Y: 0}}), Layer: 2},
	})
	blk := control.DefaultBlock(6, 10)
	got := h.Estimate(geom.Point{X: 0, Y: 0}, 3, blk)
	require.Zero(t, got, "inner-to-inner transitions cost zero: a conservative, always-admissible lower bound")
}

func TestEstimateWithNoPrimedDestinationsIsZero(t *testing.T) {
	h := heuristic.New(4)
	blk := control.DefaultBlock(4, 10)
	require.Zero(t, h.Estimate(geom.Point{X: 5, Y: 5}, 0, blk))
}

func TestSideOfClassifiesLayerStack(t *testing.T) {
	require.Equal(t, heuristic.SideComponent, heuristic.SideOf(0, 4))
	require.Equal(t, heuristic.SideSolder, heuristic.SideOf(3, 4))
	require.Equal(t, heuristic.SideInner, heuristic.SideOf(1, 4))
	require.Equal(t, heuristic.SideInner, heuristic.SideOf(2, 4))
}
