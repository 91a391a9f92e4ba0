package batch

import (
	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/maze"
)

// ApplyPath turns a Found maze.Result into board mutations, per
// §4.6.4/§4.10: rip up the items the search tentatively routed through,
// then synthesize new items in traces-then-vias order along the path. If
// a synthesized item would land inside a rule area that forbids it,
// every mutation this call made is rolled back (new items removed,
// ripped items reinserted in reverse order) and ErrInsertConflict is
// returned. r is updated in place with r.Synthesized on success.
func ApplyPath(b *board.Board, netID board.NetID, clearanceClass int, blk control.Block, r *maze.Result) error {
	removed := make([]board.Item, 0, len(r.RippedItems))
	for _, id := range r.RippedItems {
		it, err := b.Item(id)
		if err != nil {
			continue
		}
		snapshot := *it
		if err := b.RemoveItem(id); err != nil {
			rollbackRemovals(b, removed)

			return err
		}
		removed = append(removed, snapshot)
	}

	traces, vias := synthesisPlan(netID, clearanceClass, blk, r.Path)

	var synthesized []board.ItemID
	for _, tr := range traces {
		if conflicts(b, tr, netID) {
			rollbackSynthesis(b, synthesized)
			rollbackRemovals(b, removed)

			return ErrInsertConflict
		}
		synthesized = append(synthesized, b.AddItem(tr))
	}
	for _, via := range vias {
		if conflicts(b, via, netID) {
			rollbackSynthesis(b, synthesized)
			rollbackRemovals(b, removed)

			return ErrInsertConflict
		}
		synthesized = append(synthesized, b.AddItem(via))
	}

	r.Synthesized = synthesized

	return nil
}

// synthesisPlan lays out the new trace/via items a path implies, without
// touching the board: one trace per same-layer hop, one via per layer
// change, traces first and vias second per §4.10's insertion order.
func synthesisPlan(netID board.NetID, clearanceClass int, blk control.Block, path []maze.Vertex) ([]board.Item, []board.Item) {
	var traces, vias []board.Item
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		if prev.Layer == cur.Layer {
			if prev.Point.Equal(cur.Point) {
				continue
			}
			half := blk.CompensatedHalfWidth[cur.Layer]
			if half == 0 {
				half = blk.TraceHalfWidth[cur.Layer]
			}
			tr := board.NewTrace(prev.Point, cur.Point, cur.Layer, half)
			tr.Nets = []board.NetID{netID}
			tr.ClearanceClass = clearanceClass
			traces = append(traces, tr)

			continue
		}

		radius := viaRadiusFor(blk, prev.Layer, cur.Layer)
		via := board.NewVia(cur.Point, board.Padstack{FromLayer: prev.Layer, ToLayer: cur.Layer, Radius: radius})
		via.Nets = []board.NetID{netID}
		via.ClearanceClass = clearanceClass
		vias = append(vias, via)
	}

	return traces, vias
}

func conflicts(b *board.Board, it board.Item, netID board.NetID) bool {
	for i := 0; i < it.ShapeCount(); i++ {
		layer := it.ShapeLayer(i)
		for _, v := range it.ShapeTile(i).Vertices() {
			if b.LocationProhibited(v, layer, it.Kind, netID) {
				return true
			}
		}
	}

	return false
}

func rollbackSynthesis(b *board.Board, ids []board.ItemID) {
	for _, id := range ids {
		_ = b.RemoveItem(id)
	}
}

func rollbackRemovals(b *board.Board, removed []board.Item) {
	for i := len(removed) - 1; i >= 0; i-- {
		b.AddItem(removed[i])
	}
}

func viaRadiusFor(blk control.Block, a, b int) int32 {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	radius := blk.ViaRadius[lo]
	if hi > lo {
		if r2 := blk.ViaRadius[hi]; r2 > radius {
			radius = r2
		}
	}
	if radius == 0 {
		radius = blk.MaxViaRadius
	}

	return radius
}
