package conn

import (
	"sort"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/spatial"
)

// TraceConnection walks the chain of same-net trace/via items startID
// belongs to in both directions, stopping each side at a pin, a fork (more
// than one candidate item touching the stopping point), or a free end,
// per §4.7.
func TraceConnection(b *board.Board, startID board.ItemID) (*Connection, error) {
	it, err := b.Item(startID)
	if err != nil {
		return nil, err
	}
	if it.Kind != board.KindTrace {
		return nil, ErrNotWalkable
	}
	if len(it.Nets) == 0 {
		return nil, ErrNotWalkable
	}
	netID := it.Nets[0]

	termA, chainA, lenA := walk(b, netID, startID, it.TraceFrom)
	termB, chainB, lenB := walk(b, netID, startID, it.TraceTo)

	items := make([]board.ItemID, 0, len(chainA)+len(chainB)+1)
	for i := len(chainA) - 1; i >= 0; i-- {
		items = append(items, chainA[i])
	}
	items = append(items, startID)
	items = append(items, chainB...)

	length := lenA + lenB + it.TraceFrom.Distance(it.TraceTo)
	straight := termA.Point.Distance(termB.Point)

	return &Connection{
		From:           termA,
		To:             termB,
		Items:          items,
		Length:         length,
		StraightLength: straight,
		Detour:         detourOf(length, straight, len(items)),
	}, nil
}

// walk extends a chain from point, excluding startID, until it reaches a
// terminal. It returns the terminal, the chain of items traversed (in
// walk order, not including startID), and their total trace length.
func walk(b *board.Board, netID board.NetID, startID board.ItemID, point geom.Point) (Terminal, []board.ItemID, float64) {
	visited := map[board.ItemID]bool{startID: true}
	var chain []board.ItemID
	length := 0.0

	for {
		candidates := touchingPoint(b, netID, point, visited)
		switch {
		case len(candidates) == 0:
			return Terminal{Kind: TerminalFreeEnd, Point: point}, chain, length
		case len(candidates) > 1:
			return Terminal{Kind: TerminalFork, Point: point}, chain, length
		}

		next := candidates[0]
		if next.Kind == board.KindPin {
			return Terminal{Kind: TerminalPin, Item: next.ID, Point: point}, chain, length
		}

		visited[next.ID] = true
		chain = append(chain, next.ID)

		if next.Kind == board.KindTrace {
			length += next.TraceFrom.Distance(next.TraceTo)
			if withinTolerance(next.TraceFrom, point) {
				point = next.TraceTo
			} else {
				point = next.TraceFrom
			}

			continue
		}
		point = next.ViaCenter // via: zero-length pass-through at the same point
	}
}

func withinTolerance(a, p geom.Point) bool {
	return a.DistanceSquared(p) <= board.ConnectionTolerance*board.ConnectionTolerance
}

// touchingPoint returns the net's trace/via/pin items whose own endpoint
// lies within tolerance of p, excluding any item in exclude, sorted by id
// for deterministic walk results.
func touchingPoint(b *board.Board, netID board.NetID, p geom.Point, exclude map[board.ItemID]bool) []*board.Item {
	box := geom.Box{
		Lo: geom.Point{X: p.X - board.ConnectionTolerance, Y: p.Y - board.ConnectionTolerance},
		Hi: geom.Point{X: p.X + board.ConnectionTolerance, Y: p.Y + board.ConnectionTolerance},
	}
	hits := b.Index().Query(box, spatial.AnyLayer)

	seen := make(map[board.ItemID]bool)
	var out []*board.Item
	for _, h := range hits {
		it, ok := h.Object.(*board.Item)
		if !ok || exclude[it.ID] || seen[it.ID] || !it.HasNet(netID) {
			continue
		}
		if it.Kind != board.KindTrace && it.Kind != board.KindVia && it.Kind != board.KindPin {
			continue
		}
		for _, end := range endsOf(it) {
			if withinTolerance(end, p) {
				seen[it.ID] = true
				out = append(out, it)

				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func endsOf(it *board.Item) []geom.Point {
	switch it.Kind {
	case board.KindTrace:
		return []geom.Point{it.TraceFrom, it.TraceTo}
	case board.KindVia:
		return []geom.Point{it.ViaCenter}
	case board.KindPin:
		return []geom.Point{it.PinCenter}
	default:
		return nil
	}
}
