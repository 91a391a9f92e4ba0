package discover

import (
	"sort"

	"github.com/openpcb/autoroute/board"
)

// IncompleteConnection names a gap between two components of one net, per
// §4.8: From and To are pin-like items chosen from adjacent components,
// the connection a maze search should close.
type IncompleteConnection struct {
	Net             board.NetID
	From, To        board.ItemID
	AirWireDistance float64
}

// Discover finds every incomplete connection on b: for each net with two
// or more items, it builds components under board.Board.PhysicallyConnected
// and, for nets that do not collapse to a single component, emits one
// IncompleteConnection per adjacent pair of components that each have a
// pin to anchor on. Components with no pin (pure trace/via routing
// artifacts) are skipped, per §4.8(4) — they are not yet a real gap, just
// unfinished routing. The result is sorted ascending by air-wire distance.
func Discover(b *board.Board) ([]IncompleteConnection, error) {
	var out []IncompleteConnection
	for _, netID := range b.AllNets() {
		items := b.ItemsOnNet(netID)
		if len(items) < 2 {
			continue
		}

		components := componentsOf(b, items)
		if len(components) <= 1 {
			continue
		}

		reps := make([]*board.Item, len(components))
		for i, comp := range components {
			reps[i] = pinRepresentative(comp)
		}
		for i := 0; i+1 < len(reps); i++ {
			a, c := reps[i], reps[i+1]
			if a == nil || c == nil {
				continue
			}
			dist := a.BoundingBox().Center().Distance(c.BoundingBox().Center())
			out = append(out, IncompleteConnection{Net: netID, From: a.ID, To: c.ID, AirWireDistance: dist})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AirWireDistance < out[j].AirWireDistance })

	return out, nil
}

// pinRepresentative returns the lowest-id pin in comp, or nil if comp
// contains no pin.
func pinRepresentative(comp []*board.Item) *board.Item {
	var best *board.Item
	for _, it := range comp {
		if it.Kind != board.KindPin {
			continue
		}
		if best == nil || it.ID < best.ID {
			best = it
		}
	}

	return best
}

// componentsOf partitions items into connected components under
// b.PhysicallyConnected, ordered by each component's lowest item id for
// deterministic adjacent-pair emission.
func componentsOf(b *board.Board, items []*board.Item) [][]*board.Item {
	ordered := make([]*board.Item, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	visited := make(map[board.ItemID]bool, len(ordered))
	var components [][]*board.Item
	for _, start := range ordered {
		if visited[start.ID] {
			continue
		}
		components = append(components, walkComponent(b, ordered, start, visited))
	}

	sort.Slice(components, func(i, j int) bool { return minID(components[i]) < minID(components[j]) })

	return components
}

// walkComponent is a BFS over items, following b.PhysicallyConnected
// edges, using the standard queue-slice-plus-visited-set walker shape.
func walkComponent(b *board.Board, all []*board.Item, start *board.Item, visited map[board.ItemID]bool) []*board.Item {
	queue := []*board.Item{start}
	visited[start.ID] = true
	var comp []*board.Item
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		comp = append(comp, cur)
		for _, other := range all {
			if visited[other.ID] || !b.PhysicallyConnected(cur, other) {
				continue
			}
			visited[other.ID] = true
			queue = append(queue, other)
		}
	}

	return comp
}

func minID(comp []*board.Item) board.ItemID {
	min := comp[0].ID
	for _, it := range comp[1:] {
		if it.ID < min {
			min = it.ID
		}
	}

	return min
}
