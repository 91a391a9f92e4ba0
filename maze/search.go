package maze

import (
	"container/heap"
	"context"

	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/heuristic"
	"github.com/openpcb/autoroute/room"
)

// checkInterval is how often (in popped elements) the search re-checks
// ctx for cancellation beyond the always-checked top of the loop, per
// §5's "(b) after every N popped elements (bounded constant, e.g. 1,000)".
const checkInterval = 1000

// baseRipupItemCost is the nominal, pass-invariant cost of tentatively
// ripping up one obstacle item, per §4.6.2 condition (iv). It does not
// itself escalate pass-over-pass: the batch controller (package batch)
// escalates the per-pass rip-up budget instead (§4.9), so a later pass
// can afford more of these same-cost rip-ups than an earlier one rather
// than both the cost and the budget growing together and cancelling out.

// Search routes one connection from startItems to destItems on board b,
// net netID, under control block blk. ripupTally, if non-nil, is shared
// across the calls that make up one batch pass: it accumulates how many
// times each item has been tentatively ripped this pass, enforcing
// blk.RipupCapPerItem across connections rather than just within this
// one search. Pass nil for a standalone search.
func Search(
	ctx context.Context,
	b *board.Board,
	netID board.NetID,
	clearanceClass int,
	startItems, destItems []board.ItemID,
	blk control.Block,
	ripupTally map[board.ItemID]int,
) (Result, error) {
	if len(startItems) == 0 {
		return Result{Outcome: NotFound}, ErrNoStartItems
	}
	if len(destItems) == 0 {
		return Result{Outcome: NotFound}, ErrNoDestItems
	}
	if ripupTally == nil {
		ripupTally = make(map[board.ItemID]int)
	}

	startIt, err := resolveItems(b, startItems)
	if err != nil {
		return Result{Outcome: NotFound}, err
	}
	destIt, err := resolveItems(b, destItems)
	if err != nil {
		return Result{Outcome: NotFound}, err
	}

	gen := newGenerator(b, netID, clearanceClass, boardBoundingBox(b))

	h := heuristic.New(len(b.Layers))
	heuristic.PrimeFromItems(h, b, destItems)

	destDoors := make(map[*room.Door]bool)
	for _, it := range destIt {
		ds, genErr := gen.targetDoorsForItem(it)
		if genErr != nil {
			return Result{Outcome: NotFound}, genErr
		}
		for _, d := range ds {
			destDoors[d] = true
		}
	}

	pq := &elementQueue{}
	heap.Init(pq)
	seq := 0

	for _, it := range startIt {
		ds, genErr := gen.targetDoorsForItem(it)
		if genErr != nil {
			return Result{Outcome: NotFound}, genErr
		}
		for _, d := range ds {
			for si, sec := range d.Sections {
				point := nearestPoint(sec.Shape, sec.Shape.BoundingBox().Center())
				hv := h.Estimate(point, sec.Layer, blk)
				e := acquireEntry()
				e.f, e.g, e.h = hv, 0, hv
				e.seq = seq
				seq++
				e.door = d
				e.section = si
				e.room = d.RoomA
				e.layer = sec.Layer
				e.point = point
				heap.Push(pq, e)
			}
		}
	}

	popped := 0
	var best *queueEntry
	for pq.Len() > 0 {
		if popped%checkInterval == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{Outcome: Stopped, Iterations: popped}, nil
			}
		}
		if popped >= blk.MaxIterations {
			return Result{Outcome: NotFound, Iterations: popped}, nil
		}

		e := heap.Pop(pq).(*queueEntry)
		popped++

		sec := &e.door.Sections[e.section]
		if sec.Search.Occupied && sec.Search.GCost <= e.g {
			releaseEntry(e)

			continue
		}
		sec.Search = room.SearchElement{
			Occupied:       true,
			GCost:          e.g,
			BackDoor:       e.backDoor,
			BackSection:    e.backSection,
			ReachedByRipup: e.ripup,
		}

		if destDoors[e.door] {
			best = e

			break
		}

		expand(gen, h, pq, &seq, blk, ripupTally, e)
		releaseEntry(e)
	}

	if best == nil {
		return Result{Outcome: NotFound, Iterations: popped}, nil
	}

	path, ripped := reconstruct(gen, best)
	result := Result{Outcome: Found, Path: path, RippedItems: ripped, Iterations: popped}

	return result, nil
}

func resolveItems(b *board.Board, ids []board.ItemID) ([]*board.Item, error) {
	out := make([]*board.Item, 0, len(ids))
	for _, id := range ids {
		it, err := b.Item(id)
		if err != nil {
			return nil, ErrStartItemNotFound
		}
		out = append(out, it)
	}

	return out, nil
}

// boardBoundingBox returns the union of every outline item's bounding
// box, or a generously large default if the board carries no outline yet
// (e.g. in tests that only exercise free-space expansion).
func boardBoundingBox(b *board.Board) geom.Box {
	box := geom.Box{}
	found := false
	for _, it := range b.AllOnBoard() {
		if it.Kind != board.KindOutline {
			continue
		}
		bb := it.BoundingBox()
		if !found {
			box, found = bb, true
		} else {
			box = box.UnionWith(bb)
		}
	}
	if !found {
		const half = 1 << 20
		box = geom.Box{Lo: geom.Point{X: -half, Y: -half}, Hi: geom.Point{X: half, Y: half}}
	}

	return box
}

// expand pushes §4.6 step 4/5's candidate branches for every door of the
// room e just occupied.
func expand(
	gen *generator,
	h *heuristic.Heuristic,
	pq *elementQueue,
	seq *int,
	blk control.Block,
	ripupTally map[board.ItemID]int,
	e *queueEntry,
) {
	curRoom := e.room
	curLayer := e.layer
	for _, d := range gen.doorsOf(curRoom, blk) {
		if d == e.door {
			continue
		}
		switch d.Kind {
		case room.DoorDrill:
			if !blk.ViasAllowed {
				continue
			}
			expandDrill(gen, h, pq, seq, blk, e, d, curLayer)
		case room.DoorTarget:
			expandPlain(h, pq, seq, blk, e, d, curLayer)
		default:
			expandStandard(gen, h, pq, seq, blk, ripupTally, e, d, curRoom, curLayer)
		}
	}
}

func expandStandard(
	gen *generator,
	h *heuristic.Heuristic,
	pq *elementQueue,
	seq *int,
	blk control.Block,
	ripupTally map[board.ItemID]int,
	e *queueEntry,
	d *room.Door,
	curRoom room.RoomID,
	curLayer int,
) {
	other := otherRoom(d, curRoom)
	it, _, isObstacle := gen.obstacleItem(other)
	if !isObstacle {
		for si, sec := range d.Sections {
			point := nearestPoint(sec.Shape, e.point)
			cost, dir := stepTraceCost(blk, curLayer, e.point, point, e.dir)
			pushEntry(pq, seq, h, blk, d, si, other, curLayer, point, e.g+cost, dir, false, e.ripupSpent, e)
		}

		return
	}
	if !ripupEligible(it, blk, ripupTally) {
		return
	}
	parent, ok := gen.obstacles[other]
	if !ok {
		return
	}
	added := blk.RipupCostFor(baseRipupItemCost, 1.0, 1.0)
	newSpent := e.ripupSpent + added
	if blk.RipupCosts > 0 && newSpent > blk.RipupCosts {
		return
	}
	for si, sec := range d.Sections {
		point := nearestPoint(sec.Shape, e.point)
		cost, dir := stepTraceCost(blk, curLayer, e.point, point, e.dir)
		pushEntry(pq, seq, h, blk, d, si, parent.parent, curLayer, point, e.g+cost+added, dir, true, newSpent, e)
	}
}

func expandPlain(
	h *heuristic.Heuristic,
	pq *elementQueue,
	seq *int,
	blk control.Block,
	e *queueEntry,
	d *room.Door,
	curLayer int,
) {
	for si, sec := range d.Sections {
		point := nearestPoint(sec.Shape, e.point)
		cost, dir := stepTraceCost(blk, curLayer, e.point, point, e.dir)
		pushEntry(pq, seq, h, blk, d, si, 0, sec.Layer, point, e.g+cost, dir, false, e.ripupSpent, e)
	}
}

func expandDrill(
	gen *generator,
	h *heuristic.Heuristic,
	pq *elementQueue,
	seq *int,
	blk control.Block,
	e *queueEntry,
	d *room.Door,
	curLayer int,
) {
	for si, sec := range d.Sections {
		point := sec.Shape.Vertices()[0]
		cost, _ := stepTraceCost(blk, curLayer, e.point, point, e.dir)
		vCost := viaCostFor(blk, curLayer, sec.Layer)
		target, err := gen.resolveDrillTarget(point, sec.Layer)
		if err != nil {
			continue
		}
		pushEntry(pq, seq, h, blk, d, si, target, sec.Layer, point, e.g+cost+vCost, direction{}, false, e.ripupSpent, e)
	}
}

func pushEntry(
	pq *elementQueue,
	seq *int,
	h *heuristic.Heuristic,
	blk control.Block,
	d *room.Door,
	section int,
	roomID room.RoomID,
	layer int,
	point geom.Point,
	g float64,
	dir direction,
	ripup bool,
	ripupSpent float64,
	parent *queueEntry,
) {
	hv := h.Estimate(point, layer, blk)
	ne := acquireEntry()
	ne.f, ne.g, ne.h = g+hv, g, hv
	ne.seq = *seq
	*seq++
	ne.door = d
	ne.section = section
	ne.room = roomID
	ne.layer = layer
	ne.point = point
	ne.dir = dir
	ne.ripup = ripup
	ne.ripupSpent = ripupSpent
	ne.backDoor = parent.door
	ne.backSection = parent.section
	heap.Push(pq, ne)
}

func stepTraceCost(blk control.Block, layer int, from, to geom.Point, prevDir direction) (float64, direction) {
	dx := float64(to.X - from.X)
	dy := float64(to.Y - from.Y)
	cost := blk.TraceCosts[layer].Cost(dx, dy)
	dir := direction{dx: sign32(dx), dy: sign32(dy), valid: true}
	if prevDir.valid && (dir.dx != 0 || dir.dy != 0) && (dir.dx != prevDir.dx || dir.dy != prevDir.dy) {
		cost += blk.BendPenalty
	}

	return cost, dir
}

func viaCostFor(blk control.Block, from, to int) float64 {
	if vc, ok := blk.AddViaCosts[[2]int{from, to}]; ok {
		return vc.Min()
	}
	if blk.MinCheapViaCost > 0 && blk.MinCheapViaCost < blk.MinNormalViaCost {
		return blk.MinCheapViaCost
	}

	return blk.MinNormalViaCost
}

func ripupEligible(it *board.Item, blk control.Block, tally map[board.ItemID]int) bool {
	if !blk.RipupAllowed {
		return false
	}
	if it.Fixed != board.NotFixed {
		return false
	}
	if blk.RipupCapPerItem > 0 && tally[it.ID] >= blk.RipupCapPerItem {
		return false
	}

	return true
}
