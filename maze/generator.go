package maze

import (
	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/control"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/room"
	"github.com/openpcb/autoroute/spatial"
)

// standardDoorSections is the number of equal sections a 1-D door between
// two free rooms is split into, giving the search finer-grained entry
// points along a shared wall than a single section would.
const standardDoorSections = 3

// drillStep is the candidate-drill-site spacing queried from a room's
// drill pages, in board units.
const drillStep = 200

// drillPageSize is the side length of one drill-page tile; see
// room.NewDrillPageGrid.
const drillPageSize = 4000

// generator builds expansion rooms and their doors on demand as the
// search frontier reaches new territory, per §4.4. It is the on-demand
// counterpart to a precomputed adjacency list: where a classic
// breadth-first or Dijkstra walker traverses a graph that already exists,
// generator grows one net-search's room graph lazily, one expansion room
// generated the moment the search frontier needs it rather than upfront.
type generator struct {
	b              *board.Board
	netID          board.NetID
	clearanceClass int
	boardBox       geom.Box

	freeIdx   *spatial.Index
	freeRooms map[room.RoomID]*room.FreeSpaceRoom
	freeObjs  map[room.RoomID]*roomObject

	obstacles map[room.RoomID]*obstacleEntry
	doors     map[room.RoomID][]*room.Door

	drillGrid      *room.DrillPageGrid
	drillGenerated map[room.RoomID]bool

	nextID room.RoomID
}

// obstacleEntry pairs a generated ObstacleRoom with the board item it
// wraps, since room.ObstacleRoom itself only records the item's shape
// index (to avoid a room->board import cycle). parent is the free room
// the obstacle sits against; ripping the item up reopens that same free
// space, so further expansion past the obstacle is modeled as continuing
// from parent rather than deriving the obstacle's post-removal shape.
type obstacleEntry struct {
	room   *room.ObstacleRoom
	item   *board.Item
	parent room.RoomID
}

// roomObject adapts a completed free-space room's bounding box into
// spatial.Object so generator can query for geometric neighbors the same
// way board.Board queries for obstacles.
type roomObject struct {
	id    room.RoomID
	box   geom.Box
	layer int
}

func (o *roomObject) ShapeCount() int         { return 1 }
func (o *roomObject) ShapeBox(i int) geom.Box { return o.box }
func (o *roomObject) ShapeLayer(i int) int    { return o.layer }

func newGenerator(b *board.Board, netID board.NetID, clearanceClass int, boardBox geom.Box) *generator {
	return &generator{
		b:              b,
		netID:          netID,
		clearanceClass: clearanceClass,
		boardBox:       boardBox,
		freeIdx:        spatial.NewIndex(),
		freeRooms:      make(map[room.RoomID]*room.FreeSpaceRoom),
		freeObjs:       make(map[room.RoomID]*roomObject),
		obstacles:      make(map[room.RoomID]*obstacleEntry),
		doors:          make(map[room.RoomID][]*room.Door),
		drillGrid:      room.NewDrillPageGrid(boardBox, drillPageSize),
		drillGenerated: make(map[room.RoomID]bool),
	}
}

func (g *generator) selfClearance(layer int) int32 {
	off, err := g.b.Rules.CompensationOffset(g.clearanceClass, layer)
	if err != nil {
		return 0
	}

	return off
}

// ensureRoomContaining returns the id of an existing free room on layer
// that already contains every vertex of shape, generating a fresh one
// seeded around shape otherwise.
func (g *generator) ensureRoomContaining(shape geom.Tile, layer int) (room.RoomID, error) {
	hits := g.freeIdx.Query(shape.BoundingBox(), layer)
	for _, h := range hits {
		obj, ok := h.Object.(*roomObject)
		if !ok {
			continue
		}
		r := g.freeRooms[obj.id]
		if containsAll(r.Shape(), shape) {
			return obj.id, nil
		}
	}
	r, err := g.generateFreeRoom(layer, shape)
	if err != nil {
		return 0, err
	}

	return r.ID(), nil
}

func containsAll(container, shape geom.Tile) bool {
	for _, v := range shape.Vertices() {
		if !container.Contains(v) {
			return false
		}
	}

	return true
}

// generateFreeRoom restrains a board-sized candidate region against the
// spatial index on layer, keeping contained inside, completes it, and
// links doors to already-generated neighboring free rooms and
// rip-up-eligible obstacles (§4.4's "doors are then created between S and
// adjacent complete rooms").
func (g *generator) generateFreeRoom(layer int, contained geom.Tile) (*room.FreeSpaceRoom, error) {
	candidate := geom.NewBoxTile(g.boardBox)
	incomplete := room.NewIncompleteRoom(layer, candidate, contained)

	g.nextID++
	id := g.nextID
	clearance := g.selfClearance(layer)
	netDependent := g.touchesForeignObstacle(candidate, layer)
	if err := room.CompleteExpansionRoom(g.b.Index(), incomplete, id, clearance, netDependent); err != nil {
		return nil, err
	}

	g.freeRooms[id] = incomplete
	obj := &roomObject{id: id, box: incomplete.Shape().BoundingBox(), layer: layer}
	g.freeObjs[id] = obj
	if err := g.freeIdx.Insert(obj); err != nil {
		return nil, err
	}

	g.linkNeighbors(incomplete, obj)
	g.linkObstacles(incomplete, clearance)

	return incomplete, nil
}

// touchesForeignObstacle reports whether shape's bounding box on layer
// overlaps any item not on g.netID, the approximation this generator uses
// to decide StateNetDependent (an exact answer would require Restrain to
// report which obstacles it actually cut against, which it does not).
func (g *generator) touchesForeignObstacle(shape geom.Tile, layer int) bool {
	hits := g.b.Index().Query(shape.BoundingBox(), layer)
	for _, h := range hits {
		it, ok := h.Object.(*board.Item)
		if !ok {
			continue
		}
		if !it.HasNet(g.netID) {
			return true
		}
	}

	return false
}

func (g *generator) linkNeighbors(r *room.FreeSpaceRoom, obj *roomObject) {
	hits := g.freeIdx.Query(obj.box, obj.layer)
	for _, h := range hits {
		other, ok := h.Object.(*roomObject)
		if !ok || other.id == obj.id {
			continue
		}
		neighbor, ok := g.freeRooms[other.id]
		if !ok {
			continue
		}
		inter := r.Shape().Intersection(neighbor.Shape())
		if inter.Empty() || inter.Dimension() == 0 {
			continue
		}
		d := room.NewStandardDoor(obj.id, other.id, inter, obj.layer, standardDoorSections)
		r.AddDoor(d)
		neighbor.AddDoor(d)
		g.doors[obj.id] = append(g.doors[obj.id], d)
		g.doors[other.id] = append(g.doors[other.id], d)
	}
}

// linkObstacles creates an ObstacleRoom and a 2-D overlap door for every
// NotFixed item whose inflated shape shares a border with r, per the
// §4.4 "obstacle rooms... created on demand for items that are candidates
// for rip-up or shove" rule.
func (g *generator) linkObstacles(r *room.FreeSpaceRoom, clearance int32) {
	hits := g.b.Index().Query(r.Shape().BoundingBox(), r.Layer())
	for _, h := range hits {
		it, ok := h.Object.(*board.Item)
		if !ok || it.HasNet(g.netID) || it.Fixed != board.NotFixed {
			continue
		}
		raw := it.ShapeTile(h.ShapeIndex)
		inflated := raw.Inflate(clearance)
		if inflated.Dimension() != 2 {
			continue
		}
		touching := r.Shape().TouchingSides(inflated)
		if len(touching) == 0 {
			continue
		}

		g.nextID++
		obID := g.nextID
		obRoom := room.NewObstacleRoom(obID, r.Layer(), raw, h.ShapeIndex, clearance)
		g.obstacles[obID] = &obstacleEntry{room: obRoom, item: it, parent: r.ID()}

		verts := r.Shape().Vertices()
		for _, idx := range touching {
			a, b := verts[idx], verts[(idx+1)%len(verts)]
			edge := geom.NewSegment(a, b)
			d := room.NewStandardDoor(r.ID(), obID, edge, r.Layer(), 1)
			r.AddDoor(d)
			obRoom.AddDoor(d)
			g.doors[r.ID()] = append(g.doors[r.ID()], d)
			g.doors[obID] = append(g.doors[obID], d)
		}
	}
}

// ensureDrillDoors lazily populates free room r's drill doors from its
// overlapping drill pages, memoized so repeated expansion visits do not
// regenerate them.
func (g *generator) ensureDrillDoors(r *room.FreeSpaceRoom, blk control.Block) {
	if g.drillGenerated[r.ID()] {
		return
	}
	g.drillGenerated[r.ID()] = true

	seen := make(map[geom.Point]bool)
	for _, page := range g.drillGrid.PagesOverlapping(r.Shape().BoundingBox()) {
		for _, site := range page.CandidateSites(drillStep) {
			if seen[site] || !r.Shape().Contains(site) {
				continue
			}
			seen[site] = true

			var candidates []int
			for l := blk.ViaLowerBound; l <= blk.ViaUpperBound; l++ {
				if l == r.Layer() || !blk.LayerActive[l] {
					continue
				}
				candidates = append(candidates, l)
			}
			if len(candidates) == 0 {
				continue
			}
			d := room.NewDrillDoor(r.ID(), site, candidates)
			r.AddDoor(d)
			g.doors[r.ID()] = append(g.doors[r.ID()], d)
		}
	}
}

// resolveDrillTarget returns the free room on layer containing p,
// generating one if none exists yet.
func (g *generator) resolveDrillTarget(p geom.Point, layer int) (room.RoomID, error) {
	return g.ensureRoomContaining(geom.NewPoint(p), layer)
}

// targetDoorsForItem builds the target door(s) absorbing expansion into
// it's shape(s), per §4.6's initialization step.
func (g *generator) targetDoorsForItem(it *board.Item) ([]*room.Door, error) {
	var doors []*room.Door
	for i := 0; i < it.ShapeCount(); i++ {
		layer := it.ShapeLayer(i)
		if layer < 0 {
			continue
		}
		shape := it.ShapeTile(i)
		rid, err := g.ensureRoomContaining(shape, layer)
		if err != nil {
			return nil, err
		}
		d := room.NewTargetDoor(rid, shape, layer)
		g.freeRooms[rid].AddDoor(d)
		g.doors[rid] = append(g.doors[rid], d)
		doors = append(doors, d)
	}

	return doors, nil
}

// roomByID resolves id to its Room value, checking both free and
// obstacle rooms.
func (g *generator) roomByID(id room.RoomID) (room.Room, bool) {
	if r, ok := g.freeRooms[id]; ok {
		return r, true
	}
	if o, ok := g.obstacles[id]; ok {
		return o.room, true
	}

	return nil, false
}

// obstacleItem returns the board item an obstacle room wraps.
func (g *generator) obstacleItem(id room.RoomID) (*board.Item, int, bool) {
	o, ok := g.obstacles[id]
	if !ok {
		return nil, 0, false
	}

	return o.item, o.room.ItemShapeIndex, true
}

// doorsOf returns id's doors, generating that room's drill doors first if
// it is a free room that has not been visited yet. An obstacle room's
// doors are its parent free room's doors: once the obstacle is ripped,
// expansion continues into the space the parent already describes.
func (g *generator) doorsOf(id room.RoomID, blk control.Block) []*room.Door {
	if o, ok := g.obstacles[id]; ok {
		return g.doorsOf(o.parent, blk)
	}
	if r, ok := g.freeRooms[id]; ok {
		g.ensureDrillDoors(r, blk)
	}

	return g.doors[id]
}

// otherRoom returns the room on the far side of d from "from"; it returns
// 0 for target/drill doors, whose far side is resolved dynamically by the
// caller instead (absorption into the item, or resolveDrillTarget).
func otherRoom(d *room.Door, from room.RoomID) room.RoomID {
	switch {
	case d.Kind != room.DoorStandard:
		return 0
	case d.RoomA == from:
		return d.RoomB
	default:
		return d.RoomA
	}
}
