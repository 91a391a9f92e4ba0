package room

import "github.com/openpcb/autoroute/geom"

// DoorKind discriminates the three expandable-object flavors the maze
// search treats uniformly (shape, dimension, section count, search
// element, reset), per the expandable-object-polymorphism design note.
type DoorKind int

const (
	// DoorStandard connects two rooms via their shape intersection; it may
	// be 1-D (a shared edge, possibly split into several sections) or 2-D
	// (an overlap area).
	DoorStandard DoorKind = iota
	// DoorTarget absorbs expansion into a start/destination item; always
	// 2-D, always exactly one section.
	DoorTarget
	// DoorDrill is a layer-change expansion point at a specific (point,
	// layer-range); it has one section per candidate destination layer.
	DoorDrill
)

// SearchElement is the mutable per-section maze-search state: whether the
// section has been occupied by the current search, the backpointer that
// reached it, and whether that backpointer traversed a rip-up branch.
type SearchElement struct {
	Occupied       bool
	GCost          float64
	BackDoor       *Door
	BackSection    int
	ReachedByRipup bool
	Adjustment     AdjustmentTag
}

// Section is one expandable slice of a Door: for a 1-D door, one piece of
// the shared edge (subdividing the edge allows finer-grained expansion);
// for a 2-D or target door, normally the door's one and only section; for
// a drill door, one candidate destination layer.
type Section struct {
	Shape  geom.Tile
	Layer  int // destination layer for a drill section; door.RoomB's layer otherwise
	Search SearchElement
}

// Door is the shared portion of two rooms' shapes, and the unit of
// expansion in the maze search. RoomA/RoomB are room ids, not pointers —
// doors and rooms are arena-owned by the same net's search state and
// cross-referenced by index, per the cyclic-reference design note.
type Door struct {
	Kind    DoorKind
	RoomA   RoomID
	RoomB   RoomID
	Payload geom.Tile // the shape intersection (or drill point, as a point Tile)
	Sections []Section

	// TargetItemShape and TargetLayer are set for DoorTarget doors: they
	// identify which start/destination item piece this door absorbs into.
	TargetLayer int
}

// Dimension reports the door's geometric dimension (1 or 2), derived from
// Payload, except for drill doors which report 0 (a point).
func (d *Door) Dimension() int {
	if d.Kind == DoorDrill {
		return 0
	}

	return d.Payload.Dimension()
}

// NewStandardDoor builds a door between two rooms from their shape
// intersection, splitting a 1-D intersection into sectionCount equal
// sections (sectionCount must be >= 1; 2-D doors always get one section).
func NewStandardDoor(a, b RoomID, intersection geom.Tile, bLayer int, sectionCount int) *Door {
	d := &Door{Kind: DoorStandard, RoomA: a, RoomB: b, Payload: intersection, TargetLayer: bLayer}
	if intersection.Dimension() != 1 || sectionCount <= 1 {
		d.Sections = []Section{{Shape: intersection, Layer: bLayer}}

		return d
	}
	verts := intersection.Vertices()
	p0, p1 := verts[0], verts[1]
	d.Sections = make([]Section, sectionCount)
	for i := 0; i < sectionCount; i++ {
		t0, t1 := float64(i)/float64(sectionCount), float64(i+1)/float64(sectionCount)
		start := lerp(p0, p1, t0)
		end := lerp(p0, p1, t1)
		d.Sections[i] = Section{Shape: geom.NewSegment(start, end), Layer: bLayer}
	}

	return d
}

func lerp(a, b geom.Point, t float64) geom.Point {
	return geom.Point{
		X: a.X + int32(float64(b.X-a.X)*t),
		Y: a.Y + int32(float64(b.Y-a.Y)*t),
	}
}

// NewTargetDoor builds the 2-D door absorbing expansion into a
// start/destination item's shape on the given layer.
func NewTargetDoor(room RoomID, itemShape geom.Tile, layer int) *Door {
	return &Door{
		Kind:     DoorTarget,
		RoomA:    room,
		Payload:  itemShape,
		TargetLayer: layer,
		Sections: []Section{{Shape: itemShape, Layer: layer}},
	}
}

// NewDrillDoor builds a drill expansion point at point, offering one
// section per candidate layer in candidateLayers.
func NewDrillDoor(room RoomID, point geom.Point, candidateLayers []int) *Door {
	d := &Door{Kind: DoorDrill, RoomA: room, Payload: geom.NewPoint(point)}
	d.Sections = make([]Section, len(candidateLayers))
	for i, l := range candidateLayers {
		d.Sections[i] = Section{Shape: geom.NewPoint(point), Layer: l}
	}

	return d
}

// Reset clears every section's search element, used at the start of each
// maze search (doors are created lazily per net and reset, not recreated,
// across passes over the same net when reused).
func (d *Door) Reset() {
	for i := range d.Sections {
		d.Sections[i].Search = SearchElement{}
	}
}
