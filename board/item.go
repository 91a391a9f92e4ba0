package board

import "github.com/openpcb/autoroute/geom"

// Padstack describes a via or pin's copper footprint across a span of
// layers. Radius is the same on every layer in [FromLayer, ToLayer];
// per-layer radius variation is a net-class via-rule concern, not a
// padstack concern, in this implementation.
type Padstack struct {
	FromLayer, ToLayer int
	Radius             int32
}

// LayerSpan returns the inclusive [from, to] layer range the padstack
// occupies, normalized so From <= To.
func (p Padstack) LayerSpan() (from, to int) {
	if p.FromLayer <= p.ToLayer {
		return p.FromLayer, p.ToLayer
	}

	return p.ToLayer, p.FromLayer
}

// Item is the router's tagged-variant board element: exactly one of
// Trace*/Via*/Pin*/Area*/Outline*/Rule* field groups is meaningful,
// selected by Kind. See the package doc comment for the rationale.
type Item struct {
	ID             ItemID
	Nets           []NetID
	ClearanceClass int
	Fixed          FixedState
	OnBoard        bool
	Kind           Kind

	// ConnectionOf names the conn.Connection this item belongs to, if any
	// (0 when not part of a precomputed connection). Kept as a plain int
	// rather than a pointer into package conn to avoid a board->conn
	// import cycle; conn looks items up by this id.
	ConnectionID int

	// Trace fields (Kind == KindTrace).
	TraceFrom, TraceTo geom.Point
	TraceLayer         int
	TraceHalfWidth     int32

	// Via fields (Kind == KindVia).
	ViaCenter   geom.Point
	ViaPadstack Padstack

	// Pin fields (Kind == KindPin).
	PinCenter    geom.Point
	PinPadstack  Padstack
	PinComponent string

	// ConductionArea fields (Kind == KindConductionArea).
	AreaLayer int
	AreaShape geom.Tile

	// Outline fields (Kind == KindOutline); spans every layer.
	OutlineShapes []geom.Tile

	// RuleArea fields (Kind == KindRuleArea).
	RuleLayer          int
	RuleShape          geom.Tile
	ProhibitTraces     bool
	ProhibitVias       bool
	ProhibitCopper     bool

	shapesCache []itemShape // memoized by Shapes(); invalidated only by mutation helpers below
}

// itemShape is one (box, layer, tile) contribution of an Item to the
// spatial index; an item with several disjoint pieces (an outline with
// several polygons) contributes one itemShape per piece.
type itemShape struct {
	box   geom.Box
	layer int // spatial.AnyLayer (-1) if the shape spans/ignores layers
	tile  geom.Tile
}

// HasNet reports whether id is one of the item's net memberships.
func (it *Item) HasNet(id NetID) bool {
	for _, n := range it.Nets {
		if n == id {
			return true
		}
	}

	return false
}

// SharesNetWith reports whether it and other have any net in common;
// sharing a net exempts two items from being obstacles to each other
// (invariant iii).
func (it *Item) SharesNetWith(other *Item) bool {
	for _, n := range it.Nets {
		if other.HasNet(n) {
			return true
		}
	}

	return false
}

// Shapes returns the item's shape pieces, computing and memoizing them on
// first call. The cache is invalidated only by the mutation helpers on this
// type (SetTraceEndpoints, etc.) since, per the design note, a UserFixed
// item's shape never changes and a router-created item's shape only
// changes via deletion (never in-place).
func (it *Item) Shapes() []itemShape {
	if it.shapesCache != nil {
		return it.shapesCache
	}
	switch it.Kind {
	case KindTrace:
		halfBox := geom.BoxFromPoints(it.TraceFrom, it.TraceTo).Expand(it.TraceHalfWidth)
		it.shapesCache = []itemShape{{box: halfBox, layer: it.TraceLayer, tile: geom.NewSegment(it.TraceFrom, it.TraceTo)}}
	case KindVia:
		from, to := it.ViaPadstack.LayerSpan()
		box := geom.BoxFromPoints(it.ViaCenter, it.ViaCenter).Expand(it.ViaPadstack.Radius)
		shapes := make([]itemShape, 0, to-from+1)
		for l := from; l <= to; l++ {
			shapes = append(shapes, itemShape{box: box, layer: l, tile: geom.NewBoxTile(box)})
		}
		it.shapesCache = shapes
	case KindPin:
		from, to := it.PinPadstack.LayerSpan()
		box := geom.BoxFromPoints(it.PinCenter, it.PinCenter).Expand(it.PinPadstack.Radius)
		shapes := make([]itemShape, 0, to-from+1)
		for l := from; l <= to; l++ {
			shapes = append(shapes, itemShape{box: box, layer: l, tile: geom.NewBoxTile(box)})
		}
		it.shapesCache = shapes
	case KindConductionArea:
		it.shapesCache = []itemShape{{box: it.AreaShape.BoundingBox(), layer: it.AreaLayer, tile: it.AreaShape}}
	case KindOutline:
		shapes := make([]itemShape, 0, len(it.OutlineShapes))
		for _, s := range it.OutlineShapes {
			shapes = append(shapes, itemShape{box: s.BoundingBox(), layer: -1, tile: s})
		}
		it.shapesCache = shapes
	case KindRuleArea:
		it.shapesCache = []itemShape{{box: it.RuleShape.BoundingBox(), layer: it.RuleLayer, tile: it.RuleShape}}
	}

	return it.shapesCache
}

// invalidateShapes drops the memoized shape cache; called by the few
// mutation helpers that change a router-created item's geometry in place.
func (it *Item) invalidateShapes() { it.shapesCache = nil }

// BoundingBox returns the union of every shape piece's box.
func (it *Item) BoundingBox() geom.Box {
	shapes := it.Shapes()
	if len(shapes) == 0 {
		return geom.Box{Lo: geom.Point{X: 1, Y: 1}, Hi: geom.Point{X: 0, Y: 0}}
	}
	b := shapes[0].box
	for _, s := range shapes[1:] {
		b = b.UnionWith(s.box)
	}

	return b
}

// spatial.Object implementation -------------------------------------------------

// ShapeCount implements spatial.Object.
func (it *Item) ShapeCount() int { return len(it.Shapes()) }

// ShapeBox implements spatial.Object.
func (it *Item) ShapeBox(i int) geom.Box { return it.Shapes()[i].box }

// ShapeLayer implements spatial.Object.
func (it *Item) ShapeLayer(i int) int { return it.Shapes()[i].layer }

// ShapeTile returns the convex shape (not just the bounding box) of piece i,
// used by room restraining which needs true geometry, not boxes.
func (it *Item) ShapeTile(i int) geom.Tile { return it.Shapes()[i].tile }

// NewTrace constructs a Trace item. The caller assigns ID/Nets/Fixed/etc.
func NewTrace(from, to geom.Point, layer int, halfWidth int32) Item {
	return Item{Kind: KindTrace, TraceFrom: from, TraceTo: to, TraceLayer: layer, TraceHalfWidth: halfWidth}
}

// NewVia constructs a Via item.
func NewVia(center geom.Point, ps Padstack) Item {
	return Item{Kind: KindVia, ViaCenter: center, ViaPadstack: ps}
}

// NewPin constructs a Pin item. Per invariant (i), the caller must set
// Fixed to UserFixed or SystemFixed; NewPin itself does not enforce it so
// that board readers can assign the caller-specified fixed state.
func NewPin(center geom.Point, ps Padstack, component string) Item {
	return Item{Kind: KindPin, PinCenter: center, PinPadstack: ps, PinComponent: component}
}

// NewConductionArea constructs a ConductionArea item.
func NewConductionArea(layer int, shape geom.Tile) Item {
	return Item{Kind: KindConductionArea, AreaLayer: layer, AreaShape: shape}
}

// NewOutline constructs a BoardOutline item spanning every layer.
func NewOutline(shapes []geom.Tile) Item {
	return Item{Kind: KindOutline, OutlineShapes: shapes}
}

// NewRuleArea constructs a RuleArea item.
func NewRuleArea(layer int, shape geom.Tile, prohibitTraces, prohibitVias, prohibitCopper bool) Item {
	return Item{
		Kind: KindRuleArea, RuleLayer: layer, RuleShape: shape,
		ProhibitTraces: prohibitTraces, ProhibitVias: prohibitVias, ProhibitCopper: prohibitCopper,
	}
}
