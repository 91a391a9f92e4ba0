package board

import (
	"errors"
	"sync"

	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/spatial"
)

// ConnectionTolerance is the nominal 0.01mm (100 units at 10,000
// units/mm) tolerance the physical-connectivity query uses to decide
// whether two item bounding-box centers are "the same point".
const ConnectionTolerance = 100

var (
	// ErrItemNotFound is returned when an operation references an unknown ItemID.
	ErrItemNotFound = errors.New("board: item not found")
	// ErrNetNotFound is returned when an operation references an unknown NetID.
	ErrNetNotFound = errors.New("board: net not found")
	// ErrFixedItem is returned when the router attempts to remove or move an
	// item whose fixed-state forbids it.
	ErrFixedItem = errors.New("board: item is fixed against this operation")
	// ErrInvalidClearanceMatrix rejects a board whose clearance matrix has
	// negative values or mismatched dimensions against the layer stack /
	// clearance-class count (an input defect, per the error taxonomy).
	ErrInvalidClearanceMatrix = errors.New("board: invalid clearance matrix")
	// ErrDegenerateOutline rejects a board whose outline covers no area.
	ErrDegenerateOutline = errors.New("board: outline is degenerate")
)

// Board owns every item, the spatial index kept in lockstep with them, the
// net table, and the design rules. It splits its locking by concern —
// muItems guards the item table and net table, muIndex guards the spatial
// index — so a read of one does not contend with a write to the other.
type Board struct {
	Layers   LayerStack
	Rules    *ClearanceMatrix
	NetClass map[string]*NetClass

	muItems    sync.RWMutex
	items      map[ItemID]*Item
	nets       map[NetID]*Net
	nextItemID ItemID

	muIndex sync.RWMutex
	index   *spatial.Index
}

// New constructs an empty Board over the given layer stack and clearance
// matrix. The caller installs items/nets afterward via AddItem/AddNet (the
// role of the external board reader, per §6).
func New(layers LayerStack, rules *ClearanceMatrix) *Board {
	return &Board{
		Layers:   layers,
		Rules:    rules,
		NetClass: make(map[string]*NetClass),
		items:    make(map[ItemID]*Item),
		nets:     make(map[NetID]*Net),
		index:    spatial.NewIndex(),
	}
}

// AddNet registers a net. Returns an error if a net with the same id
// already exists.
func (b *Board) AddNet(n Net) error {
	b.muItems.Lock()
	defer b.muItems.Unlock()
	if _, ok := b.nets[n.ID]; ok {
		return errors.New("board: duplicate net id")
	}
	cp := n
	b.nets[n.ID] = &cp

	return nil
}

// Net returns the net with the given id.
func (b *Board) Net(id NetID) (*Net, error) {
	b.muItems.RLock()
	defer b.muItems.RUnlock()
	n, ok := b.nets[id]
	if !ok {
		return nil, ErrNetNotFound
	}

	return n, nil
}

// AddItem assigns a fresh ItemID to it, places it on the board, and inserts
// it into the spatial index. Pins must already carry UserFixed or
// SystemFixed (invariant i); AddItem does not itself validate that so that
// it can also be used internally for router-synthesized items.
func (b *Board) AddItem(it Item) ItemID {
	b.muItems.Lock()
	b.nextItemID++
	id := b.nextItemID
	it.ID = id
	it.OnBoard = true
	stored := it
	b.items[id] = &stored
	b.muItems.Unlock()

	b.muIndex.Lock()
	_ = b.index.Insert(&stored)
	b.muIndex.Unlock()

	return id
}

// Item returns the item with the given id.
func (b *Board) Item(id ItemID) (*Item, error) {
	b.muItems.RLock()
	defer b.muItems.RUnlock()
	it, ok := b.items[id]
	if !ok || !it.OnBoard {
		return nil, ErrItemNotFound
	}

	return it, nil
}

// RemoveItem takes an item off the board and out of the spatial index.
// Returns ErrFixedItem if the item's fixed-state is SystemFixed (always
// forbidden) or UserFixed (forbidden to the router, which is the only
// caller of RemoveItem).
func (b *Board) RemoveItem(id ItemID) error {
	b.muItems.Lock()
	it, ok := b.items[id]
	if !ok || !it.OnBoard {
		b.muItems.Unlock()

		return ErrItemNotFound
	}
	if it.Fixed == UserFixed || it.Fixed == SystemFixed {
		b.muItems.Unlock()

		return ErrFixedItem
	}
	it.OnBoard = false
	b.muItems.Unlock()

	b.muIndex.Lock()
	_ = b.index.Remove(it)
	b.muIndex.Unlock()

	return nil
}

// Index returns the board's spatial index for read-only queries. Callers
// that mutate an item's shape must Remove it via RemoveItem/AddItem, never
// mutate a pointer returned by Item in place, per the index's
// remove-before-mutate contract.
func (b *Board) Index() *spatial.Index {
	return b.index
}

// ItemsOnNet returns every on-board item carrying net id.
func (b *Board) ItemsOnNet(id NetID) []*Item {
	b.muItems.RLock()
	defer b.muItems.RUnlock()
	var out []*Item
	for _, it := range b.items {
		if it.OnBoard && it.HasNet(id) {
			out = append(out, it)
		}
	}

	return out
}

// AllNets returns the ids of every registered net, in no particular order.
func (b *Board) AllNets() []NetID {
	b.muItems.RLock()
	defer b.muItems.RUnlock()
	out := make([]NetID, 0, len(b.nets))
	for id := range b.nets {
		out = append(out, id)
	}

	return out
}

// AllOnBoard returns every currently on-board item, used by property tests
// checking the index's leaf count matches the board's item count.
func (b *Board) AllOnBoard() []*Item {
	b.muItems.RLock()
	defer b.muItems.RUnlock()
	out := make([]*Item, 0, len(b.items))
	for _, it := range b.items {
		if it.OnBoard {
			out = append(out, it)
		}
	}

	return out
}

// LocationProhibited reports whether a point on layer is inside a rule
// area that prohibits the given kind of copper for net.
func (b *Board) LocationProhibited(p geom.Point, layer int, kind Kind, net NetID) bool {
	b.muIndex.RLock()
	hits := b.index.Query(geom.Box{Lo: p, Hi: p}, layer)
	b.muIndex.RUnlock()

	for _, h := range hits {
		it, ok := h.Object.(*Item)
		if !ok || it.Kind != KindRuleArea {
			continue
		}
		if it.HasNet(net) {
			continue // rule areas exempt their own net, same as any obstacle
		}
		if !it.ShapeTile(h.ShapeIndex).Contains(p) {
			continue
		}
		switch kind {
		case KindTrace:
			if it.ProhibitTraces {
				return true
			}
		case KindVia:
			if it.ProhibitVias {
				return true
			}
		default:
			if it.ProhibitCopper {
				return true
			}
		}
	}

	return false
}

// PhysicallyConnected implements the coarse physical-connectivity
// predicate of §4.3: two items are connected if their layer spans
// overlap, their net sets intersect, and their bounding-box centers lie
// within ConnectionTolerance of each other.
func (b *Board) PhysicallyConnected(a, c *Item) bool {
	if !a.SharesNetWith(c) {
		return false
	}
	if !layerSpansOverlap(a, c) {
		return false
	}
	ca, cc := a.BoundingBox().Center(), c.BoundingBox().Center()

	return ca.DistanceSquared(cc) <= ConnectionTolerance*ConnectionTolerance
}

func layerSpansOverlap(a, c *Item) bool {
	aFrom, aTo := layerSpan(a)
	cFrom, cTo := layerSpan(c)

	return aFrom <= cTo && cFrom <= aTo
}

func layerSpan(it *Item) (from, to int) {
	switch it.Kind {
	case KindTrace:
		return it.TraceLayer, it.TraceLayer
	case KindVia:
		return it.ViaPadstack.LayerSpan()
	case KindPin:
		return it.PinPadstack.LayerSpan()
	case KindConductionArea:
		return it.AreaLayer, it.AreaLayer
	case KindRuleArea:
		return it.RuleLayer, it.RuleLayer
	default: // KindOutline spans every layer
		return 0, 1 << 30
	}
}
