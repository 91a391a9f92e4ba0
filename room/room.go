package room

import "github.com/openpcb/autoroute/geom"

// Room is the shared capability set of free-space and obstacle rooms: a
// convex shape on one layer, an id once complete, and a list of doors to
// neighboring rooms. Represented as two concrete types rather than a
// virtual hierarchy, per the polymorphic-items design note generalized to
// expansion rooms.
type Room interface {
	ID() RoomID
	Layer() int
	Shape() geom.Tile
	Doors() []*Door
	AddDoor(d *Door)
}

// FreeSpaceRoom represents routable area on one layer.
type FreeSpaceRoom struct {
	id        RoomID
	state     RoomState
	layer     int
	shape     geom.Tile
	contained geom.Tile
	doors     []*Door
}

// NewIncompleteRoom starts a free-space room generation: shape is the
// initial coarse candidate region, contained is the shape (e.g. a pin's
// pad) that must stay inside the final restrained room.
func NewIncompleteRoom(layer int, shape, contained geom.Tile) *FreeSpaceRoom {
	return &FreeSpaceRoom{state: StateIncomplete, layer: layer, shape: shape, contained: contained}
}

// SetShape replaces the candidate shape while the room is still Incomplete.
func (r *FreeSpaceRoom) SetShape(s geom.Tile) error {
	if r.state != StateIncomplete {
		return ErrRoomNotIncomplete
	}
	r.shape = s

	return nil
}

// SetContainedShape replaces the shape that must remain inside the
// candidate region while the room is still Incomplete.
func (r *FreeSpaceRoom) SetContainedShape(s geom.Tile) error {
	if r.state != StateIncomplete {
		return ErrRoomNotIncomplete
	}
	r.contained = s

	return nil
}

// ContainedShape returns the shape that must stay inside the room.
func (r *FreeSpaceRoom) ContainedShape() geom.Tile { return r.contained }

// Complete freezes the room's shape, assigns it id, and transitions it to
// Complete (or NetDependent if netDependent is set because a net-dependent
// obstacle overlapped it at generation time). Calling Complete twice is an
// error; the transition does not reverse.
func (r *FreeSpaceRoom) Complete(id RoomID, netDependent bool) error {
	if r.state != StateIncomplete {
		return ErrRoomAlreadyComplete
	}
	r.id = id
	if netDependent {
		r.state = StateNetDependent
	} else {
		r.state = StateComplete
	}

	return nil
}

// State returns the room's lifecycle state.
func (r *FreeSpaceRoom) State() RoomState { return r.state }

// ID implements Room.
func (r *FreeSpaceRoom) ID() RoomID { return r.id }

// Layer implements Room.
func (r *FreeSpaceRoom) Layer() int { return r.layer }

// Shape implements Room.
func (r *FreeSpaceRoom) Shape() geom.Tile { return r.shape }

// Doors implements Room.
func (r *FreeSpaceRoom) Doors() []*Door { return r.doors }

// AddDoor implements Room.
func (r *FreeSpaceRoom) AddDoor(d *Door) { r.doors = append(r.doors, d) }

// ObstacleRoom wraps an item that may be shoved or ripped up during
// search. Its shape is the item's shape inflated by the clearance
// compensation appropriate to the searching net, computed once at
// creation (see NewObstacleRoom).
type ObstacleRoom struct {
	id         RoomID
	layer      int
	shape      geom.Tile
	ItemShapeIndex int
	doors      []*Door
}

// NewObstacleRoom wraps rawShape (the item's own shape, piece
// shapeIndex), inflated by inflateBy (the clearance compensation offset
// for the pair of clearance classes involved).
func NewObstacleRoom(id RoomID, layer int, rawShape geom.Tile, shapeIndex int, inflateBy int32) *ObstacleRoom {
	return &ObstacleRoom{id: id, layer: layer, shape: rawShape.Inflate(inflateBy), ItemShapeIndex: shapeIndex}
}

// ID implements Room.
func (r *ObstacleRoom) ID() RoomID { return r.id }

// Layer implements Room.
func (r *ObstacleRoom) Layer() int { return r.layer }

// Shape implements Room.
func (r *ObstacleRoom) Shape() geom.Tile { return r.shape }

// Doors implements Room.
func (r *ObstacleRoom) Doors() []*Door { return r.doors }

// AddDoor implements Room.
func (r *ObstacleRoom) AddDoor(d *Door) { r.doors = append(r.doors, d) }
