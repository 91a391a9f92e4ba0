package room

import "errors"

// RoomID is a stable identifier assigned to a free-space room when it
// transitions from Incomplete to Complete, and to obstacle rooms at
// creation. Doors reference rooms by id, not by pointer, to keep
// door<->room cross-references index-based rather than owning (see the
// cyclic-reference design note).
type RoomID int

// ErrRoomNotIncomplete is returned by SetShape/SetContainedShape once a
// room has already completed.
var ErrRoomNotIncomplete = errors.New("room: shape can only be set on an incomplete room")

// ErrRoomAlreadyComplete is returned by Complete when called twice; the
// Incomplete->Complete transition does not reverse.
var ErrRoomAlreadyComplete = errors.New("room: already complete")

// RoomState is the free-space room lifecycle state.
type RoomState int

const (
	// StateIncomplete rooms have a shape/contained-shape but no id, are not
	// in the spatial index, and have no doors yet.
	StateIncomplete RoomState = iota
	// StateComplete rooms are frozen, indexed, and have calculable doors.
	StateComplete
	// StateNetDependent rooms are complete but were generated while a
	// net-dependent obstacle overlapped them; they must be discarded when
	// routing any net other than the one that generated them.
	StateNetDependent
)

// AdjustmentTag records why a maze-search element's entry point was nudged
// off the geometric closest point (e.g. to route around a compensation
// offset), per the data model's door section fields.
type AdjustmentTag int

const (
	AdjustNone AdjustmentTag = iota
	AdjustLeft
	AdjustRight
)
