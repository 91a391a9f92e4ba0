package maze

import (
	"github.com/openpcb/autoroute/board"
	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/room"
)

// hop is one door/section step along a winning path, recovered by walking
// the SearchElement backpointer chain from the winning entry back to the
// start. It carries no point: points are re-derived on the forward walk
// in reconstruct, so the recovered geometry always matches the cost that
// was computed against it.
type hop struct {
	door    *room.Door
	section int
	ripup   bool
}

// reconstruct walks best's SearchElement chain back to the start, then
// forward again to turn it into a point/layer path and a deduplicated
// list of items ripped up along the way.
func reconstruct(gen *generator, best *queueEntry) ([]Vertex, []board.ItemID) {
	var hops []hop
	door, section := best.door, best.section
	for door != nil {
		sec := &door.Sections[section]
		hops = append(hops, hop{door: door, section: section, ripup: sec.Search.ReachedByRipup})
		door, section = sec.Search.BackDoor, sec.Search.BackSection
	}
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}

	var path []Vertex
	var ripped []board.ItemID
	rippedSeen := make(map[board.ItemID]bool)

	var currentRoom room.RoomID
	var currentPoint geom.Point
	started := false

	for _, hp := range hops {
		sec := &hp.door.Sections[hp.section]

		var point geom.Point
		if !started {
			point = nearestPoint(sec.Shape, sec.Shape.BoundingBox().Center())
			started = true
		} else {
			point = nearestPoint(sec.Shape, currentPoint)
		}
		currentPoint = point
		path = append(path, Vertex{Point: point, Layer: sec.Layer})

		switch hp.door.Kind {
		case room.DoorStandard:
			next := otherRoom(hp.door, currentRoom)
			if it, _, ok := gen.obstacleItem(next); ok {
				if !rippedSeen[it.ID] {
					rippedSeen[it.ID] = true
					ripped = append(ripped, it.ID)
				}
				if entry, ok := gen.obstacles[next]; ok {
					next = entry.parent
				}
			}
			currentRoom = next
		case room.DoorDrill:
			if target, err := gen.resolveDrillTarget(point, sec.Layer); err == nil {
				currentRoom = target
			}
		default: // DoorTarget: RoomA is the free room absorbing into the item
			currentRoom = hp.door.RoomA
		}
	}

	return path, ripped
}
