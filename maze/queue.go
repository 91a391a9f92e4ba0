package maze

import (
	"sync"

	"github.com/openpcb/autoroute/geom"
	"github.com/openpcb/autoroute/room"
)

// direction records the axis-aligned travel direction of the step that
// reached a queueEntry, for the bend-penalty check in §4.6.1 ("a bend at
// the start costs zero").
type direction struct {
	dx, dy int32
	valid  bool
}

// queueEntry is one pending expansion step: a candidate push into
// door/section from fromRoom, with its accumulated cost — a classic
// Dijkstra priority-queue node generalized from "a vertex id and a
// distance" to "a door section and a (g, h, f) triple."
type queueEntry struct {
	f, g, h float64
	seq     int

	door    *room.Door
	section int
	room    room.RoomID // room occupied once this entry is accepted, §4.6 step 3
	layer   int
	point   geom.Point

	backDoor    *room.Door // predecessor's door/section, for path reconstruction
	backSection int

	ripup      bool    // true if this step's door led into a rip-up-eligible obstacle
	ripupSpent float64 // cumulative tentative rip-up cost charged along this path

	dir direction
}

var entryPool = sync.Pool{New: func() interface{} { return new(queueEntry) }}

// acquireEntry returns a pooled, zeroed queueEntry, falling back to a
// fresh allocation when the pool is empty (the "overflow falls back to
// straight allocation" behavior §5 describes for the bounded element
// pool).
func acquireEntry() *queueEntry {
	e := entryPool.Get().(*queueEntry)
	*e = queueEntry{}

	return e
}

func releaseEntry(e *queueEntry) {
	entryPool.Put(e)
}

// elementQueue is a min-heap over queueEntry.f, ties broken by insertion
// order (seq), implementing container/heap.Interface the way a classic
// Dijkstra priority queue does.
type elementQueue []*queueEntry

func (q elementQueue) Len() int { return len(q) }

func (q elementQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}

	return q[i].seq < q[j].seq
}

func (q elementQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

// Push adds a new element x onto the heap. Called by heap.Push; x must be
// of type *queueEntry.
func (q *elementQueue) Push(x interface{}) { *q = append(*q, x.(*queueEntry)) }

// Pop removes and returns the smallest element from the heap. Called by
// heap.Pop; returns interface{} that must be cast to *queueEntry.
func (q *elementQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return e
}
