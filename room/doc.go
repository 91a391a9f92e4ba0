// Package room implements the expansion-room spatial decomposition the
// maze search expands over: free-space rooms (shrunk convex regions of
// routable area), obstacle rooms (wrapping a shovable/rippable item), the
// doors between them, and the board-bounding-box tiling of drill pages
// used to enumerate layer-change sites.
//
// Room generation follows the "restrain" algorithm (Restrain): starting
// from a coarse candidate shape, repeatedly cut it by the half-plane of
// whichever nearby obstacle edge removes the most obstacle while keeping a
// caller-supplied "contained" shape (e.g. a pin's own pad) inside, until no
// obstacle intersects the shape's interior.
//
// Free-space rooms move through an explicit, one-way state machine:
// Incomplete (shape still being set up, no id, no doors) -> Complete
// (restrained, frozen, indexed) or -> NetDependent (complete but
// overlapped a net-dependent obstacle at generation time, so it must be
// discarded when routing a different net). See RoomState.
package room
