package batch

import "errors"

// ErrInsertConflict is returned by ApplyPath when a synthesized trace or
// via would land inside a rule area that prohibits it, or when a rip-up
// removal fails because the item turned fixed after the path was found.
// Already-applied mutations from this call are rolled back before it is
// returned.
var ErrInsertConflict = errors.New("batch: synthesized item conflicts with board rules")
