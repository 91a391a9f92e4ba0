package maze

import "errors"

var (
	// ErrNoStartItems is returned when Search is called with an empty
	// start set.
	ErrNoStartItems = errors.New("maze: no start items")
	// ErrNoDestItems is returned when Search is called with an empty
	// destination set.
	ErrNoDestItems = errors.New("maze: no destination items")
	// ErrStartItemNotFound is returned when a start/destination item id
	// does not resolve to an on-board item.
	ErrStartItemNotFound = errors.New("maze: start or destination item not found")
)
