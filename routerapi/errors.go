package routerapi

import "errors"

// ErrNoCommonNet is returned when the start items do not agree on a
// single net to route.
var ErrNoCommonNet = errors.New("routerapi: start items share no net")
