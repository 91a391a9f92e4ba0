package board

// Net groups the pins that must be electrically joined.
type Net struct {
	ID                     NetID
	Name                   string
	Class                  *NetClass // nil if the net uses no net-class
	ContainsConductivePlane bool
}

// NetClass bundles the trace/via/clearance rules shared by a set of nets.
type NetClass struct {
	Name string

	// TraceHalfWidth[L] is the per-layer half-width new traces on this
	// net-class are synthesized with.
	TraceHalfWidth map[int]int32

	// TraceClearanceClass indexes the clearance matrix for traces of this
	// net-class.
	TraceClearanceClass int

	// ViaRule is an ordered list of via definitions; earlier entries are
	// preferred when several fit.
	ViaRule []Padstack

	// ActiveLayers restricts routing to a subset of layers; nil means every
	// signal layer is active.
	ActiveLayers map[int]bool

	ShoveFix    bool
	PullTight   bool
	LengthMin   int64
	LengthMax   int64 // 0 means unbounded
}

// LayerActive reports whether layer l is routable for this net-class.
func (nc *NetClass) LayerActive(l int) bool {
	if nc == nil || nc.ActiveLayers == nil {
		return true
	}

	return nc.ActiveLayers[l]
}

// HalfWidth returns the net-class's trace half-width on layer l, or 0 if
// unset (callers should treat 0 as "not routable on this layer").
func (nc *NetClass) HalfWidth(l int) int32 {
	if nc == nil || nc.TraceHalfWidth == nil {
		return 0
	}

	return nc.TraceHalfWidth[l]
}

// PreferredVia returns the first via in ViaRule whose padstack spans
// [from, to], or false if none fits.
func (nc *NetClass) PreferredVia(from, to int) (Padstack, bool) {
	if nc == nil {
		return Padstack{}, false
	}
	lo, hi := minInt(from, to), maxInt(from, to)
	for _, v := range nc.ViaRule {
		vlo, vhi := v.LayerSpan()
		if vlo <= lo && vhi >= hi {
			return v, true
		}
	}

	return Padstack{}, false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
