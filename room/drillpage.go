package room

import "github.com/openpcb/autoroute/geom"

// DrillPage lazily enumerates candidate drill sites inside one tile of the
// board's drill-page grid for the net currently being routed.
type DrillPage struct {
	box   geom.Box
	sites []geom.Point
	valid bool
}

// CandidateSites returns the page's candidate drill sites on a step x step
// grid, computing and memoizing them on first call (or after Invalidate).
func (p *DrillPage) CandidateSites(step int32) []geom.Point {
	if p.valid {
		return p.sites
	}
	if step <= 0 {
		step = 1
	}
	var sites []geom.Point
	for y := p.box.Lo.Y; y <= p.box.Hi.Y; y += step {
		for x := p.box.Lo.X; x <= p.box.Hi.X; x += step {
			sites = append(sites, geom.Point{X: x, Y: y})
		}
	}
	p.sites = sites
	p.valid = true

	return sites
}

// Invalidate drops the page's memoized sites, as if it had never been
// enumerated. Called by the board model whenever a mutation's bounding
// box overlaps the page (the per-board-mutation granularity the open
// question about the invalidation lifecycle resolves to).
func (p *DrillPage) Invalidate() {
	p.valid = false
	p.sites = nil
}

// DrillPageGrid tiles a board's bounding box into rows x cols pages of
// pageSize units each.
type DrillPageGrid struct {
	origin   geom.Point
	pageSize int32
	cols     int
	rows     int
	pages    [][]*DrillPage // [row][col]
}

// NewDrillPageGrid builds a grid of pages covering boardBox, each
// pageSize units square (the last row/column may be partial).
func NewDrillPageGrid(boardBox geom.Box, pageSize int32) *DrillPageGrid {
	if pageSize <= 0 {
		pageSize = 1
	}
	width := int64(boardBox.Hi.X-boardBox.Lo.X) + 1
	height := int64(boardBox.Hi.Y-boardBox.Lo.Y) + 1
	cols := int((width + int64(pageSize) - 1) / int64(pageSize))
	rows := int((height + int64(pageSize) - 1) / int64(pageSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &DrillPageGrid{origin: boardBox.Lo, pageSize: pageSize, cols: cols, rows: rows}
	g.pages = make([][]*DrillPage, rows)
	for r := 0; r < rows; r++ {
		g.pages[r] = make([]*DrillPage, cols)
		for c := 0; c < cols; c++ {
			lo := geom.Point{X: g.origin.X + int32(c)*pageSize, Y: g.origin.Y + int32(r)*pageSize}
			hi := geom.Point{X: lo.X + pageSize - 1, Y: lo.Y + pageSize - 1}
			g.pages[r][c] = &DrillPage{box: geom.Box{Lo: lo, Hi: hi}}
		}
	}

	return g
}

// PageAt returns the page containing p, or nil if p falls outside the grid.
func (g *DrillPageGrid) PageAt(p geom.Point) *DrillPage {
	c := int(int64(p.X-g.origin.X) / int64(g.pageSize))
	r := int(int64(p.Y-g.origin.Y) / int64(g.pageSize))
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return nil
	}

	return g.pages[r][c]
}

// PagesOverlapping returns every page whose box intersects box, used by
// Invalidate.
func (g *DrillPageGrid) PagesOverlapping(box geom.Box) []*DrillPage {
	var out []*DrillPage
	for _, row := range g.pages {
		for _, p := range row {
			if p.box.Intersects(box) {
				out = append(out, p)
			}
		}
	}

	return out
}

// Invalidate marks every page overlapping box as needing re-enumeration;
// called by the board model on any mutation whose bounding box overlaps
// the page.
func (g *DrillPageGrid) Invalidate(box geom.Box) {
	for _, p := range g.PagesOverlapping(box) {
		p.Invalidate()
	}
}

// Reset invalidates every page; called once per connection at the start of
// a maze search (the per-connection granularity the open question about
// the invalidation lifecycle resolves to), since drill eligibility depends
// on the net-specific rooms generated for that search.
func (g *DrillPageGrid) Reset() {
	for _, row := range g.pages {
		for _, p := range row {
			p.Invalidate()
		}
	}
}
