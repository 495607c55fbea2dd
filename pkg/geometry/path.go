// Package geometry provides the pure geometric computations behind poster
// composition: rounded-rectangle outlines and object-fit placement math.
//
// Nothing in this package touches pixels. Outlines are plain segment data and
// placements are rectangles; both are handed to a rendering backend which
// performs the actual filling, clipping, and resampling.
package geometry

// SegmentOp identifies the drawing operation of a path segment.
type SegmentOp int

const (
	// MoveTo starts a new subpath at (X, Y).
	MoveTo SegmentOp = iota
	// LineTo draws a straight edge to (X, Y).
	LineTo
	// QuadTo draws a quadratic curve to (X, Y) with control point (CX, CY).
	QuadTo
	// Close closes the current subpath.
	Close
)

// Segment is a single operation of a Path.
type Segment struct {
	Op     SegmentOp
	CX, CY float64 // control point, QuadTo only
	X, Y   float64 // end point
}

// Path is a closed outline described as an ordered list of segments in
// absolute canvas coordinates (origin top-left, y growing downward).
type Path struct {
	Segments []Segment
}

// MoveTo appends a MoveTo segment.
func (p *Path) MoveTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: MoveTo, X: x, Y: y})
}

// LineTo appends a LineTo segment.
func (p *Path) LineTo(x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: LineTo, X: x, Y: y})
}

// QuadTo appends a quadratic curve segment with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Segments = append(p.Segments, Segment{Op: QuadTo, CX: cx, CY: cy, X: x, Y: y})
}

// Close appends a Close segment.
func (p *Path) Close() {
	p.Segments = append(p.Segments, Segment{Op: Close})
}

// Bounds returns the axis-aligned bounding box of all segment end and
// control points.
func (p *Path) Bounds() Rect {
	first := true
	var minX, minY, maxX, maxY float64
	extend := func(x, y float64) {
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	for _, s := range p.Segments {
		switch s.Op {
		case MoveTo, LineTo:
			extend(s.X, s.Y)
		case QuadTo:
			extend(s.CX, s.CY)
			extend(s.X, s.Y)
		}
	}
	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Outline returns the rectangle as a sharp-cornered Path.
func (r Rect) Outline() *Path {
	p := &Path{}
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.W, r.Y)
	p.LineTo(r.X+r.W, r.Y+r.H)
	p.LineTo(r.X, r.Y+r.H)
	p.Close()
	return p
}
