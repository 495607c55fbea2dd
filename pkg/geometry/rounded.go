package geometry

// Corners holds per-corner radii in top-left, top-right, bottom-right,
// bottom-left order.
type Corners [4]float64

// Uniform returns Corners with the same radius on all four corners.
func Uniform(r float64) Corners {
	return Corners{r, r, r, r}
}

// RoundedRect builds the outline of r with the given corner radii. Each
// radius is clamped to half the shorter side so the outline can never
// self-intersect; a uniform radius at or above that limit therefore yields a
// stadium shape. Corners with radius zero stay sharp: their curve segment is
// simply omitted and the adjacent straight edges meet at the corner point.
func RoundedRect(r Rect, c Corners) *Path {
	limit := min(r.W, r.H) / 2
	tl := min(c[0], limit)
	tr := min(c[1], limit)
	br := min(c[2], limit)
	bl := min(c[3], limit)

	x, y, w, h := r.X, r.Y, r.W, r.H
	p := &Path{}
	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	if tr > 0 {
		p.QuadTo(x+w, y, x+w, y+tr)
	}
	p.LineTo(x+w, y+h-br)
	if br > 0 {
		p.QuadTo(x+w, y+h, x+w-br, y+h)
	}
	p.LineTo(x+bl, y+h)
	if bl > 0 {
		p.QuadTo(x, y+h, x, y+h-bl)
	}
	p.LineTo(x, y+tl)
	if tl > 0 {
		p.QuadTo(x, y, x+tl, y)
	}
	p.Close()
	return p
}
