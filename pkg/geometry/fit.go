package geometry

// FitPolicy controls how a source image is scaled into a target box.
type FitPolicy int

const (
	// FitCover scales uniformly so the image fills the box completely; the
	// overflow on the longer axis must be clipped by the caller.
	FitCover FitPolicy = iota
	// FitContain scales uniformly so the image fits entirely inside the box.
	FitContain
	// FitStretch scales each axis independently so the image exactly fills
	// the box, possibly distorting its aspect ratio.
	FitStretch
)

// FitRect computes the destination rectangle for drawing a srcW×srcH image
// into box under the given policy. Cover and contain center the scaled image
// over the box; cover may return a rectangle larger than the box. The result
// is pure placement math; no pixels are involved.
func FitRect(srcW, srcH float64, box Rect, policy FitPolicy) Rect {
	if srcW <= 0 || srcH <= 0 {
		return box
	}
	switch policy {
	case FitContain:
		scale := min(box.W/srcW, box.H/srcH)
		return centered(srcW*scale, srcH*scale, box)
	case FitStretch:
		return box
	default: // FitCover
		scale := max(box.W/srcW, box.H/srcH)
		return centered(srcW*scale, srcH*scale, box)
	}
}

func centered(w, h float64, box Rect) Rect {
	return Rect{
		X: box.X + (box.W-w)/2,
		Y: box.Y + (box.H-h)/2,
		W: w,
		H: h,
	}
}
