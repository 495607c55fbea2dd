// Package render defines the capability interfaces posterkit requires from a
// rendering backend: surface allocation, PNG encoding, path filling, clipped
// image composition, text measurement, and text drawing.
//
// The composition engine in pkg/poster consumes these interfaces and never
// touches pixels itself. The production implementation lives in
// [github.com/posterkit/posterkit/pkg/render/raster]; tests may substitute
// lightweight fakes.
//
// Coordinates everywhere are canvas pixels with the origin at the top-left
// corner and y growing downward. Text positions refer to the baseline.
package render

import (
	"image/color"

	"github.com/posterkit/posterkit/pkg/geometry"
)

// Backend creates surfaces and decodes the resources drawn onto them.
type Backend interface {
	// NewSurface allocates a pixel surface of the given dimensions. Callers
	// must Close the surface when the render call that created it returns.
	NewSurface(width, height int) (Surface, error)

	// DecodeImage decodes an encoded raster image (PNG, JPEG, GIF) from raw
	// bytes.
	DecodeImage(data []byte) (Image, error)

	// LoadFont constructs a font handle from raw font-file bytes at the
	// given point size. The bold flag selects the face style used when the
	// file carries multiple weights.
	LoadFont(data []byte, size float64, bold bool) (Font, error)
}

// Surface is an allocated pixel surface with a drawable canvas.
type Surface interface {
	Canvas() Canvas

	// EncodePNG rasterizes the surface and returns PNG bytes.
	EncodePNG() ([]byte, error)

	// Close releases the surface's resources. Safe to call after a failed
	// render; drawing after Close is undefined.
	Close() error
}

// Canvas receives drawing operations in depth order.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h float64)

	// Clear fills the whole canvas with a solid color.
	Clear(c color.Color)

	// FillPath fills the closed outline p with a solid color.
	FillPath(p *geometry.Path, c color.Color)

	// FillRect fills an axis-aligned rectangle with a solid color.
	FillRect(r geometry.Rect, c color.Color)

	// DrawImage scales img into dst, clipping the result to the clip
	// outline when non-nil. dst may extend past the clip region (cover
	// placement); everything outside clip is discarded.
	DrawImage(img Image, dst geometry.Rect, clip *geometry.Path) error

	// DrawText draws a single left-to-right text run with its baseline
	// origin at (x, y).
	DrawText(text string, x, y float64, f Font, c color.Color)

	// DrawShapedText draws a direction-aware run at baseline (x, y),
	// routing through the backend's shaping support so ligatures and
	// character reordering are correct for right-to-left scripts. The text
	// is passed in logical order and must not be pre-reversed.
	DrawShapedText(text string, x, y float64, f Font, c color.Color, rightToLeft bool)
}

// Font is a resolved, sized font handle. It satisfies the text layout
// engine's Measurer capability.
type Font interface {
	// Measure returns the pixel width and height of a text run. The empty
	// string measures as a single space.
	Measure(text string) (width, height float64)

	// Size returns the point size the handle was created with.
	Size() float64
}

// Image is a decoded raster image. Handles are opaque outside the backend
// that decoded them; a Canvas only accepts images from its own backend.
type Image interface {
	Width() int
	Height() int
}
