// Package raster implements the render capability interfaces on top of
// github.com/tdewolff/canvas, which supplies path filling, font handling,
// shaping-aware text layout, and rasterization. Image scaling and outline
// clipping are done in pixel space with golang.org/x/image before the result
// is composited onto the canvas.
//
// Canvas units map 1:1 to output pixels: surfaces are created in canvas
// units and rasterized at one dot per unit. The coordinate system is
// CartesianIV so the origin sits at the top-left with y growing downward,
// matching the poster model.
package raster

import (
	"bytes"
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/posterkit/posterkit/pkg/geometry"
	"github.com/posterkit/posterkit/pkg/render"
)

// mmToPt converts canvas units (treated as mm by the canvas library) into
// the point sizes its font faces expect, so a font of size N spans N pixels
// per em in the rasterized output.
const mmToPt = 72.0 / 25.4

// Backend implements render.Backend.
type Backend struct{}

// New returns the canvas-based backend.
func New() *Backend { return &Backend{} }

// NewSurface allocates a drawing surface of width×height pixels.
func (b *Backend) NewSurface(width, height int) (render.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface dimensions must be positive, got %dx%d", width, height)
	}
	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	return &surface{
		c:  c,
		cv: &rasterCanvas{ctx: ctx, w: float64(width), h: float64(height)},
	}, nil
}

// DecodeImage decodes PNG, JPEG, or GIF bytes.
func (b *Backend) DecodeImage(data []byte) (render.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &imageHandle{img: img}, nil
}

// LoadFont parses raw font-file bytes into a sized font handle.
func (b *Backend) LoadFont(data []byte, size float64, bold bool) (render.Font, error) {
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	family := canvas.NewFontFamily("posterkit")
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	f := &font{family: family, style: style, size: size}
	f.measureFace = f.face(canvas.Black)
	return f, nil
}

type surface struct {
	c      *canvas.Canvas
	cv     *rasterCanvas
	closed bool
}

func (s *surface) Canvas() render.Canvas { return s.cv }

func (s *surface) EncodePNG() ([]byte, error) {
	if s.closed {
		return nil, fmt.Errorf("surface already closed")
	}
	img := rasterizer.Draw(s.c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *surface) Close() error {
	s.closed = true
	s.cv.ctx = nil
	s.c = nil
	return nil
}

type rasterCanvas struct {
	ctx  *canvas.Context
	w, h float64
}

func (rc *rasterCanvas) Size() (float64, float64) { return rc.w, rc.h }

func (rc *rasterCanvas) Clear(c color.Color) {
	rc.ctx.SetFillColor(c)
	rc.ctx.DrawPath(0, 0, canvas.Rectangle(rc.w, rc.h))
}

func (rc *rasterCanvas) FillPath(p *geometry.Path, c color.Color) {
	rc.ctx.SetFillColor(c)
	rc.ctx.DrawPath(0, 0, toCanvasPath(p))
}

func (rc *rasterCanvas) FillRect(r geometry.Rect, c color.Color) {
	rc.ctx.SetFillColor(c)
	rc.ctx.DrawPath(r.X, r.Y, canvas.Rectangle(r.W, r.H))
}

func (rc *rasterCanvas) DrawImage(img render.Image, dst geometry.Rect, clip *geometry.Path) error {
	ih, ok := img.(*imageHandle)
	if !ok {
		return fmt.Errorf("image was not decoded by this backend")
	}

	// Work inside the clip's bounding box; with no clip, the destination
	// rectangle itself bounds the work area.
	region := dst
	if clip != nil {
		region = clip.Bounds()
	}
	x0 := int(math.Floor(region.X))
	y0 := int(math.Floor(region.Y))
	w := int(math.Ceil(region.X+region.W)) - x0
	h := int(math.Ceil(region.Y+region.H)) - y0
	if w <= 0 || h <= 0 {
		return nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	dr := image.Rect(
		int(math.Round(dst.X))-x0,
		int(math.Round(dst.Y))-y0,
		int(math.Round(dst.X+dst.W))-x0,
		int(math.Round(dst.Y+dst.H))-y0,
	)
	xdraw.CatmullRom.Scale(scaled, dr, ih.img, ih.img.Bounds(), xdraw.Over, nil)

	out := scaled
	if clip != nil {
		mask := rasterizeMask(clip, x0, y0, w, h)
		clipped := image.NewRGBA(scaled.Bounds())
		stddraw.DrawMask(clipped, clipped.Bounds(), scaled, image.Point{}, mask, image.Point{}, stddraw.Over)
		out = clipped
	}

	rc.ctx.DrawImage(float64(x0), float64(y0), out, canvas.DPMM(1.0))
	return nil
}

func (rc *rasterCanvas) DrawText(text string, x, y float64, f render.Font, c color.Color) {
	rf, ok := f.(*font)
	if !ok || text == "" {
		return
	}
	line := canvas.NewTextLine(rf.face(c), text, canvas.Left)
	rc.ctx.DrawText(x, y, line)
}

// DrawShapedText draws a run in logical order through the canvas text
// layout, which shapes Arabic-script ligatures and orders right-to-left
// glyphs itself. The anchor arithmetic happened upstream, so the run is
// always left-anchored here regardless of direction.
func (rc *rasterCanvas) DrawShapedText(text string, x, y float64, f render.Font, c color.Color, rightToLeft bool) {
	rc.DrawText(text, x, y, f, c)
}

// rasterizeMask renders the outline, translated by (-x0, -y0), into an
// alpha mask of size w×h.
func rasterizeMask(p *geometry.Path, x0, y0, w, h int) *image.Alpha {
	r := vector.NewRasterizer(w, h)
	fx := func(v float64) float32 { return float32(v - float64(x0)) }
	fy := func(v float64) float32 { return float32(v - float64(y0)) }
	for _, s := range p.Segments {
		switch s.Op {
		case geometry.MoveTo:
			r.MoveTo(fx(s.X), fy(s.Y))
		case geometry.LineTo:
			r.LineTo(fx(s.X), fy(s.Y))
		case geometry.QuadTo:
			r.QuadTo(fx(s.CX), fy(s.CY), fx(s.X), fy(s.Y))
		case geometry.Close:
			r.ClosePath()
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func toCanvasPath(p *geometry.Path) *canvas.Path {
	cp := &canvas.Path{}
	for _, s := range p.Segments {
		switch s.Op {
		case geometry.MoveTo:
			cp.MoveTo(s.X, s.Y)
		case geometry.LineTo:
			cp.LineTo(s.X, s.Y)
		case geometry.QuadTo:
			cp.QuadTo(s.CX, s.CY, s.X, s.Y)
		case geometry.Close:
			cp.Close()
		}
	}
	return cp
}

type imageHandle struct {
	img image.Image
}

func (i *imageHandle) Width() int  { return i.img.Bounds().Dx() }
func (i *imageHandle) Height() int { return i.img.Bounds().Dy() }

type font struct {
	family      *canvas.FontFamily
	style       canvas.FontStyle
	size        float64
	measureFace *canvas.FontFace
}

func (f *font) face(c color.Color) *canvas.FontFace {
	return f.family.Face(f.size*mmToPt, c, f.style, canvas.FontNormal)
}

// Measure returns the run's advance width and the face's ascent plus
// descent. The empty string measures as a single space so measurement is
// total.
func (f *font) Measure(text string) (float64, float64) {
	if text == "" {
		text = " "
	}
	metrics := f.measureFace.Metrics()
	return f.measureFace.TextWidth(text), metrics.Ascent + metrics.Descent
}

func (f *font) Size() float64 { return f.size }
