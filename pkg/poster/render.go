package poster

import (
	"context"

	"github.com/posterkit/posterkit/pkg/errors"
	"github.com/posterkit/posterkit/pkg/fonts"
	"github.com/posterkit/posterkit/pkg/geometry"
	"github.com/posterkit/posterkit/pkg/httputil"
	"github.com/posterkit/posterkit/pkg/render"
	"github.com/posterkit/posterkit/pkg/text"
)

// compositor renders individual elements against a canvas. One compositor
// serves one render pass.
type compositor struct {
	backend    render.Backend
	resolver   *fonts.Resolver
	imageCache *httputil.Cache
}

func (c *compositor) render(ctx context.Context, cv render.Canvas, el Element) error {
	switch e := el.(type) {
	case *BackgroundElement:
		return c.renderBackground(ctx, cv, e)
	case *ImageElement:
		return c.renderImage(ctx, cv, e)
	case *TextElement:
		return c.renderText(cv, e)
	default:
		return errors.New(errors.ErrCodeInternal, "unknown element kind %q", el.Kind())
	}
}

// renderBackground fills the canvas with the element's color and draws the
// optional cover-scaled image on top. An unreadable background image is
// skipped rather than failing the render.
func (c *compositor) renderBackground(ctx context.Context, cv render.Canvas, e *BackgroundElement) error {
	w, h := cv.Size()
	full := geometry.Rect{W: w, H: h}
	col := ParseColor(e.Color)

	var outline *geometry.Path
	if e.Radius != nil {
		outline = geometry.RoundedRect(full, e.Radius.Corners())
		cv.FillPath(outline, col)
	} else {
		cv.Clear(col)
	}

	if e.Image == "" {
		return nil
	}
	data, err := loadImageData(ctx, e.Image, c.imageCache)
	if err != nil {
		return nil
	}
	img, err := c.backend.DecodeImage(data)
	if err != nil {
		return nil
	}

	dst := geometry.FitRect(float64(img.Width()), float64(img.Height()), full, geometry.FitCover)
	return cv.DrawImage(img, dst, outline)
}

// renderImage loads the source, fits it into the element box, and draws
// it clipped to the box outline. A load or decode failure aborts the
// whole render.
func (c *compositor) renderImage(ctx context.Context, cv render.Canvas, e *ImageElement) error {
	data, err := loadImageData(ctx, e.Src, c.imageCache)
	if err != nil {
		return err
	}
	img, err := c.backend.DecodeImage(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeImageDecode, err, "failed to decode image %s", e.Src)
	}

	box := geometry.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
	dst := geometry.FitRect(float64(img.Width()), float64(img.Height()), box, e.ObjectFit.Policy())

	var clip *geometry.Path
	switch {
	case e.Radius != nil:
		clip = geometry.RoundedRect(box, e.Radius.Corners())
	case e.ObjectFit == ObjectFitCover:
		// Cover may overflow the box; clip the overflow away.
		clip = box.Outline()
	}

	if err := cv.DrawImage(img, dst, clip); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "failed to draw image %s", e.Src)
	}
	return nil
}

// renderText lays out and draws a text element: resolve direction and
// font, paint the optional highlight box, then draw each line at its
// alignment anchor.
func (c *compositor) renderText(cv render.Canvas, e *TextElement) error {
	content := e.Content()

	// Explicit right-to-left wins; left-to-right upgrades on classification.
	dir := e.Direction
	if dir != text.DirectionRTL && text.IsRightToLeft(content) {
		dir = text.DirectionRTL
	}

	f := c.resolver.Resolve(fonts.Request{
		Text:     content,
		Size:     e.FontSize,
		Bold:     e.Bold,
		Family:   e.FontFamily,
		FilePath: e.FontPath,
	})
	col := ParseColor(e.Color)

	if e.BackgroundColor != "" {
		textW, textH := f.Measure(content)
		box := text.HighlightBox(e.X, e.Y, textW, textH, e.Padding, e.Align, dir, e.Width, e.Height)
		bg := ParseColor(e.BackgroundColor)
		if e.BorderRadius != nil {
			cv.FillPath(geometry.RoundedRect(box, e.BorderRadius.Corners()), bg)
		} else {
			cv.FillRect(box, bg)
		}
	}

	lines := []string{content}
	if e.MaxWidth > 0 {
		lines = text.Wrap(content, e.MaxWidth, f, e.MaxLines)
	}

	// Elements built in code leave LineHeight zero; treat that as the
	// documented 1.5 default rather than stacking lines on top of each other.
	lineHeight := e.LineHeight
	if lineHeight <= 0 {
		lineHeight = defaultLineHeight
	}

	for i, line := range lines {
		lineW, _ := f.Measure(line)
		x := text.AnchorX(e.X, lineW, e.Align)
		y := e.Y + float64(i)*e.FontSize*lineHeight

		if dir == text.DirectionRTL {
			cv.DrawShapedText(line, x, y, f, col, true)
		} else {
			cv.DrawText(line, x, y, f, col)
		}
	}
	return nil
}
