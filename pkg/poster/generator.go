package poster

import (
	"context"
	"encoding/base64"
	"os"
	"time"

	"github.com/posterkit/posterkit/pkg/errors"
	"github.com/posterkit/posterkit/pkg/fonts"
	"github.com/posterkit/posterkit/pkg/httputil"
	"github.com/posterkit/posterkit/pkg/observability"
	"github.com/posterkit/posterkit/pkg/render"
	"github.com/posterkit/posterkit/pkg/render/raster"
)

// Base64Prefix is the data-URL marker prepended to base64-encoded output.
const Base64Prefix = "data:image/png;base64,"

// Generator owns a canvas size and a mutable element list, and renders
// them to PNG bytes. It is not safe for concurrent use: each render call
// must own the generator for its duration.
type Generator struct {
	width           int
	height          int
	backgroundColor string
	elements        []Element

	backend    render.Backend
	resolver   *fonts.Resolver
	imageCache *httputil.Cache
}

// Option configures a Generator.
type Option func(*Generator)

// WithBackend replaces the default raster backend.
func WithBackend(b render.Backend) Option {
	return func(g *Generator) { g.backend = b }
}

// WithFontResolver replaces the default font resolver.
func WithFontResolver(r *fonts.Resolver) Option {
	return func(g *Generator) { g.resolver = r }
}

// WithImageCache enables on-disk caching of remote image fetches.
func WithImageCache(c *httputil.Cache) Option {
	return func(g *Generator) { g.imageCache = c }
}

// NewGenerator creates a Generator for a canvas of the given size filled
// with backgroundColor.
func NewGenerator(width, height int, backgroundColor string, opts ...Option) (*Generator, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}

	g := &Generator{
		width:           width,
		height:          height,
		backgroundColor: backgroundColor,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.backend == nil {
		g.backend = raster.New()
	}
	if g.resolver == nil {
		g.resolver = fonts.NewResolver(g.backend)
	}
	return g, nil
}

// FromPoster creates a Generator preloaded with a decoded description.
func FromPoster(p *Poster, opts ...Option) (*Generator, error) {
	g, err := NewGenerator(p.Width, p.Height, p.BackgroundColor, opts...)
	if err != nil {
		return nil, err
	}
	g.SetElements(p.Elements)
	return g, nil
}

// AddBackground appends a background element.
func (g *Generator) AddBackground(e BackgroundElement) *Generator {
	g.elements = append(g.elements, &e)
	return g
}

// AddImage appends an image element.
func (g *Generator) AddImage(e ImageElement) *Generator {
	g.elements = append(g.elements, &e)
	return g
}

// AddText appends a text element.
func (g *Generator) AddText(e TextElement) *Generator {
	g.elements = append(g.elements, &e)
	return g
}

// Clear removes all elements.
func (g *Generator) Clear() *Generator {
	g.elements = g.elements[:0]
	return g
}

// SetElements replaces the element list.
func (g *Generator) SetElements(elements []Element) *Generator {
	g.Clear()
	g.elements = append(g.elements, elements...)
	return g
}

// Generate composites all elements and returns the encoded PNG. The call
// either fully succeeds or fails atomically with one error; there is no
// partial output.
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	start := time.Now()
	observability.Render().OnRenderStart(ctx, g.width, g.height, len(g.elements))

	png, err := g.generate(ctx)
	observability.Render().OnRenderComplete(ctx, len(png), time.Since(start), err)
	return png, err
}

func (g *Generator) generate(ctx context.Context) ([]byte, error) {
	surf, err := g.backend.NewSurface(g.width, g.height)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "failed to create %dx%d surface", g.width, g.height)
	}
	defer surf.Close()

	cv := surf.Canvas()
	cv.Clear(ParseColor(g.backgroundColor))

	comp := &compositor{backend: g.backend, resolver: g.resolver, imageCache: g.imageCache}
	for _, el := range sortByDepth(g.elements) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		elStart := time.Now()
		err := comp.render(ctx, cv, el)
		observability.Render().OnElementRendered(ctx, string(el.Kind()), time.Since(elStart), err)
		if err != nil {
			return nil, err
		}
	}

	png, err := surf.EncodePNG()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "failed to encode PNG")
	}
	return png, nil
}

// GenerateFile renders the poster and writes the PNG to path.
func (g *Generator) GenerateFile(ctx context.Context, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	png, err := g.Generate(ctx)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, png, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "failed to write %s", path)
	}
	return nil
}

// GenerateBase64 renders the poster and returns it as a PNG data URL.
func (g *Generator) GenerateBase64(ctx context.Context) (string, error) {
	png, err := g.Generate(ctx)
	if err != nil {
		return "", err
	}
	return Base64Prefix + base64.StdEncoding.EncodeToString(png), nil
}
