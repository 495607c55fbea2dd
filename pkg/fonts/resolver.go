// Package fonts resolves font requests to concrete font handles through a
// prioritized fallback chain. Resolution never fails outward: text must
// always be drawable, so the chain terminates in a font embedded in the
// binary.
//
// # Resolution order
//
// First success wins:
//
//  1. Right-to-left text: probe the bundled Arabic-script font file at a
//     couple of well-known relative paths.
//  2. An explicit font file path given on the element.
//  3. An explicit family name, matched against the installed font catalog.
//  4. A fixed priority list of family names: an Arabic-script list for
//     right-to-left text, a Latin list otherwise.
//  5. The built-in Go fonts (regular or bold).
//
// File probes that miss are skipped candidates, not errors. Resolved handles
// are cached per family, file, size, weight, and script so repeated elements
// do not re-read font files.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/posterkit/posterkit/pkg/render"
	"github.com/posterkit/posterkit/pkg/text"
)

// bundledRTLPaths are the relative locations probed for the bundled
// Arabic-script typeface (UKIJ Basma, covering Uyghur as well as Arabic and
// Persian).
var bundledRTLPaths = []string{"UKIJBasma.ttf", "fonts/UKIJBasma.ttf"}

// rtlFamilies is the priority list for right-to-left text, bundled Uyghur
// faces first, then platform Arabic fonts, then broad-coverage fallbacks.
var rtlFamilies = []string{
	"UKIJBasma",
	"UKIJ Basma",
	"Geeza Pro",
	"Al Bayan",
	"Arial Unicode MS",
	"Baghdad",
	"Nadeem",
	"DejaVu Sans",
	"Times New Roman",
	"Arial",
	"Helvetica",
}

// latinFamilies is the priority list for left-to-right text.
var latinFamilies = []string{
	"SF Pro Text",
	"Arial",
	"Helvetica",
	"Times New Roman",
}

// Request describes the font needed for a text run.
type Request struct {
	Text     string  // the run to draw; decides script-aware fallbacks
	Size     float64 // point size, positive
	Bold     bool
	Family   string // optional explicit family name
	FilePath string // optional explicit font file
}

// Resolver turns Requests into render.Font handles.
type Resolver struct {
	backend render.Backend

	mu    sync.Mutex
	cache map[string]render.Font
}

// NewResolver creates a resolver loading fonts through the given backend.
func NewResolver(backend render.Backend) *Resolver {
	return &Resolver{
		backend: backend,
		cache:   make(map[string]render.Font),
	}
}

// strategy attempts one resolution step; nil means try the next candidate.
type strategy func(req Request, rtl bool) render.Font

// Resolve returns a usable font for the request. It is total: when every
// lookup misses, the built-in default font is returned.
func (r *Resolver) Resolve(req Request) render.Font {
	rtl := text.IsRightToLeft(req.Text)

	key := fmt.Sprintf("%s|%s|%g|%t|%t", req.Family, req.FilePath, req.Size, req.Bold, rtl)
	r.mu.Lock()
	if f, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return f
	}
	r.mu.Unlock()

	chain := []strategy{
		r.bundledRTL,
		r.explicitFile,
		r.explicitFamily,
		r.familyList,
	}
	var resolved render.Font
	for _, s := range chain {
		if f := s(req, rtl); f != nil {
			resolved = f
			break
		}
	}
	if resolved == nil {
		resolved = r.builtin(req)
	}

	r.mu.Lock()
	r.cache[key] = resolved
	r.mu.Unlock()
	return resolved
}

// bundledRTL probes the bundled Arabic-script font files. Only applies to
// right-to-left classified text; a missing file is a skipped candidate.
func (r *Resolver) bundledRTL(req Request, rtl bool) render.Font {
	if !rtl {
		return nil
	}
	for _, path := range bundledRTLPaths {
		if f := r.loadFile(path, req.Size, req.Bold); f != nil {
			return f
		}
	}
	return nil
}

// explicitFile loads the font file named on the element, if any.
func (r *Resolver) explicitFile(req Request, rtl bool) render.Font {
	if req.FilePath == "" {
		return nil
	}
	return r.loadFile(req.FilePath, req.Size, req.Bold)
}

// explicitFamily matches the caller's family name against the installed
// font catalog, preferring a bold variant when requested.
func (r *Resolver) explicitFamily(req Request, rtl bool) render.Font {
	if req.Family == "" {
		return nil
	}
	return r.findFamily(req.Family, req.Size, req.Bold)
}

// familyList walks the script-appropriate priority list.
func (r *Resolver) familyList(req Request, rtl bool) render.Font {
	families := latinFamilies
	if rtl {
		families = rtlFamilies
	}
	for _, family := range families {
		if f := r.findFamily(family, req.Size, req.Bold); f != nil {
			return f
		}
	}
	return nil
}

// builtin loads the Go fonts shipped in the binary. This step cannot miss
// under a functioning backend; if the backend still rejects the data, a
// heuristic measuring font keeps the contract that resolution is total.
func (r *Resolver) builtin(req Request) render.Font {
	data := goregular.TTF
	if req.Bold {
		data = gobold.TTF
	}
	f, err := r.backend.LoadFont(data, req.Size, req.Bold)
	if err != nil {
		return approximateFont{size: req.Size}
	}
	return f
}

func (r *Resolver) findFamily(family string, size float64, bold bool) render.Font {
	candidates := []string{family}
	if bold {
		candidates = []string{family + " Bold", family + "-Bold", family}
	}
	for _, name := range candidates {
		path, err := findfont.Find(name + ".ttf")
		if err != nil {
			continue
		}
		if f := r.loadFile(path, size, bold); f != nil {
			return f
		}
	}
	return nil
}

func (r *Resolver) loadFile(path string, size float64, bold bool) render.Font {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	f, err := r.backend.LoadFont(data, size, bold)
	if err != nil {
		return nil
	}
	return f
}

// approximateFont is the very last resort when no real font can be
// constructed. It measures with a flat per-rune advance so layout still
// terminates; drawing with it is a no-op at the backend's discretion.
type approximateFont struct {
	size float64
}

func (f approximateFont) Measure(s string) (float64, float64) {
	if s == "" {
		s = " "
	}
	return float64(len([]rune(s))) * f.size * 0.6, f.size
}

func (f approximateFont) Size() float64 { return f.size }
