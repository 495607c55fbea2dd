package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/posterkit/posterkit/pkg/render"
)

// stubBackend records font loads without rasterizing anything.
type stubBackend struct {
	loads  []stubLoad
	reject bool
}

type stubLoad struct {
	bytes int
	size  float64
	bold  bool
}

type stubFont struct {
	size float64
}

func (f stubFont) Measure(s string) (float64, float64) { return float64(len(s)) * f.size, f.size }
func (f stubFont) Size() float64                       { return f.size }

func (b *stubBackend) NewSurface(w, h int) (render.Surface, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBackend) DecodeImage(data []byte) (render.Image, error) {
	return nil, errors.New("not implemented")
}

func (b *stubBackend) LoadFont(data []byte, size float64, bold bool) (render.Font, error) {
	if b.reject {
		return nil, errors.New("bad font data")
	}
	b.loads = append(b.loads, stubLoad{bytes: len(data), size: size, bold: bold})
	return stubFont{size: size}, nil
}

func TestResolveAlwaysReturnsFont(t *testing.T) {
	backend := &stubBackend{}
	r := NewResolver(backend)

	f := r.Resolve(Request{Text: "hello", Size: 24})
	if f == nil {
		t.Fatal("Resolve returned nil font")
	}
	if f.Size() != 24 {
		t.Errorf("font size = %g, want 24", f.Size())
	}
	// Whether the chain finds an installed family or falls to the builtin
	// Go font, exactly one load at the requested size backs the handle.
	if len(backend.loads) == 0 {
		t.Fatal("expected at least one backend load")
	}
	last := backend.loads[len(backend.loads)-1]
	if last.size != 24 {
		t.Errorf("loaded size = %g, want 24", last.size)
	}
	if last.bold {
		t.Error("regular request loaded a bold face")
	}
}

func TestResolveExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.ttf")
	if err := os.WriteFile(path, []byte("fake font bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	backend := &stubBackend{}
	r := NewResolver(backend)

	f := r.Resolve(Request{Text: "hello", Size: 12, FilePath: path})
	if f == nil {
		t.Fatal("Resolve returned nil font")
	}
	if len(backend.loads) != 1 {
		t.Fatalf("loads = %d, want 1", len(backend.loads))
	}
	if backend.loads[0].bytes != len("fake font bytes") {
		t.Errorf("loaded %d bytes, want the explicit file", backend.loads[0].bytes)
	}
}

func TestResolveMissingFileFallsThrough(t *testing.T) {
	backend := &stubBackend{}
	r := NewResolver(backend)

	f := r.Resolve(Request{Text: "hello", Size: 12, FilePath: "/nonexistent/font.ttf"})
	if f == nil {
		t.Fatal("Resolve returned nil font")
	}
	// The missing file is skipped, not fatal; the chain bottoms out in the
	// builtin font.
	if len(backend.loads) == 0 {
		t.Fatal("expected fallback load")
	}
}

func TestResolveCaches(t *testing.T) {
	backend := &stubBackend{}
	r := NewResolver(backend)

	req := Request{Text: "hello", Size: 18, Bold: true}
	first := r.Resolve(req)
	loadsAfterFirst := len(backend.loads)
	second := r.Resolve(req)

	if len(backend.loads) != loadsAfterFirst {
		t.Errorf("second Resolve hit the backend: %d loads, want %d", len(backend.loads), loadsAfterFirst)
	}
	if first != second {
		t.Error("cached Resolve returned a different handle")
	}
}

func TestResolveCacheKeyedByScript(t *testing.T) {
	backend := &stubBackend{}
	r := NewResolver(backend)

	r.Resolve(Request{Text: "hello", Size: 18})
	loadsAfterLatin := len(backend.loads)
	r.Resolve(Request{Text: "مرحبا", Size: 18})

	if len(backend.loads) == loadsAfterLatin {
		t.Error("right-to-left request reused the Latin cache entry")
	}
}

func TestResolveTotalWhenBackendRejects(t *testing.T) {
	backend := &stubBackend{reject: true}
	r := NewResolver(backend)

	f := r.Resolve(Request{Text: "hello", Size: 20})
	if f == nil {
		t.Fatal("Resolve returned nil even with a rejecting backend")
	}
	w, h := f.Measure("abcd")
	if w <= 0 || h <= 0 {
		t.Errorf("approximate measure = (%g, %g), want positive", w, h)
	}
}

func TestBoldUsesBoldBuiltin(t *testing.T) {
	backend := &stubBackend{}
	r := NewResolver(backend)

	r.Resolve(Request{Text: "hello", Size: 20, Bold: true})
	if len(backend.loads) == 0 {
		t.Fatal("expected a load")
	}
	last := backend.loads[len(backend.loads)-1]
	if !last.bold {
		t.Error("bold request loaded a regular face")
	}
}
