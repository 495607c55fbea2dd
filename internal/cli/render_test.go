package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/posterkit/posterkit/pkg/poster"
)

func TestHasRemoteImages(t *testing.T) {
	zero := 0
	tests := []struct {
		name     string
		elements []poster.Element
		want     bool
	}{
		{
			name: "local file only",
			elements: []poster.Element{
				&poster.ImageElement{Src: "photo.png", Width: 10, Height: 10},
			},
			want: false,
		},
		{
			name: "remote image element",
			elements: []poster.Element{
				&poster.ImageElement{Src: "https://example.com/a.png", Width: 10, Height: 10, ZIndex: &zero},
			},
			want: true,
		},
		{
			name: "remote background image",
			elements: []poster.Element{
				&poster.BackgroundElement{Color: "#FFFFFF", Image: "http://example.com/bg.jpg"},
			},
			want: true,
		},
		{
			name: "text only",
			elements: []poster.Element{
				&poster.TextElement{Text: "hi", FontSize: 12, Color: "#000000"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &poster.Poster{Width: 100, Height: 100, Elements: tt.elements}
			if got := hasRemoteImages(p); got != tt.want {
				t.Errorf("hasRemoteImages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeneratorOptionsNoCache(t *testing.T) {
	p := &poster.Poster{
		Width:  100,
		Height: 100,
		Elements: []poster.Element{
			&poster.ImageElement{Src: "https://example.com/a.png", Width: 10, Height: 10},
		},
	}

	if opts := generatorOptions(p, &renderOpts{noCache: true}); opts != nil {
		t.Errorf("generatorOptions() with --no-cache = %d options, want none", len(opts))
	}

	local := &poster.Poster{Width: 100, Height: 100}
	if opts := generatorOptions(local, &renderOpts{}); opts != nil {
		t.Errorf("generatorOptions() without remote images = %d options, want none", len(opts))
	}
}

func TestRunRenderWritesFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "poster.json")
	config := `{
		"width": 80,
		"height": 60,
		"background_color": "#FFFFFF",
		"elements": [
			{"type": "text", "text": "Hi", "x": 40, "y": 30, "font_size": 12, "color": "#000000"}
		]
	}`
	if err := os.WriteFile(input, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	output := filepath.Join(dir, "out.png")
	opts := &renderOpts{output: output, noCache: true}
	if err := runRender(context.Background(), input, opts); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) == 0 {
		t.Error("output PNG is empty")
	}
}

func TestRunRenderErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"width": 0}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	tests := []struct {
		name  string
		input string
	}{
		{name: "missing file", input: filepath.Join(dir, "nope.json")},
		{name: "invalid config", input: bad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &renderOpts{output: filepath.Join(dir, "out.png"), noCache: true}
			if err := runRender(context.Background(), tt.input, opts); err == nil {
				t.Error("runRender() expected error, got nil")
			}
		})
	}
}
