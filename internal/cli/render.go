package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/posterkit/posterkit/pkg/httputil"
	"github.com/posterkit/posterkit/pkg/poster"
)

const (
	defaultOutput   = "poster.png"   // output path when -o is omitted
	defaultImageTTL = 24 * time.Hour // TTL for cached remote images
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output PNG path
	base64  bool   // print a base64 data URL instead of writing a file
	noCache bool   // disable the on-disk remote image cache
}

// newRenderCmd creates the render command for generating poster PNGs.
// It reads a poster configuration file (JSON) and either writes a PNG file
// or prints the image as a base64 data URL.
//
// Remote images referenced by the configuration are cached on disk under
// ~/.cache/posterkit/ with a 24h TTL unless --no-cache is given.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [config.json]",
		Short: "Render a poster configuration to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output PNG file")
	cmd.Flags().BoolVar(&opts.base64, "base64", false, "print a base64 data URL instead of writing a file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the remote image cache")

	return cmd
}

// runRender loads the configuration, renders it, and writes the result.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	p, err := poster.Decode(data)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %dx%d, %d elements", filepath.Base(input), p.Width, p.Height, len(p.Elements))

	gen, err := poster.FromPoster(p, generatorOptions(p, opts)...)
	if err != nil {
		return err
	}

	spin := newSpinnerWithContext(ctx, "Rendering poster...")
	spin.Start()

	if opts.base64 {
		out, err := gen.GenerateBase64(ctx)
		spin.Stop()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if err := gen.GenerateFile(ctx, opts.output); err != nil {
		spin.Stop()
		return err
	}
	spin.Stop()

	prog.done(fmt.Sprintf("Rendered %s", filepath.Base(input)))
	printSuccess("Poster rendered")
	printFile(opts.output)
	printStats(p.Width, p.Height, len(p.Elements), false)
	return nil
}

// generatorOptions builds the generator options from render flags.
// The image cache is skipped with --no-cache, when the configuration has no
// remote images, or when the cache directory cannot be created (rendering
// still works, every fetch just goes remote).
func generatorOptions(p *poster.Poster, opts *renderOpts) []poster.Option {
	if opts.noCache || !hasRemoteImages(p) {
		return nil
	}
	c, err := httputil.NewCache("", defaultImageTTL)
	if err != nil {
		return nil
	}
	return []poster.Option{poster.WithImageCache(c.Namespace("image:"))}
}

// hasRemoteImages reports whether any element references an http(s) image.
func hasRemoteImages(p *poster.Poster) bool {
	for _, el := range p.Elements {
		var src string
		switch e := el.(type) {
		case *poster.ImageElement:
			src = e.Src
		case *poster.BackgroundElement:
			src = e.Image
		}
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			return true
		}
	}
	return false
}
