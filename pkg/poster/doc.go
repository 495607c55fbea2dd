// Package poster defines the poster description model and the generator
// that composites it into a PNG image.
//
// A poster is a fixed-size canvas holding a background, images, and text
// blocks. Elements form a closed union of three kinds (background, image,
// text) and are painted in ascending depth order: the background is pinned
// to the bottom, everything else sorts by its z-index with insertion order
// breaking ties.
//
// The package owns composition and layout decisions only. Pixel work
// (path filling, image resampling, glyph shaping, PNG encoding) is
// delegated to a render.Backend, and font selection to a fonts.Resolver.
//
// # Usage
//
//	gen, err := poster.NewGenerator(800, 600, "#FFFFFF")
//	if err != nil { ... }
//	gen.AddText(poster.TextElement{Text: "Hello", X: 400, Y: 200, FontSize: 48, Color: "#333333", Align: text.AlignCenter})
//	png, err := gen.Generate(ctx)
//
// Posters can also be decoded from JSON documents where each element
// carries a "type" discriminator.
package poster
