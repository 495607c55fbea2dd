package poster

import (
	"encoding/json"
	"sort"

	"github.com/posterkit/posterkit/pkg/errors"
)

// Poster is the declarative description of a render: canvas dimensions, a
// base background color, and an ordered element list.
type Poster struct {
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	BackgroundColor string    `json:"background_color"`
	Elements        []Element `json:"elements"`
}

// Decode parses a JSON poster description and validates it.
func Decode(data []byte) (*Poster, error) {
	var raw struct {
		Width           int               `json:"width"`
		Height          int               `json:"height"`
		BackgroundColor string            `json:"background_color"`
		Elements        []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid poster description")
	}

	p := &Poster{
		Width:           raw.Width,
		Height:          raw.Height,
		BackgroundColor: raw.BackgroundColor,
		Elements:        make([]Element, 0, len(raw.Elements)),
	}
	for i, msg := range raw.Elements {
		el, err := decodeElement(msg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "element %d", i)
		}
		p.Elements = append(p.Elements, el)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Encode marshals the poster back to its tagged JSON form.
func (p *Poster) Encode() ([]byte, error) {
	elements := make([]json.RawMessage, 0, len(p.Elements))
	for _, el := range p.Elements {
		msg, err := encodeElement(el)
		if err != nil {
			return nil, err
		}
		elements = append(elements, msg)
	}

	return json.Marshal(struct {
		Width           int               `json:"width"`
		Height          int               `json:"height"`
		BackgroundColor string            `json:"background_color"`
		Elements        []json.RawMessage `json:"elements"`
	}{p.Width, p.Height, p.BackgroundColor, elements})
}

// Validate checks the structural invariants of the description.
func (p *Poster) Validate() error {
	if err := errors.ValidateDimensions(p.Width, p.Height); err != nil {
		return err
	}

	for i, el := range p.Elements {
		switch e := el.(type) {
		case *ImageElement:
			if e.Src == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "element %d: image src cannot be empty", i)
			}
			if e.Width <= 0 || e.Height <= 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "element %d: image dimensions must be positive, got %gx%g", i, e.Width, e.Height)
			}
		case *TextElement:
			if e.FontSize <= 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "element %d: font_size must be positive, got %g", i, e.FontSize)
			}
			if e.MaxWidth < 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "element %d: max_width cannot be negative", i)
			}
			if e.MaxLines < 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "element %d: max_lines cannot be negative", i)
			}
		}
	}
	return nil
}

// sortByDepth returns the elements in paint order: ascending depth,
// insertion order breaking ties.
func sortByDepth(elements []Element) []Element {
	sorted := make([]Element, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Depth() < sorted[j].Depth()
	})
	return sorted
}
