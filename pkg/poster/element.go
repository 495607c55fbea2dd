package poster

import (
	"encoding/json"

	"github.com/posterkit/posterkit/pkg/errors"
	"github.com/posterkit/posterkit/pkg/geometry"
	"github.com/posterkit/posterkit/pkg/text"
)

// Kind is the JSON discriminator for the element union.
type Kind string

// Element kinds.
const (
	KindBackground Kind = "background"
	KindImage      Kind = "image"
	KindText       Kind = "text"
)

// BackgroundDepth is the fixed depth key for background elements. It is
// unconditional: a background paints below every other element no matter
// what depths they declare.
const BackgroundDepth = -1000

// Element is the closed union of poster element kinds. Only the three
// types in this package implement it.
type Element interface {
	// Kind returns the JSON discriminator tag.
	Kind() Kind
	// Depth returns the z-order key; elements paint in ascending order.
	Depth() int

	sealedElement()
}

// ObjectFit selects how an image source is scaled into its target box.
type ObjectFit int

// Object-fit policies. The zero value is cover, the default.
const (
	ObjectFitCover ObjectFit = iota
	ObjectFitContain
	ObjectFitStretch
)

var objectFitNames = map[ObjectFit]string{
	ObjectFitCover:   "cover",
	ObjectFitContain: "contain",
	ObjectFitStretch: "stretch",
}

func (f ObjectFit) String() string {
	if name, ok := objectFitNames[f]; ok {
		return name
	}
	return "cover"
}

// Policy maps the object-fit to its geometry fit policy.
func (f ObjectFit) Policy() geometry.FitPolicy {
	switch f {
	case ObjectFitContain:
		return geometry.FitContain
	case ObjectFitStretch:
		return geometry.FitStretch
	default:
		return geometry.FitCover
	}
}

// MarshalJSON writes the lowercase policy name.
func (f ObjectFit) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON reads a lowercase policy name.
func (f *ObjectFit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for fit, name := range objectFitNames {
		if name == s {
			*f = fit
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidConfig, "invalid object_fit %q", s)
}

// BackgroundElement fills the whole canvas with a color and, optionally,
// an image scaled with the cover policy. A radius rounds the canvas
// corners and clips the image to the rounded outline.
type BackgroundElement struct {
	Color  string  `json:"color"`
	Image  string  `json:"image,omitempty"`
	Radius *Radius `json:"radius,omitempty"`
}

func (e *BackgroundElement) Kind() Kind     { return KindBackground }
func (e *BackgroundElement) Depth() int     { return BackgroundDepth }
func (e *BackgroundElement) sealedElement() {}

// ImageElement places an image source into a target box. The source is a
// file path, an http(s) URL, or a base64 data URL.
type ImageElement struct {
	Src       string    `json:"src"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	Radius    *Radius   `json:"radius,omitempty"`
	ZIndex    *int      `json:"z_index,omitempty"`
	ObjectFit ObjectFit `json:"object_fit"`
}

func (e *ImageElement) Kind() Kind { return KindImage }

func (e *ImageElement) Depth() int {
	if e.ZIndex != nil {
		return *e.ZIndex
	}
	return 0
}

func (e *ImageElement) sealedElement() {}

// TextElement draws a text run anchored at (X, Y) on the baseline.
//
// MaxWidth of zero means no wrapping; MaxLines of zero means no line cap.
// Width and Height, when nonzero, override the measured size of the
// highlight box drawn when BackgroundColor is set. Direction defaults to
// left-to-right but is upgraded to right-to-left whenever the content
// classifies as a right-to-left script.
type TextElement struct {
	Text            string         `json:"text"`
	X               float64        `json:"x"`
	Y               float64        `json:"y"`
	FontSize        float64        `json:"font_size"`
	Color           string         `json:"color"`
	Align           text.Align     `json:"align"`
	FontFamily      string         `json:"font_family,omitempty"`
	FontPath        string         `json:"font_path,omitempty"`
	MaxWidth        float64        `json:"max_width,omitempty"`
	LineHeight      float64        `json:"line_height"`
	MaxLines        int            `json:"max_lines,omitempty"`
	ZIndex          *int           `json:"z_index,omitempty"`
	Bold            bool           `json:"bold"`
	Prefix          string         `json:"prefix,omitempty"`
	BackgroundColor string         `json:"background_color,omitempty"`
	Padding         float64        `json:"padding"`
	BorderRadius    *Radius        `json:"border_radius,omitempty"`
	Width           float64        `json:"width,omitempty"`
	Height          float64        `json:"height,omitempty"`
	Direction       text.Direction `json:"direction"`
}

func (e *TextElement) Kind() Kind { return KindText }

func (e *TextElement) Depth() int {
	if e.ZIndex != nil {
		return *e.ZIndex
	}
	return 0
}

func (e *TextElement) sealedElement() {}

// defaultLineHeight is the line spacing multiplier applied when an element
// does not set one.
const defaultLineHeight = 1.5

// UnmarshalJSON decodes a text element, defaulting line_height to 1.5
// when the document omits it.
func (e *TextElement) UnmarshalJSON(data []byte) error {
	type plain TextElement
	tmp := plain{LineHeight: defaultLineHeight}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*e = TextElement(tmp)
	return nil
}

// Content returns the full text run: the prefix, if any, concatenated
// before the body.
func (e *TextElement) Content() string {
	return e.Prefix + e.Text
}

// decodeElement decodes one element from its tagged JSON form.
func decodeElement(data []byte) (Element, error) {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid element")
	}

	var el Element
	switch tag.Type {
	case KindBackground:
		el = &BackgroundElement{}
	case KindImage:
		el = &ImageElement{}
	case KindText:
		el = &TextElement{}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown element type %q", tag.Type)
	}

	if err := json.Unmarshal(data, el); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid %s element", tag.Type)
	}
	return el, nil
}

// encodeElement marshals one element with its "type" discriminator.
func encodeElement(e Element) ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"] = json.RawMessage(`"` + string(e.Kind()) + `"`)
	return json.Marshal(fields)
}
