package poster

import (
	"encoding/json"
	"testing"

	"github.com/posterkit/posterkit/pkg/geometry"
	"github.com/posterkit/posterkit/pkg/text"
)

func TestDecodeElementTypes(t *testing.T) {
	t.Run("background", func(t *testing.T) {
		el, err := decodeElement([]byte(`{"type":"background","color":"#FFFFFF","radius":10}`))
		if err != nil {
			t.Fatalf("decodeElement() error = %v", err)
		}
		bg, ok := el.(*BackgroundElement)
		if !ok {
			t.Fatalf("decoded %T, want *BackgroundElement", el)
		}
		if bg.Color != "#FFFFFF" {
			t.Errorf("Color = %q, want #FFFFFF", bg.Color)
		}
		if bg.Radius == nil || bg.Radius.Corners() != geometry.Uniform(10) {
			t.Errorf("Radius = %v, want uniform 10", bg.Radius)
		}
	})

	t.Run("image", func(t *testing.T) {
		el, err := decodeElement([]byte(`{"type":"image","src":"a.png","x":10,"y":20,"width":100,"height":50,"z_index":3,"object_fit":"contain"}`))
		if err != nil {
			t.Fatalf("decodeElement() error = %v", err)
		}
		img, ok := el.(*ImageElement)
		if !ok {
			t.Fatalf("decoded %T, want *ImageElement", el)
		}
		if img.ObjectFit != ObjectFitContain {
			t.Errorf("ObjectFit = %v, want contain", img.ObjectFit)
		}
		if img.Depth() != 3 {
			t.Errorf("Depth() = %d, want 3", img.Depth())
		}
	})

	t.Run("text", func(t *testing.T) {
		el, err := decodeElement([]byte(`{"type":"text","text":"hi","x":1,"y":2,"font_size":24,"color":"#333333","align":"center","direction":"rtl"}`))
		if err != nil {
			t.Fatalf("decodeElement() error = %v", err)
		}
		txt, ok := el.(*TextElement)
		if !ok {
			t.Fatalf("decoded %T, want *TextElement", el)
		}
		if txt.Align != text.AlignCenter {
			t.Errorf("Align = %v, want center", txt.Align)
		}
		if txt.Direction != text.DirectionRTL {
			t.Errorf("Direction = %v, want rtl", txt.Direction)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := decodeElement([]byte(`{"type":"video","src":"a.mp4"}`)); err == nil {
			t.Error("decodeElement() accepted unknown type")
		}
	})
}

func TestTextElementDefaults(t *testing.T) {
	el, err := decodeElement([]byte(`{"type":"text","text":"hi","x":0,"y":0,"font_size":12,"color":"#000000"}`))
	if err != nil {
		t.Fatalf("decodeElement() error = %v", err)
	}
	txt := el.(*TextElement)

	if txt.LineHeight != 1.5 {
		t.Errorf("LineHeight = %g, want 1.5", txt.LineHeight)
	}
	if txt.Align != text.AlignLeft {
		t.Errorf("Align = %v, want left", txt.Align)
	}
	if txt.Direction != text.DirectionLTR {
		t.Errorf("Direction = %v, want ltr", txt.Direction)
	}
	if txt.Bold {
		t.Error("Bold = true, want false")
	}
	if txt.Padding != 0 {
		t.Errorf("Padding = %g, want 0", txt.Padding)
	}
	if txt.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", txt.Depth())
	}
}

func TestImageElementDefaults(t *testing.T) {
	el, err := decodeElement([]byte(`{"type":"image","src":"a.png","x":0,"y":0,"width":10,"height":10}`))
	if err != nil {
		t.Fatalf("decodeElement() error = %v", err)
	}
	img := el.(*ImageElement)

	if img.ObjectFit != ObjectFitCover {
		t.Errorf("ObjectFit = %v, want cover", img.ObjectFit)
	}
	if img.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", img.Depth())
	}
}

func TestEncodeElementRoundTrip(t *testing.T) {
	z := 5
	elements := []Element{
		&BackgroundElement{Color: "#FFFFFF", Radius: UniformRadius(8)},
		&ImageElement{Src: "a.png", Width: 100, Height: 50, ZIndex: &z, ObjectFit: ObjectFitStretch},
		&TextElement{Text: "hi", FontSize: 24, Color: "#000000", LineHeight: 1.5, Align: text.AlignRight},
	}

	for _, el := range elements {
		data, err := encodeElement(el)
		if err != nil {
			t.Fatalf("encodeElement(%s) error = %v", el.Kind(), err)
		}

		var tag struct {
			Type Kind `json:"type"`
		}
		if err := json.Unmarshal(data, &tag); err != nil {
			t.Fatal(err)
		}
		if tag.Type != el.Kind() {
			t.Errorf("encoded type = %q, want %q", tag.Type, el.Kind())
		}

		decoded, err := decodeElement(data)
		if err != nil {
			t.Fatalf("decodeElement(%s) error = %v", data, err)
		}
		if decoded.Kind() != el.Kind() {
			t.Errorf("round trip kind = %q, want %q", decoded.Kind(), el.Kind())
		}
		if decoded.Depth() != el.Depth() {
			t.Errorf("round trip depth = %d, want %d", decoded.Depth(), el.Depth())
		}
	}
}

func TestRadiusJSONForms(t *testing.T) {
	t.Run("single number", func(t *testing.T) {
		var r Radius
		if err := json.Unmarshal([]byte(`12.5`), &r); err != nil {
			t.Fatal(err)
		}
		if r.Corners() != geometry.Uniform(12.5) {
			t.Errorf("Corners() = %v, want uniform 12.5", r.Corners())
		}

		out, err := json.Marshal(&r)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != "12.5" {
			t.Errorf("marshaled %s, want 12.5", out)
		}
	})

	t.Run("four corners", func(t *testing.T) {
		var r Radius
		if err := json.Unmarshal([]byte(`[1,2,3,4]`), &r); err != nil {
			t.Fatal(err)
		}
		want := geometry.Corners{1, 2, 3, 4}
		if r.Corners() != want {
			t.Errorf("Corners() = %v, want %v", r.Corners(), want)
		}

		out, err := json.Marshal(&r)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != "[1,2,3,4]" {
			t.Errorf("marshaled %s, want [1,2,3,4]", out)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		var r Radius
		if err := json.Unmarshal([]byte(`"round"`), &r); err == nil {
			t.Error("accepted string radius")
		}
		if err := json.Unmarshal([]byte(`[1,2]`), &r); err == nil {
			t.Error("accepted two-element radius")
		}
		if err := json.Unmarshal([]byte(`[1,2,3,4,5]`), &r); err == nil {
			t.Error("accepted five-element radius")
		}
		if err := json.Unmarshal([]byte(`[]`), &r); err == nil {
			t.Error("accepted empty radius array")
		}
	})
}

func TestObjectFitJSON(t *testing.T) {
	for _, fit := range []ObjectFit{ObjectFitCover, ObjectFitContain, ObjectFitStretch} {
		data, err := json.Marshal(fit)
		if err != nil {
			t.Fatal(err)
		}
		var back ObjectFit
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatal(err)
		}
		if back != fit {
			t.Errorf("round trip %v != %v", back, fit)
		}
	}

	var f ObjectFit
	if err := json.Unmarshal([]byte(`"tile"`), &f); err == nil {
		t.Error("accepted unknown object_fit")
	}
}

func TestContentPrefix(t *testing.T) {
	e := &TextElement{Text: "29.99", Prefix: "$"}
	if got := e.Content(); got != "$29.99" {
		t.Errorf("Content() = %q, want $29.99", got)
	}

	e = &TextElement{Text: "plain"}
	if got := e.Content(); got != "plain" {
		t.Errorf("Content() = %q, want plain", got)
	}
}
