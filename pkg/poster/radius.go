package poster

import (
	"encoding/json"

	"github.com/posterkit/posterkit/pkg/errors"
	"github.com/posterkit/posterkit/pkg/geometry"
)

// Radius describes rounded corners for an element. In JSON it is either a
// single number applied to all four corners, or a four-element array in
// top-left, top-right, bottom-right, bottom-left order.
type Radius struct {
	corners geometry.Corners
	uniform bool
}

// UniformRadius returns a Radius applying r to every corner.
func UniformRadius(r float64) *Radius {
	return &Radius{corners: geometry.Uniform(r), uniform: true}
}

// CornerRadius returns a Radius with independent per-corner values.
func CornerRadius(tl, tr, br, bl float64) *Radius {
	return &Radius{corners: geometry.Corners{tl, tr, br, bl}}
}

// Corners returns the per-corner radii.
func (r *Radius) Corners() geometry.Corners {
	return r.corners
}

// UnmarshalJSON accepts either a bare number or a four-element array.
func (r *Radius) UnmarshalJSON(data []byte) error {
	var single float64
	if err := json.Unmarshal(data, &single); err == nil {
		r.corners = geometry.Uniform(single)
		r.uniform = true
		return nil
	}

	// Decode into a slice; a fixed-size array would silently zero-fill
	// short input and drop extra elements.
	var multi []float64
	if err := json.Unmarshal(data, &multi); err == nil && len(multi) == 4 {
		r.corners = geometry.Corners{multi[0], multi[1], multi[2], multi[3]}
		r.uniform = false
		return nil
	}

	return errors.New(errors.ErrCodeInvalidConfig, "radius must be a number or a four-element array, got %s", data)
}

// MarshalJSON writes a bare number for uniform radii, otherwise the
// four-element array form.
func (r *Radius) MarshalJSON() ([]byte, error) {
	if r.uniform {
		return json.Marshal(r.corners[0])
	}
	return json.Marshal([4]float64(r.corners))
}
