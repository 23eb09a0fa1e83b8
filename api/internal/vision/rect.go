package vision

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
)

// Rect is a detection box in pixel (or normalised) coordinates.
// On the wire it is a four-element array [xmin, ymin, xmax, ymax].
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

func R(xmin, ymin, xmax, ymax float64) Rect {
	return Rect{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
}

func (r Rect) Width() float64  { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }

func (r Rect) Area() float64 {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

func (r Rect) Center() (float64, float64) {
	return (r.XMin + r.XMax) / 2, (r.YMin + r.YMax) / 2
}

// Valid сообщает, что xmin<xmax и ymin<ymax.
func (r Rect) Valid() bool {
	return r.XMin < r.XMax && r.YMin < r.YMax
}

// Scale умножает все координаты на k.
func (r Rect) Scale(k float64) Rect {
	return Rect{XMin: r.XMin * k, YMin: r.YMin * k, XMax: r.XMax * k, YMax: r.YMax * k}
}

// Image converts the box to an integer image rectangle, truncating like the
// detector's own integer boxes.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.XMin), int(r.YMin), int(r.XMax), int(r.YMax))
}

// Ints returns the box as truncated integers.
func (r Rect) Ints() [4]int {
	return [4]int{int(r.XMin), int(r.YMin), int(r.XMax), int(r.YMax)}
}

func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{r.XMin, r.YMin, r.XMax, r.YMax})
}

func (r *Rect) UnmarshalJSON(b []byte) error {
	var a []float64
	if err := json.Unmarshal(b, &a); err != nil {
		return fmt.Errorf("box: %w", err)
	}
	if len(a) != 4 {
		return fmt.Errorf("box: want 4 coordinates, got %d", len(a))
	}
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("box: non-finite coordinate")
		}
	}
	*r = Rect{XMin: a[0], YMin: a[1], XMax: a[2], YMax: a[3]}
	return nil
}
