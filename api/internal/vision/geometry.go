package vision

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// SizeClass is a coarse bucket of the box area relative to the image area.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// ratio==0.20 остаётся medium, ratio==0.05 уже medium.
const (
	largeRatio  = 0.20
	mediumRatio = 0.05
)

// SizeOf classifies box area / image area: >0.20 large, >=0.05 medium, else small.
// Non-positive image dimensions yield small.
func SizeOf(box Rect, width, height float64) SizeClass {
	imageArea := width * height
	if imageArea <= 0 {
		return SizeSmall
	}
	ratio := box.Area() / imageArea
	switch {
	case ratio > largeRatio:
		return SizeLarge
	case ratio >= mediumRatio:
		return SizeMedium
	default:
		return SizeSmall
	}
}

type Vertical string

const (
	Top    Vertical = "top"
	Middle Vertical = "middle"
	Bottom Vertical = "bottom"
)

type Horizontal string

const (
	Left   Horizontal = "left"
	Center Horizontal = "center"
	Right  Horizontal = "right"
)

const (
	firstThird  = 0.33
	secondThird = 0.66
)

// Zone is one of nine coarse image regions.
type Zone struct {
	V Vertical
	H Horizontal
}

// String renders the zone vertical-then-horizontal, e.g. "top left".
func (z Zone) String() string {
	if z.V == "" && z.H == "" {
		return ""
	}
	return string(z.V) + " " + string(z.H)
}

func (z Zone) IsZero() bool { return z.V == "" && z.H == "" }

// ParseZone is the inverse of Zone.String.
func ParseZone(s string) (Zone, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Zone{}, fmt.Errorf("zone %q: want \"<vertical> <horizontal>\"", s)
	}
	z := Zone{V: Vertical(parts[0]), H: Horizontal(parts[1])}
	switch z.V {
	case Top, Middle, Bottom:
	default:
		return Zone{}, fmt.Errorf("zone %q: bad vertical part", s)
	}
	switch z.H {
	case Left, Center, Right:
	default:
		return Zone{}, fmt.Errorf("zone %q: bad horizontal part", s)
	}
	return z, nil
}

func (z Zone) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

func (z *Zone) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*z = Zone{}
		return nil
	}
	parsed, err := ParseZone(s)
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// PositionOf classifies the box centre into the 3x3 grid. Thirds are cut at
// 0.33 and 0.66 of the given width and height, so the result is the same for
// pixel and normalised boxes as long as the dimensions match the box space.
func PositionOf(box Rect, width, height float64) Zone {
	cx, cy := box.Center()

	var h Horizontal
	switch rx := fraction(cx, width); {
	case rx < firstThird:
		h = Left
	case rx < secondThird:
		h = Center
	default:
		h = Right
	}

	var v Vertical
	switch ry := fraction(cy, height); {
	case ry < firstThird:
		v = Top
	case ry < secondThird:
		v = Middle
	default:
		v = Bottom
	}
	return Zone{V: v, H: h}
}

// fraction делит и округляет до 1e-9: масштабирование бокса даёт шум в последних битах.
func fraction(v, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(v/total*1e9) / 1e9
}
