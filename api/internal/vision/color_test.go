package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// createInMemoryImage creates a solid test image
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDominantColor_Solid(t *testing.T) {
	img := createInMemoryImage(20, 20, color.RGBA{200, 30, 40, 255})
	got := DominantColor(img, 3)
	if got != (RGB{200, 30, 40}) {
		t.Errorf("got %+v, want {200 30 40}", got)
	}
}

func TestDominantColor_LargestClusterWins(t *testing.T) {
	// 70% blue, 20% red, 10% white
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			var c color.Color = color.RGBA{0, 0, 255, 255}
			switch {
			case y >= 9:
				c = color.RGBA{255, 255, 255, 255}
			case y >= 7:
				c = color.RGBA{255, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	got := DominantColor(img, 3)
	if got != (RGB{0, 0, 255}) {
		t.Errorf("got %+v, want blue", got)
	}
}

func TestDominantColor_TwoTones(t *testing.T) {
	// 60% зелёного, 40% жёлтого: побеждает центр большего кластера.
	img := createInMemoryImage(10, 10, color.RGBA{0, 160, 0, 255})
	for y := 6; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{250, 220, 0, 255})
		}
	}
	if got := DominantColor(img, 2); got != (RGB{0, 160, 0}) {
		t.Errorf("got %+v, want {0 160 0}", got)
	}
}

func TestDominantColor_Failures(t *testing.T) {
	if got := DominantColor(nil, 3); got != Black {
		t.Errorf("nil image: got %+v", got)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if got := DominantColor(empty, 3); got != Black {
		t.Errorf("empty image: got %+v", got)
	}
}

func TestDominantColor_FewerPixelsThanClusters(t *testing.T) {
	img := createInMemoryImage(1, 2, color.RGBA{10, 20, 30, 255})
	if got := DominantColor(img, 5); got != (RGB{10, 20, 30}) {
		t.Errorf("got %+v", got)
	}
}

func TestDominantColor_LargeImageIsSampled(t *testing.T) {
	img := createInMemoryImage(400, 300, color.RGBA{0, 128, 0, 255})
	got := DominantColor(img, 3)
	if ColorName(got) != "green" && ColorName(got) != "dark green" {
		t.Errorf("got %+v (%s)", got, ColorName(got))
	}
}

func TestCropDominantColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 255, 255, 255})
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	if got := CropDominantColor(img, R(10, 10, 30, 30), 3); got != (RGB{255, 0, 0}) {
		t.Errorf("crop: got %+v, want red", got)
	}
	if got := CropDominantColor(img, R(200, 200, 300, 300), 3); got != Black {
		t.Errorf("outside: got %+v, want black", got)
	}
}

func TestColorName(t *testing.T) {
	tests := []struct {
		c    RGB
		want string
	}{
		{RGB{255, 0, 0}, "red"},
		{RGB{0, 255, 0}, "green"},
		{RGB{0, 0, 255}, "blue"},
		{RGB{0, 0, 0}, "black"},
		{RGB{255, 255, 255}, "white"},
		{RGB{130, 128, 126}, "gray"},
		{RGB{140, 0, 0}, "dark red"},
		{RGB{245, 245, 220}, "beige"},
		{RGB{64, 224, 208}, "turquoise"},
		{RGB{250, 160, 5}, "orange"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ColorName(tt.c); got != tt.want {
				t.Errorf("ColorName(%+v) = %s, want %s", tt.c, got, tt.want)
			}
		})
	}
}

func TestColorName_TieGoesToFirstEntry(t *testing.T) {
	saved := Palette
	defer func() { Palette = saved }()
	Palette = []NamedColor{
		{Name: "first", RGB: RGB{0, 0, 0}},
		{Name: "second", RGB: RGB{20, 0, 0}},
	}
	if got := ColorName(RGB{10, 0, 0}); got != "first" {
		t.Errorf("got %s, want first", got)
	}
}

func TestPaletteSize(t *testing.T) {
	if len(Palette) < 25 {
		t.Errorf("palette has %d entries", len(Palette))
	}
	seen := map[string]bool{}
	for _, p := range Palette {
		if seen[p.Name] {
			t.Errorf("duplicate palette entry %s", p.Name)
		}
		seen[p.Name] = true
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{255, 128, 0}).Hex(); got != "#ff8000" {
		t.Errorf("got %s", got)
	}
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, createInMemoryImage(4, 3, color.White)); err != nil {
		t.Fatal(err)
	}
	f, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if f.Width() != 4 || f.Height() != 3 || f.Format != "png" || f.MIME != "image/png" {
		t.Errorf("unexpected frame %+v", f)
	}
	if _, err := Decode(nil); err != ErrEmptyImage {
		t.Errorf("nil data: got %v", err)
	}
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}
