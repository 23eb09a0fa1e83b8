package vision

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

// RGB is an 8-bit colour. On the wire it is [r, g, b].
type RGB struct {
	R, G, B uint8
}

var Black = RGB{}

func (c RGB) Hex() string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{int(c.R), int(c.G), int(c.B)})
}

func (c *RGB) UnmarshalJSON(b []byte) error {
	var a []int
	if err := json.Unmarshal(b, &a); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if len(a) != 3 {
		return fmt.Errorf("color: want 3 components, got %d", len(a))
	}
	*c = RGB{R: clamp8(a[0]), G: clamp8(a[1]), B: clamp8(a[2])}
	return nil
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

const (
	DefaultClusters = 3

	// Критерий остановки как у cv2.kmeans: 100 итераций или сдвиг центров < 0.2.
	maxIterations = 100
	epsilon       = 0.2
	attempts      = 10

	// Крупные кропы уменьшаем до этого размера перед кластеризацией.
	maxSampleSide = 96
)

// CropDominantColor crops box out of img and returns its dominant colour.
// The box is clipped to the image bounds; an empty intersection yields black.
func CropDominantColor(img image.Image, box Rect, k int) RGB {
	if img == nil {
		return Black
	}
	r := box.Image().Intersect(img.Bounds())
	if r.Empty() {
		return Black
	}
	return DominantColor(imaging.Crop(img, r), k)
}

// DominantColor clusters the pixels of img into k groups (k<=0 means 3) with
// OpenCV k-means and returns the centre of the most populated cluster. On a
// tie the lower cluster index wins. Any failure degrades to black.
func DominantColor(img image.Image, k int) (out RGB) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("dominant color: %v", rec)
			out = Black
		}
	}()
	if img == nil || img.Bounds().Empty() {
		return Black
	}
	if k <= 0 {
		k = DefaultClusters
	}

	b := img.Bounds()
	if b.Dx() > maxSampleSide || b.Dy() > maxSampleSide {
		img = imaging.Fit(img, maxSampleSide, maxSampleSide, imaging.Box)
	}
	samples := pixelMat(img)
	defer samples.Close()
	n := samples.Rows()
	if n == 0 {
		return Black
	}
	if k > n {
		k = n
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, maxIterations, epsilon)
	gocv.KMeans(samples, k, &labels, criteria, attempts, gocv.KMeansRandomCenters, &centers)
	if centers.Rows() < k || labels.Rows() != n {
		return Black
	}

	counts := make([]int, k)
	for i := 0; i < n; i++ {
		if l := int(labels.GetIntAt(i, 0)); l >= 0 && l < k {
			counts[l]++
		}
	}
	best := 0
	for c := 1; c < k; c++ {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return RGB{
		R: clampF(centers.GetFloatAt(best, 0)),
		G: clampF(centers.GetFloatAt(best, 1)),
		B: clampF(centers.GetFloatAt(best, 2)),
	}
}

// pixelMat раскладывает картинку в матрицу (w*h) x 3 float32, по строке на пиксель.
func pixelMat(img image.Image) gocv.Mat {
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()
	m := gocv.NewMatWithSize(w*h, 3, gocv.MatTypeCV32F)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w; x++ {
			idx := y*w + x
			m.SetFloatAt(idx, 0, float32(row[x*4]))
			m.SetFloatAt(idx, 1, float32(row[x*4+1]))
			m.SetFloatAt(idx, 2, float32(row[x*4+2]))
		}
	}
	return m
}

func clampF(v float32) uint8 {
	return clamp8(int(math.Round(float64(v))))
}
