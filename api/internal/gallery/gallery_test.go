package gallery

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/store"
	"tidy-room/api/internal/vision"
)

type stubDetector struct {
	dets []detector.Detection
	err  error
}

func (stubDetector) Name() string { return "stub" }
func (s stubDetector) Detect(context.Context, vision.Frame) ([]detector.Detection, error) {
	return s.dets, s.err
}

func drawing(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.RGBA{255, 200, 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUploadAndList(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := &Service{
		Store: mem,
		Dir:   t.TempDir(),
		Detector: stubDetector{dets: []detector.Detection{
			{Label: "cat", Confidence: 0.4, Box: vision.R(0, 0, 10, 10)},
			{Label: "sun", Confidence: 0.8, Box: vision.R(0, 0, 10, 10)},
		}},
	}

	d, err := svc.Upload(ctx, 5, drawing(t), "maison.PNG", "ma maison")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if d.DetectedObject != "sun" {
		t.Errorf("tag = %q", d.DetectedObject)
	}
	if !strings.HasSuffix(d.ImagePath, ".png") || !strings.Contains(d.ImagePath, "dessin_user5_") {
		t.Errorf("path = %s", d.ImagePath)
	}

	it, err := svc.Get(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(it.Image, "data:image/png;base64,") {
		t.Errorf("image = %.40s", it.Image)
	}

	items, err := svc.List(ctx, 5)
	if err != nil || len(items) != 1 {
		t.Fatalf("List = %v %v", items, err)
	}
	if !strings.HasPrefix(items[0].Thumbnail, "data:image/jpeg;base64,") {
		t.Errorf("thumbnail = %.40s", items[0].Thumbnail)
	}

	if err := os.Remove(d.ImagePath); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, d.ID); !errors.Is(err, ErrImageMissing) {
		t.Errorf("Get after delete: %v", err)
	}
	items, _ = svc.List(ctx, 5)
	if items[0].Error == "" || items[0].Image != "" {
		t.Errorf("missing file not reported: %+v", items[0])
	}
}

func TestUpload_DetectorFailureTolerated(t *testing.T) {
	svc := &Service{Store: store.NewMemory(), Dir: t.TempDir(), Detector: stubDetector{err: detector.Unavailable("down")}}
	d, err := svc.Upload(context.Background(), 0, drawing(t), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if d.DetectedObject != "" || !strings.Contains(d.ImagePath, "dessin_") {
		t.Errorf("drawing = %+v", d)
	}
}

func TestList_UnknownUser(t *testing.T) {
	svc := &Service{Store: store.NewMemory(), Dir: t.TempDir()}
	if _, err := svc.List(context.Background(), 42); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v", err)
	}
}
