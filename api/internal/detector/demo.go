package detector

import (
	"context"

	"tidy-room/api/internal/vision"
)

// Demo returns a fixed set of detections scaled to the frame. It stands in for
// the model when no inference service is deployed.
type Demo struct{}

func NewDemo() *Demo { return &Demo{} }

func (Demo) Name() string { return "demo" }

// Демо-объекты в координатах 0..1.
var demoObjects = []Detection{
	{Label: "book", Confidence: 0.92, Box: vision.R(0.50, 0.25, 0.67, 0.37)},
	{Label: "teddy bear", Confidence: 0.85, Box: vision.R(0.17, 0.17, 0.33, 0.33)},
	{Label: "toy car", Confidence: 0.78, Box: vision.R(0.25, 0.42, 0.42, 0.50)},
}

func (Demo) Detect(_ context.Context, frame vision.Frame) ([]Detection, error) {
	if frame.Image == nil {
		return nil, Failed("empty frame")
	}
	w, h := float64(frame.Width()), float64(frame.Height())
	out := make([]Detection, 0, len(demoObjects))
	for _, d := range demoObjects {
		out = append(out, Detection{
			Label:      d.Label,
			Confidence: d.Confidence,
			Box:        vision.R(d.Box.XMin*w, d.Box.YMin*h, d.Box.XMax*w, d.Box.YMax*h),
		})
	}
	return out, nil
}

func (Demo) Classes(context.Context) ([]string, error) {
	out := make([]string, 0, len(demoObjects))
	for _, d := range demoObjects {
		out = append(out, d.Label)
	}
	return out, nil
}
