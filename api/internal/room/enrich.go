package room

import (
	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/vision"
)

// Enrich derives colour, size class and zone for each detection.
// Colour extraction never fails: a bad crop degrades to black.
func Enrich(frame vision.Frame, dets []detector.Detection) []DetectedObject {
	w, h := float64(frame.Width()), float64(frame.Height())
	out := make([]DetectedObject, 0, len(dets))
	for _, d := range dets {
		c := vision.CropDominantColor(frame.Image, d.Box, vision.DefaultClusters)
		out = append(out, DetectedObject{
			Label:      d.Label,
			Confidence: d.Confidence,
			Box:        d.Box,
			Color:      c,
			ColorName:  vision.ColorName(c),
			Size:       vision.SizeOf(d.Box, w, h),
			Position:   vision.PositionOf(d.Box, w, h),
		})
	}
	return out
}

// BuildReference turns detections on the tidy photo into the reference set.
func BuildReference(frame vision.Frame, dets []detector.Detection) []ReferenceObject {
	objs := Enrich(frame, dets)
	out := make([]ReferenceObject, 0, len(objs))
	for _, o := range objs {
		out = append(out, ReferenceObject{
			Label:      o.Label,
			Box:        o.Box,
			Position:   o.Position,
			Confidence: o.Confidence,
			Color:      o.Color,
			Size:       o.Size,
		})
	}
	return out
}
