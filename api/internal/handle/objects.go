package handle

import (
	"net/http"

	"tidy-room/api/internal/vision"
)

type simpleObject struct {
	Class      string      `json:"class"`
	Name       string      `json:"name"`
	Confidence float64     `json:"confidence"`
	Box        vision.Rect `json:"box"`
	Color      string      `json:"color"`
	Size       string      `json:"size"`
	ColorRGB   vision.RGB  `json:"color_rgb"`
	ColorHex   string      `json:"color_hex"`
}

// SimpleDetect lists what the camera sees, without any reference room.
func (h *Handle) SimpleDetect(w http.ResponseWriter, r *http.Request) {
	img, _, err := readUpload(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	objs, err := h.Rooms.SimpleDetect(ctx, img, h.MinConfidence)
	if err != nil {
		writeJSON(w, statusOf(err), map[string]any{
			"success":          false,
			"message":          err.Error(),
			"detected_objects": []simpleObject{},
			"error":            err.Error(),
		})
		return
	}
	loc := h.locale()
	out := make([]simpleObject, 0, len(objs))
	for _, o := range objs {
		name := loc.Label(o.Label)
		out = append(out, simpleObject{
			Class:      name,
			Name:       name,
			Confidence: o.Confidence,
			Box:        o.Box,
			Color:      loc.ColorName(o.ColorName),
			Size:       loc.SizeName(o.Size),
			ColorRGB:   o.Color,
			ColorHex:   o.Color.Hex(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"message":          loc.ObjectsFound(len(out)),
		"detected_objects": out,
		"total_detected":   len(out),
	})
}

// DescribeObject describes the object the child holds up to the camera.
func (h *Handle) DescribeObject(w http.ResponseWriter, r *http.Request) {
	img, _, err := readUpload(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	obj, ok, err := h.Rooms.Describe(ctx, img)
	if err != nil {
		writeError(w, err)
		return
	}
	loc := h.locale()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"description": loc.NothingInHand(), "object_found": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"description":  loc.Describe(obj),
		"object_found": true,
		"object_name":  loc.Label(obj.Label),
		"color":        loc.ColorName(obj.ColorName),
		"size":         loc.SizeName(obj.Size),
		"confidence":   obj.Confidence,
	})
}
