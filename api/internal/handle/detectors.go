package handle

import (
	"errors"
	"log"
	"net/http"

	"tidy-room/api/internal/detector"
)

func (h *Handle) AvailableClasses(w http.ResponseWriter, r *http.Request) {
	d, err := h.Detectors.Get()
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]any{
		"detector":  d.Name(),
		"available": h.Detectors.Names(),
	}
	if cl, ok := d.(detector.ClassLister); ok {
		classes, err := cl.Classes(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		resp["classes"] = classes
		resp["count"] = len(classes)
	}
	writeJSON(w, http.StatusOK, resp)
}

type switchRequest struct {
	Detector string `json:"detector"`
}

func (h *Handle) SwitchDetector(w http.ResponseWriter, r *http.Request) {
	var req switchRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if req.Detector == "" {
		badRequest(w, errors.New("detector is required"))
		return
	}
	if err := h.Detectors.Use(req.Detector); err != nil {
		badRequest(w, err)
		return
	}
	log.Printf("detector switched to %s", h.Detectors.Active())
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"active":    h.Detectors.Active(),
		"available": h.Detectors.Names(),
	})
}
