package handle

import (
	"log"
	"net/http"
	"time"

	"tidy-room/api/internal/gallery"
)

type drawingJSON struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id,omitempty"`
	CreatedAt      time.Time `json:"date_creation"`
	Description    string    `json:"description"`
	DetectedObject string    `json:"objet_detecte"`
	Image          *string   `json:"image"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	Error          string    `json:"error,omitempty"`
}

func toDrawingJSON(it gallery.Item) drawingJSON {
	d := drawingJSON{
		ID:             it.ID,
		UserID:         it.UserID,
		CreatedAt:      it.CreatedAt,
		Description:    it.Description,
		DetectedObject: it.DetectedObject,
		Thumbnail:      it.Thumbnail,
		Error:          it.Error,
	}
	if it.Image != "" {
		img := it.Image
		d.Image = &img
	}
	return d
}

func (h *Handle) UploadDrawing(w http.ResponseWriter, r *http.Request) {
	data, filename, err := readUpload(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	var uid int64
	if r.FormValue("user_id") != "" {
		if uid, err = h.userID(r); err != nil {
			badRequest(w, err)
			return
		}
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	d, err := h.Gallery.Upload(ctx, uid, data, filename, r.FormValue("description"))
	if err != nil {
		log.Printf("dessins/upload: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"message":       "Dessin enregistré avec succès",
		"dessin_id":     d.ID,
		"objet_detecte": d.DetectedObject,
		"image_path":    d.ImagePath,
	})
}

func (h *Handle) GetDrawing(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		badRequest(w, err)
		return
	}
	it, err := h.Gallery.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDrawingJSON(it))
}

func (h *Handle) ListDrawings(w http.ResponseWriter, r *http.Request) {
	uid, err := pathID(r, "user_id")
	if err != nil {
		badRequest(w, err)
		return
	}
	items, err := h.Gallery.List(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]drawingJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toDrawingJSON(it))
	}
	writeJSON(w, http.StatusOK, out)
}
