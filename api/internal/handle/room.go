package handle

import (
	"log"
	"net/http"
)

// DetectObjects reconciles a photo of the messy room with the reference.
func (h *Handle) DetectObjects(w http.ResponseWriter, r *http.Request) {
	img, _, err := readUpload(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	uid, err := h.userID(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := h.Rooms.Reconcile(ctx, uid, img)
	if err != nil {
		log.Printf("detect_objects: user=%d: %v", uid, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handle) UploadReference(w http.ResponseWriter, r *http.Request) {
	img, _, err := readUpload(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	uid, err := h.userID(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	c, err := h.Rooms.CaptureReference(ctx, uid, img)
	if err != nil {
		log.Printf("upload_reference: user=%d: %v", uid, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "success",
		"message":          h.locale().ReferenceSaved(),
		"objects_detected": c.ObjectsDetected,
		"file_path":        c.FilePath,
	})
}

func (h *Handle) GetReference(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	ref, err := h.Rooms.GetReference(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"image_path":      ref.ImagePath,
		"width":           ref.Width,
		"height":          ref.Height,
		"objects":         ref.Objects,
		"completed_tasks": ref.CompletedTasks,
	})
}

func (h *Handle) CompleteTask(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	n, msg, err := h.Rooms.CompleteTask(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"completed_tasks": n, "progress_message": msg})
}

func (h *Handle) ResetTasks(w http.ResponseWriter, r *http.Request) {
	uid, err := h.userID(r)
	if err != nil {
		badRequest(w, err)
		return
	}
	if err := h.Rooms.ResetTasks(r.Context(), uid); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": h.locale().ResetDone(), "completed_tasks": 0})
}
