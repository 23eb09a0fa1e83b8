package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tidy-room/api/internal/chat"
	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/gallery"
	"tidy-room/api/internal/gesture"
	"tidy-room/api/internal/room"
	"tidy-room/api/internal/speech"
	"tidy-room/api/internal/store"
)

const maxUpload = 20 << 20 // 20 MiB

// statusClientClosed: клиент закрыл соединение до ответа (как в nginx).
const statusClientClosed = 499

type ActivityLogger interface {
	Log(ctx context.Context, a store.Activity) error
}

// Handle serves the HTTP API. Speech and Activity may be nil.
type Handle struct {
	Rooms     *room.Service
	Gallery   *gallery.Service
	Detectors *detector.Manager
	Activity  ActivityLogger
	Chat      chat.Assistant
	Speech    speech.Transcriber
	Gesture   gesture.Recognizer
	Locale    room.Locale

	DefaultUserID int64
	MinConfidence float64
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handle) locale() room.Locale {
	if h.Locale == nil {
		return room.French
	}
	return h.Locale
}

// statusOf maps domain errors to HTTP codes.
func statusOf(err error) int {
	var (
		de *detector.DetectionError
		se *room.StoreError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosed
	case errors.Is(err, room.ErrNoReference), errors.Is(err, room.ErrImageMissing),
		errors.Is(err, store.ErrNotFound), errors.Is(err, gallery.ErrUnknownUser), errors.Is(err, gallery.ErrImageMissing):
		return http.StatusNotFound
	case errors.Is(err, detector.ErrUnavailable), errors.Is(err, speech.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &de):
		return http.StatusBadRequest
	case errors.As(err, &se):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), map[string]string{"status": "error", "error": err.Error()})
}

// requestContext honours X-Request-Timeout (seconds) or ?timeoutSec=.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	ts := r.Header.Get("X-Request-Timeout")
	if ts == "" {
		ts = r.URL.Query().Get("timeoutSec")
	}
	if v, _ := strconv.Atoi(ts); v > 0 {
		return context.WithTimeout(r.Context(), time.Duration(v)*time.Second)
	}
	return context.WithCancel(r.Context())
}

// userID берём из формы или query; иначе пользователь по умолчанию.
func (h *Handle) userID(r *http.Request) (int64, error) {
	v := strings.TrimSpace(r.FormValue("user_id"))
	if v == "" {
		return h.DefaultUserID, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad user_id %q", v)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", name, r.PathValue(name))
	}
	return id, nil
}

// readUpload reads the multipart "file" field.
func readUpload(r *http.Request) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return nil, "", fmt.Errorf("bad multipart form: %w", err)
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("missing file: %w", err)
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxUpload))
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return nil, "", errors.New("empty file")
	}
	return b, hdr.Filename, nil
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxUpload))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("bad json: %w", err)
	}
	return nil
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "error": err.Error()})
}
