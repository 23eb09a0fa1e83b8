// Package wsdetect sends frames to a detection server over a websocket:
// one JPEG binary message out, one JSON array of detections back.
package wsdetect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/jpeg"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/vision"
)

type Engine struct {
	serverURL string
	dialer    *websocket.Dialer
}

func New(host string) *Engine {
	u := url.URL{Scheme: "ws", Host: host, Path: "/ws"}
	return NewURL(u.String())
}

func NewURL(serverURL string) *Engine {
	return &Engine{
		serverURL: serverURL,
		dialer:    &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

func (e *Engine) Name() string { return "ws" }

type wireResult struct {
	Label      string    `json:"label"`
	Confidence float32   `json:"confidence"`
	Box        []float32 `json:"box"`
}

func (e *Engine) Detect(ctx context.Context, frame vision.Frame) ([]detector.Detection, error) {
	if frame.Image == nil {
		return nil, detector.Failed("empty frame")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame.Image, nil); err != nil {
		return nil, detector.Failed("JPEG encode: %v", err)
	}

	conn, _, err := e.dialer.DialContext(ctx, e.serverURL, nil)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ctx.Err()
		}
		return nil, detector.Unavailable("dial %s: %v", e.serverURL, err)
	}
	defer conn.Close()

	// закрываем соединение при отмене контекста, чтобы ReadMessage не висел
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
		return nil, e.connErr(ctx, err)
	}
	_, message, err := conn.ReadMessage()
	if err != nil {
		return nil, e.connErr(ctx, err)
	}

	var results []wireResult
	if err := json.Unmarshal(message, &results); err != nil {
		return nil, detector.Failed("JSON decode: %v", err)
	}
	out := make([]detector.Detection, 0, len(results))
	for _, r := range results {
		if len(r.Box) != 4 {
			return nil, detector.Failed("detection %q: want 4 box coordinates, got %d", r.Label, len(r.Box))
		}
		box := vision.R(float64(r.Box[0]), float64(r.Box[1]), float64(r.Box[2]), float64(r.Box[3]))
		if !box.Valid() {
			return nil, detector.Failed("detection %q: invalid box %v", r.Label, box)
		}
		out = append(out, detector.Detection{Label: r.Label, Confidence: float64(r.Confidence), Box: box})
	}
	return out, nil
}

func (e *Engine) connErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ctx.Err(), err)
	}
	return detector.Unavailable("connection lost: %v", err)
}
