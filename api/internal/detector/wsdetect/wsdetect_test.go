package wsdetect

import (
	"context"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/vision"
)

func wsServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.BinaryMessage || len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
			t.Errorf("expected a JPEG binary frame")
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(reply))
	}))
}

func frame() vision.Frame {
	return vision.FromImage(image.NewRGBA(image.Rect(0, 0, 16, 16)))
}

func TestDetect(t *testing.T) {
	srv := wsServer(t, `[{"label":"ball","confidence":0.75,"box":[1,2,10,12]}]`)
	defer srv.Close()

	e := NewURL("ws" + strings.TrimPrefix(srv.URL, "http"))
	dets, err := e.Detect(context.Background(), frame())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(dets) != 1 || dets[0].Label != "ball" || dets[0].Box != vision.R(1, 2, 10, 12) {
		t.Errorf("got %+v", dets)
	}
}

func TestDetect_BadReply(t *testing.T) {
	srv := wsServer(t, `[{"label":"ball","box":[1,2]}]`)
	defer srv.Close()

	_, err := NewURL("ws"+strings.TrimPrefix(srv.URL, "http")).Detect(context.Background(), frame())
	var de *detector.DetectionError
	if !errors.As(err, &de) {
		t.Errorf("got %v", err)
	}
}

func TestDetect_DialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	_, err := New(addr).Detect(context.Background(), frame())
	if !errors.Is(err, detector.ErrUnavailable) {
		t.Errorf("got %v", err)
	}
}
