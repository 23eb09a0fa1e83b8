package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"tidy-room/api/internal/chat"
	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/gallery"
	"tidy-room/api/internal/gesture"
	"tidy-room/api/internal/room"
	"tidy-room/api/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	det := detector.NewManager(detector.NewDemo())
	h := &Handle{
		Rooms:         &room.Service{Detector: det, Refs: mem, Progress: mem, RoomsDir: t.TempDir()},
		Gallery:       &gallery.Service{Store: mem, Detector: det, Dir: t.TempDir()},
		Detectors:     det,
		Activity:      mem,
		Chat:          chat.For("fr"),
		Gesture:       gesture.Recognizer{Detector: det},
		DefaultUserID: 1,
		MinConfidence: 0.5,
	}
	mux := http.NewServeMux()
	h.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mem
}

func photo(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{200, 30, 30, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func postFile(t *testing.T, url string, file []byte, fields map[string]string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", "room.png")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(file)
	}
	_ = mw.Close()
	resp, err := http.Post(url, mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestDetectObjects_NoReference(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postFile(t, srv.URL+"/detect_objects/", photo(t), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	got := decode[room.Result](t, resp)
	if got.Message != room.French.NoReference() {
		t.Errorf("message=%q", got.Message)
	}
	if len(got.Tasks) != 0 {
		t.Errorf("tasks=%v", got.Tasks)
	}
}

func TestReferenceThenDetect(t *testing.T) {
	srv, _ := newTestServer(t)
	img := photo(t)

	resp := postFile(t, srv.URL+"/chambre/upload_reference/", img, map[string]string{"user_id": "7"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status=%d", resp.StatusCode)
	}
	up := decode[map[string]any](t, resp)
	if up["objects_detected"] != float64(3) {
		t.Errorf("objects_detected=%v", up["objects_detected"])
	}

	resp = get(t, srv.URL+"/chambre/get_reference/?user_id=7")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get_reference status=%d", resp.StatusCode)
	}

	resp = postFile(t, srv.URL+"/detect_objects/", img, map[string]string{"user_id": "7"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("detect status=%d", resp.StatusCode)
	}
	got := decode[room.Result](t, resp)
	if got.TotalTasks != 3 || len(got.Tasks) != 3 {
		t.Fatalf("tasks=%d total=%d", len(got.Tasks), got.TotalTasks)
	}
	for i, task := range got.Tasks {
		if task.TargetPosition == nil {
			t.Errorf("task %d (%s) has no target", i, task.Name)
		}
		if i > 0 && task.Confidence > got.Tasks[i-1].Confidence {
			t.Errorf("tasks not ordered by confidence")
		}
	}

	resp = postFile(t, srv.URL+"/complete_task/", nil, map[string]string{"user_id": "7"})
	done := decode[map[string]any](t, resp)
	if done["completed_tasks"] != float64(1) {
		t.Errorf("completed_tasks=%v", done["completed_tasks"])
	}
}

func TestUnmatchedTargetIsNull(t *testing.T) {
	task := room.GuidanceTask{Name: "book"}
	b, err := json.Marshal(task)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b, []byte(`"target_position":null`)) {
		t.Errorf("json=%s", b)
	}
}

func TestStatusMapping(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		resp func() *http.Response
		want int
	}{
		{"missing file", func() *http.Response { return postFile(t, srv.URL+"/detect_objects/", nil, nil) }, http.StatusBadRequest},
		{"bad user id", func() *http.Response { return postFile(t, srv.URL+"/detect_objects/", photo(t), map[string]string{"user_id": "abc"}) }, http.StatusBadRequest},
		{"no reference", func() *http.Response { return get(t, srv.URL+"/chambre/get_reference/?user_id=42") }, http.StatusNotFound},
		{"complete without reference", func() *http.Response { return postFile(t, srv.URL+"/complete_task/", nil, map[string]string{"user_id": "42"}) }, http.StatusNotFound},
		{"reset without reference", func() *http.Response { return postFile(t, srv.URL+"/reset_tasks/", nil, map[string]string{"user_id": "42"}) }, http.StatusNotFound},
		{"undecodable reference", func() *http.Response { return postFile(t, srv.URL+"/chambre/upload_reference/", []byte("nope"), nil) }, http.StatusBadRequest},
		{"unknown detector", func() *http.Response { return postJSON(t, srv.URL+"/switch_detector", `{"detector":"yolo9000"}`) }, http.StatusBadRequest},
		{"speech disabled", func() *http.Response { return postJSON(t, srv.URL+"/recognize_speech/", `{"audio_data":"AAAA"}`) }, http.StatusServiceUnavailable},
		{"unknown drawing", func() *http.Response { return get(t, srv.URL+"/dessins/99") }, http.StatusNotFound},
		{"unknown gallery user", func() *http.Response { return get(t, srv.URL+"/dessins/utilisateur/99") }, http.StatusNotFound},
		{"bad drawing id", func() *http.Response { return get(t, srv.URL+"/dessins/abc") }, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.resp().StatusCode; got != tc.want {
				t.Errorf("status=%d want %d", got, tc.want)
			}
		})
	}
}

func TestStatusOf_DetectorErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"client gone", fmt.Errorf("http: %w", context.Canceled), statusClientClosed},
		{"timeout", detector.Unavailable("http timed out"), http.StatusServiceUnavailable},
		{"bad image", detector.Failed("decode: %v", errors.New("eof")), http.StatusBadRequest},
		{"store", &room.StoreError{Err: errors.New("conn reset")}, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusOf(tc.err); got != tc.want {
				t.Errorf("status=%d want %d", got, tc.want)
			}
		})
	}
}

func TestSimpleDetectAndDescribe(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postFile(t, srv.URL+"/simple_detect_objects/", photo(t), nil)
	got := decode[map[string]any](t, resp)
	if got["success"] != true || got["total_detected"] != float64(3) {
		t.Fatalf("resp=%v", got)
	}
	first := got["detected_objects"].([]any)[0].(map[string]any)
	if first["name"] != "livre" {
		t.Errorf("name=%v", first["name"])
	}
	if first["color_hex"] != "#c81e1e" {
		t.Errorf("color_hex=%v", first["color_hex"])
	}

	resp = postFile(t, srv.URL+"/describe_object/", photo(t), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("describe status=%d", resp.StatusCode)
	}
}

func TestDrawings(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postFile(t, srv.URL+"/dessins/upload/", photo(t), map[string]string{"user_id": "3", "description": "ma maison"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status=%d", resp.StatusCode)
	}
	up := decode[map[string]any](t, resp)
	if up["objet_detecte"] != "book" {
		t.Errorf("objet_detecte=%v", up["objet_detecte"])
	}
	id := int(up["dessin_id"].(float64))

	resp = get(t, srv.URL+"/dessins/"+strconv.Itoa(id))
	one := decode[map[string]any](t, resp)
	if one["description"] != "ma maison" || one["image"] == nil {
		t.Errorf("drawing=%v", one)
	}

	resp = get(t, srv.URL+"/dessins/utilisateur/3")
	list := decode[[]map[string]any](t, resp)
	if len(list) != 1 || list[0]["thumbnail"] == "" {
		t.Errorf("list=%v", list)
	}
}

func TestAssistantEndpoints(t *testing.T) {
	srv, mem := newTestServer(t)

	resp := postJSON(t, srv.URL+"/chat_with_assistant/", `{"message":"bonjour"}`)
	chatResp := decode[map[string]any](t, resp)
	if chatResp["success"] != true || chatResp["response"] == "" {
		t.Errorf("chat=%v", chatResp)
	}

	resp = postJSON(t, srv.URL+"/log-activity/", `{"user_id":5,"activity_type":"rangement","details":{"n":2}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("log status=%d", resp.StatusCode)
	}
	acts := mem.Activities()
	if len(acts) != 1 || acts[0].UserID != 5 || acts[0].Type != "rangement" {
		t.Errorf("activities=%+v", acts)
	}

	resp = postJSON(t, srv.URL+"/log-activity/", `{"user_id":5}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing type status=%d", resp.StatusCode)
	}
}

func TestDetectors(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := get(t, srv.URL+"/available_classes")
	got := decode[map[string]any](t, resp)
	if got["detector"] != "demo" || got["count"] != float64(3) {
		t.Errorf("classes=%v", got)
	}

	resp = postJSON(t, srv.URL+"/switch_detector", `{"detector":"demo"}`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("switch status=%d", resp.StatusCode)
	}
}

