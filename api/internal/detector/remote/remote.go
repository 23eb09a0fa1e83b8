// Package remote talks to an inference service over HTTP: the image goes out
// as multipart "file", detections come back as JSON.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/vision"
)

type Engine struct {
	URL   string // напр. http://localhost:5000/predict
	httpc *http.Client
}

func New(url string) *Engine {
	return &Engine{
		URL:   strings.TrimSpace(url),
		httpc: &http.Client{Timeout: 60 * time.Second},
	}
}

var (
	_ detector.Detector      = (*Engine)(nil)
	_ detector.HealthChecker = (*Engine)(nil)
)

func (e *Engine) Name() string { return "http" }

// wireDetection принимает оба распространённых формата ответа:
// {label|name, confidence, box:[x0,y0,x1,y1]} и {xmin,ymin,xmax,ymax}.
type wireDetection struct {
	Label      string    `json:"label"`
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Box        []float64 `json:"box"`
	XMin       *float64  `json:"xmin"`
	YMin       *float64  `json:"ymin"`
	XMax       *float64  `json:"xmax"`
	YMax       *float64  `json:"ymax"`
}

func (w wireDetection) toDetection() (detector.Detection, error) {
	label := strings.TrimSpace(w.Label)
	if label == "" {
		label = strings.TrimSpace(w.Name)
	}
	if label == "" {
		return detector.Detection{}, fmt.Errorf("detection without label")
	}
	var box vision.Rect
	switch {
	case len(w.Box) == 4:
		box = vision.R(w.Box[0], w.Box[1], w.Box[2], w.Box[3])
	case w.XMin != nil && w.YMin != nil && w.XMax != nil && w.YMax != nil:
		box = vision.R(*w.XMin, *w.YMin, *w.XMax, *w.YMax)
	default:
		return detector.Detection{}, fmt.Errorf("detection %q without box", label)
	}
	if !box.Valid() {
		return detector.Detection{}, fmt.Errorf("detection %q has invalid box %v", label, box)
	}
	return detector.Detection{Label: label, Confidence: w.Confidence, Box: box}, nil
}

func (e *Engine) Detect(ctx context.Context, frame vision.Frame) ([]detector.Detection, error) {
	if e.URL == "" {
		return nil, detector.Unavailable("DETECTOR_URL is empty")
	}
	data, _, err := frame.Bytes()
	if err != nil {
		return nil, &detector.DetectionError{Err: err}
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "image."+formatExt(frame.Format))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("copy image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, detector.Unavailable("send request: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusServiceUnavailable, resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusGatewayTimeout:
		return nil, detector.Unavailable("inference status %d", resp.StatusCode)
	default:
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, detector.Failed("inference %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var result struct {
		Detections []wireDetection `json:"detections"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, detector.Failed("decode response: %v", err)
	}
	out := make([]detector.Detection, 0, len(result.Detections))
	for _, w := range result.Detections {
		d, err := w.toDetection()
		if err != nil {
			return nil, &detector.DetectionError{Err: err}
		}
		out = append(out, d)
	}
	return out, nil
}

// Classes reads {"classes": [...]} from <base>/classes.
func (e *Engine) Classes(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.sibling("classes"), nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, detector.Unavailable("classes: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classes: status %d", resp.StatusCode)
	}
	var out struct {
		Classes []string `json:"classes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}
	return out.Classes, nil
}

// CheckHealth проверяет доступность ML-сервиса.
func (e *Engine) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.sibling("health"), nil)
	if err != nil {
		return err
	}
	resp, err := e.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml service unhealthy: %d", resp.StatusCode)
	}
	return nil
}

// sibling заменяет последний сегмент пути: /predict -> /health.
func (e *Engine) sibling(name string) string {
	u := strings.TrimRight(e.URL, "/")
	if i := strings.LastIndex(u, "/"); i > len("https://") {
		return u[:i+1] + name
	}
	return u + "/" + name
}

func formatExt(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "":
		return "png"
	}
	return format
}
