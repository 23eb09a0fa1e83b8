package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/util"
	"tidy-room/api/internal/vision"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

const systemPrompt = `You are the object detector of a children's tidy-room assistant.
Find every movable object in the PHOTO of a child's room (toys, books, clothes, cups, balls, bags...).
Use short lowercase English COCO-style labels ("book", "teddy bear", "sports ball", "cup", "backpack").
Return ONLY JSON:
{"objects":[{"label": string, "confidence": number 0..1, "box_2d": [ymin, xmin, ymax, xmax]}]}
box_2d coordinates are integers normalised to 0..1000. No text outside JSON.`

// Ответ модели; box_2d в нативном формат Gemini [ymin, xmin, ymax, xmax] в 0..1000.
type modelOutput struct {
	Objects []struct {
		Label      string    `json:"label"`
		Confidence float64   `json:"confidence"`
		Box2D      []float64 `json:"box_2d"`
	} `json:"objects"`
}

// Detect asks the model for labelled boxes and converts them to pixel space.
func (e *Engine) Detect(ctx context.Context, frame vision.Frame) ([]detector.Detection, error) {
	if e.APIKey == "" {
		return nil, detector.Unavailable("GEMINI_API_KEY is empty")
	}
	data, mime, err := frame.Bytes()
	if err != nil {
		return nil, &detector.DetectionError{Err: err}
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return nil, detector.Unavailable("gemini client: %v", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return nil, detector.Unavailable("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}

	resp, err := m.GenerateContent(ctx,
		genai.Text("Detect the objects. Answer strictly with JSON."),
		&genai.Blob{MIMEType: util.PickMIME("", mime, data), Data: data},
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, detector.Unavailable("gemini: %v", err)
	}
	txt := util.ExtractJSON(firstText(resp))
	if txt == "" {
		return nil, detector.Failed("gemini detect: empty response")
	}
	return parseOutput(txt, float64(frame.Width()), float64(frame.Height()))
}

func parseOutput(txt string, w, h float64) ([]detector.Detection, error) {
	var out modelOutput
	if err := json.Unmarshal([]byte(txt), &out); err != nil {
		return nil, detector.Failed("gemini detect: bad JSON: %v", err)
	}
	dets := make([]detector.Detection, 0, len(out.Objects))
	for _, o := range out.Objects {
		label := strings.ToLower(strings.TrimSpace(o.Label))
		if label == "" || len(o.Box2D) != 4 {
			continue
		}
		box := vision.R(
			o.Box2D[1]*w/1000, o.Box2D[0]*h/1000,
			o.Box2D[3]*w/1000, o.Box2D[2]*h/1000,
		)
		if !box.Valid() {
			continue
		}
		conf := o.Confidence
		if conf <= 0 || conf > 1 {
			conf = 0.5
		}
		dets = append(dets, detector.Detection{Label: label, Confidence: conf, Box: box})
	}
	return dets, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }

