package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tidy-room/api/internal/util"
)

// Gemini transcribes audio with a multimodal Gemini model.
type Gemini struct {
	APIKey string
	Model  string
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{APIKey: strings.TrimSpace(apiKey), Model: strings.TrimSpace(model)}
}

func (g *Gemini) Transcribe(ctx context.Context, audio []byte, mime, language string) (string, error) {
	if g.APIKey == "" {
		return "", ErrUnavailable
	}
	if len(audio) == 0 {
		return "", errors.New("empty audio")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.Model)
	temp := float32(0)
	m.GenerationConfig = genai.GenerationConfig{Temperature: &temp}
	if language == "" {
		language = "fr-FR"
	}
	if mime == "" || mime == "application/octet-stream" {
		mime = "audio/wav"
	}

	prompt := fmt.Sprintf("Transcribe this recording of a child speaking (language %s). "+
		"Answer with the transcript only, no quotes, no comments.", language)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt), &genai.Blob{MIMEType: util.PickMIME(mime, "", audio), Data: audio})
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini transcribe: empty response")
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
