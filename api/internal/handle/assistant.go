package handle

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"tidy-room/api/internal/speech"
	"tidy-room/api/internal/store"
	"tidy-room/api/internal/util"
)

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

func (h *Handle) ChatWithAssistant(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"response": h.Chat.Reply(req.Message), "success": true})
}

type speechRequest struct {
	AudioData string `json:"audio_data"`
	Language  string `json:"language"`
}

func (h *Handle) RecognizeSpeech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if h.Speech == nil {
		writeError(w, speech.ErrUnavailable)
		return
	}
	audio, hint, err := util.DecodeBase64MaybeDataURL(req.AudioData)
	if err != nil || len(audio) == 0 {
		badRequest(w, errors.New("bad audio_data"))
		return
	}
	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = "fr-FR"
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	text, err := h.Speech.Transcribe(ctx, audio, hint, lang)
	if err != nil {
		log.Printf("recognize_speech: %v", err)
		writeJSON(w, statusOf(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"recognized_text": text, "response": speech.LetterReply(text)})
}

type gestureRequest struct {
	Image         string `json:"image"`
	ImageData     string `json:"image_data"`
	CurrentLetter string `json:"current_letter"`
}

func (h *Handle) RecognizeHandGesture(w http.ResponseWriter, r *http.Request) {
	var req gestureRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	raw := req.Image
	if raw == "" {
		raw = req.ImageData
	}
	img, _, err := util.DecodeBase64MaybeDataURL(raw)
	if err != nil || len(img) == 0 {
		badRequest(w, errors.New("bad image"))
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	res, err := h.Gesture.Recognize(ctx, img, req.CurrentLetter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type activityRequest struct {
	UserID       int64          `json:"user_id"`
	ActivityType string         `json:"activity_type"`
	Details      map[string]any `json:"details"`
	Timestamp    *time.Time     `json:"timestamp"`
}

func (h *Handle) LogActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if strings.TrimSpace(req.ActivityType) == "" {
		badRequest(w, errors.New("activity_type is required"))
		return
	}
	a := store.Activity{UserID: req.UserID, Type: req.ActivityType, Details: req.Details}
	if a.UserID == 0 {
		a.UserID = h.DefaultUserID
	}
	if req.Timestamp != nil {
		a.Timestamp = *req.Timestamp
	}
	log.Printf("activity: user=%d type=%s", a.UserID, a.Type)
	if h.Activity != nil {
		if err := h.Activity.Log(r.Context(), a); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Activité enregistrée avec succès"})
}
