// Package gesture simulates letter recognition from a hand photo. The detector
// only confirms a hand or person is visible; whether the sign "matches" is a
// coin toss from the injected random source.
package gesture

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/vision"
)

const (
	matchProbability = 0.3
	minConfidence    = 0.75
	maxConfidence    = 0.95
)

type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

type Recognizer struct {
	Detector detector.Detector
	Rand     Rand
}

type Result struct {
	Detected         bool     `json:"detected"`
	RecognizedLetter *string  `json:"recognized_letter"`
	Confidence       *float64 `json:"confidence,omitempty"`
	Message          string   `json:"message"`
}

func (r Recognizer) Recognize(ctx context.Context, image []byte, currentLetter string) (Result, error) {
	if r.Detector == nil {
		return Result{}, detector.Unavailable("no detector configured")
	}
	frame, err := vision.Decode(image)
	if err != nil {
		return Result{}, &detector.DetectionError{Err: err}
	}
	dets, err := detector.Run(ctx, r.Detector, frame)
	if err != nil {
		return Result{}, err
	}

	hand := false
	for _, d := range dets {
		if d.Label == "person" || d.Label == "hand" {
			hand = true
			break
		}
	}
	if !hand {
		return Result{Detected: false, Message: "Aucune main détectée"}, nil
	}

	rnd := r.Rand
	if rnd == nil {
		rnd = globalRand{}
	}
	if rnd.Float64() >= matchProbability {
		return Result{Detected: true, Message: "Continue d'essayer! Je ne reconnais pas encore la lettre."}, nil
	}
	letter := currentLetter
	conf := math.Round((minConfidence+(maxConfidence-minConfidence)*rnd.Float64())*100) / 100
	return Result{
		Detected:         true,
		RecognizedLetter: &letter,
		Confidence:       &conf,
		Message:          fmt.Sprintf("Bravo ! J'ai reconnu la lettre %s dans ton geste!", currentLetter),
	}, nil
}
