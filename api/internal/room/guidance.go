package room

import (
	"math/rand/v2"

	"tidy-room/api/internal/vision"
)

// Rand picks the encouragement phrase. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Generator composes guidance messages. It has no state besides the random source.
type Generator struct {
	Locale Locale
	Rand   Rand
}

func (g Generator) locale() Locale {
	if g.Locale == nil {
		return French
	}
	return g.Locale
}

func (g Generator) encouragement() string {
	phrases := g.locale().Encouragements()
	if len(phrases) == 0 {
		return ""
	}
	r := g.Rand
	if r == nil {
		r = globalRand{}
	}
	return phrases[r.IntN(len(phrases))]
}

// Generate builds the task for one match result.
func (g Generator) Generate(m MatchResult) GuidanceTask {
	loc := g.locale()
	d := m.Detected
	t := GuidanceTask{
		Name:       d.Label,
		Confidence: d.Confidence,
		Box:        d.Box,
		Color:      d.Color,
		ColorName:  d.ColorName,
		Size:       d.Size,
		Position:   d.Position,
	}
	hint := loc.Hint(d.Label)
	if m.Target == nil {
		t.Message = loc.Unmatched(d, hint)
		return t
	}
	pos := m.Target.Position
	box := m.Target.Box
	t.TargetPosition = &pos
	t.TargetBox = &box
	t.Message = loc.Matched(d, pos, g.encouragement(), hint)
	return t
}

// GenerateAll keeps the order of matches.
func (g Generator) GenerateAll(ms []MatchResult) []GuidanceTask {
	out := make([]GuidanceTask, 0, len(ms))
	for _, m := range ms {
		out = append(out, g.Generate(m))
	}
	return out
}

// zoneOrUnknown is used by locales when a stored reference predates zones.
func zoneOrUnknown(z vision.Zone) vision.Zone {
	if z.IsZero() {
		return vision.Zone{V: vision.Middle, H: vision.Center}
	}
	return z
}
