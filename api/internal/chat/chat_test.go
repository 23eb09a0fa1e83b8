package chat

import (
	"strings"
	"testing"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func TestReply(t *testing.T) {
	a := French
	a.Rand = fixedRand(2)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first match wins", "Pourquoi rouge ?", French.Rules[1].Response + " J'adore ta curiosité !"},
		{"generic why before tidy rule", "pourquoi ranger", French.Rules[12].Response + " J'adore ta curiosité !"},
		{"short message gets no encouragement", "merci", French.Rules[11].Response},
		{"override beats rules", "bonjour, qui es-tu ?", French.Overrides[0].Response + " J'adore ta curiosité !"},
		{"game override", "on joue ?", French.Fallback},
		{"jouer override", "tu veux jouer", French.Overrides[2].Response + " J'adore ta curiosité !"},
		{"fallback", "blablabla", French.Fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Reply(tt.in); got != tt.want {
				t.Errorf("Reply(%q)\n got %q\nwant %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReply_English(t *testing.T) {
	a := For("en")
	a.Rand = fixedRand(0)
	if got := a.Reply("Hello there my friend"); !strings.HasPrefix(got, "Hello my little friend!") || !strings.HasSuffix(got, " You're very clever!") {
		t.Errorf("got %q", got)
	}
}
