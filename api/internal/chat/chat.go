// Package chat answers children's questions from a fixed table of canned replies.
package chat

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Rule maps a substring trigger to a reply. Rules are tried in order.
type Rule struct {
	Trigger  string
	Response string
}

// Override replaces whatever the rules picked when any trigger matches.
type Override struct {
	Triggers []string
	Response string
}

type Assistant struct {
	Rules     []Rule
	Overrides []Override
	Fallback  string

	// Encouragements are appended to messages longer than MinQuestionLen runes.
	Encouragements []string
	MinQuestionLen int

	Rand Rand
}

// Reply never fails; an unknown message gets the fallback.
func (a Assistant) Reply(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))

	resp := a.Fallback
	for _, r := range a.Rules {
		if strings.Contains(msg, r.Trigger) {
			resp = r.Response
			break
		}
	}
	for _, o := range a.Overrides {
		if containsAny(msg, o.Triggers) {
			resp = o.Response
			break
		}
	}

	if len(a.Encouragements) > 0 && utf8.RuneCountInString(msg) > a.MinQuestionLen {
		rnd := a.Rand
		if rnd == nil {
			rnd = globalRand{}
		}
		resp += a.Encouragements[rnd.IntN(len(a.Encouragements))]
	}
	return resp
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// For returns the assistant for a locale tag; French is the default.
func For(tag string) Assistant {
	if strings.EqualFold(strings.TrimSpace(tag), "en") {
		return English
	}
	return French
}
