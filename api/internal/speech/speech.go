// Package speech relays recorded audio to a transcriber and turns the text
// into a letter-learning reply.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnavailable: no transcriber is configured.
var ErrUnavailable = errors.New("speech recognition unavailable")

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mime, language string) (string, error)
}

// LetterReply answers a child practising letters. Greetings and thanks come
// first; then a single spoken letter ("a", "B") gets a prompt for a word.
func LetterReply(text string) string {
	t := strings.ToLower(text)

	if strings.Contains(t, "bonjour") || strings.Contains(t, "salut") {
		return "Bonjour ! Je suis content de te voir apprendre les lettres aujourd'hui !"
	}
	if strings.Contains(t, "comment") && (strings.Contains(t, "ça va") || strings.Contains(t, "tu vas")) {
		return "Je vais très bien, merci ! Continuons à apprendre les lettres !"
	}
	if strings.Contains(t, "merci") {
		return "De rien ! C'est un plaisir de t'aider à apprendre !"
	}

	words := strings.FieldsFunc(t, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, w := range words {
		if len(w) == 1 && w[0] >= 'a' && w[0] <= 'z' {
			l := strings.ToUpper(w)
			return fmt.Sprintf("Oui, c'est la lettre %s. Peux-tu me donner un mot qui commence par %s ?", l, l)
		}
	}
	return "Essaie de me dire un mot qui commence par la lettre que tu apprends !"
}
