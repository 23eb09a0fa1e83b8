package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tidy-room/api/internal/room"
)

const (
	cbTaskDone = "task_done"
	cbReset    = "tasks_reset"

	maxTasksShown = 10
	maxText       = 3900
)

type botTexts struct {
	Start           string
	AwaitReference  string
	UnknownCommand  string
	DetectorCurrent string
	UnknownDetector string
	Unavailable     string
	BadPhoto        string
	DownloadFailed  string
	InternalError   string
	Done            string
	Reset           string
	Progress        string
}

var frenchTexts = botTexts{
	Start: "Bonjour ! Je t'aide à ranger ta chambre 🧸\n" +
		"1. Envoie /reference puis une photo de ta chambre rangée.\n" +
		"2. Quand c'est le désordre, envoie une photo : je te dirai où remettre chaque objet.\n" +
		"Commandes : /done, /progress, /reset, /detector",
	AwaitReference:  "D'accord ! Envoie-moi une photo de ta chambre bien rangée 📸",
	UnknownCommand:  "Je ne connais pas cette commande.",
	DetectorCurrent: "Détecteur actuel : %s\nDisponibles : %s",
	UnknownDetector: "Détecteur inconnu. Disponibles :",
	Unavailable:     "Le service de détection n'est pas disponible pour le moment. Réessaie plus tard.",
	BadPhoto:        "Je n'arrive pas à lire cette photo. Essaie d'en envoyer une autre.",
	DownloadFailed:  "Je n'ai pas pu récupérer le fichier.",
	InternalError:   "Oups, une erreur est survenue.",
	Done:            "C'est rangé ✅",
	Reset:           "Recommencer 🔄",
	Progress:        "Objets rangés : %d",
}

var englishTexts = botTexts{
	Start: "Hi! I help you tidy your room 🧸\n" +
		"1. Send /reference and then a photo of your tidy room.\n" +
		"2. When it gets messy, send a photo and I'll tell you where each thing goes.\n" +
		"Commands: /done, /progress, /reset, /detector",
	AwaitReference:  "Okay! Send me a photo of your tidy room 📸",
	UnknownCommand:  "I don't know that command.",
	DetectorCurrent: "Current detector: %s\nAvailable: %s",
	UnknownDetector: "Unknown detector. Available:",
	Unavailable:     "Detection is not available right now. Try again later.",
	BadPhoto:        "I can't read this photo. Try another one.",
	DownloadFailed:  "I couldn't fetch the file.",
	InternalError:   "Oops, something went wrong.",
	Done:            "Tidied ✅",
	Reset:           "Start over 🔄",
	Progress:        "Things put away: %d",
}

func makeTaskKeyboard(t botTexts) tgbotapi.InlineKeyboardMarkup {
	done := tgbotapi.NewInlineKeyboardButtonData(t.Done, cbTaskDone)
	reset := tgbotapi.NewInlineKeyboardButtonData(t.Reset, cbReset)
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(done, reset))
}

// formatResult собирает одно сообщение: заголовок, задания, прогресс.
func formatResult(res room.Result) string {
	var b strings.Builder
	b.WriteString(res.Message)
	for i, t := range res.Tasks {
		if i == maxTasksShown {
			fmt.Fprintf(&b, "\n… +%d", len(res.Tasks)-maxTasksShown)
			break
		}
		fmt.Fprintf(&b, "\n\n%d. %s", i+1, t.Message)
	}
	if res.ProgressMessage != "" {
		b.WriteString("\n\n")
		b.WriteString(res.ProgressMessage)
	}
	s := b.String()
	if r := []rune(s); len(r) > maxText {
		s = string(r[:maxText]) + "…"
	}
	return s
}
