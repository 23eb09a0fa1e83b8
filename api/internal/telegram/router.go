package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tidy-room/api/internal/chat"
	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/room"
	"tidy-room/api/internal/speech"
)

// Bot is the part of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Router drives the tidy-room flow from a Telegram chat. The chat ID is the
// user ID.
type Router struct {
	Bot       Bot
	Rooms     *room.Service
	Detectors *detector.Manager
	Chat      chat.Assistant
	Speech    speech.Transcriber
	Locale    room.Locale

	// Timeout на обработку одного апдейта.
	Timeout time.Duration
}

func (r *Router) texts() botTexts {
	if r.Locale != nil && r.Locale.Tag() == "en" {
		return englishTexts
	}
	return frenchTexts
}

func (r *Router) locale() room.Locale {
	if r.Locale == nil {
		return room.French
	}
	return r.Locale
}

func (r *Router) context() (context.Context, context.CancelFunc) {
	if r.Timeout > 0 {
		return context.WithTimeout(context.Background(), r.Timeout)
	}
	return context.WithCancel(context.Background())
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	// callback-кнопки
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	msg := upd.Message
	switch {
	case msg.IsCommand():
		r.HandleCommand(msg)
	case len(msg.Photo) > 0:
		r.acceptPhoto(*msg)
	case msg.Voice != nil:
		r.acceptVoice(*msg)
	case strings.TrimSpace(msg.Text) != "":
		r.send(msg.Chat.ID, r.Chat.Reply(msg.Text))
	}
}

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	t := r.texts()
	switch msg.Command() {
	case "start", "help":
		r.send(cid, t.Start)
	case "reference":
		setMode(cid, modeAwaitReference)
		r.send(cid, t.AwaitReference)
	case "done":
		r.completeTask(cid)
	case "progress":
		r.showProgress(cid)
	case "reset":
		r.resetTasks(cid)
	case "detector":
		r.handleDetectorCommand(cid, msg.CommandArguments())
	default:
		r.send(cid, t.UnknownCommand)
	}
}

// handleDetectorCommand: /detector показывает текущий, /detector <name> переключает.
func (r *Router) handleDetectorCommand(chatID int64, args string) {
	t := r.texts()
	if r.Detectors == nil {
		r.send(chatID, t.UnknownDetector)
		return
	}
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		r.send(chatID, fmt.Sprintf(t.DetectorCurrent, r.Detectors.Active(), strings.Join(r.Detectors.Names(), " | ")))
		return
	}
	if err := r.Detectors.Use(name); err != nil {
		r.send(chatID, t.UnknownDetector+" "+strings.Join(r.Detectors.Names(), " | "))
		return
	}
	r.send(chatID, "✅ "+name)
}

func (r *Router) completeTask(chatID int64) {
	ctx, cancel := r.context()
	defer cancel()
	n, msg, err := r.Rooms.CompleteTask(ctx, chatID)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	r.send(chatID, fmt.Sprintf("%s (%d)", msg, n))
}

func (r *Router) showProgress(chatID int64) {
	ctx, cancel := r.context()
	defer cancel()
	n, err := r.Rooms.Completed(ctx, chatID)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	r.send(chatID, fmt.Sprintf(r.texts().Progress, n))
}

func (r *Router) resetTasks(chatID int64) {
	ctx, cancel := r.context()
	defer cancel()
	if err := r.Rooms.ResetTasks(ctx, chatID); err != nil {
		r.SendError(chatID, err)
		return
	}
	r.send(chatID, r.locale().ResetDone())
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram send chat=%d: %v", chatID, err)
	}
}

func (r *Router) SendError(chatID int64, err error) {
	t := r.texts()
	var de *detector.DetectionError
	switch {
	case errors.Is(err, room.ErrNoReference):
		r.send(chatID, r.locale().NoReference())
	case errors.Is(err, detector.ErrUnavailable), errors.Is(err, speech.ErrUnavailable):
		r.send(chatID, t.Unavailable)
	case errors.As(err, &de):
		r.send(chatID, t.BadPhoto)
	default:
		log.Printf("telegram chat=%d: %v", chatID, err)
		r.send(chatID, t.InternalError)
	}
}
