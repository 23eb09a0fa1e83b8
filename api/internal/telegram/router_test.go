package telegram

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tidy-room/api/internal/chat"
	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/room"
	"tidy-room/api/internal/store"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests int
	fileURL  string
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetFileDirectURL(string) (string, error) { return b.fileURL, nil }

// texts возвращает тексты отправленных сообщений.
func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (b *fakeBot) last() string {
	t := b.texts()
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

func roomPhoto(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{40, 90, 200, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newRouter(t *testing.T) (*Router, *fakeBot) {
	t.Helper()
	photo := roomPhoto(t)
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(photo)
	}))
	t.Cleanup(files.Close)

	mem := store.NewMemory()
	det := detector.NewManager(detector.NewDemo())
	bot := &fakeBot{fileURL: files.URL + "/photo.png"}
	return &Router{
		Bot:       bot,
		Rooms:     &room.Service{Detector: det, Refs: mem, Progress: mem, RoomsDir: t.TempDir()},
		Detectors: det,
		Chat:      chat.For("fr"),
	}, bot
}

func command(chatID int64, text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func photoUpdate(chatID int64) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: chatID},
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "big"}},
	}}
}

func TestRouter_ReferenceThenReconcile(t *testing.T) {
	r, bot := newRouter(t)
	const cid = 100

	r.HandleUpdate(photoUpdate(cid))
	if got := bot.last(); got != room.French.NoReference() {
		t.Fatalf("without reference got %q", got)
	}

	r.HandleUpdate(command(cid, "/reference"))
	if got := bot.last(); got != frenchTexts.AwaitReference {
		t.Fatalf("got %q", got)
	}
	r.HandleUpdate(photoUpdate(cid))
	if got := bot.last(); !strings.HasPrefix(got, room.French.ReferenceSaved()) {
		t.Fatalf("reference reply %q", got)
	}
	if getMode(cid) != "" {
		t.Errorf("mode not cleared")
	}

	r.HandleUpdate(photoUpdate(cid))
	got := bot.last()
	if !strings.HasPrefix(got, room.French.TasksFound(3)) || !strings.Contains(got, "\n\n3. ") {
		t.Errorf("reconcile reply %q", got)
	}
	bot.mu.Lock()
	lastMsg := bot.sent[len(bot.sent)-1].(tgbotapi.MessageConfig)
	bot.mu.Unlock()
	if lastMsg.ReplyMarkup == nil {
		t.Errorf("expected task keyboard")
	}
}

func TestRouter_ButtonsAndCommands(t *testing.T) {
	r, bot := newRouter(t)
	const cid = 200

	r.HandleUpdate(command(cid, "/done"))
	if got := bot.last(); got != room.French.NoReference() {
		t.Errorf("done without reference: %q", got)
	}

	r.HandleUpdate(command(cid, "/reference"))
	r.HandleUpdate(photoUpdate(cid))

	cb := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    cbTaskDone,
		Message: &tgbotapi.Message{MessageID: 9, Chat: &tgbotapi.Chat{ID: cid}},
	}}
	r.HandleUpdate(cb)
	if bot.requests != 1 {
		t.Errorf("callback not acknowledged")
	}
	if got := bot.last(); !strings.HasSuffix(got, "(1)") {
		t.Errorf("done reply %q", got)
	}

	r.HandleUpdate(command(cid, "/progress"))
	if got := bot.last(); got != "Objets rangés : 1" {
		t.Errorf("progress reply %q", got)
	}

	cb.CallbackQuery.Data = cbReset
	r.HandleUpdate(cb)
	if got := bot.last(); got != room.French.ResetDone() {
		t.Errorf("reset reply %q", got)
	}

	r.HandleUpdate(command(cid, "/detector"))
	if got := bot.last(); !strings.Contains(got, "demo") {
		t.Errorf("detector reply %q", got)
	}
	r.HandleUpdate(command(cid, "/detector nope"))
	if got := bot.last(); !strings.HasPrefix(got, frenchTexts.UnknownDetector) {
		t.Errorf("unknown detector reply %q", got)
	}

	r.HandleUpdate(command(cid, "/whatever"))
	if got := bot.last(); got != frenchTexts.UnknownCommand {
		t.Errorf("unknown command reply %q", got)
	}
}

func TestRouter_TextAndVoice(t *testing.T) {
	r, bot := newRouter(t)

	r.HandleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "bonjour"}})
	if got := bot.last(); got != r.Chat.Reply("bonjour") {
		t.Errorf("chat reply %q", got)
	}

	r.HandleUpdate(tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Voice: &tgbotapi.Voice{FileID: "v"}}})
	if got := bot.last(); got != frenchTexts.Unavailable {
		t.Errorf("voice without transcriber %q", got)
	}
}

func TestFormatResult_Truncates(t *testing.T) {
	res := room.Result{Message: "head", ProgressMessage: "tail"}
	for i := 0; i < maxTasksShown+2; i++ {
		res.Tasks = append(res.Tasks, room.GuidanceTask{Message: "task"})
	}
	got := formatResult(res)
	if !strings.Contains(got, "… +2") || !strings.HasSuffix(got, "tail") {
		t.Errorf("got %q", got)
	}
}
