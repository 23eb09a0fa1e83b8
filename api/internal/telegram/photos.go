package telegram

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// acceptPhoto: в режиме await_reference фото становится эталоном, иначе сверяем с ним.
func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	ph := msg.Photo[len(msg.Photo)-1]
	imgBytes, err := r.downloadFile(ph.FileID)
	if err != nil {
		log.Printf("telegram photo chat=%d: %v", cid, err)
		r.send(cid, r.texts().DownloadFailed)
		return
	}
	imgBytes = shrink(imgBytes)

	ctx, cancel := r.context()
	defer cancel()

	if getMode(cid) == modeAwaitReference {
		c, err := r.Rooms.CaptureReference(ctx, cid, imgBytes)
		if err != nil {
			r.SendError(cid, err)
			return
		}
		clearMode(cid)
		r.send(cid, fmt.Sprintf("%s\n%s", r.locale().ReferenceSaved(), r.locale().ObjectsFound(c.ObjectsDetected)))
		return
	}

	res, err := r.Rooms.Reconcile(ctx, cid, imgBytes)
	if err != nil {
		r.SendError(cid, err)
		return
	}
	out := tgbotapi.NewMessage(cid, formatResult(res))
	if len(res.Tasks) > 0 {
		out.ReplyMarkup = makeTaskKeyboard(r.texts())
	}
	if _, err := r.Bot.Send(out); err != nil {
		log.Printf("telegram send chat=%d: %v", cid, err)
	}
}

// acceptVoice распознаёт голосовое и отвечает как на текст.
func (r *Router) acceptVoice(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	if r.Speech == nil {
		r.send(cid, r.texts().Unavailable)
		return
	}
	audio, err := r.downloadFile(msg.Voice.FileID)
	if err != nil {
		log.Printf("telegram voice chat=%d: %v", cid, err)
		r.send(cid, r.texts().DownloadFailed)
		return
	}
	mime := msg.Voice.MimeType
	if mime == "" {
		mime = "audio/ogg"
	}
	ctx, cancel := r.context()
	defer cancel()
	text, err := r.Speech.Transcribe(ctx, audio, mime, r.locale().Tag())
	if err != nil {
		r.SendError(cid, err)
		return
	}
	r.send(cid, fmt.Sprintf("« %s »\n%s", text, r.Chat.Reply(text)))
}

func (r *Router) downloadFile(fileID string) ([]byte, error) {
	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	return download(url)
}

// shrink уменьшает слишком большие фото; при ошибке декодирования отдаёт как есть.
func shrink(b []byte) []byte {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return b
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxSide && bounds.Dy() <= maxSide {
		return b
	}
	small := imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	var out bytes.Buffer
	if err := jpeg.Encode(&out, small, &jpeg.Options{Quality: 90}); err != nil {
		return b
	}
	return out.Bytes()
}

func download(url string) ([]byte, error) {
	resp, err := httpClient().Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
