package telegram

import (
	"context"
	"errors"
	"log"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Updater is the long-polling part of *tgbotapi.BotAPI.
type Updater interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// Poller gets updates with backoff and never exits on API errors.
type Poller struct {
	Updater Updater

	BaseDelay time.Duration
	MaxDelay  time.Duration
	IdleDelay time.Duration
	// long polling timeout (sec)
	Timeout int

	sleep func(ctx context.Context, d time.Duration)
}

func NewPoller(u Updater) *Poller {
	return &Poller{
		Updater:   u,
		BaseDelay: 1 * time.Second,
		MaxDelay:  15 * time.Second,
		IdleDelay: 200 * time.Millisecond,
		Timeout:   30,
	}
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

// RetryDelay picks the pause after a failed GetUpdates.
func RetryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 от Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Run hands every update to handle in order until ctx is cancelled.
func (p *Poller) Run(ctx context.Context, handle func(tgbotapi.Update)) {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	offset := 0
	for {
		if ctx.Err() != nil {
			log.Printf("polling: context cancelled")
			return
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = p.Timeout

		updates, err := p.Updater.GetUpdates(u)
		if err != nil {
			d := min(max(RetryDelay(err), p.BaseDelay), p.MaxDelay)
			log.Printf("polling error: %v; retry in %v", err, d)
			sleep(ctx, d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			sleep(ctx, p.IdleDelay)
		}
	}
}
