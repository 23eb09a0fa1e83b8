// Package app wires configuration into the services shared by the HTTP server
// and the Telegram bot.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tidy-room/api/internal/chat"
	"tidy-room/api/internal/config"
	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/detector/gemini"
	"tidy-room/api/internal/detector/remote"
	"tidy-room/api/internal/detector/wsdetect"
	"tidy-room/api/internal/gallery"
	"tidy-room/api/internal/gesture"
	"tidy-room/api/internal/handle"
	"tidy-room/api/internal/room"
	"tidy-room/api/internal/speech"
	"tidy-room/api/internal/store"
)

type App struct {
	DB        *sql.DB // nil for the memory store
	Rooms     *room.Service
	Gallery   *gallery.Service
	Detectors *detector.Manager
	Chat      chat.Assistant
	Speech    speech.Transcriber
	Locale    room.Locale
	Handle    *handle.Handle
}

// stores is what both backends provide.
type stores struct {
	refs     room.ReferenceStore
	progress room.ProgressStore
	drawings gallery.Store
	activity handle.ActivityLogger
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	var st stores
	switch cfg.Store {
	case "memory":
		mem := store.NewMemory()
		st = stores{refs: mem, progress: mem, drawings: mem, activity: mem}
		log.Printf("store: memory")
	case "postgres", "":
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Printf("db connected: %s", config.SafeDSNSummary(cfg.DatabaseURL))
		rooms := store.NewRoomRepo(db)
		st = stores{refs: rooms, progress: rooms, drawings: store.NewDrawingRepo(db), activity: store.NewActivityRepo(db)}
		a.DB = db
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	roomsDir := filepath.Join(cfg.UploadsDir, "rooms")
	drawingsDir := filepath.Join(cfg.UploadsDir, "drawings")
	for _, d := range []string{roomsDir, drawingsDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			a.Close()
			return nil, fmt.Errorf("uploads dir: %w", err)
		}
	}

	a.Detectors = Detectors(cfg)
	a.Locale = room.LocaleFor(cfg.Locale)
	a.Chat = chat.For(cfg.Locale)
	if cfg.GeminiAPIKey != "" {
		a.Speech = speech.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	}

	a.Rooms = &room.Service{
		Detector:      a.Detectors,
		Refs:          st.refs,
		Progress:      st.progress,
		Locale:        a.Locale,
		RoomsDir:      roomsDir,
		DetectTimeout: cfg.DetectTimeout,
	}
	a.Gallery = &gallery.Service{
		Store:         st.drawings,
		Detector:      a.Detectors,
		Dir:           drawingsDir,
		DetectTimeout: cfg.DetectTimeout,
	}
	a.Handle = &handle.Handle{
		Rooms:         a.Rooms,
		Gallery:       a.Gallery,
		Detectors:     a.Detectors,
		Activity:      st.activity,
		Chat:          a.Chat,
		Speech:        a.Speech,
		Gesture:       gesture.Recognizer{Detector: a.Detectors},
		Locale:        a.Locale,
		DefaultUserID: cfg.DefaultUserID,
		MinConfidence: cfg.MinConfidence,
	}
	return a, nil
}

// Detectors registers every detector the config allows; cfg.Detector becomes
// active, or demo when it is not configured.
func Detectors(cfg *config.Config) *detector.Manager {
	var all []detector.Detector
	if cfg.DetectorURL != "" {
		all = append(all, remote.New(cfg.DetectorURL))
	}
	if cfg.GeminiAPIKey != "" {
		all = append(all, gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel))
	}
	if cfg.DetectorWSHost != "" {
		all = append(all, wsdetect.New(cfg.DetectorWSHost))
	}
	m := detector.NewManager(detector.NewDemo(), all...)
	if err := m.Use(cfg.Detector); err != nil {
		log.Printf("detector %q not configured, using demo", cfg.Detector)
	}
	log.Printf("detectors: active=%s available=%v", m.Active(), m.Names())
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.CheckHealth(ctx); err != nil {
		log.Printf("warning: %v", err)
	}
	return m
}

// HealthCheck pings the database when there is one, then the active
// detector when it runs as a separate service.
func (a *App) HealthCheck(ctx context.Context) error {
	if a.DB != nil {
		if err := a.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("db: %w", err)
		}
	}
	return a.Detectors.CheckHealth(ctx)
}

func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
