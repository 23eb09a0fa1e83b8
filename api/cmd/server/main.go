package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"tidy-room/api/internal/app"
	"tidy-room/api/internal/config"
	"tidy-room/api/internal/httpserver"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	cfg := config.Load()

	// Prefer platform PORT env var; fallback to cfg.Port; then to 8000
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer a.Close()

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", httpserver.Healthz(a.HealthCheck))
	a.Handle.Routes(mux)

	if err := httpserver.StartHTTP("0.0.0.0:"+cfg.Port, httpserver.CORS(cfg.CORSOrigins, mux)); err != nil {
		log.Fatal(err)
	}
}
