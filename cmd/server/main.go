package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"horario/internal/api"
	"horario/internal/config"
	mcpserver "horario/internal/mcp"
	"horario/internal/schedule"
	"horario/internal/session"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed static
var staticFS embed.FS

func main() {
	// Config
	cfgPath := getEnv("HORARIO_CONFIG", "horario.yaml")

	// Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", cfgPath, err)
	}
	listen := getEnv("HORARIO_LISTEN", cfg.Listen)

	// Each session starts with its own copy of the configured seed.
	seed := seedActivities(cfg, logger)
	newService := func() *schedule.Service {
		return schedule.NewService(schedule.NewStore(seed))
	}

	// Wire dependencies
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	sessions := session.NewRegistry(sessionTTL, newService)
	handler := api.NewHandler(sessions, logger, cfg.StartHour, cfg.EndHour)

	// Create MCP server over a dedicated agent schedule
	mcpSrv := mcpserver.NewServer(newService())

	// HTTP router
	mux := http.NewServeMux()

	// Static files
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to get static fs: %v", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
	mux.Handle("GET /{$}", http.FileServer(http.FS(sub)))

	// REST API endpoints
	mux.HandleFunc("POST /api/activities", handler.AddActivity)
	mux.HandleFunc("GET /api/activities", handler.ListActivities)
	mux.HandleFunc("DELETE /api/activities", handler.ClearActivities)
	mux.HandleFunc("GET /api/grid", handler.Grid)
	mux.HandleFunc("GET /api/export", handler.Export)
	mux.HandleFunc("POST /api/import", handler.Import)

	// MCP endpoint (HTTP transport)
	// MCP uses POST for requests and GET for SSE streams
	mcpHTTP := server.NewStreamableHTTPServer(mcpSrv)
	mux.Handle("POST /mcp", mcpHTTP)
	mux.Handle("GET /mcp", mcpHTTP)
	mux.Handle("DELETE /mcp", mcpHTTP)

	// Metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Start server
	srv := &http.Server{
		Addr:         listen,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("server starting", "listen", listen, "sessions_ttl", sessionTTL.String())
	logger.Info("endpoints available",
		"web", "http://"+listen,
		"api", "http://"+listen+"/api",
		"mcp", "http://"+listen+"/mcp",
	)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	logger.Info("server stopped")
}

// seedActivities parses the configured seed entries, skipping (and
// logging) any that fail validation so one bad entry cannot prevent
// startup.
func seedActivities(cfg *config.Config, logger *slog.Logger) []schedule.Activity {
	seed := make([]schedule.Activity, 0, len(cfg.Seed))
	for _, s := range cfg.Seed {
		start, err := schedule.ParseTimeOfDay(s.Start)
		if err != nil {
			logger.Warn("skipping seed activity", "title", s.Title, "error", err)
			continue
		}
		end, err := schedule.ParseTimeOfDay(s.End)
		if err != nil {
			logger.Warn("skipping seed activity", "title", s.Title, "error", err)
			continue
		}
		a := schedule.Activity{
			Day:      s.Day,
			Title:    s.Title,
			Start:    start,
			End:      end,
			Location: s.Location,
			Note:     s.Note,
		}
		if !schedule.ValidDay(a.Day) || !a.End.After(a.Start) {
			logger.Warn("skipping seed activity", "title", s.Title, "day", s.Day)
			continue
		}
		seed = append(seed, a)
	}
	return seed
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
