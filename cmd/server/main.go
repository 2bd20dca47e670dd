package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opengov/internal/account"
	"opengov/internal/assistant"
	"opengov/internal/config"
	"opengov/internal/db"
	"opengov/internal/feedback"
	"opengov/internal/forms"
	mcpserver "opengov/internal/mcp"
	"opengov/internal/metrics"
	"opengov/internal/records"
	"opengov/internal/session"
	"opengov/internal/web"

	"github.com/mark3labs/mcp-go/server"
)

//go:embed static
var staticFS embed.FS

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger
	logger := cfg.Log.NewLogger(os.Stdout)

	// Context for startup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	catalog, err := records.Embedded()
	if err != nil {
		log.Fatalf("failed to load embedded records: %v", err)
	}

	var (
		accountStore account.Store = account.NewMemoryStore()
		feedbackRepo feedback.Repo = feedback.NewMemoryRepo()
	)

	// MongoDB is optional; without it everything lives in memory
	if cfg.UseMongo() {
		logger.Info("connecting to MongoDB", "database", cfg.Mongo.Database)
		database, err := db.Connect(ctx, cfg.Mongo, cfg.App.Name)
		if err != nil {
			log.Fatalf("failed to connect to MongoDB: %v", err)
		}
		defer func() {
			if err := db.Disconnect(context.Background(), database); err != nil {
				logger.Error("failed to disconnect from MongoDB", "error", err)
			}
		}()
		logger.Info("connected to MongoDB")

		recordRepo := records.NewRepo(database)
		mongoFeedback := feedback.NewMongoRepo(database)
		if err := db.EnsureIndexes(ctx, recordRepo, mongoFeedback); err != nil {
			logger.Warn("failed to ensure indexes", "error", err)
		}

		catalog, err = recordRepo.Load(ctx, catalog)
		if err != nil {
			log.Fatalf("failed to load records: %v", err)
		}
		accountStore = account.NewMongoStore(database)
		feedbackRepo = mongoFeedback
	} else {
		logger.Info("no MongoDB configured, using in-memory stores")
	}

	// Wire dependencies
	validator := forms.NewValidator()
	sessions := session.NewManager(cfg.Session)
	responder := assistant.NewResponder()

	var widget *assistant.Widget
	if cfg.Chat.Mode == config.ChatWidget {
		widget = &assistant.Widget{URL: cfg.Chat.WidgetURL}
	}

	handler, err := web.NewHandler(web.Deps{
		Catalog:     catalog,
		Sessions:    sessions,
		Accounts:    account.NewService(accountStore, validator, cfg.Actions.Delay),
		Feedback:    feedback.NewService(feedbackRepo, validator, cfg.Actions.Delay),
		Responder:   responder,
		Widget:      widget,
		Forms:       validator,
		SignUpDelay: cfg.Actions.SignUpDelay,
		Log:         logger,
	})
	if err != nil {
		log.Fatalf("failed to build handler: %v", err)
	}

	// Create MCP server
	mcpSrv := mcpserver.NewServer(catalog, responder)
	m := metrics.New(cfg.App.Name)

	// HTTP router
	mux := http.NewServeMux()

	// Static files
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to get static fs: %v", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	handler.Register(mux)

	// MCP endpoint (HTTP transport)
	// MCP uses POST for requests and GET for SSE streams
	mcpHTTP := server.NewStreamableHTTPServer(mcpSrv)
	mux.Handle("POST /mcp", mcpHTTP)
	mux.Handle("GET /mcp", mcpHTTP)
	mux.Handle("DELETE /mcp", mcpHTTP)

	mux.Handle("GET /metrics", m.Handler())

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      sessions.Middleware(m.Middleware(mux)),
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

	logger.Info("server starting", "port", cfg.App.Port, "chat", cfg.Chat.Mode)
	logger.Info("endpoints available",
		"web", "http://localhost:"+cfg.App.Port,
		"api", "http://localhost:"+cfg.App.Port+"/api",
		"mcp", "http://localhost:"+cfg.App.Port+"/mcp",
		"metrics", "http://localhost:"+cfg.App.Port+"/metrics",
	)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	logger.Info("server stopped")
}
