package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/pinky890114/Xianluo/internal/assist"
	"github.com/pinky890114/Xianluo/internal/blob"
	"github.com/pinky890114/Xianluo/internal/catalog"
	"github.com/pinky890114/Xianluo/internal/commissions"
	"github.com/pinky890114/Xianluo/internal/config"
	"github.com/pinky890114/Xianluo/internal/handlers"
	"github.com/pinky890114/Xianluo/internal/showcase"
	"github.com/pinky890114/Xianluo/internal/store"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init document store
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Mirrors: subscribed for the lifetime of the process, torn down on
	// shutdown with the rest of the server.
	lifecycle, stopMirrors := context.WithCancel(context.Background())
	defer stopMirrors()

	commissionStore := commissions.NewStore(db)
	if err := commissionStore.Subscribe(lifecycle); err != nil {
		slog.Error("Failed to subscribe commission mirror", "error", err)
		os.Exit(1)
	}
	showcaseStore := showcase.NewStore(db)
	if err := showcaseStore.Subscribe(lifecycle); err != nil {
		slog.Error("Failed to subscribe showcase mirror", "error", err)
		os.Exit(1)
	}

	// 4. Blob store, catalog, assistant
	blobStore, err := blob.NewFileStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		slog.Error("Failed to initialize blob store", "error", err)
		os.Exit(1)
	}

	shopCatalog, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("Failed to load product catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}

	generator := assist.NewGenerator(cfg.OpenAIKey, cfg.OpenAIModel)
	if !generator.Enabled() {
		slog.Warn("OPENAI_API_KEY not set; assistant features will report unavailable")
	}

	// 5. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 6. Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 7. Handlers
	shopHandler := &handlers.ShopHandler{
		Catalog:      shopCatalog,
		Showcase:     showcaseStore,
		Commissions:  commissionStore,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	commissionHandler := &handlers.CommissionHandler{
		Commissions:   commissionStore,
		Blob:          blobStore,
		UploadTimeout: cfg.UploadTimeout,
		Catalog:       shopCatalog,
		Templates:     templates,
		SessionStore:  sessionStore,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		Commissions:  commissionStore,
		Showcase:     showcaseStore,
		Blob:         blobStore,
		Assist:       generator,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	liveHandler := &handlers.LiveHandler{
		Commissions:  commissionStore,
		SessionStore: sessionStore,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter for public submissions
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public Routes
	mux.HandleFunc("/", shopHandler.Index)
	mux.HandleFunc("/track", shopHandler.Tracker)
	mux.HandleFunc("/commission", commissionHandler.Form)
	mux.HandleFunc("POST /commission", rateLimiter.Middleware(commissionHandler.Submit))

	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/commissions", adminHandler.AuthMiddleware(adminHandler.CreateCommission))
	mux.HandleFunc("POST /admin/commissions/step", adminHandler.AuthMiddleware(adminHandler.StepStatus))
	mux.HandleFunc("/admin/commissions/edit", adminHandler.AuthMiddleware(adminHandler.EditCommissionForm))
	mux.HandleFunc("POST /admin/commissions/update", adminHandler.AuthMiddleware(adminHandler.UpdateCommission))
	mux.HandleFunc("POST /admin/commissions/delete", adminHandler.AuthMiddleware(adminHandler.DeleteCommission))
	mux.HandleFunc("POST /admin/showcase", adminHandler.AuthMiddleware(adminHandler.UploadShowcaseItem))
	mux.HandleFunc("POST /admin/showcase/delete", adminHandler.AuthMiddleware(adminHandler.DeleteShowcaseItem))
	mux.HandleFunc("POST /admin/assist/client-update", adminHandler.AuthMiddleware(adminHandler.AssistClientUpdate))
	mux.HandleFunc("POST /admin/assist/work-plan", adminHandler.AuthMiddleware(adminHandler.AssistWorkPlan))
	mux.HandleFunc("/admin/live", liveHandler.Feed)

	// 8. Middleware chain: Logger -> Security Headers -> CSRF -> Mux
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 9. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	stopMirrors()
	if err := db.Close(); err != nil {
		slog.Error("Store close failed", "error", err)
	}

	slog.Info("Server exited gracefully.")
}
