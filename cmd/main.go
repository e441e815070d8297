package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"connectme/internal/config"
	"connectme/internal/handlers"
	"connectme/internal/middleware"
	"connectme/internal/session"
	"connectme/internal/store"
	"connectme/internal/upload"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	seed := store.Seed()
	seed.CurrentUserID = cfg.CurrentUserID
	st := store.New(seed)

	// uploads outlive the request that started them
	baseCtx, stopUploads := context.WithCancel(context.Background())
	defer stopUploads()

	hub := handlers.NewHub()
	sess := session.New(st, upload.NewUploader(cfg.UploadDelay, cfg.PlaceholderImage), hub.UploadListener)
	handler := handlers.NewHandler(baseCtx, sess, hub)

	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.Logger, middleware.Recover, middleware.SecureHeaders)

	// ================= API =================
	handler.RegisterRoutes(router)

	// ================= STATIC FILES =================
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticPath))),
	)

	// ================= SPA ENTRY =================
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, strings.TrimSuffix(cfg.StaticPath, "/")+"/index.html")
	})

	var root http.Handler = router
	if cfg.DevMode {
		// the front end dev server runs on its own origin
		root = gorillahandlers.CORS(
			gorillahandlers.AllowedOrigins([]string{"*"}),
			gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			gorillahandlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
		)(router)
	}

	// ================= SERVER =================
	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: root,
	}

	go func() {
		log.Printf("%s running at http://%s%s (dev=%v)", cfg.SiteName, cfg.ServerHost, cfg.ServerPort, cfg.DevMode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// ================= SHUTDOWN =================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sess.Close()
	stopUploads()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Server stopped")
}
