package main

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/recipecost/internal/config"
	"github.com/Simplici0/recipecost/internal/db"
	"github.com/Simplici0/recipecost/internal/logger"
	"github.com/Simplici0/recipecost/internal/migrations"
	"github.com/Simplici0/recipecost/internal/money"
	"github.com/Simplici0/recipecost/internal/recipes"
	"github.com/Simplici0/recipecost/internal/seed"
	"github.com/Simplici0/recipecost/web"
)

var pageNames = []string{"calculator.html", "recipes.html"}

type server struct {
	recipes *recipes.Store
	money   money.Formatter
	charts  bool
	log     *logger.Logger
	pages   map[string]*template.Template
}

func newServer(store *recipes.Store, formatter money.Formatter, charts bool, log *logger.Logger) (*server, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, page := range pageNames {
		tmpl, err := template.ParseFS(web.Templates, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		pages[page] = tmpl
	}

	return &server{
		recipes: store,
		money:   formatter,
		charts:  charts,
		log:     log,
		pages:   pages,
	}, nil
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, os.Stderr)
	for _, warning := range cfg.Warnings {
		log.Warn("config: %s", warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Error("failed to run database migrations: %v", err)
		os.Exit(1)
	}

	stats, err := seed.Run(ctx, database)
	if err != nil {
		log.Error("failed to seed recipe templates: %v", err)
		os.Exit(1)
	}
	log.Debug("seed inserted %d rows", stats.Inserts)

	srv, err := newServer(recipes.NewStore(database), money.NewFormatter(cfg.Locale), cfg.Charts, log)
	if err != nil {
		log.Error("failed to parse templates: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown: %v", err)
		}
	}()

	log.Info("listening on %s (env=%s, locale=%s, charts=%t)", httpServer.Addr, cfg.Env, cfg.Locale, cfg.Charts)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped: %v", err)
		os.Exit(1)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/", s.handleCalculatorPage)
	r.Post("/", s.handleCalculatorSubmit)
	r.Post("/export.csv", s.handleExportCSV)
	r.Post("/api/calculate", s.handleAPICalculate)
	r.Get("/recipes", s.handleRecipesList)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// render executes page into a buffer first so a template error never leaves a half-written response.
func (s *server) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("render %s: %v", page, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("%s %s %d %s req=%s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond), middleware.GetReqID(r.Context()))
	})
}
