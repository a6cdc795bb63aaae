package server

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rootfind/internal/config"
	"rootfind/internal/runner"
	"rootfind/internal/sse"
)

// Server — HTTP-интерфейс к методам поиска корней
type Server struct {
	cfg    config.Config
	runner *runner.Runner
	hub    *sse.Hub
	runs   *runStore
	log    *slog.Logger
}

func New(cfg config.Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		runner: runner.New(log),
		hub:    sse.NewHub(cfg.Server.StreamBuffer),
		runs:   newRunStore(cfg.Server.MaxRuns),
		log:    log,
	}
}

func (s *Server) NewRouter() http.Handler {
	mux := http.NewServeMux()

	// API эндпоинты
	mux.HandleFunc("/start", s.StartRun)
	mux.HandleFunc("/stop", s.StopRun)
	mux.HandleFunc("/stream", s.Stream)
	mux.HandleFunc("/export", s.ExportCSV)
	mux.HandleFunc("/status", s.Status)
	mux.HandleFunc("/solve", s.Solve)
	mux.HandleFunc("/methods", s.ListMethods)
	mux.Handle("/metrics", promhttp.Handler())

	// статика
	static := s.cfg.Server.StaticDir
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(static, "index.html"))
	})
	mux.HandleFunc("/help", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(static, "help.html"))
	})

	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
