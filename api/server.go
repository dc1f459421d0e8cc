// Package api provides the HTTP REST API server for the news advisor.
//
// It exposes endpoints for running scans, inspecting the sector catalog
// and per-symbol performance, testing the outbound alert channel, and a
// WebSocket stream of scan progress, plus the embedded web UI.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/newsadvisor/internal/advisor"
	"github.com/seenimoa/newsadvisor/internal/alert"
	"github.com/seenimoa/newsadvisor/internal/config"
	"github.com/seenimoa/newsadvisor/internal/feed"
	"github.com/seenimoa/newsadvisor/internal/market"
	"github.com/seenimoa/newsadvisor/internal/recommend"
	"github.com/seenimoa/newsadvisor/pkg/models"
	"github.com/seenimoa/newsadvisor/pkg/utils"
	"github.com/seenimoa/newsadvisor/web"
)

// scanTimeout bounds one full pipeline pass, which can take a while
// when many candidate symbols need fresh price history.
const scanTimeout = 3 * time.Minute

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	adv      *advisor.Advisor
	notifier alert.Notifier
	wsHub    *WSHub
	serveUI  bool // when true, serve the embedded web UI at /

	mu         sync.Mutex // serializes scans and guards lastReport
	lastReport *models.ScanReport
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	adv, err := BuildAdvisor(cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := alert.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		return nil, fmt.Errorf("alert setup failed: %w", err)
	}

	srv := &Server{
		cfg:      cfg,
		adv:      adv,
		notifier: notifier,
		wsHub:    NewWSHub(),
		serveUI:  true, // serve embedded web UI by default
	}

	// Stream pipeline progress to WebSocket clients.
	adv.SetProgress(func(event string, data any) {
		srv.wsHub.Broadcast(WSMessage{Type: event, Data: data})
	})

	srv.router = srv.buildRouter()
	return srv, nil
}

// BuildAdvisor assembles the pipeline from configuration: feed sources,
// sector symbol map (CSV or built-in), window, and thresholds.
func BuildAdvisor(cfg *config.Config) (*advisor.Advisor, error) {
	var sources []feed.Source
	for _, s := range cfg.Feeds.Sources {
		sources = append(sources, feed.Source{Name: s.Name, RSSURL: s.URL})
	}

	var symbols market.SymbolMap
	if cfg.Market.SymbolsCSV != "" {
		f, err := os.Open(cfg.Market.SymbolsCSV)
		if err != nil {
			return nil, fmt.Errorf("open symbols CSV: %w", err)
		}
		defer f.Close()
		symbols, err = market.LoadSymbolMap(f)
		if err != nil {
			return nil, fmt.Errorf("load symbols CSV: %w", err)
		}
	}

	return advisor.New(advisor.Options{
		Sources: sources,
		Symbols: symbols,
		Thresholds: recommend.Thresholds{
			Buy:   cfg.Recommend.BuyThreshold,
			Avoid: cfg.Recommend.AvoidThreshold,
		},
		WindowDays:    cfg.Market.WindowDays,
		HeadlineLimit: cfg.Feeds.HeadlineLimit,
		TopN:          cfg.Recommend.TopN,
	}), nil
}

// SetServeUI controls whether the embedded web UI is served.
// Must be called before ListenAndServe.
func (s *Server) SetServeUI(enabled bool) {
	s.serveUI = enabled
	s.router = s.buildRouter()
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: scanTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start WebSocket hub
	go s.wsHub.Run()

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(scanTimeout + 30*time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Pipeline
		r.Get("/scan", s.handleScan)
		r.Post("/scan/refresh", s.handleScanRefresh)

		// Ingestion
		r.Get("/headlines", s.handleHeadlines)

		// Catalog / market data
		r.Get("/sectors", s.handleSectors)
		r.Get("/performance/{symbol}", s.handlePerformance)

		// Alerting
		r.Post("/alert/test", s.handleAlertTest)

		// Configuration
		r.Get("/config/credentials", s.handleCredentials)

		// WebSocket scan progress stream
		r.Get("/ws", s.handleWebSocket)
	})

	// Serve embedded web UI
	if s.serveUI {
		s.mountUI(r, web.StaticFS())
	}

	return r
}

// mountUI serves the embedded static UI, falling back to index.html.
func (s *Server) mountUI(r chi.Router, staticFS fs.FS) {
	fileServer := http.FileServerFS(staticFS)

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		rPath := strings.TrimPrefix(req.URL.Path, "/")
		if rPath == "" {
			rPath = "index.html"
		}

		f, err := staticFS.Open(rPath)
		if err != nil {
			serveIndexHTML(w, staticFS)
			return
		}
		f.Close()

		if strings.HasSuffix(rPath, ".html") {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		fileServer.ServeHTTP(w, req)
	})
}

// serveIndexHTML reads and serves the embedded index.html.
func serveIndexHTML(w http.ResponseWriter, staticFS fs.FS) {
	data, err := fs.ReadFile(staticFS, "index.html")
	if err != nil {
		http.Error(w, "web UI not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ScanResponse wraps a report with any alert delivery failures; alert
// errors never invalidate the report itself.
type ScanResponse struct {
	Report      *models.ScanReport `json:"report"`
	Cached      bool               `json:"cached"`
	AlertsSent  int                `json:"alerts_sent,omitempty"`
	AlertErrors []string           `json:"alert_errors,omitempty"`
}

// SectorInfo describes one catalog entry with its member symbols.
type SectorInfo struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Symbols  []string `json:"symbols,omitempty"`
}

// AlertTestRequest is the body for POST /api/v1/alert/test.
type AlertTestRequest struct {
	Message string `json:"message,omitempty"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":   "ok",
			"version":  "dev",
			"time_ist": utils.FormatDateTimeIST(utils.NowIST()),
			"alerting": s.notifier.Enabled(),
		},
	})
}

// handleScan returns the cached report when fresh enough, otherwise
// runs a new pipeline pass. ?alert=true pushes Telegram alerts for the
// actionable analyses.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"
	sendAlerts := r.URL.Query().Get("alert") == "true"

	resp, err := s.scan(r.Context(), force)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if sendAlerts && s.notifier.Enabled() {
		for _, a := range resp.Report.Actionable() {
			if err := s.notifier.Send(a); err != nil {
				// Alert transport failure is reported but does not
				// affect the computed recommendation state.
				resp.AlertErrors = append(resp.AlertErrors, err.Error())
				continue
			}
			resp.AlertsSent++
		}
	}

	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

// handleScanRefresh flushes all caches atomically and reruns the scan.
func (s *Server) handleScanRefresh(w http.ResponseWriter, r *http.Request) {
	s.adv.FlushCaches()

	resp, err := s.scan(r.Context(), true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp})
}

// scan serializes pipeline passes; concurrent requests share a run.
func (s *Server) scan(ctx context.Context, force bool) (*ScanResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && s.lastReport != nil && time.Since(s.lastReport.GeneratedAt) < 10*time.Minute {
		return &ScanResponse{Report: s.lastReport, Cached: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	report, err := s.adv.Scan(ctx)
	if err != nil {
		return nil, err
	}
	s.lastReport = report
	return &ScanResponse{Report: report}, nil
}

func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	resp, err := s.scan(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: resp.Report.Headlines})
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	var out []SectorInfo
	for _, sec := range s.adv.Catalog().Sectors() {
		info := SectorInfo{Name: sec.Name, Keywords: sec.Keywords}
		if syms, ok := s.adv.Symbols().Symbols(sec.Name); ok {
			info.Symbols = syms
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: out})
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	symbol := utils.NormalizeTicker(chi.URLParam(r, "symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	stats, ok := s.adv.AnalyzeSymbol(r.Context(), symbol)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no price data available for %s", symbol))
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: stats})
}

func (s *Server) handleAlertTest(w http.ResponseWriter, r *http.Request) {
	if !s.notifier.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "telegram alerts not configured")
		return
	}

	var req AlertTestRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body is fine
	}
	msg := req.Message
	if msg == "" {
		msg = "Market News Advisor: test alert"
	}

	tg, ok := s.notifier.(*alert.Telegram)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "alert channel does not support test messages")
		return
	}
	if err := tg.SendText(msg); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true})
}

func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckCredentials(s.cfg),
	})
}

// ============================================================
// JSON helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
