// Package httpapi exposes the checker service over a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/codezworl/spamshield/internal/catalog"
	"github.com/codezworl/spamshield/internal/config"
	"github.com/codezworl/spamshield/internal/core"
	"github.com/codezworl/spamshield/internal/version"
)

// Server is the HTTP API frontend
type Server struct {
	cfg     config.HTTPConfig
	checker *core.CheckerService
	catalog *catalog.Catalog
	router  chi.Router
	logger  *zap.Logger
	srv     *http.Server
}

// NewServer creates the HTTP frontend
func NewServer(cfg config.HTTPConfig, checker *core.CheckerService, cat *catalog.Catalog, logger *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		checker: checker,
		catalog: cat,
		router:  chi.NewRouter(),
		logger:  logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/api/spam-check", s.handleSpamCheck)
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/rules", s.handleRules)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start binds the listener and begins serving in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}

	s.srv = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("HTTP API listening", zap.String("address", s.cfg.ListenAddress))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop drains in-flight requests and shuts the server down
func (s *Server) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("Request handled",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

// --- HTTP handlers ---

func (s *Server) handleSpamCheck(w http.ResponseWriter, r *http.Request) {
	if s.cfg.MaxTextLength > 0 {
		// UTF-8 worst case is four bytes per rune, plus JSON envelope
		r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxTextLength)*4+4096)
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.checker.Check(r.Context(), req.Text, req.Type)
	if err != nil {
		if core.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("Spam check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	reasons := result.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Success:       true,
		IsSpam:        result.IsSpam,
		Confidence:    round2(result.Confidence),
		Score:         round2(result.Score),
		Category:      string(result.Category),
		Reasons:       reasons,
		MessageLength: result.Features.Length,
		WordCount:     result.Features.WordCount,
		Type:          string(result.Kind),
		ProcessingID:  result.ProcessingID,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Service: version.ServiceName,
		Version: version.Version,
		Success: true,
	})
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rules := s.catalog.Rules()
	infos := make([]ruleInfo, 0, len(rules))
	for i := range rules {
		r := &rules[i]
		infos = append(infos, ruleInfo{
			Name:     r.Name,
			Category: string(r.Category),
			Weight:   r.Weight,
			Reason:   r.Reason,
			Probe:    r.Probe,
		})
	}

	writeJSON(w, http.StatusOK, rulesResponse{
		Success: true,
		Version: s.catalog.Version(),
		Count:   len(infos),
		Rules:   infos,
	})
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// round2 trims scores to the two decimals the API promises
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
