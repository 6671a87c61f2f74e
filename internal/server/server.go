// Package server exposes the importer over HTTP: HTML in, blocks out.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/specialistvlad/blockpaste/internal/ctxlog"
	"github.com/specialistvlad/blockpaste/internal/document"
	"github.com/specialistvlad/blockpaste/internal/registry"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Importer turns HTML into ordered blocks. Tables returns the lookup tables
// currently in use, which may change between calls after a reload.
type Importer interface {
	Import(ctx context.Context, r io.Reader) ([]*document.Block, error)
	Tables() *registry.Tables
}

// Config configures a Server.
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
}

// Server is the HTTP front of the importer.
type Server struct {
	cfg      Config
	importer Importer
	metrics  http.Handler
	logger   *slog.Logger
	ready    chan string
}

// New creates a server. metrics may be nil, in which case /metrics is not
// mounted.
func New(ctx context.Context, cfg Config, importer Importer, metrics http.Handler) *Server {
	return &Server{
		cfg:      cfg,
		importer: importer,
		metrics:  metrics,
		logger:   ctxlog.FromContext(ctx).With("component", "server"),
		ready:    make(chan string, 1),
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /import", s.importHandler)
	mux.HandleFunc("GET /plugins", s.pluginsHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return mux
}

// Ready delivers the listening address once the server accepts connections.
func (s *Server) Ready() <-chan string {
	return s.ready
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctxlog.WithLogger(context.Background(), s.logger) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("🌐 Import server starting", "address", ln.Addr().String())
		// Serve returns http.ErrServerClosed on graceful shutdown.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.ready <- ln.Addr().String()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("import server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	s.logger.Info("🌐 Shutting down import server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("import server shutdown failed: %w", err)
	}
	s.logger.Debug("Import server shut down gracefully.")
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// importHandler deserializes the request body. The optional "start" query
// parameter offsets Meta.Order; "format=list" returns an ordered array
// instead of the id-keyed content map.
func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	start := 0
	if raw := r.URL.Query().Get("start"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid start %q", raw))
			return
		}
		start = n
	}

	body := io.Reader(r.Body)
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}

	ctx := ctxlog.WithLogger(r.Context(), s.logger)
	blocks, err := s.importer.Import(ctx, body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return
		}
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("Import canceled by client.")
			return
		}
		s.logger.Error("Import failed.", "error", err)
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	document.Reorder(blocks, start)

	if r.URL.Query().Get("format") == "list" {
		if blocks == nil {
			blocks = []*document.Block{}
		}
		writeJSON(w, http.StatusOK, blocks)
		return
	}
	writeJSON(w, http.StatusOK, document.NewContent(blocks))
}

// pluginInfo describes one block type for the editor toolbar.
type pluginInfo struct {
	Type            string   `json:"type"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	Shortcuts       []string `json:"shortcuts,omitempty"`
	HasCustomEditor bool     `json:"hasCustomEditor"`
	Void            bool     `json:"void"`
}

type pluginsResponse struct {
	Blocks []pluginInfo        `json:"blocks"`
	Marks  map[string]string   `json:"marks"`
	Tags   map[string][]string `json:"tags"`
}

func (s *Server) pluginsHandler(w http.ResponseWriter, _ *http.Request) {
	tables := s.importer.Tables()
	resp := pluginsResponse{
		Blocks: []pluginInfo{},
		Marks:  make(map[string]string, len(tables.Formats)),
		Tags:   make(map[string][]string, len(tables.NodeNames)),
	}
	for _, blockType := range tables.BlockTypes() {
		b, _ := tables.Block(blockType)
		resp.Blocks = append(resp.Blocks, pluginInfo{
			Type:            b.Type,
			Title:           b.Options.Display.Title,
			Description:     b.Options.Display.Description,
			Shortcuts:       b.Options.Shortcuts,
			HasCustomEditor: b.HasCustomEditor,
			Void:            b.IsVoid(),
		})
	}
	for markType, f := range tables.Formats {
		resp.Marks[markType] = f.Hotkey
	}
	for tag, handles := range tables.NodeNames {
		types := make([]string, len(handles))
		for i, h := range handles {
			types[i] = h.Type
		}
		resp.Tags[tag] = types
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
