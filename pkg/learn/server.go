package learn

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

//go:embed static
var content embed.FS

// ServerConfig holds configuration for the learning platform server.
type ServerConfig struct {
	Port int    // port to listen on, 0 picks a free one
	Dir  string // learning-platform directory; embedded fallback served if absent
}

// Server provides the HTTP server for the learning platform with live reload.
type Server struct {
	cfg ServerConfig
	hub *Hub
	srv *http.Server

	mu   sync.Mutex
	addr net.Addr // set once listening
}

// NewServer creates a new learning platform server.
func NewServer(cfg ServerConfig, hub *Hub) *Server {
	return &Server{cfg: cfg, hub: hub}
}

// Start begins listening for HTTP requests.
// blocks until the server is stopped or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleContent)
	mux.HandleFunc("/events", s.handleEvents)

	s.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	// shutdown listener
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("http server: %w", err)
}

// URL returns the base URL once the server is listening, empty before that.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addr == nil {
		return ""
	}
	return "http://" + s.addr.String()
}

// handleContent serves the learning platform content.
// files come from the on-disk platform directory when it exists; otherwise
// the embedded placeholder page is served. the check runs per request so
// content created while the server runs is picked up without restart.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if _, err := os.Stat(filepath.Join(s.cfg.Dir, "index.html")); err == nil {
		http.FileServer(http.Dir(s.cfg.Dir)).ServeHTTP(w, r)
		return
	}

	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		http.Error(w, "static filesystem", http.StatusInternalServerError)
		return
	}
	http.FileServer(http.FS(staticFS)).ServeHTTP(w, r)
}

// handleEvents serves the SSE stream with reload events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	// initial event confirms the stream is live
	if err := writeEvent(w, Event{Type: "connected", Timestamp: time.Now()}); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, open := <-ch:
			if !open {
				return
			}
			if err := writeEvent(w, e); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes a single SSE frame.
func writeEvent(w http.ResponseWriter, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
