// Package callback runs the private HTTP listener that receives Bear's
// x-success / x-error callbacks and resolves the matching pending request.
//
// The listener binds a unix domain socket created fresh for this process run;
// it is never reachable from the network. Bear itself cannot POST to a
// socket, so a local redirector forwards the scheme-level callback here.
package callback

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/morezero/bear-bridge/pkg/pending"
)

const logPrefix = "callback:server"

type state int

const (
	stateNew state = iota
	stateRunning
	stateStopped
)

// Server owns one listener lifetime: socket creation, serving, shutdown and
// socket removal. It is not reentrant; one Server per process session.
type Server struct {
	socketPath string
	registry   *pending.Registry

	mu         sync.Mutex
	st         state
	httpServer *http.Server
	serveErr   chan error
}

// NewServer creates a callback server bound to socketPath once started.
func NewServer(socketPath string, reg *pending.Registry) *Server {
	return &Server{socketPath: socketPath, registry: reg}
}

// SocketPath returns the unix socket path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Stem returns the socket file name without extension. The redirector
// addresses this listener as <scheme>://<stem>/..., so the stem must be
// unique per process run.
func (s *Server) Stem() string {
	base := filepath.Base(s.socketPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Start removes any stale socket file, binds the listener and begins serving
// callbacks in the background. It must be called before any dispatch.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st != stateNew {
		return fmt.Errorf("%s - server already started", logPrefix)
	}
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0o700); err != nil {
		return fmt.Errorf("%s - create socket dir: %w", logPrefix, err)
	}
	_ = os.Remove(s.socketPath)

	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("%s - listen unix %s: %w", logPrefix, s.socketPath, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCallback)
	s.httpServer = &http.Server{Handler: mux}
	s.serveErr = make(chan error, 1)
	s.st = stateRunning

	slog.Info(fmt.Sprintf("%s - callback listener on %s", logPrefix, s.socketPath))
	go func() {
		if err := s.httpServer.Serve(ln); err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("%s - serve error: %v", logPrefix, err))
			s.serveErr <- err
			return
		}
		s.serveErr <- nil
	}()
	return nil
}

// Shutdown stops accepting callbacks, waits for in-flight handlers up to
// ctx's deadline, and removes the socket file, tolerating its prior absence.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.st != stateRunning {
		s.mu.Unlock()
		return nil
	}
	s.st = stateStopped
	srv := s.httpServer
	errCh := s.serveErr
	s.mu.Unlock()

	shutdownErr := srv.Shutdown(ctx)
	<-errCh
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		slog.Warn(fmt.Sprintf("%s - remove socket: %v", logPrefix, err))
	}
	slog.Info(fmt.Sprintf("%s - callback listener stopped", logPrefix))
	return shutdownErr
}

// Healthy reports whether the server is accepting callbacks.
func (s *Server) Healthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st == stateRunning
}

// handleCallback serves POST /{id}/success and POST /{id}/error. A callback
// for an identifier with no pending entry answers 404 and wakes nobody.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]
	q := r.URL.Query()

	var out pending.Outcome
	switch parts[1] {
	case "success":
		out = pending.Success(q)
	case "error":
		code, err := strconv.Atoi(q.Get("error-Code"))
		if err != nil {
			code = 0
		}
		out = pending.Failure(code, q.Get("errorMessage"))
	default:
		http.NotFound(w, r)
		return
	}

	if !s.registry.Resolve(id, out) {
		slog.Warn(fmt.Sprintf("%s - callback for unknown request %s", logPrefix, id))
		http.Error(w, "request not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
