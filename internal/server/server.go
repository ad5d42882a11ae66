// Package server orchestrates all components: NATS client, callback listener, dispatcher, HTTP health.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	comms "github.com/nats-io/nats.go"

	"github.com/morezero/bear-bridge/internal/config"
	"github.com/morezero/bear-bridge/pkg/actions"
	"github.com/morezero/bear-bridge/pkg/callback"
	"github.com/morezero/bear-bridge/pkg/commsutil"
	"github.com/morezero/bear-bridge/pkg/dispatcher"
	"github.com/morezero/bear-bridge/pkg/events"
	"github.com/morezero/bear-bridge/pkg/pending"
	"github.com/morezero/bear-bridge/pkg/xcall"
)

const logPrefix = "server:server"

// Server is the bear-bridge orchestrator.
type Server struct {
	cfg        *config.Config
	nc         *comms.Conn
	listener   *callback.Server
	registry   *pending.Registry
	httpServer *http.Server
}

// healthOutput is the payload of the /health endpoint.
type healthOutput struct {
	Status    string          `json:"status"`
	Checks    map[string]bool `json:"checks"`
	Pending   int             `json:"pending"`
	Timestamp string          `json:"timestamp"`
}

// Run starts the server, blocks until shutdown signal, then cleans up.
func Run() error {
	// Setup structured logging
	var logLevel slog.Level
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("%s - failed to load config: %w", logPrefix, err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info(fmt.Sprintf("%s - Starting bear-bridge", logPrefix))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &Server{cfg: cfg}

	// Determine action subject
	actionSubject := cfg.ActionSubject
	if actionSubject == "" {
		actionSubject = commsutil.SubjectActions
	}
	slog.Info(fmt.Sprintf("%s - Action subject: %s", logPrefix, actionSubject))

	// Step 1: Start the callback listener on a fresh unix socket
	socketDir := cfg.SocketDir
	if socketDir == "" {
		socketDir = os.TempDir()
	}
	socketPath := filepath.Join(socketDir, fmt.Sprintf("bear-bridge-%s.sock", uuid.NewString()))

	registry := pending.NewRegistry()
	s.registry = registry
	listener := callback.NewServer(socketPath, registry)
	if err := listener.Start(); err != nil {
		return fmt.Errorf("%s - failed to start callback listener: %w", logPrefix, err)
	}
	s.listener = listener
	slog.Info(fmt.Sprintf("%s - Callback listener on %s", logPrefix, socketPath))

	// Step 2: Build the x-callback-url dispatcher and action adapter
	openCommand := cfg.OpenCommand
	if len(openCommand) == 0 {
		openCommand = xcall.DefaultOpenCommand()
	}
	xdisp := xcall.NewDispatcher(xcall.NewDispatcherParams{
		Registry:       registry,
		Launcher:       xcall.NewExecLauncher(openCommand),
		CallbackScheme: cfg.CallbackScheme,
		SocketStem:     listener.Stem(),
	})
	adapter := actions.NewAdapter(actions.NewAdapterParams{
		Invoker: xdisp,
		Token:   cfg.BearToken,
	})

	// Step 3: Connect to NATS
	nc, err := commsutil.Connect(cfg.COMMSURL, cfg.COMMSName)
	if err != nil {
		shutdownListener(listener, cfg.HealthCheckTimeout)
		return fmt.Errorf("%s - failed to connect to NATS: %w", logPrefix, err)
	}
	s.nc = nc
	slog.Info(fmt.Sprintf("%s - Connected to NATS at %s", logPrefix, cfg.COMMSURL))

	// Step 4: Create dispatcher and subscribe
	publisher := events.NewCommsPublisher(nc, nil)
	disp := dispatcher.NewDispatcher(adapter, publisher)

	requestTimeout := cfg.RequestTimeout
	sub, err := nc.Subscribe(actionSubject, func(msg *comms.Msg) {
		go func() {
			var req dispatcher.ActionRequest
			if err := json.Unmarshal(msg.Data, &req); err != nil {
				slog.Error(fmt.Sprintf("%s - failed to decode request: %v", logPrefix, err))
				resp := &dispatcher.ActionResponse{
					Ok: false,
					Error: &dispatcher.ErrorDetail{
						Code:    "INVALID_REQUEST",
						Message: "Failed to decode request",
					},
				}
				data, _ := json.Marshal(resp)
				msg.Respond(data)
				return
			}
			if req.ID == "" && req.Ctx != nil {
				req.ID = req.Ctx.RequestID
			}

			// Per-request context with timeout; optionally respect client deadline
			reqCtx, cancelReq := requestContext(ctx, requestTimeout, req.Ctx)
			defer cancelReq()

			// Dispatch
			resp := disp.Dispatch(reqCtx, &req)

			// Respond
			data, err := json.Marshal(resp)
			if err != nil {
				slog.Error(fmt.Sprintf("%s - failed to encode response: %v", logPrefix, err))
				return
			}
			msg.Respond(data)
		}()
	})
	if err != nil {
		nc.Close()
		shutdownListener(listener, cfg.HealthCheckTimeout)
		return fmt.Errorf("%s - failed to subscribe to %s: %w", logPrefix, actionSubject, err)
	}
	slog.Info(fmt.Sprintf("%s - Subscribed to %s", logPrefix, actionSubject))

	// Step 5: Start HTTP health server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth())
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	httpAddr := cfg.HTTPAddr
	if httpAddr == "" {
		httpAddr = fmt.Sprintf(":%d", cfg.HTTPPort)
	}
	s.httpServer = &http.Server{Addr: httpAddr, Handler: mux}
	go func() {
		slog.Info(fmt.Sprintf("%s - HTTP health server listening on %s", logPrefix, httpAddr))
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("%s - HTTP server error: %v", logPrefix, err))
		}
	}()

	slog.Info(fmt.Sprintf("%s - Bear bridge is ready", logPrefix))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info(fmt.Sprintf("%s - Received signal %s, shutting down", logPrefix, sig))

	// Graceful shutdown
	sub.Unsubscribe()
	s.httpServer.Shutdown(ctx)
	nc.Drain()
	shutdownListener(listener, cfg.HealthCheckTimeout)

	slog.Info(fmt.Sprintf("%s - Shutdown complete", logPrefix))
	return nil
}

// requestContext derives the per-request context. A zero server timeout
// leaves only the client deadline, when one was sent.
func requestContext(parent context.Context, serverTimeout time.Duration, ic *dispatcher.InvocationContext) (context.Context, context.CancelFunc) {
	timeout := serverTimeout
	if ic != nil && ic.TimeoutMs > 0 {
		clientTimeout := time.Duration(ic.TimeoutMs) * time.Millisecond
		if timeout == 0 || clientTimeout < timeout {
			timeout = clientTimeout
		}
	}
	if timeout == 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// handleHealth reports listener and NATS connectivity plus the number of
// in-flight requests.
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]bool{
			"listener": s.listener.Healthy(),
			"comms":    s.nc != nil && s.nc.IsConnected(),
		}
		out := &healthOutput{
			Status:    "healthy",
			Checks:    checks,
			Pending:   s.registry.Size(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		for _, ok := range checks {
			if !ok {
				out.Status = "unhealthy"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if out.Status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(out)
	}
}

func shutdownListener(listener *callback.Server, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := listener.Shutdown(ctx); err != nil {
		slog.Error(fmt.Sprintf("%s - callback listener shutdown: %v", logPrefix, err))
	}
}
