// Package server implements 'tilemon serve': a small HTTP endpoint that
// publishes local sensor readings at GET /api/data in the format the
// dashboard polls.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/rileyhilliard/tilemon/internal/telemetry"
)

// Provider produces the current reading set.
type Provider interface {
	Readings(ctx context.Context) ([]telemetry.Metric, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]telemetry.Metric, error)

func (f ProviderFunc) Readings(ctx context.Context) ([]telemetry.Metric, error) {
	return f(ctx)
}

// Server serves readings from one provider.
type Server struct {
	log      logger.Logger
	provider Provider
	address  string
	server   *http.Server
}

func New(provider Provider, address string, log logger.Logger) *Server {
	return &Server{
		log:      logger.OrDefault(log),
		provider: provider,
		address:  address,
	}
}

// Handler returns the router. Anything other than GET /api/data is a 404.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/"+telemetry.DataPath, s.handleData)

	return r
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.address)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot listen on "+s.address,
			"Pick another port with --port or stop whatever is using it")
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.log.Info("serving telemetry on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	s.log.Info("data requested from %s", clientIP(r))

	readings, err := s.provider.Readings(r.Context())
	if err != nil {
		s.log.Error("provider: %s", errors.Summary(err))
		readings = nil
	}
	if readings == nil {
		readings = []telemetry.Metric{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(readings); err != nil {
		s.log.Warn("write response: %v", err)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LocalAddresses lists the non-loopback IPv4 addresses of this machine, the
// ones a dashboard on another device would connect to.
func LocalAddresses() []string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	var out []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip4 := ip.To4(); ip4 != nil {
				out = append(out, ip4.String())
			}
		}
	}
	return out
}
