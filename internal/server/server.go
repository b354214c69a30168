// Package server assembles the HTTP handler and runs the server lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/spendtrack/internal/auth"
	"github.com/mmynk/spendtrack/internal/middleware"
	"github.com/mmynk/spendtrack/internal/service"
	"github.com/mmynk/spendtrack/internal/storage"
	"github.com/mmynk/spendtrack/pkg/api/apiconnect"
)

// Server timeouts.
const (
	ReadHeaderTimeout = 1 * time.Second
	ReadTimeout       = 5 * time.Second
	WriteTimeout      = 10 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Listen creates a TCP listener on the given address.
// Use "127.0.0.1:0" for a random available port.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}

// Serve starts srv on listener and shuts it down gracefully once ctx is
// canceled. Both run on grp.
func Serve(
	ctx context.Context,
	grp *errgroup.Group,
	srv *http.Server,
	listener net.Listener,
	shutdownTimeout time.Duration,
) {
	srv.ReadHeaderTimeout = ReadHeaderTimeout
	srv.ReadTimeout = ReadTimeout
	srv.WriteTimeout = WriteTimeout

	grp.Go(func() error {
		err := srv.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// Options configures NewHandler.
type Options struct {
	Store  storage.Store
	Tokens *auth.JWTManager
	Logger *slog.Logger

	// SecureCookies sets the Secure attribute on session cookies.
	SecureCookies bool

	// Registry receives the RPC metrics and is served on /metrics. Nil
	// disables both.
	Registry *prometheus.Registry

	// TracerProvider creates RPC spans. Nil uses the global provider.
	TracerProvider trace.TracerProvider
}

// NewHandler returns the complete HTTP handler: every RPC service behind the
// session middleware, plus /healthz and, when enabled, /metrics.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tp := opts.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	interceptors := []connect.Interceptor{
		middleware.TracingInterceptor(tp),
		middleware.LoggingInterceptor(logger),
	}
	if opts.Registry != nil {
		interceptors = append(interceptors, middleware.NewMetrics(opts.Registry).Interceptor())
	}
	interceptors = append(interceptors, middleware.ValidationInterceptor())
	handlerOpts := []connect.HandlerOption{connect.WithInterceptors(interceptors...)}

	authenticator := auth.NewPasswordAuthenticator(opts.Store)
	sessions := middleware.NewAuthMiddleware(opts.Tokens, opts.Store)

	mux := http.NewServeMux()
	mount := func(path string, h http.Handler) {
		mux.Handle(path, sessions.Wrap(h))
	}
	mount(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, opts.Tokens, opts.SecureCookies, logger), handlerOpts...))
	mount(apiconnect.NewExpenseServiceHandler(
		service.NewExpenseService(opts.Store, logger), handlerOpts...))
	mount(apiconnect.NewCategoryServiceHandler(
		service.NewCategoryService(opts.Store, logger), handlerOpts...))
	mount(apiconnect.NewPaymentMethodServiceHandler(
		service.NewPaymentMethodService(opts.Store, logger), handlerOpts...))
	mount(apiconnect.NewSummaryServiceHandler(
		service.NewSummaryService(opts.Store, logger), handlerOpts...))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	if opts.Registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	// h2c serves HTTP/2 without TLS; it hijacks the connection, so it must
	// see the raw ResponseWriter.
	return h2c.NewHandler(middleware.LogRequests(logger, mux), &http2.Server{})
}
