package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"expensync/internal/interfaces/scheduler"
	"expensync/internal/shared/config"
	"expensync/internal/shared/middleware"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// Servers is the API listener plus the optional plain-HTTP redirect listener.
type Servers struct {
	api      *http.Server
	redirect *http.Server
	tls      *config.TLSConfig
	sched    *scheduler.Scheduler
}

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// NewServers builds the listeners from cfg. sched may be nil; it is stopped
// together with the listeners.
func NewServers(handler http.Handler, cfg *config.Config, sched *scheduler.Scheduler) *Servers {
	s := &Servers{
		api:   newHTTPServer(net.JoinHostPort(cfg.Server.Host, cfg.Server.Port), handler),
		tls:   &cfg.TLS,
		sched: sched,
	}
	if cfg.TLS.Enabled && cfg.TLS.RedirectHTTP {
		s.redirect = newHTTPServer(":80", redirectToHTTPS(cfg.Server.AllowedHosts))
	}
	return s
}

// Serve runs every listener until ctx is cancelled or one of them fails,
// then shuts all of them down within timeout.
func (s *Servers) Serve(ctx context.Context, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if s.tls.Enabled {
			zap.L().Info("HTTPS server starting", zap.String("addr", s.api.Addr))
			err = s.api.ListenAndServeTLS(s.tls.CertPath, s.tls.KeyPath)
		} else {
			zap.L().Info("HTTP server starting", zap.String("addr", s.api.Addr))
			err = s.api.ListenAndServe()
		}
		return listenErr("api", err)
	})
	if s.redirect != nil {
		g.Go(func() error {
			zap.L().Info("HTTP redirect server starting", zap.String("addr", s.redirect.Addr))
			return listenErr("redirect", s.redirect.ListenAndServe())
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown(timeout)
		return nil
	})

	return g.Wait()
}

func listenErr(name string, err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("%s server: %w", name, err)
}

func (s *Servers) shutdown(timeout time.Duration) {
	zap.L().Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if s.sched != nil {
		s.sched.Shutdown(timeout)
	}
	if s.redirect != nil {
		if err := s.redirect.Shutdown(ctx); err != nil {
			zap.L().Error("shutdown HTTP redirect server", zap.Error(err))
		}
	}
	if err := s.api.Shutdown(ctx); err != nil {
		zap.L().Error("shutdown main server", zap.Error(err))
	}

	zap.L().Info("server stopped")
}

// redirectToHTTPS sends every request to the same path over HTTPS, dropping
// any port. Hosts outside allowedHosts get 400.
func redirectToHTTPS(allowedHosts []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Header.Get("X-Forwarded-Host")
		if host == "" {
			host = r.Host
		}
		if !middleware.IsHostAllowed(host, allowedHosts) {
			http.Error(w, "Invalid host", http.StatusBadRequest)
			return
		}
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		http.Redirect(w, r, "https://"+host+r.RequestURI, http.StatusMovedPermanently)
	})
}
