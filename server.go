package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"

	"gitlab.com/gitlab-org/pages-gateway/internal/netutil"
)

type listenerConfig struct {
	name     string
	listener net.Listener
	handler  http.Handler
}

func closeAll(listeners []listenerConfig) {
	for _, lc := range listeners {
		lc.listener.Close()
	}
}

// createListeners opens every configured address. Nothing is left open
// when one of them fails.
func (a *theApp) createListeners(handler http.Handler, limiter *netutil.Limiter) ([]listenerConfig, error) {
	var listeners []listenerConfig

	for _, addr := range a.config.Listeners.HTTP {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			closeAll(listeners)
			return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		if limiter != nil {
			l = netutil.SharedLimitListener(l, limiter)
		}

		log.WithField("listener", addr).Debug("Set up HTTP listener")

		listeners = append(listeners, listenerConfig{name: "http", listener: l, handler: handler})
	}

	if addr := a.config.General.MetricsAddress; addr != "" {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			closeAll(listeners)
			return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		log.WithField("listener", addr).Debug("Set up metrics listener")

		listeners = append(listeners, listenerConfig{name: "metrics", listener: l, handler: a.metricsHandler()})
	}

	return listeners, nil
}

// listenAndServe serves lc until ctx is done, then gives in-flight
// requests ShutdownTimeout to complete
func (a *theApp) listenAndServe(ctx context.Context, lc listenerConfig) error {
	server := &http.Server{
		Handler:           lc.handler,
		ReadTimeout:       a.config.Server.ReadTimeout,
		ReadHeaderTimeout: a.config.Server.ReadHeaderTimeout,
		WriteTimeout:      a.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(lc.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down %s listener: %w", lc.name, err)
	}

	return nil
}
