// Package server provides application lifecycle management: ordered startup
// of the countdown and front-end services, and graceful shutdown on signal.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Service is a long-running component. Start blocks until the service stops
// or fails; Stop requests a graceful stop.
type Service interface {
	Start() error
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function.
func (f *FuncService) Stop() { f.StopFn() }

// Runner starts services in registration order and stops them in reverse
// order when a termination signal arrives, a service fails, or the context
// is cancelled.
type Runner struct {
	logger   *zap.Logger
	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name string
	svc  Service
}

// NewRunner creates an empty Runner.
//
// Precondition: logger must be non-nil.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

// Add registers a named service.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (r *Runner) Add(name string, svc Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services = append(r.services, namedService{name: name, svc: svc})
}

// Run starts all services and blocks until shutdown.
//
// Postcondition: All services are stopped, in reverse registration order,
// when this method returns.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(r.services))
	for _, ns := range r.services {
		ns := ns
		go func() {
			r.logger.Info("starting service", zap.String("service", ns.name))
			if err := ns.svc.Start(); err != nil {
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
				cancel()
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		r.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		r.logger.Error("service error, shutting down", zap.Error(err))
	case <-ctx.Done():
		r.logger.Info("context cancelled, shutting down")
	}

	for i := len(r.services) - 1; i >= 0; i-- {
		ns := r.services[i]
		ns.svc.Stop()
		r.logger.Info("service stopped", zap.String("service", ns.name))
	}
	return nil
}
