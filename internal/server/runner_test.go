package server_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/nightfall/internal/server"
)

// trace records service lifecycle events in order.
type trace struct {
	mu     sync.Mutex
	events []string
}

func (tr *trace) add(event string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.events = append(tr.events, event)
}

func (tr *trace) all() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.events...)
}

func blockingService(tr *trace, name string) *server.FuncService {
	done := make(chan struct{})
	var once sync.Once
	return &server.FuncService{
		StartFn: func() error {
			tr.add("start:" + name)
			<-done
			return nil
		},
		StopFn: func() {
			once.Do(func() { close(done) })
			tr.add("stop:" + name)
		},
	}
}

// TestRunner_StopsInReverseOrderOnCancel verifies context cancellation stops
// services in reverse registration order.
func TestRunner_StopsInReverseOrderOnCancel(t *testing.T) {
	tr := &trace{}
	r := server.NewRunner(zap.NewNop())
	r.Add("first", blockingService(tr, "first"))
	r.Add("second", blockingService(tr, "second"))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	require.NoError(t, r.Run(ctx))

	events := tr.all()
	var stops []string
	for _, e := range events {
		if e == "stop:first" || e == "stop:second" {
			stops = append(stops, e)
		}
	}
	assert.Equal(t, []string{"stop:second", "stop:first"}, stops)
}

// TestRunner_ServiceFailureTriggersShutdown verifies one failing service
// brings the rest down.
func TestRunner_ServiceFailureTriggersShutdown(t *testing.T) {
	tr := &trace{}
	r := server.NewRunner(zap.NewNop())
	r.Add("steady", blockingService(tr, "steady"))
	r.Add("flaky", &server.FuncService{
		StartFn: func() error { return errors.New("bind failed") },
		StopFn:  func() { tr.add("stop:flaky") },
	})

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not shut down after service failure")
	}
	assert.Contains(t, tr.all(), "stop:steady")
}
