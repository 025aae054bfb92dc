package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"mlb-scoreboard/internal/poller"
)

var errListen = errors.New("listen failure")

// StubPoller counts lifecycle calls from the server and admin refreshes.
type StubPoller struct {
	mu sync.Mutex

	StartCalls   int
	StopCalls    int
	RefreshCalls int
	Err          error
	RefreshErr   error
	StatusVal    poller.Status
}

func (p *StubPoller) Start(context.Context) {
	p.mu.Lock()
	p.StartCalls++
	p.mu.Unlock()
}

func (p *StubPoller) Stop(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Refresh(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RefreshCalls++
	return p.RefreshErr
}

func (p *StubPoller) Status() poller.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.StatusVal
}

// StubHTTPServer returns the configured errors without listening.
type StubHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ListenCalls   int
	ShutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.ListenCalls++
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(context.Context) error {
	s.ShutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string          { return s.AddrVal }
func (s *StubHTTPServer) Handler() http.Handler { return s.HandlerVal }

// BlockingHTTPServer holds Shutdown until Unblock is closed or ctx ends.
type BlockingHTTPServer struct {
	AddrVal       string
	HandlerVal    http.Handler
	ShutdownCalls int
	Unblock       chan struct{}
}

func (b *BlockingHTTPServer) ListenAndServe() error { return nil }

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	b.ShutdownCalls++
	select {
	case <-b.Unblock:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *BlockingHTTPServer) Addr() string          { return b.AddrVal }
func (b *BlockingHTTPServer) Handler() http.Handler { return b.HandlerVal }

// countingShutdown supplies the shared half of the fixed-outcome servers.
type countingShutdown struct {
	ShutdownCalls int
}

func (c *countingShutdown) Shutdown(context.Context) error {
	c.ShutdownCalls++
	return nil
}

func (c *countingShutdown) Addr() string          { return ":0" }
func (c *countingShutdown) Handler() http.Handler { return http.NewServeMux() }

// ErrHTTPServer fails immediately on ListenAndServe.
type ErrHTTPServer struct{ countingShutdown }

func (*ErrHTTPServer) ListenAndServe() error { return errListen }

// CloseableHTTPServer reports a clean close from ListenAndServe.
type CloseableHTTPServer struct{ countingShutdown }

func (*CloseableHTTPServer) ListenAndServe() error { return http.ErrServerClosed }
