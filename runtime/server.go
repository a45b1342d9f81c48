// Package runtime hosts a composition function as a gRPC service.
//
// A function is written against the v1 FunctionRunnerService schema. The
// runtime registers it twice on a single listener: once natively for v1
// callers and once wrapped in a BetaRunner for v1beta1 callers. Server
// reflection is enabled so generic clients can discover both versions.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	fnv1 "github.com/crossplane/function-sdk-go/proto/v1"
	fnv1beta1 "github.com/crossplane/function-sdk-go/proto/v1beta1"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"
)

// DefaultGracePeriod is how long in-flight calls get to finish once
// shutdown begins, before the remaining ones are aborted.
const DefaultGracePeriod = 5 * time.Second

// State is the lifecycle state of a Server.
type State int32

const (
	StateCreated State = iota
	StateListening
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateListening:
		return "listening"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Server serves a function over both supported protocol versions.
// Construct one per process with NewServer; the zero value is not usable.
type Server struct {
	fn       fnv1.FunctionRunnerServiceServer
	addr     string
	creds    credentials.TransportCredentials
	insecure bool
	grace    time.Duration

	mu       sync.RWMutex
	srv      *grpc.Server
	lis      net.Listener
	state    atomic.Int32
	stopOnce sync.Once
	stopped  chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the address the server listens on.
func WithAddress(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithCredentials sets the transport credentials used to serve. A nil value
// means no credentials were configured; in that case Serve fails unless
// insecure mode was explicitly enabled.
func WithCredentials(tc credentials.TransportCredentials) Option {
	return func(s *Server) { s.creds = tc }
}

// WithInsecure serves without credentials or encryption. Insecure mode takes
// precedence over credentials when both are supplied.
func WithInsecure(insecure bool) Option {
	return func(s *Server) { s.insecure = insecure }
}

// WithGracePeriod sets how long in-flight calls may run after shutdown
// begins.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Server) { s.grace = d }
}

// NewServer returns a server that will host the supplied function.
func NewServer(fn fnv1.FunctionRunnerServiceServer, opts ...Option) *Server {
	s := &Server{
		fn:      fn,
		addr:    ":9443",
		grace:   DefaultGracePeriod,
		stopped: make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the server's current lifecycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Addr returns the bound listener address. Empty until the server is
// listening.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

// ServiceNames returns the full names of the services the server exposes,
// sorted. Only meaningful once the server is listening.
func (s *Server) ServiceNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.srv == nil {
		return nil
	}
	info := s.srv.GetServiceInfo()
	names := make([]string, 0, len(info))
	for name := range info {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Serve listens on the configured address and serves RunFunction calls for
// both protocol versions until the supplied context is cancelled, a
// SIGINT/SIGTERM arrives, or serving fails. On cancellation or signal it
// performs a graceful stop bounded by the grace period and returns nil; a
// serving failure is returned as an error.
func (s *Server) Serve(ctx context.Context) error {
	if s.creds == nil && !s.insecure {
		return errors.New("no credentials were provided: supply a TLS bundle or explicitly enable insecure mode")
	}

	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(logCalls())}
	if !s.insecure {
		opts = append(opts, grpc.Creds(s.creds))
	}

	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	srv := grpc.NewServer(opts...)
	fnv1.RegisterFunctionRunnerServiceServer(srv, s.fn)
	fnv1beta1.RegisterFunctionRunnerServiceServer(srv, NewBetaRunner(s.fn))
	reflection.Register(srv)

	s.mu.Lock()
	s.srv = srv
	s.lis = lis
	s.mu.Unlock()

	// Deliver termination signals into the same select that watches the
	// serving goroutine, so shutdown never races new-call acceptance.
	sigCtx, unregister := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer unregister()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	s.state.Store(int32(StateListening))
	logrus.Infof("Serving FunctionRunnerService on %s (insecure=%t)", lis.Addr(), s.insecure)

	select {
	case err := <-errCh:
		if err == nil {
			// Stop was requested directly on the server.
			s.Stop()
			return nil
		}
		s.state.Store(int32(StateStopped))
		s.stopOnce.Do(func() { close(s.stopped) })
		return fmt.Errorf("server failed: %w", err)
	case <-sigCtx.Done():
		s.Stop()
		<-errCh
		return nil
	}
}

// Stop gracefully stops the server, waiting up to the grace period for
// in-flight calls before aborting the remainder. It is idempotent and safe
// to call concurrently; every call blocks until the server has stopped.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		defer close(s.stopped)

		s.mu.RLock()
		srv := s.srv
		s.mu.RUnlock()
		if srv == nil {
			s.state.Store(int32(StateStopped))
			return
		}

		s.state.Store(int32(StateStopping))
		logrus.Infof("Shutting down, allowing %s for in-flight calls", s.grace)

		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(s.grace):
			logrus.Warn("Grace period expired, aborting remaining calls")
			srv.Stop()
			<-done
		}
		s.state.Store(int32(StateStopped))
	})
	<-s.stopped
}
