// Introspection gRPC daemon
//
// Standalone gRPC server exposing IntrospectionService.DescribeInterface.
// This binary can be run as a sidecar process or remote service.
//
// Usage:
//
//	go run ./cmd/introspectd                  # Default :50051
//	go run ./cmd/introspectd -addr :8080      # Custom port
//	go build -o introspectd ./cmd/introspectd && ./introspectd
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeeves-cluster-organization/rmi-introspector/commbus"
	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/grpc"
	grpclib "google.golang.org/grpc"
)

// stdLogger implements grpc.Logger using standard library log.
type stdLogger struct{}

func (l *stdLogger) Debug(msg string, keysAndValues ...any) {
	log.Printf("[DEBUG] %s %v", msg, keysAndValues)
}

func (l *stdLogger) Info(msg string, keysAndValues ...any) {
	log.Printf("[INFO] %s %v", msg, keysAndValues)
}

func (l *stdLogger) Warn(msg string, keysAndValues ...any) {
	log.Printf("[WARN] %s %v", msg, keysAndValues)
}

func (l *stdLogger) Error(msg string, keysAndValues ...any) {
	log.Printf("[ERROR] %s %v", msg, keysAndValues)
}

func main() {
	addr := flag.String("addr", ":50051", "gRPC server address")
	queryTimeout := flag.Duration("bus-query-timeout", 5*time.Second, "commbus QuerySync timeout")
	breakerThreshold := flag.Int("breaker-threshold", 5, "consecutive IntrospectionFailed events before the circuit opens")
	breakerReset := flag.Duration("breaker-reset", 30*time.Second, "circuit breaker half-open retry interval")
	flag.Parse()

	logger := &stdLogger{}
	logger.Info("introspectd_starting", "address", *addr)

	// The bus carries InterfaceExamined/IntrospectionFailed domain events out
	// of the gRPC handler so audit logging and cache-warming subscribers can
	// observe introspection traffic without depending on grpc.
	bus := commbus.NewInMemoryCommBus(*queryTimeout)
	bus.AddMiddleware(commbus.NewLoggingMiddleware("info"))
	bus.AddMiddleware(commbus.NewCircuitBreakerMiddleware(*breakerThreshold, *breakerReset, []string{"InterfaceExamined"}))
	// The handler itself returns an error for every IntrospectionFailed
	// event it sees: CircuitBreakerMiddleware.After only counts a dispatch
	// as a failure when its handler errors, so treating "an introspection
	// failed" as "this dispatch failed" is what lets the breaker actually
	// count consecutive failures and trip. Once open, Before blocks further
	// IntrospectionFailed events from reaching this handler until the reset
	// timeout elapses, capping how much a flood of bad schemas can log.
	bus.Subscribe("IntrospectionFailed", func(_ context.Context, msg commbus.Message) (any, error) {
		failed := msg.(*commbus.IntrospectionFailed)
		logger.Warn("introspection_failed", "invocation_id", failed.InvocationID, "stub", failed.StubName, "reason", failed.Reason)
		return nil, fmt.Errorf("introspection failed: %s", failed.Reason)
	})

	server := grpc.NewIntrospectionServer(logger, bus)

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", *addr, err)
	}

	grpcServer := grpclib.NewServer(grpc.ServerOptions(logger)...)
	grpc.RegisterIntrospectionServer(grpcServer, server)
	logger.Info("grpc_server_configured", "services", []string{"IntrospectionService"})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc_serve_failed", "error", err.Error())
		}
	}()

	logger.Info("introspectd_ready", "address", *addr)
	fmt.Printf("\nIntrospection server running on %s\n", *addr)
	fmt.Println("Press Ctrl+C to stop")

	sig := <-sigCh
	logger.Info("shutdown_signal_received", "signal", sig.String())

	grpcServer.GracefulStop()
	logger.Info("introspectd_stopped")
}
