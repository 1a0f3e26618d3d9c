// Introspect CLI
//
// Loads a JSON interface schema, examines it, and prints the resolved
// descriptor.
//
// Usage:
//
//	go run ./cmd/introspect -schema calculator.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/observability"
	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/rmi"
	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/rmi/schema"
)

// stdLogger implements rmi.Logger using standard library log.
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
	schemaPath := flag.String("schema", "", "path to a JSON interface schema document")
	otlpEndpoint := flag.String("otlp-endpoint", "", "OTLP/gRPC collector endpoint; tracing is disabled when empty")
	traceSampleRatio := flag.Float64("trace-sample-ratio", 1.0, "fraction of examine calls to trace, in [0,1]")
	flag.Parse()

	logger := &stdLogger{}
	if *schemaPath == "" {
		logger.Error("missing_schema_flag")
		fmt.Fprintln(os.Stderr, "usage: introspect -schema <path.json> [-otlp-endpoint host:port]")
		os.Exit(2)
	}

	if *otlpEndpoint != "" {
		shutdown, err := observability.InitTracer("rmi-introspector", *otlpEndpoint, *traceSampleRatio)
		if err != nil {
			logger.Error("tracer_init_failed", "error", err.Error())
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	data, err := os.ReadFile(*schemaPath)
	if err != nil {
		logger.Error("schema_read_failed", "path", *schemaPath, "error", err.Error())
		os.Exit(1)
	}

	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Error("schema_decode_failed", "path", *schemaPath, "error", err.Error())
		os.Exit(1)
	}

	src, err := schema.Load(doc, nil)
	if err != nil {
		logger.Error("schema_load_failed", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("examine_starting", "interface", src.Name)
	desc, err := rmi.Examine(src)
	if err != nil {
		logger.Error("examine_failed", "interface", src.Name, "error", err.Error())
		os.Exit(1)
	}

	fmt.Printf("interface %s (%s)\n", desc.Name(), desc.ID())
	for _, m := range desc.Methods() {
		fmt.Printf("  %s\n", m.SignatureString(desc.Name()))
	}
}
