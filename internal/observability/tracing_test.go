package observability

import (
	"context"
	"errors"
	"testing"
)

func TestDefaultTracingConfig(t *testing.T) {
	cfg := DefaultTracingConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.ServiceName != "svgsmith" {
		t.Fatalf("expected service name 'svgsmith', got %s", cfg.ServiceName)
	}
	if cfg.SampleRate != 1.0 {
		t.Fatalf("expected sample rate 1.0, got %f", cfg.SampleRate)
	}
}

func TestInitTracing_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracing(ctx, &TracingConfig{ServiceName: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp.Tracer() == nil {
		t.Fatal("expected non-nil tracer")
	}
	if err := tp.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestInitTracing_NilConfig(t *testing.T) {
	tp, err := InitTracing(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp == nil {
		t.Fatal("expected non-nil tracer provider")
	}
}

func TestInitTracing_WithEndpoint(t *testing.T) {
	ctx := context.Background()
	// The gRPC exporter connects lazily, so no collector is needed.
	tp, err := InitTracing(ctx, &TracingConfig{
		ServiceName:  "test",
		OTLPEndpoint: "127.0.0.1:4317",
		Insecure:     true,
		SampleRate:   0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp.provider == nil {
		t.Fatal("expected SDK provider")
	}
	shutdownCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = tp.Shutdown(shutdownCtx)
}

func TestNestedSpans(t *testing.T) {
	ctx, parent := StartConvertSpan(context.Background(), "ArrowLeft", []string{"react", "vue"})

	_, parse := StartStageSpan(ctx, SpanKindParse, "")
	RecordMarkupSize(parse, 120, 0)
	parse.End()

	_, emit := StartStageSpan(ctx, SpanKindEmit, "react")
	RecordError(emit, nil)
	RecordError(emit, errors.New("boom"))
	emit.End()

	parent.End()
}

func TestTracerProvider_Shutdown_NilProvider(t *testing.T) {
	tp := &TracerProvider{}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil error for nil provider, got: %v", err)
	}
}
