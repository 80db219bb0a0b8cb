package main

import (
	"context"
	"owprofile-backend/internal/components/telemetry"
	"owprofile-backend/lib/serviceutil"
)

// InitTelemetry installs the logger and otel providers, the returned func
// flushes exporters.
func InitTelemetry(ctx context.Context, cfg Config) func() {
	telemetry.InitSlog(cfg.Verbose)

	t, err := telemetry.Setup(ctx, "owprofile-server", cfg.Otlp)
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)

	return func() {
		err := t.Shutdown(context.Background())
		if err != nil {
			telemetry.SlogAPI{}.ReportWarning("telemetry.shutdown", err)
		}
	}
}
