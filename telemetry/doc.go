// Package telemetry implements core.Telemetry over OpenTelemetry.
//
// The core package only knows the small Telemetry interface; this package is
// the optional upgrade path. Spans wrap catalog refreshes, counters track
// basket mutations, and traces export through the stdout exporter so a
// development session can watch them without a collector.
//
// Usage:
//
//	provider, err := telemetry.NewProvider("storefront")
//	if err != nil {
//	    return err
//	}
//	defer provider.Shutdown(context.Background())
//
//	store, err := core.NewStorefront(ctx, cfg, provider)
package telemetry
