package main

import (
	"context"

	// Packages
	humanize "github.com/dustin/go-humanize"
	metrics "github.com/mutablelogic/go-s3wagon/pkg/metrics"
	types "github.com/mutablelogic/go-server/pkg/types"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	metricdata "go.opentelemetry.io/otel/sdk/metric/metricdata"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type stats struct {
	Started   int64  `json:"started"`
	Completed int64  `json:"completed"`
	Errors    int64  `json:"errors"`
	Bytes     string `json:"bytes"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s stats) String() string {
	return types.Stringify(s)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// collectStats sums the transfer counters across all request types
func collectStats(ctx context.Context, reader *sdkmetric.ManualReader) (stats, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return stats{}, err
	}

	totals := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}

	// Return success
	return stats{
		Started:   totals[metrics.MetricTransferStarted],
		Completed: totals[metrics.MetricTransferCompleted],
		Errors:    totals[metrics.MetricTransferErrors],
		Bytes:     humanize.Bytes(uint64(totals[metrics.MetricTransferBytes])),
	}, nil
}
