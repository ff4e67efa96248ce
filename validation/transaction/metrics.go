package transaction

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/CentsibleLabs/lib-validation/validation/transaction"

// batchMetrics holds the counters recorded after every batch run.
type batchMetrics struct {
	recordsProcessed metric.Int64Counter
	recordsInvalid   metric.Int64Counter
	duplicates       metric.Int64Counter
}

func newBatchMetrics(meter metric.Meter) (*batchMetrics, error) {
	processed, err := meter.Int64Counter("validation_records_processed",
		metric.WithUnit("1"),
		metric.WithDescription("Measures the number of raw records submitted for validation."),
	)
	if err != nil {
		return nil, fmt.Errorf("create records_processed counter: %w", err)
	}

	invalid, err := meter.Int64Counter("validation_records_invalid",
		metric.WithUnit("1"),
		metric.WithDescription("Measures the number of records rejected, by reason."),
	)
	if err != nil {
		return nil, fmt.Errorf("create records_invalid counter: %w", err)
	}

	duplicates, err := meter.Int64Counter("validation_duplicates_detected",
		metric.WithUnit("1"),
		metric.WithDescription("Measures the number of duplicate transaction ids detected."),
	)
	if err != nil {
		return nil, fmt.Errorf("create duplicates_detected counter: %w", err)
	}

	return &batchMetrics{
		recordsProcessed: processed,
		recordsInvalid:   invalid,
		duplicates:       duplicates,
	}, nil
}

// record emits the counters for one batch run. Safe on a nil receiver so a
// failed instrument setup never blocks validation.
func (m *batchMetrics) record(ctx context.Context, stats Stats) {
	if m == nil {
		return
	}

	m.recordsProcessed.Add(ctx, int64(stats.Total))

	reasons := []struct {
		reason string
		count  int
	}{
		{"empty", stats.Empty},
		{"missing_fields", stats.MissingFields},
		{"invalid_format", stats.InvalidFormat},
	}

	for _, r := range reasons {
		if r.count == 0 {
			continue
		}

		m.recordsInvalid.Add(ctx, int64(r.count),
			metric.WithAttributes(attribute.String("reason", r.reason)))
	}

	if stats.Duplicates > 0 {
		m.duplicates.Add(ctx, int64(stats.Duplicates))
	}
}
