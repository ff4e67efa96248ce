package transaction

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/CentsibleLabs/lib-validation/validation"
	"github.com/CentsibleLabs/lib-validation/validation/log"
)

// ErrInvalidBatch indicates the batch input is not a record sequence at all.
// This is a caller contract violation and fails the whole call; it is never
// used for bad data inside an otherwise well-formed batch.
var ErrInvalidBatch = errors.New("batch input must be a sequence of records")

// BatchValidator validates whole batches of raw transaction records. It is
// stateless across calls; the duplicate-detection set lives inside one
// Validate call only.
type BatchValidator struct {
	logger  log.Logger
	meter   metric.Meter
	metrics *batchMetrics
	workers int
}

// Option configures a BatchValidator.
type Option func(*BatchValidator)

// WithLogger injects the logging collaborator. When absent, Validate falls
// back to the logger carried by the call context, then to a no-op logger.
func WithLogger(logger log.Logger) Option {
	return func(v *BatchValidator) {
		v.logger = logger
	}
}

// WithMeter injects an OpenTelemetry meter for batch counters. When absent,
// a noop meter is used.
func WithMeter(meter metric.Meter) Option {
	return func(v *BatchValidator) {
		v.meter = meter
	}
}

// WithWorkers sets the number of goroutines for the record-validation stage.
// Duplicate detection, output ordering, statistics, and logging always run
// as a single sequential pass in input order regardless of this setting, so
// first-occurrence-wins semantics and positional indices are preserved.
func WithWorkers(workers int) Option {
	return func(v *BatchValidator) {
		if workers > 0 {
			v.workers = workers
		}
	}
}

// NewBatchValidator creates a batch validator with the given options.
func NewBatchValidator(opts ...Option) *BatchValidator {
	v := &BatchValidator{workers: 1}

	for _, opt := range opts {
		opt(v)
	}

	if v.meter == nil {
		v.meter = noop.NewMeterProvider().Meter(meterName)
	}

	v.metrics, _ = newBatchMetrics(v.meter)

	return v
}

// Validate runs the whole batch once, in input order.
//
// The input must be a record sequence ([]RawRecord, []map[string]any, or
// []any of objects); anything else fails the call with ErrInvalidBatch.
// Every per-record problem is recoverable: the offending record lands in
// the invalid report and the batch continues. A record whose transaction id
// repeats an earlier accepted one is reclassified invalid with a duplicate
// error naming that id.
func (v *BatchValidator) Validate(ctx context.Context, input any) (BatchResult, error) {
	records, err := coerceBatch(input)
	if err != nil {
		return BatchResult{}, err
	}

	logger := v.resolveLogger(ctx).With(log.String("run_id", uuid.NewString()))

	results := v.validateRecords(records)

	result := BatchResult{Stats: Stats{Total: len(records)}}
	seen := make(map[string]struct{}, len(records))

	for i, recordResult := range results {
		raw := records[i]

		switch {
		case len(raw) == 0:
			result.Stats.Empty++
			v.reject(ctx, logger, &result, InvalidRecord{Index: i, Record: raw, Errors: recordResult.Errors})
		case !recordResult.Valid:
			if len(recordResult.MissingFields) > 0 {
				result.Stats.MissingFields++
			} else {
				result.Stats.InvalidFormat++
			}

			v.reject(ctx, logger, &result, InvalidRecord{Index: i, Record: raw, Errors: recordResult.Errors})
		default:
			id := recordResult.Transaction.TransactionID
			if _, duplicate := seen[id]; duplicate {
				result.Stats.Duplicates++
				result.Stats.InvalidFormat++

				dupErr := NewFieldError(ErrorDuplicateID, FieldTransactionID, fmt.Sprintf("duplicate transaction id %q", id))
				v.reject(ctx, logger, &result, InvalidRecord{
					Index:  i,
					Record: raw,
					Errors: map[string]string{FieldTransactionID: flattenFieldError(dupErr)},
				})

				continue
			}

			seen[id] = struct{}{}
			result.Valid = append(result.Valid, recordResult.Transaction)

			if len(recordResult.Notes) > 0 && logger.Enabled(log.LevelDebug) {
				logger.Log(ctx, log.LevelDebug, "normalized with conversions",
					log.Int("index", i),
					log.Any("notes", recordResult.Notes),
				)
			}
		}
	}

	result.Stats.Valid = len(result.Valid)
	result.Stats.Invalid = len(result.Invalid)

	logger.Log(ctx, log.LevelInfo, "transaction batch validated",
		log.Int("total", result.Stats.Total),
		log.Int("valid", result.Stats.Valid),
		log.Int("invalid", result.Stats.Invalid),
		log.Int("duplicates", result.Stats.Duplicates),
	)

	v.metrics.record(ctx, result.Stats)

	return result, nil
}

// reject appends an invalid report and emits the per-record warning plus the
// raw record at debug level. Logging never alters validation outcomes.
func (v *BatchValidator) reject(ctx context.Context, logger log.Logger, result *BatchResult, invalid InvalidRecord) {
	result.Invalid = append(result.Invalid, invalid)

	logger.Log(ctx, log.LevelWarn, "invalid transaction record",
		log.Int("index", invalid.Index),
		log.Any("errors", invalid.Errors),
	)

	if logger.Enabled(log.LevelDebug) {
		logger.Log(ctx, log.LevelDebug, "offending raw record",
			log.Int("index", invalid.Index),
			log.Any("record", invalid.Record),
		)
	}
}

// validateRecords runs the record-validation stage. With more than one
// worker the stage fans out across a bounded pool; results land in a slice
// indexed by input position, so the merge pass stays strictly ordered.
func (v *BatchValidator) validateRecords(records []RawRecord) []RecordResult {
	results := make([]RecordResult, len(records))

	if v.workers <= 1 || len(records) < 2 {
		for i, record := range records {
			results[i] = ValidateRecord(record)
		}

		return results
	}

	workers := v.workers
	if workers > len(records) {
		workers = len(records)
	}

	indices := make(chan int)

	var wg sync.WaitGroup

	for n := 0; n < workers; n++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range indices {
				results[i] = ValidateRecord(records[i])
			}
		}()
	}

	for i := range records {
		indices <- i
	}

	close(indices)
	wg.Wait()

	return results
}

//nolint:ireturn
func (v *BatchValidator) resolveLogger(ctx context.Context) log.Logger {
	if v.logger != nil {
		return v.logger
	}

	return validation.NewLoggerFromContext(ctx)
}

// coerceBatch narrows the untyped batch input to a record slice. Sequence
// elements that are not key/value structures become nil records and are
// classified structurally by the batch pass; a non-sequence input is a hard
// failure of the whole call.
func coerceBatch(input any) ([]RawRecord, error) {
	switch batch := input.(type) {
	case nil:
		return nil, fmt.Errorf("%w: got nil", ErrInvalidBatch)
	case []RawRecord:
		return batch, nil
	case []map[string]any:
		records := make([]RawRecord, len(batch))
		for i, record := range batch {
			records[i] = RawRecord(record)
		}

		return records, nil
	case []any:
		records := make([]RawRecord, len(batch))

		for i, item := range batch {
			switch record := item.(type) {
			case RawRecord:
				records[i] = record
			case map[string]any:
				records[i] = RawRecord(record)
			default:
				records[i] = nil
			}
		}

		return records, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidBatch, input)
	}
}
