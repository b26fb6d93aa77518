// Package verify wraps the pesel core with caching, metrics, audit and
// tracing. It is the single entry point transports call.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"peselgate/internal/platform/metrics"
	dErrors "peselgate/pkg/domain-errors"
	"peselgate/pkg/pesel"
	audit "peselgate/pkg/platform/audit"
	"peselgate/pkg/requestcontext"
)

// batchConcurrency bounds the fan-out of VerifyBatch so one large batch
// cannot starve single-verify traffic of store connections.
const batchConcurrency = 8

// MaxBatchSize is the largest batch a single request may carry.
const MaxBatchSize = 100

// Service orchestrates verification: parse, cache, metrics, audit.
type Service struct {
	store  Store
	hasher *Hasher

	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
	now            func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service.
func New(store Store, hasher *Hasher, opts ...Option) *Service {
	s := &Service{
		store:  store,
		hasher: hasher,
		logger: slog.Default(),
		tracer: otel.Tracer("peselgate/verify"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify checks one PESEL. An invalid number is not an error: the Result
// reports Valid=false with the reason. The error return covers service
// failures only.
func (s *Service) Verify(ctx context.Context, input string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "verify.Verify")
	defer span.End()

	start := s.now()
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "pesel is required")
	}

	subjectHash := s.hasher.SubjectHash(input)
	span.SetAttributes(attribute.String("subject_hash", subjectHash))

	if cached, err := s.store.FindResult(ctx, subjectHash); err == nil {
		s.incrementCacheHit()
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	} else if !errors.Is(err, ErrNotFound) {
		s.logger.WarnContext(ctx, "result store lookup failed",
			"subject_hash", subjectHash,
			"error", err,
		)
	}

	result := s.evaluate(input, subjectHash)

	if err := s.store.SaveResult(ctx, result); err != nil {
		// A failed cache write degrades performance, not correctness.
		s.logger.WarnContext(ctx, "result store save failed",
			"subject_hash", subjectHash,
			"error", err,
		)
	}

	s.observeValidation(result, s.now().Sub(start))
	s.emitAudit(ctx, result)
	return result, nil
}

// VerifyBatch checks up to MaxBatchSize PESELs concurrently. Results keep
// the input order.
func (s *Service) VerifyBatch(ctx context.Context, inputs []string) ([]*Result, error) {
	ctx, span := s.tracer.Start(ctx, "verify.VerifyBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("batch_size", len(inputs)))

	if len(inputs) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "pesels array must not be empty")
	}
	if len(inputs) > MaxBatchSize {
		return nil, dErrors.New(dErrors.CodeBadRequest, "batch exceeds maximum size")
	}
	if s.metrics != nil {
		s.metrics.BatchSize.Observe(float64(len(inputs)))
	}

	results := make([]*Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, input := range inputs {
		g.Go(func() error {
			result, err := s.Verify(gctx, input)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.emitBatchAudit(ctx, results)
	return results, nil
}

// evaluate runs the pure validation and shapes the outcome into a Result.
func (s *Service) evaluate(input, subjectHash string) *Result {
	result := &Result{
		SubjectHash: subjectHash,
		CheckedAt:   s.now().UTC(),
	}

	number, err := pesel.ParseString(input)
	if err != nil {
		result.Reason = pesel.ReasonOf(err)
		return result
	}

	result.Valid = true
	result.Gender = number.Gender().String()
	result.DateOfBirth = number.DateOfBirth().Format("2006-01-02")
	result.CenturyBand = centuryBand(number.Year())
	return result
}

// centuryBand names the century the month section encoded, e.g.
// "1900-1999" for raw months 1-12.
func centuryBand(year uint16) string {
	base := year / 100 * 100
	return fmt.Sprintf("%d-%d", base, base+99)
}

func (s *Service) observeValidation(result *Result, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "valid"
	if !result.Valid {
		outcome = string(result.Reason)
	}
	s.metrics.ObserveValidation(outcome)
	s.metrics.VerifyLatency.Observe(elapsed.Seconds())
}

func (s *Service) incrementCacheHit() {
	if s.metrics != nil {
		s.metrics.CacheHits.Inc()
	}
}

func (s *Service) emitAudit(ctx context.Context, result *Result) {
	if s.auditPublisher == nil {
		return
	}
	action := audit.ActionPeselVerified
	outcome := "valid"
	if !result.Valid {
		action = audit.ActionPeselRejected
		outcome = "invalid"
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:      action,
		Outcome:     outcome,
		Reason:      string(result.Reason),
		SubjectHash: result.SubjectHash,
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		UserAgent:   requestcontext.UserAgent(ctx),
	})
}

func (s *Service) emitBatchAudit(ctx context.Context, results []*Result) {
	if s.auditPublisher == nil {
		return
	}
	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
		}
	}
	outcome := "all_valid"
	if valid < len(results) {
		outcome = "partial"
	}
	if valid == 0 {
		outcome = "all_invalid"
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    audit.ActionBatchVerified,
		Outcome:   outcome,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	})
}
