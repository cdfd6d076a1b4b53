package service

import (
	"context"
	"errors"
	"time"

	"github.com/nikolayk812/snexa/internal/domain"
	"github.com/nikolayk812/snexa/internal/logging"
	"github.com/nikolayk812/snexa/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const spanPrefix = "UC."

// Observer wraps every use case in a span, RED metrics and a use_case_done
// log line.
type Observer struct {
	tracer  trace.Tracer
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewObserver(log *zap.Logger, m *metrics.Metrics) *Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Observer{
		tracer:  otel.Tracer("github.com/nikolayk812/snexa/internal/service"),
		metrics: m,
		log:     log,
	}
}

func nopObserver() *Observer {
	return NewObserver(nil, nil)
}

// start opens the span for useCase. The returned func must be deferred with a
// pointer to the named error result.
func (o *Observer) start(ctx context.Context, useCase string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	attrs = append(attrs, attribute.String("use_case", useCase))
	ctx, span := o.tracer.Start(ctx, spanPrefix+useCase, trace.WithAttributes(attrs...))
	start := time.Now()

	return ctx, func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}

		lat := time.Since(start).Seconds()
		outcome := outcomeOf(err)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		o.metrics.ObserveUseCase(useCase, outcome, lat)

		logger := logging.FromContextOr(ctx, o.log)
		fields := []zap.Field{
			zap.String("use_case", useCase),
			zap.String("outcome", outcome),
			zap.Float64("latency_seconds", lat),
		}
		if sc := span.SpanContext(); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}

		switch outcome {
		case "error":
			logger.Error("use_case_done", append(fields, zap.Error(err))...)
		case "rejected":
			logger.Info("use_case_done", append(fields, zap.String("reason", err.Error()))...)
		default:
			logger.Debug("use_case_done", fields...)
		}
	}
}

var rejections = []error{
	domain.ErrNoIdentity,
	domain.ErrNotFound,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidInput,
	domain.ErrEmptyCart,
	domain.ErrForbidden,
	domain.ErrConflict,
	domain.ErrAlreadySubscribed,
}

// outcomeOf separates caller mistakes from failures of the service itself.
func outcomeOf(err error) string {
	if err == nil {
		return "success"
	}
	for _, target := range rejections {
		if errors.Is(err, target) {
			return "rejected"
		}
	}
	return "error"
}
