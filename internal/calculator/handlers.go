package calculator

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// StatusMessage is returned by GET /.
const StatusMessage = "Calculator API is running. Use /add or /subtract endpoints."

var errResultOutOfRange = errors.New("result is not a finite number")

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, StatusResponse{Message: StatusMessage})
}

// Add handles GET /add?a=&b=
func Add(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpAdd)
}

// Subtract handles GET /subtract?a=&b=
func Subtract(w http.ResponseWriter, r *http.Request) {
	handleBinaryOp(w, r, OpSubtract)
}

// handleBinaryOp is the shared implementation for both operations: child
// span, query validation, timed computation, metrics, trace-correlated log
// and the JSON response.
func handleBinaryOp(w http.ResponseWriter, r *http.Request, op Operation) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := string(op)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	query := r.URL.Query()
	q := CalcQuery{A: query.Get("a"), B: query.Get("b")}

	if err := validate.Struct(q); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", err, http.StatusBadRequest, w)
		return
	}

	// Both already passed finitefloat.
	a, _ := parseOperand(q.A)
	b, _ := parseOperand(q.B)

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", a),
		attribute.Float64("calculator.operand.b", b),
	)

	start := time.Now()
	result := op.Apply(a, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	// encoding/json cannot represent ±Inf.
	if math.IsInf(result, 0) {
		err := fmt.Errorf("%w: %g %s %g", errResultOutOfRange, a, op.Symbol(), b)
		observability.RecordError(ctx, span, logger, errorCounter, opName, "result out of range", err, http.StatusUnprocessableEntity, w)
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         q.A,
		B:         q.B,
		Result:    result,
	})
}
