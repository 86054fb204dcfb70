package calculator

import (
	"encoding/json"
	"net/http"
	"time"

	"web-calculator/internal/handlers"
	"web-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Route labels recorded on spans. They never come from the request.
const (
	routeToken = "token"
	routeName  = "name"
)

// CalculateHandler handles POST /Home/Calculate: the operator travels in the
// body as a token ("+", "√", ...).
func CalculateHandler(w http.ResponseWriter, r *http.Request) {
	handleCalculation(w, r, routeToken, decodeRequest)
}

// CalculateByName handles POST /calculator/{operation}, where {operation}
// is a route name such as "add" or "sqrt". An unknown name leaves the
// operation empty, so it is rejected only after the operands are read.
func CalculateByName(w http.ResponseWriter, r *http.Request) {
	handleCalculation(w, r, routeName, func(r *http.Request) (Request, error) {
		var body OperandsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return Request{}, newError(ParseFailure, "decoding request body: %v", err)
		}

		req := Request{FirstNumber: body.FirstNumber, SecondNumber: body.SecondNumber}
		if op, err := OperatorByName(chi.URLParam(r, "operation")); err == nil {
			req.Operation = op.Token()
		}
		return req, nil
	})
}

func decodeRequest(r *http.Request) (Request, error) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Request{}, newError(ParseFailure, "decoding request body: %v", err)
	}
	return req, nil
}

// handleCalculation is shared by both endpoints. Every outcome, including an
// unreadable body, is answered with HTTP 200 and a Response envelope; the
// failure reason is kept on the span, the rejection counter and the log.
func handleCalculation(w http.ResponseWriter, r *http.Request, route string, decode func(*http.Request) (Request, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.calculate",
		trace.WithAttributes(
			attribute.String("calculator.route", route),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	reject := func(op Operator, err error) {
		kind := KindOf(err)
		observability.RecordError(ctx, span, logger, rejectionCounter, "calculation rejected", err,
			attribute.String("operation", op.Name()),
			attribute.String("reason", kind.String()),
		)
		handlers.WriteJSON(w, http.StatusOK, Response{Success: false, Message: kind.Message()})
	}

	req, err := decode(r)
	if err != nil {
		reject(unresolved, err)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operation", req.Operation),
		attribute.String("calculator.operand.first", req.FirstNumber),
		attribute.String("calculator.operand.second", req.SecondNumber),
	)

	start := time.Now()
	op, a, b, err := parseRequest(req)
	if err != nil {
		reject(op, err)
		return
	}
	value, err := Apply(op, a, b)
	if err != nil {
		reject(op, err)
		return
	}
	result := FormatResult(value)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", op.Name()))
	calculationCounter.Add(ctx, 1, attrs)
	calculationDuration.Record(ctx, elapsed, attrs)
	lastResultGauge.Record(ctx, value, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("operation", op.Name()),
		zap.String("first", req.FirstNumber),
		zap.String("second", req.SecondNumber),
		zap.String("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, Response{Success: true, Result: result})
}
