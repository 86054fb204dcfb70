package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"web-calculator/internal/calculator"
	"web-calculator/internal/client"
	"web-calculator/internal/expression"
	"web-calculator/internal/history"
)

// ErrInvalidExpression is returned for expressions expression.Parse rejects.
var ErrInvalidExpression = errors.New("invalid expression")

// Messages shown for failures that do not come with a server message.
const (
	MsgInvalidExpression = "Invalid expression"
	MsgCalculationError  = "Calculation error"
)

// Calculator computes a request remotely. *client.Client implements it.
type Calculator interface {
	Calculate(ctx context.Context, req calculator.Request) (string, error)
}

// Outcome is the result of evaluating one expression.
type Outcome struct {
	Expression string
	Result     string
	History    []history.Entry
	// Skipped is set when there was nothing to evaluate.
	Skipped bool
	Err     error
}

// Session evaluates expressions against a Calculator and records successes.
type Session struct {
	calc    Calculator
	history *history.Store
	logger  *zap.Logger
}

func NewSession(calc Calculator, store *history.Store, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{calc: calc, history: store, logger: logger}
}

// Start restores the persisted history and returns the initial state.
func (s *Session) Start(ctx context.Context) (State, error) {
	if err := s.history.Load(ctx); err != nil {
		return New(nil), err
	}
	return New(s.history.Entries()), nil
}

// Evaluate parses expr, sends it to the calculator and, on success, records
// it in history. A failure to persist history is logged, not returned: the
// result is still valid.
func (s *Session) Evaluate(ctx context.Context, expr string) Outcome {
	if expr == expression.Initial {
		return Outcome{Expression: expr, Skipped: true}
	}

	req, ok := expression.Parse(expr)
	if !ok {
		return Outcome{Expression: expr, Err: ErrInvalidExpression}
	}

	result, err := s.calc.Calculate(ctx, req)
	if err != nil {
		s.logger.Debug("calculation failed",
			zap.String("expression", expr),
			zap.Error(err),
		)
		return Outcome{Expression: expr, Err: err}
	}

	if _, err := s.history.Record(ctx, expr, result); err != nil {
		s.logger.Warn("recording history", zap.Error(err))
	}

	return Outcome{
		Expression: expr,
		Result:     result,
		History:    s.history.Entries(),
	}
}

// Submit evaluates the state's expression and applies the outcome.
func (s *Session) Submit(ctx context.Context, st State) (State, error) {
	o := s.Evaluate(ctx, st.Expression)
	return Apply(st, o), o.Err
}

// Apply folds an outcome into s. Outcomes are applied in arrival order, so
// with overlapping evaluations the last reply wins.
func Apply(s State, o Outcome) State {
	switch {
	case o.Skipped:
		return s
	case o.Err != nil:
		return Failed(s, Message(o.Err))
	default:
		return Succeeded(s, o.Result, o.History)
	}
}

// Message is the text displayed for err. Server rejections show the
// server's message; transport failures share one generic message.
func Message(err error) string {
	var rejected *client.RejectedError
	switch {
	case errors.Is(err, ErrInvalidExpression):
		return MsgInvalidExpression
	case errors.As(err, &rejected):
		return rejected.Message
	default:
		return MsgCalculationError
	}
}
