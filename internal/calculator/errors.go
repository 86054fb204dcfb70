package calculator

import (
	"errors"
	"fmt"
)

// Kind classifies why a calculation failed.
type Kind int

const (
	ParseFailure Kind = iota + 1
	DivideByZero
	NegativeSqrt
	InvalidOperator
)

func (k Kind) String() string {
	switch k {
	case ParseFailure:
		return "parse_failure"
	case DivideByZero:
		return "divide_by_zero"
	case NegativeSqrt:
		return "negative_sqrt"
	case InvalidOperator:
		return "invalid_operator"
	default:
		return "unknown"
	}
}

// Message is the user-facing text shown for a failure of kind k.
func (k Kind) Message() string {
	switch k {
	case DivideByZero:
		return "Cannot divide by zero!"
	case NegativeSqrt:
		return "Cannot calculate square root of negative number!"
	case InvalidOperator:
		return "Invalid operation!"
	default:
		return "Invalid input! Please check your numbers."
	}
}

// Sentinels for errors.Is checks. Every *Error matches the sentinel of its Kind.
var (
	ErrParseFailure    = &Error{Kind: ParseFailure}
	ErrDivideByZero    = &Error{Kind: DivideByZero}
	ErrNegativeSqrt    = &Error{Kind: NegativeSqrt}
	ErrInvalidOperator = &Error{Kind: InvalidOperator}
)

// Error is a failed calculation. Detail is for logs only and never reaches
// the user; Message does.
type Error struct {
	Kind   Kind
	Detail string
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Message returns the user-facing text for e.
func (e *Error) Message() string {
	return e.Kind.Message()
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the Kind of err. Errors that are not calculator errors
// report ParseFailure, matching the generic "invalid input" reply.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ParseFailure
}
