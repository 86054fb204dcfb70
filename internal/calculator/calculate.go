package calculator

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// resultDecimals is the fixed number of fractional digits a result is
// rounded to before trailing zeros are trimmed.
const resultDecimals = 8

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseOperand parses s as a finite decimal number.
func ParseOperand(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, newError(ParseFailure, "operand %q is not a decimal number", s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newError(ParseFailure, "operand %q: %v", s, err)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newError(ParseFailure, "operand %q is not finite", s)
	}

	return v, nil
}

// Calculate parses both operands and applies op. For Sqrt the second
// operand is ignored and never parsed.
func Calculate(operand1, operand2 string, op Operator) (float64, error) {
	a, err := ParseOperand(operand1)
	if err != nil {
		return 0, err
	}

	if op.IsUnary() {
		return Apply(op, a, 0)
	}

	b, err := ParseOperand(operand2)
	if err != nil {
		return 0, err
	}

	return Apply(op, a, b)
}

// Apply performs op on already parsed operands.
func Apply(op Operator, a, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, newError(DivideByZero, "%g / %g", a, b)
		}
		return a / b, nil
	case Power:
		return math.Pow(a, b), nil
	case Sqrt:
		if a < 0 {
			return 0, newError(NegativeSqrt, "√(%g)", a)
		}
		return math.Sqrt(a), nil
	}
	return 0, newError(InvalidOperator, "operator %d", int(op))
}

// Evaluate runs a wire request end to end and returns the formatted result.
func Evaluate(req Request) (string, error) {
	op, a, b, err := parseRequest(req)
	if err != nil {
		return "", err
	}

	v, err := Apply(op, a, b)
	if err != nil {
		return "", err
	}

	return FormatResult(v), nil
}

// parseRequest reads the operands before resolving the operator, so a
// request that is wrong on both counts reports its numbers. The second
// operand is not read for √. The returned Operator is valid whenever the
// token was, even if an operand failed.
func parseRequest(req Request) (Operator, float64, float64, error) {
	op, opErr := ParseOperator(req.Operation)

	a, err := ParseOperand(req.FirstNumber)
	if err != nil {
		return op, 0, 0, err
	}

	var b float64
	if opErr != nil || !op.IsUnary() {
		if b, err = ParseOperand(req.SecondNumber); err != nil {
			return op, 0, 0, err
		}
	}

	if opErr != nil {
		return op, 0, 0, opErr
	}
	return op, a, b, nil
}

// FormatResult renders v with at most eight fractional digits, trimming
// trailing zeros and then a trailing decimal point: 4.0 → "4", 4.5 → "4.5".
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	s := strconv.FormatFloat(v, 'f', resultDecimals, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")

	if s == "-0" {
		return "0"
	}
	return s
}
