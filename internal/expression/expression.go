// Package expression builds and decomposes the calculator's input line.
//
// An expression holds at most one operation: "12+3", "2^8" or "√(16)".
// Decomposition is plain string splitting. There is no precedence, no
// chaining and no nesting beyond the single square-root wrapper.
package expression

import (
	"strings"
	"unicode/utf8"

	"web-calculator/internal/calculator"
)

// Initial is the empty expression shown after a clear.
const Initial = "0"

const (
	decimalPoint = "."
	rootPrefix   = "√("
	rootSuffix   = ")"
)

// Append adds token to expr. The initial "0" is replaced by any token but
// the decimal point, and the square-root token wraps the whole expression
// instead of being appended.
func Append(expr, token string) string {
	if expr == Initial && token != decimalPoint {
		return token
	}
	if token == calculator.Sqrt.Token() {
		return rootPrefix + expr + rootSuffix
	}
	return expr + token
}

// Backspace drops the last character of expr, falling back to Initial
// instead of producing an empty expression.
func Backspace(expr string) string {
	if utf8.RuneCountInString(expr) <= 1 {
		return Initial
	}
	_, size := utf8.DecodeLastRuneInString(expr)
	return expr[:len(expr)-size]
}

// binaryOperators are tried in this order; the first one that occurs
// exactly once splits the expression.
var binaryOperators = []calculator.Operator{
	calculator.Add,
	calculator.Subtract,
	calculator.Multiply,
	calculator.Divide,
}

// Parse decomposes expr into a calculation request. It recognises √(X),
// A^B with a single ^, and A<op>B where op is the first of + - * / that
// occurs exactly once. It reports false for anything else.
//
// A leading minus counts as an operator occurrence: "-5+3" splits on "+",
// but "-5-3" has two "-" and is rejected.
func Parse(expr string) (calculator.Request, bool) {
	if strings.HasPrefix(expr, rootPrefix) && strings.HasSuffix(expr, rootSuffix) {
		return calculator.Request{
			FirstNumber:  expr[len(rootPrefix) : len(expr)-len(rootSuffix)],
			SecondNumber: "0",
			Operation:    calculator.Sqrt.Token(),
		}, true
	}

	if req, ok := split(expr, calculator.Power); ok {
		return req, true
	}

	for _, op := range binaryOperators {
		if req, ok := split(expr, op); ok {
			return req, true
		}
	}

	return calculator.Request{}, false
}

func split(expr string, op calculator.Operator) (calculator.Request, bool) {
	parts := strings.Split(expr, op.Token())
	if len(parts) != 2 {
		return calculator.Request{}, false
	}
	return calculator.Request{
		FirstNumber:  parts[0],
		SecondNumber: parts[1],
		Operation:    op.Token(),
	}, true
}
