// Package app holds the calculator client's state and the session that
// turns an expression into a recorded result.
//
// State is a plain value. Every update is a function from State to State;
// nothing in this package keeps ambient mutable state.
package app

import (
	"time"

	"web-calculator/internal/expression"
	"web-calculator/internal/history"
)

// ErrorDisplay is how long a failure stays on screen before ResetError.
const ErrorDisplay = 2 * time.Second

// ErrorResult is shown in place of the result while a failure is displayed.
const ErrorResult = "Error"

// State is everything the client renders.
type State struct {
	Expression string
	Result     string
	// Error is the message of the failure currently displayed, if any.
	Error   string
	History []history.Entry
}

// New returns the initial state with the given history.
func New(entries []history.Entry) State {
	return State{
		Expression: expression.Initial,
		Result:     expression.Initial,
		History:    entries,
	}
}

// Press appends a key's token to the expression.
func Press(s State, token string) State {
	s.Expression = expression.Append(s.Expression, token)
	return s
}

// Backspace deletes the last character of the expression.
func Backspace(s State) State {
	s.Expression = expression.Backspace(s.Expression)
	return s
}

// ClearAll resets the expression and the result. History is kept.
func ClearAll(s State) State {
	s.Expression = expression.Initial
	s.Result = expression.Initial
	s.Error = ""
	return s
}

// Reuse starts a new expression from the result of history entry i.
// It reports false when i is out of range.
func Reuse(s State, i int) (State, bool) {
	if i < 0 || i >= len(s.History) {
		return s, false
	}
	s.Expression = s.History[i].Result
	s.Result = expression.Initial
	return s, true
}

// Succeeded shows result and makes it the next expression.
func Succeeded(s State, result string, entries []history.Entry) State {
	s.Expression = result
	s.Result = result
	s.Error = ""
	s.History = entries
	return s
}

// Failed displays msg until ResetError is applied.
func Failed(s State, msg string) State {
	s.Result = ErrorResult
	s.Error = msg
	return s
}

// ResetError clears a displayed failure. The expression is left as typed.
func ResetError(s State) State {
	if s.Result == ErrorResult {
		s.Result = expression.Initial
	}
	s.Error = ""
	return s
}
