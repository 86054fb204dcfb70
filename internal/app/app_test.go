package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"web-calculator/internal/calculator"
	"web-calculator/internal/client"
	"web-calculator/internal/history"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeCalculator evaluates requests in-process, or fails with err when set.
type fakeCalculator struct {
	err   error
	calls []calculator.Request
}

func (f *fakeCalculator) Calculate(_ context.Context, req calculator.Request) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	result, err := calculator.Evaluate(req)
	if err != nil {
		var calcErr *calculator.Error
		errors.As(err, &calcErr)
		return "", &client.RejectedError{Message: calcErr.Message()}
	}
	return result, nil
}

func newSession(t *testing.T, calc Calculator) (*Session, *history.Store) {
	t.Helper()

	storage, err := history.NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	store := history.NewStore(storage)
	return NewSession(calc, store, nil), store
}

func TestStateUpdates(t *testing.T) {
	s := New(nil)
	for _, key := range []string{"1", "6"} {
		s = Press(s, key)
	}
	s = Press(s, "√")
	if s.Expression != "√(16)" {
		t.Fatalf("expected √(16), got %q", s.Expression)
	}

	s = Backspace(s)
	if s.Expression != "√(16" {
		t.Fatalf("expected √(16, got %q", s.Expression)
	}

	s = Failed(s, "boom")
	if s.Result != ErrorResult || s.Error != "boom" {
		t.Fatalf("unexpected failed state %+v", s)
	}

	s = ResetError(s)
	if s.Result != "0" || s.Error != "" || s.Expression != "√(16" {
		t.Fatalf("unexpected reset state %+v", s)
	}

	s = ClearAll(Succeeded(s, "4", nil))
	if s.Expression != "0" || s.Result != "0" {
		t.Fatalf("unexpected cleared state %+v", s)
	}
}

func TestUpdatesDoNotMutateInput(t *testing.T) {
	before := New([]history.Entry{{Expression: "1+1", Result: "2"}})
	before.Expression = "12"

	_ = Press(before, "3")
	_ = Backspace(before)
	_ = ClearAll(before)
	_, _ = Reuse(before, 0)

	if before.Expression != "12" || before.Result != "0" {
		t.Fatalf("input state changed: %+v", before)
	}
}

func TestReuse(t *testing.T) {
	s := New([]history.Entry{
		{Expression: "10/4", Result: "2.5"},
		{Expression: "2*3", Result: "6"},
	})
	s.Result = "2.5"

	got, ok := Reuse(s, 1)
	if !ok {
		t.Fatal("expected Reuse to succeed")
	}
	if got.Expression != "6" || got.Result != "0" {
		t.Fatalf("expected expression 6 and result 0, got %+v", got)
	}

	if _, ok := Reuse(s, 2); ok {
		t.Fatal("expected out-of-range Reuse to fail")
	}
}

func TestSubmitSuccessRecordsHistory(t *testing.T) {
	calc := &fakeCalculator{}
	session, store := newSession(t, calc)
	ctx := context.Background()

	s, err := session.Start(ctx)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Expression = "√(16)"

	s, err = session.Submit(ctx, s)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if s.Expression != "4" || s.Result != "4" {
		t.Fatalf("expected result 4 to become the expression, got %+v", s)
	}
	if len(s.History) != 1 || s.History[0].Expression != "√(16)" || s.History[0].Result != "4" {
		t.Fatalf("unexpected history %+v", s.History)
	}
	if diff := cmp.Diff(store.Entries(), s.History); diff != "" {
		t.Fatalf("state history differs from store (-store +state):\n%s", diff)
	}

	want := []calculator.Request{{FirstNumber: "16", SecondNumber: "0", Operation: "√"}}
	if diff := cmp.Diff(want, calc.calls); diff != "" {
		t.Fatalf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitFailures(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		calcErr  error
		wantMsg  string
		wantCall bool
	}{
		{name: "invalid expression", expr: "3+2+2", wantMsg: MsgInvalidExpression},
		{name: "server rejection", expr: "10/0", wantMsg: "Cannot divide by zero!", wantCall: true},
		{name: "transport failure", expr: "1+1", calcErr: &client.TransportError{Err: errors.New("connection refused")}, wantMsg: MsgCalculationError, wantCall: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc := &fakeCalculator{err: tc.calcErr}
			session, store := newSession(t, calc)

			s := New(nil)
			s.Expression = tc.expr

			s, err := session.Submit(context.Background(), s)
			if err == nil {
				t.Fatal("expected an error")
			}
			if s.Result != ErrorResult || s.Error != tc.wantMsg {
				t.Fatalf("expected error display %q, got %+v", tc.wantMsg, s)
			}
			if s.Expression != tc.expr {
				t.Fatalf("expression should be kept, got %q", s.Expression)
			}
			if got := len(calc.calls) > 0; got != tc.wantCall {
				t.Fatalf("calculator called = %t, want %t", got, tc.wantCall)
			}
			if n := len(store.Entries()); n != 0 {
				t.Fatalf("failures must not be recorded, got %d entries", n)
			}
		})
	}
}

func TestSubmitInitialExpressionIsNoOp(t *testing.T) {
	calc := &fakeCalculator{}
	session, _ := newSession(t, calc)

	s := New(nil)
	got, err := session.Submit(context.Background(), s)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
	if len(calc.calls) != 0 {
		t.Fatal("calculator should not be called")
	}
}

func TestApplyLastOutcomeWins(t *testing.T) {
	s := New(nil)
	s = Apply(s, Outcome{Expression: "1+1", Result: "2"})
	s = Apply(s, Outcome{Expression: "2*5", Result: "10"})

	if s.Expression != "10" || s.Result != "10" {
		t.Fatalf("expected the later outcome to win, got %+v", s)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: ErrInvalidExpression, want: MsgInvalidExpression},
		{err: &client.RejectedError{Message: "Invalid operation!"}, want: "Invalid operation!"},
		{err: &client.TransportError{Err: context.DeadlineExceeded}, want: MsgCalculationError},
		{err: errors.New("other"), want: MsgCalculationError},
	}

	for _, tc := range tests {
		if got := Message(tc.err); got != tc.want {
			t.Errorf("Message(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
