package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/client"
)

type call struct {
	op   calculator.Operation
	a, b float64
}

// fakeEvaluator records calls and answers with a fixed response or error.
type fakeEvaluator struct {
	calls []call
	resp  *calculator.CalcResponse
	err   error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, op calculator.Operation, a, b float64) (*calculator.CalcResponse, error) {
	f.calls = append(f.calls, call{op: op, a: a, b: b})
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &calculator.CalcResponse{
		Operation: string(op),
		A:         FormatNumber(a),
		B:         FormatNumber(b),
		Result:    op.Apply(a, b),
	}, nil
}

func press(t *testing.T, s *Session, digits ...int) {
	t.Helper()
	for _, d := range digits {
		if err := s.PressDigit(d); err != nil {
			t.Fatalf("pressing %d: %v", d, err)
		}
	}
}

func TestNewStartsIdleWithDefaultDisplay(t *testing.T) {
	s := New()

	if s.Display != DefaultDisplay {
		t.Fatalf("expected display %q, got %q", DefaultDisplay, s.Display)
	}
	if s.State() != Idle {
		t.Fatalf("expected state %s, got %s", Idle, s.State())
	}
}

func TestDigitsAppendFromIdle(t *testing.T) {
	s := New()
	press(t, s, 7, 8)

	if s.Display != "78" {
		t.Fatalf("expected display %q, got %q", "78", s.Display)
	}
}

func TestDigitReplacesDefaultZero(t *testing.T) {
	s := New()
	press(t, s, 0, 0, 5)

	if s.Display != "5" {
		t.Fatalf("expected display %q, got %q", "5", s.Display)
	}
}

func TestPressDigitRejectsOutOfRange(t *testing.T) {
	s := New()

	if err := s.PressDigit(10); err == nil {
		t.Fatal("expected error for digit 10")
	}
	if s.Display != DefaultDisplay {
		t.Fatalf("expected display unchanged, got %q", s.Display)
	}
}

func TestPressDecimal(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *Session)
		want string
	}{
		{
			name: "from default",
			run:  func(s *Session) { s.PressDecimal() },
			want: "0.",
		},
		{
			name: "only once",
			run: func(s *Session) {
				s.PressDigit(1)
				s.PressDecimal()
				s.PressDigit(5)
				s.PressDecimal()
			},
			want: "1.5",
		},
		{
			name: "starts second operand",
			run: func(s *Session) {
				s.PressDigit(9)
				s.PressOperation(calculator.OpAdd)
				s.PressDecimal()
				s.PressDigit(2)
			},
			want: "0.2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			tc.run(s)
			if s.Display != tc.want {
				t.Fatalf("expected display %q, got %q", tc.want, s.Display)
			}
		})
	}
}

func TestPressOperationCapturesFirstOperand(t *testing.T) {
	s := New()
	press(t, s, 4, 2)

	if err := s.PressOperation(calculator.OpSubtract); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.FirstOperand == nil || *s.FirstOperand != 42 {
		t.Fatalf("expected first operand 42, got %v", s.FirstOperand)
	}
	if s.Operation != calculator.OpSubtract {
		t.Fatalf("expected operation %q, got %q", calculator.OpSubtract, s.Operation)
	}
	if !s.AwaitingSecond {
		t.Fatal("expected to await second operand")
	}
	if s.State() != AwaitingSecondOperand {
		t.Fatalf("expected state %s, got %s", AwaitingSecondOperand, s.State())
	}

	press(t, s, 8)
	if s.Display != "8" {
		t.Fatalf("expected second operand to replace display, got %q", s.Display)
	}
	if s.AwaitingSecond {
		t.Fatal("expected awaiting flag cleared by digit input")
	}
}

func TestPressOperationOverwritesPending(t *testing.T) {
	s := New()
	press(t, s, 5)
	s.PressOperation(calculator.OpAdd)
	press(t, s, 6)

	if err := s.PressOperation(calculator.OpSubtract); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *s.FirstOperand != 6 {
		t.Fatalf("expected first operand overwritten with 6, got %g", *s.FirstOperand)
	}
	if s.Operation != calculator.OpSubtract {
		t.Fatalf("expected operation %q, got %q", calculator.OpSubtract, s.Operation)
	}
}

func TestPressOperationRejectsUnknownOperation(t *testing.T) {
	s := New()
	press(t, s, 3)

	if err := s.PressOperation("multiply"); err == nil {
		t.Fatal("expected error for unknown operation")
	}
	if s.HasPending() {
		t.Fatal("expected no pending operation")
	}
}

func TestEvaluateWithoutPendingIsNoOp(t *testing.T) {
	ev := &fakeEvaluator{}
	s := New()
	press(t, s, 1, 2)

	if ran := s.Evaluate(context.Background(), ev); ran {
		t.Fatal("expected evaluate to report no-op")
	}
	if s.Display != "12" {
		t.Fatalf("expected display unchanged, got %q", s.Display)
	}
	if len(ev.calls) != 0 {
		t.Fatalf("expected no service calls, got %d", len(ev.calls))
	}
}

func TestEvaluateSuccess(t *testing.T) {
	want := &calculator.CalcResponse{Operation: "add", A: "7.0", B: "3.0", Result: 10}
	ev := &fakeEvaluator{resp: want}
	s := New()

	press(t, s, 7)
	s.PressOperation(calculator.OpAdd)
	press(t, s, 3)

	if ran := s.Evaluate(context.Background(), ev); !ran {
		t.Fatal("expected evaluate to run")
	}

	if s.Display != "10" {
		t.Fatalf("expected display %q, got %q", "10", s.Display)
	}
	if s.Response != want {
		t.Fatalf("expected response to be retained, got %+v", s.Response)
	}
	if s.Result == nil || *s.Result != 10 {
		t.Fatalf("expected result 10, got %v", s.Result)
	}
	if len(ev.calls) != 1 || ev.calls[0] != (call{op: calculator.OpAdd, a: 7, b: 3}) {
		t.Fatalf("unexpected calls %+v", ev.calls)
	}
	if s.State() != Idle {
		t.Fatalf("expected state %s after evaluation, got %s", Idle, s.State())
	}
	if !s.HasPending() {
		t.Fatal("expected pending operation to be kept after evaluation")
	}
}

func TestRepeatedEvaluateReusesFirstOperand(t *testing.T) {
	ev := &fakeEvaluator{}
	s := New()

	press(t, s, 7)
	s.PressOperation(calculator.OpAdd)
	press(t, s, 3)
	s.Evaluate(context.Background(), ev)
	s.Evaluate(context.Background(), ev)

	if s.Display != "17" {
		t.Fatalf("expected display %q, got %q", "17", s.Display)
	}
	if ev.calls[1] != (call{op: calculator.OpAdd, a: 7, b: 10}) {
		t.Fatalf("expected second call add(7, 10), got %+v", ev.calls[1])
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "connection failure",
			err:  fmt.Errorf("%w: dial tcp: connection refused", client.ErrConnection),
			want: ConnectionErrorDisplay,
		},
		{
			name: "non-success status",
			err:  &client.StatusError{Code: http.StatusBadRequest},
			want: "Error: 400",
		},
		{
			name: "other failure",
			err:  errors.New("decoding response: unexpected EOF"),
			want: "Error: decoding r",
		},
		{
			name: "short message",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := &fakeEvaluator{err: tc.err}
			s := New()
			press(t, s, 7)
			s.PressOperation(calculator.OpSubtract)
			press(t, s, 3)

			s.Evaluate(context.Background(), ev)

			if s.Display != tc.want {
				t.Fatalf("expected display %q, got %q", tc.want, s.Display)
			}
			if !s.Errored() {
				t.Fatal("expected errored display")
			}
			if s.Result != nil || s.Response != nil {
				t.Fatal("expected no result after failure")
			}
			if !s.HasPending() {
				t.Fatal("expected pending operation to be kept after failure")
			}
		})
	}
}

func TestDigitAfterErrorStartsFresh(t *testing.T) {
	ev := &fakeEvaluator{err: client.ErrConnection}
	s := New()
	press(t, s, 7)
	s.PressOperation(calculator.OpAdd)
	press(t, s, 3)
	s.Evaluate(context.Background(), ev)

	if err := s.PressOperation(calculator.OpAdd); err == nil {
		t.Fatal("expected operation on error display to fail")
	}

	press(t, s, 4)
	if s.Display != "4" {
		t.Fatalf("expected display %q, got %q", "4", s.Display)
	}
	if s.Errored() {
		t.Fatal("expected error flag cleared")
	}
}

func TestEvaluateUnparsableSecondOperand(t *testing.T) {
	ev := &fakeEvaluator{}
	s := New()
	press(t, s, 7)
	s.PressOperation(calculator.OpAdd)
	s.Display = "7..1"

	if ran := s.Evaluate(context.Background(), ev); !ran {
		t.Fatal("expected evaluate to run")
	}
	if len(ev.calls) != 0 {
		t.Fatalf("expected no service call, got %d", len(ev.calls))
	}
	if s.Display != "Error: could not " {
		t.Fatalf("expected truncated error display, got %q", s.Display)
	}
}

func TestClearResetsEverything(t *testing.T) {
	ev := &fakeEvaluator{}
	s := New()
	press(t, s, 7)
	s.PressOperation(calculator.OpAdd)
	press(t, s, 3)
	s.Evaluate(context.Background(), ev)

	s.Clear()

	if s.Display != DefaultDisplay {
		t.Fatalf("expected display %q, got %q", DefaultDisplay, s.Display)
	}
	if s.FirstOperand != nil || s.Operation != "" || s.Result != nil || s.Response != nil {
		t.Fatalf("expected cleared session, got %+v", s)
	}
	if s.AwaitingSecond || s.Errored() {
		t.Fatal("expected flags cleared")
	}
	if s.State() != Idle {
		t.Fatalf("expected state %s, got %s", Idle, s.State())
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 10, want: "10"},
		{in: -2.5, want: "-2.5"},
		{in: 0.30000000000000004, want: "0.30000000000000004"},
		{in: 1234567, want: "1234567"},
		{in: 1e21, want: "1e+21"},
		{in: 0.00001, want: "1e-05"},
		{in: 0, want: "0"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatNumber(tc.in); got != tc.want {
				t.Fatalf("FormatNumber(%v): expected %q, got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestEvaluateResponseWithoutResultShowsError(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"message":"Calculator API is running."}`,
		`{"operation":"add","result":null}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			t.Cleanup(srv.Close)

			c, err := client.New(srv.URL)
			if err != nil {
				t.Fatalf("creating client: %v", err)
			}

			s := New()
			press(t, s, 7)
			s.PressOperation(calculator.OpAdd)
			press(t, s, 3)
			s.Evaluate(context.Background(), c)

			if !strings.HasPrefix(s.Display, "Error: ") {
				t.Fatalf("expected error display, got %q", s.Display)
			}
			if !s.Errored() {
				t.Fatal("expected errored display")
			}
			if s.Result != nil || s.Response != nil {
				t.Fatalf("expected no result retained, got result=%v response=%+v", s.Result, s.Response)
			}
		})
	}
}
