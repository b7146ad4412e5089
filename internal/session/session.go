// Package session holds the calculator's input and display state machine.
//
// A Session is either Idle or AwaitingSecondOperand. Digit and decimal input
// edit the display, an operation key captures the display as the first
// operand, and evaluation sends the pending pair to an Evaluator. Failures
// never escape Evaluate: they are rendered into the display instead.
//
// A Session is not safe for concurrent use; a UI owns one per user.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/client"
)

// DefaultDisplay is the display after start-up and Clear.
const DefaultDisplay = "0"

// ConnectionErrorDisplay is shown when the service cannot be reached.
const ConnectionErrorDisplay = "Connection Error"

// maxErrorChars bounds the message shown for unexpected failures.
const maxErrorChars = 10

// Evaluator performs one remote calculation. *client.Client implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, op calculator.Operation, a, b float64) (*calculator.CalcResponse, error)
}

type State int

const (
	Idle State = iota
	AwaitingSecondOperand
)

func (s State) String() string {
	switch s {
	case AwaitingSecondOperand:
		return "awaiting second operand"
	default:
		return "idle"
	}
}

// Request is a pending calculation ready to be sent.
type Request struct {
	Operation calculator.Operation
	A         float64
	B         float64
}

type Session struct {
	Display        string
	FirstOperand   *float64
	Operation      calculator.Operation
	AwaitingSecond bool

	// Result and Response hold the last successful evaluation.
	Result   *float64
	Response *calculator.CalcResponse

	// errored is set while Display shows an error message rather than a
	// number.
	errored bool

	// evaluated is set once the pending operation has been sent.
	evaluated bool
}

func New() *Session {
	return &Session{Display: DefaultDisplay}
}

// State is AwaitingSecondOperand between an operation key and the next
// evaluation, Idle otherwise.
func (s *Session) State() State {
	if s.HasPending() && !s.evaluated {
		return AwaitingSecondOperand
	}
	return Idle
}

// HasPending reports whether an operation and first operand are recorded.
// They survive evaluation, so a repeated "=" runs the same operation again.
func (s *Session) HasPending() bool {
	return s.Operation != "" && s.FirstOperand != nil
}

// Errored reports whether Display currently shows an error message.
func (s *Session) Errored() bool {
	return s.errored
}

// PressDigit appends d to the display, or replaces the display when it shows
// the default "0", an error, or the first operand of a pending operation.
func (s *Session) PressDigit(d int) error {
	if d < 0 || d > 9 {
		return fmt.Errorf("digit out of range: %d", d)
	}
	digit := strconv.Itoa(d)

	switch {
	case s.AwaitingSecond, s.errored, s.Display == DefaultDisplay:
		s.Display = digit
		s.AwaitingSecond = false
		s.errored = false
	default:
		s.Display += digit
	}
	return nil
}

// PressDecimal adds a decimal point. A display that is about to be replaced
// becomes "0."; a display that already has a point is left alone.
func (s *Session) PressDecimal() {
	switch {
	case s.AwaitingSecond, s.errored:
		s.Display = DefaultDisplay + "."
		s.AwaitingSecond = false
		s.errored = false
	case !strings.Contains(s.Display, "."):
		s.Display += "."
	}
}

// PressOperation captures the display as the first operand and records op,
// overwriting any pending operation. It fails, leaving the session
// unchanged, when the display does not hold a number.
func (s *Session) PressOperation(op calculator.Operation) error {
	if _, err := calculator.ParseOperation(string(op)); err != nil {
		return err
	}

	v, err := s.displayValue()
	if err != nil {
		return err
	}

	s.FirstOperand = &v
	s.Operation = op
	s.AwaitingSecond = true
	s.evaluated = false
	return nil
}

// BeginEvaluation returns the pending calculation. ok is false when there is
// nothing pending, in which case "=" is a no-op. A display that does not
// parse as the second operand is rendered as an error and reported as err.
func (s *Session) BeginEvaluation() (req Request, ok bool, err error) {
	if !s.HasPending() {
		return Request{}, false, nil
	}

	b, err := s.displayValue()
	if err != nil {
		s.CompleteEvaluation(nil, err)
		return Request{}, false, err
	}

	return Request{Operation: s.Operation, A: *s.FirstOperand, B: b}, true, nil
}

// CompleteEvaluation applies the outcome of a remote calculation. The
// pending operation and first operand are kept either way.
func (s *Session) CompleteEvaluation(resp *calculator.CalcResponse, err error) {
	s.evaluated = true

	if err == nil && resp == nil {
		err = errors.New("empty response")
	}
	if err != nil {
		s.Display = ErrorDisplay(err)
		s.errored = true
		return
	}

	result := resp.Result
	s.Result = &result
	s.Response = resp
	s.Display = FormatNumber(result)
	s.errored = false
}

// Evaluate runs one blocking round trip through ev. It returns false when
// no operation was pending.
func (s *Session) Evaluate(ctx context.Context, ev Evaluator) bool {
	req, ok, err := s.BeginEvaluation()
	if err != nil {
		return true
	}
	if !ok {
		return false
	}

	resp, err := ev.Evaluate(ctx, req.Operation, req.A, req.B)
	s.CompleteEvaluation(resp, err)
	return true
}

// Clear returns to the start-up state.
func (s *Session) Clear() {
	*s = Session{Display: DefaultDisplay}
}

func (s *Session) displayValue() (float64, error) {
	if s.errored {
		return 0, fmt.Errorf("display shows an error: %q", s.Display)
	}
	v, err := strconv.ParseFloat(s.Display, 64)
	if err != nil {
		return 0, fmt.Errorf("could not convert display %q to a number: %w", s.Display, err)
	}
	return v, nil
}

// FormatNumber renders v the shortest way that parses back to v, switching
// to exponent form for very large and very small magnitudes.
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	if abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ErrorDisplay maps an evaluation failure onto the display text.
func ErrorDisplay(err error) string {
	var statusErr *client.StatusError

	switch {
	case errors.Is(err, client.ErrConnection):
		return ConnectionErrorDisplay
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error: %d", statusErr.Code)
	default:
		msg := []rune(err.Error())
		if len(msg) > maxErrorChars {
			msg = msg[:maxErrorChars]
		}
		return "Error: " + string(msg)
	}
}
