// Package tui is the terminal front-end of the calculator.
//
// The model is driven by the Bubble Tea event loop and is not safe for use
// from other goroutines. Remote evaluation runs as a tea.Cmd; until its
// result arrives every key except quit is ignored, so the session sees one
// blocking round trip per "=".
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/session"
)

const (
	statusReady      = "Ready"
	statusEvaluating = "Evaluating"
	defaultWidth     = 4*buttonWidth + 4
)

// evaluatedMsg carries the outcome of a remote evaluation back to Update.
type evaluatedMsg struct {
	req  session.Request
	resp *calculator.CalcResponse
	err  error
}

type Model struct {
	ctx       context.Context
	session   *session.Session
	evaluator session.Evaluator
	logger    *zap.Logger
	endpoint  string

	keys keyMap
	help help.Model

	width        int
	busy         bool
	showResponse bool
	status       string
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithEndpoint sets the service address shown in the title bar.
func WithEndpoint(url string) Option {
	return func(m *Model) {
		m.endpoint = url
	}
}

// WithContext sets the context passed to every evaluation.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

func New(ev session.Evaluator, opts ...Option) *Model {
	m := &Model{
		ctx:       context.Background(),
		session:   session.New(),
		evaluator: ev,
		logger:    zap.NewNop(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		status:    statusReady,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Session exposes the underlying state machine.
func (m *Model) Session() *session.Session {
	return m.session
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case evaluatedMsg:
		m.busy = false
		m.session.CompleteEvaluation(msg.resp, msg.err)
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.req.Operation, msg.err)
			m.logger.Warn("evaluation failed",
				zap.String("operation", string(msg.req.Operation)),
				zap.Error(msg.err),
			)
		} else {
			m.status = fmt.Sprintf("%s %s %s = %s",
				session.FormatNumber(msg.req.A),
				msg.req.Operation.Symbol(),
				session.FormatNumber(msg.req.B),
				m.session.Display,
			)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	if m.busy {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Digit):
		s := msg.String()
		if err := m.session.PressDigit(int(s[0] - '0')); err != nil {
			m.status = err.Error()
		}

	case key.Matches(msg, m.keys.Decimal):
		m.session.PressDecimal()

	case key.Matches(msg, m.keys.Add):
		m.pressOperation(calculator.OpAdd)

	case key.Matches(msg, m.keys.Subtract):
		m.pressOperation(calculator.OpSubtract)

	case key.Matches(msg, m.keys.Equals):
		return m.evaluate()

	case key.Matches(msg, m.keys.Clear):
		m.session.Clear()
		m.status = statusReady

	case key.Matches(msg, m.keys.Response):
		m.showResponse = !m.showResponse

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return nil
}

func (m *Model) pressOperation(op calculator.Operation) {
	if err := m.session.PressOperation(op); err != nil {
		m.status = "Enter a number first"
		m.logger.Debug("operation rejected", zap.String("operation", string(op)), zap.Error(err))
		return
	}
	m.status = statusReady
}

// evaluate starts the remote call for the pending operation, if any.
func (m *Model) evaluate() tea.Cmd {
	req, ok, err := m.session.BeginEvaluation()
	if err != nil {
		m.status = err.Error()
		return nil
	}
	if !ok {
		return nil
	}

	m.busy = true
	m.status = statusEvaluating

	ctx, ev := m.ctx, m.evaluator
	return func() tea.Msg {
		resp, err := ev.Evaluate(ctx, req.Operation, req.A, req.B)
		return evaluatedMsg{req: req, resp: resp, err: err}
	}
}
