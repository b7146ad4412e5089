package calculator

import "fmt"

// Operation names a binary operation exposed by the service. The value is
// also the endpoint path segment.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
)

// Operations lists every supported operation in display order.
var Operations = []Operation{OpAdd, OpSubtract}

// ParseOperation maps an endpoint name onto an Operation.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OpAdd, OpSubtract:
		return op, nil
	default:
		return "", fmt.Errorf("unknown operation %q", s)
	}
}

// Apply computes a op b. Subtract is a minus b.
func (op Operation) Apply(a, b float64) float64 {
	switch op {
	case OpSubtract:
		return a - b
	default:
		return a + b
	}
}

// Symbol is the keypad glyph for op.
func (op Operation) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	default:
		return "?"
	}
}

// CalcQuery holds the raw a and b query parameters of GET /add and
// GET /subtract.
type CalcQuery struct {
	A string `validate:"required,finitefloat"`
	B string `validate:"required,finitefloat"`
}

// CalcResponse is the JSON response for the arithmetic endpoints. A and B
// echo the query parameters exactly as received.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         string  `json:"a"`
	B         string  `json:"b"`
	Result    float64 `json:"result"`
}

// StatusResponse is the JSON body of GET /.
type StatusResponse struct {
	Message string `json:"message"`
}
