package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks CalcQuery values. finitefloat accepts decimal float
// literals (surrounding spaces allowed) that are neither NaN nor infinite.
var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("finitefloat", validateFiniteFloat); err != nil {
		panic(err)
	}
}

func validateFiniteFloat(fl validator.FieldLevel) bool {
	_, err := parseOperand(fl.Field().String())
	return err == nil
}

// parseOperand converts a raw query value into a finite float64.
func parseOperand(raw string) (float64, error) {
	s := strings.TrimSpace(raw)

	// ParseFloat also takes hex literals such as 0x1p-2.
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, strconv.ErrSyntax
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
