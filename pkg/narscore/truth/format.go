package truth

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse reads "f;c" (without the surrounding markers).
func Parse(s string) (Value, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return Value{}, fmt.Errorf("expected frequency;confidence, got %q", s)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Value{}, fmt.Errorf("frequency: %w", err)
	}
	c, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Value{}, fmt.Errorf("confidence: %w", err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > 1 {
		return Value{}, fmt.Errorf("frequency %v out of range [0,1]", f)
	}
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 || c >= 1 {
		return Value{}, fmt.Errorf("confidence %v out of range [0,1)", c)
	}
	return New(f, c), nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
