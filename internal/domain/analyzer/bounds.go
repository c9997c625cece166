package analyzer

import (
	"math"
	"strconv"
	"strings"
)

// ParseBounds converts the optional textual bounds of a score filter. An empty
// bound is unbounded on its side.
func ParseBounds(minText, maxText string) (min, max float64, err error) {
	min, err = parseBound("min", minText, math.Inf(-1))
	if err != nil {
		return 0, 0, err
	}
	max, err = parseBound("max", maxText, math.Inf(1))
	if err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

func parseBound(name, text string, unset float64) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return unset, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return 0, &RangeError{Bound: name, Value: text, Err: err}
	}
	return v, nil
}
