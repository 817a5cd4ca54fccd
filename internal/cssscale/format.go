package cssscale

import (
	"math"
	"strconv"
	"strings"
)

// maxDecimals bounds the precision of scaled numbers.
const maxDecimals = 4

// FormatNumber renders n with at most four decimals, without trailing zeros
// or a dangling decimal point, and never as "-0".
func FormatNumber(n float64) string {
	if math.Abs(n) < 1e-12 {
		n = 0
	}

	s := strconv.FormatFloat(n, 'f', maxDecimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}

	return s
}
