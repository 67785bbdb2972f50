package insight

import (
	"fmt"
	"math"
	"sort"
)

// asFloat coerces the numeric types JSON decoding and typed callers produce.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// numericFields collects, per field name, the values of every record where
// that field is numeric, preserving record order.
func numericFields(records []map[string]interface{}) map[string][]float64 {
	fields := make(map[string][]float64)
	for _, rec := range records {
		for key, val := range rec {
			if f, ok := asFloat(val); ok {
				fields[key] = append(fields[key], f)
			}
		}
	}
	return fields
}

// sortedKeys gives deterministic iteration order over a field map.
func sortedKeys(fields map[string][]float64) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// popStdDev is the population standard deviation (divide by N, not N-1).
func popStdDev(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - avg
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// olsSlope fits y = a + b*x by ordinary least squares with x = 0..n-1 and
// returns b.
func olsSlope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// pearson computes the correlation coefficient of two aligned series. It
// returns an error when either series has zero variance, which the caller
// treats as "omit the pair" rather than a failure.
func pearson(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) || len(xs) < 3 {
		return 0, fmt.Errorf("pearson needs at least 3 aligned points")
	}

	meanX := mean(xs)
	meanY := mean(ys)

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, fmt.Errorf("zero variance")
	}

	return cov / math.Sqrt(varX*varY), nil
}
