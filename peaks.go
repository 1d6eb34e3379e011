package breath

import (
	"math"
	"sort"
)

// DetectPeaks returns the indices of local maxima that clear the
// percentile height floor and sit at least minDistance samples apart. A
// candidate is an interior sample strictly greater than both neighbors;
// endpoints are never peaks, and fewer than three samples yields none.
// When candidates crowd closer than minDistance, the taller one wins, with
// exact height ties going to the earlier index. The returned indices are
// ascending.
func DetectPeaks(values []float64, heightPercentile float64, minDistance int) []int {
	if len(values) < 3 {
		return nil
	}

	threshold := Percentile(values, heightPercentile)
	candidates := make([]int, 0, len(values)/2)
	for i := 1; i < len(values)-1; i++ {
		if values[i] > values[i-1] && values[i] > values[i+1] && values[i] >= threshold {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Tallest first; ties resolve to the earlier index.
	order := append([]int(nil), candidates...)
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if values[a] != values[b] {
			return values[a] > values[b]
		}
		return a < b
	})

	accepted := make([]int, 0, len(order))
	for _, idx := range order {
		keep := true
		for _, prev := range accepted {
			if intAbs(idx-prev) < minDistance {
				keep = false
				break
			}
		}
		if keep {
			accepted = append(accepted, idx)
		}
	}

	sort.Ints(accepted)
	return accepted
}

// Percentile computes the p-th percentile of values with linear
// interpolation between closest ranks, matching numpy's default method.
// p is clamped to [0, 100]; an empty input yields NaN.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower]*(1.0-weight) + sorted[upper]*weight
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
