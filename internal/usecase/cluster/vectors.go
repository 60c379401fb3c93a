package cluster

import "math"

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func euclidean(a, b []float64) float64 {
	return math.Sqrt(squaredDistance(a, b))
}

// meanOf averages the vectors at the given indices.
func meanOf(vectors [][]float64, indices []int) []float64 {
	if len(indices) == 0 {
		return nil
	}
	out := make([]float64, len(vectors[indices[0]]))
	for _, idx := range indices {
		for i, x := range vectors[idx] {
			out[i] += x
		}
	}
	for i := range out {
		out[i] /= float64(len(indices))
	}
	return out
}
