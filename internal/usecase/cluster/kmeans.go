package cluster

import "math/rand"

const (
	kmeansSeed     = 42
	kmeansInits    = 10
	kmeansMaxIters = 100
)

// kMeans partitions vectors into k groups by Lloyd's algorithm. The seed is
// fixed so repeated runs over the same input produce identical assignments.
// Of the restarts, the one with the lowest within-cluster sum of squared
// distances wins.
func kMeans(vectors [][]float64, k int) []int {
	n := len(vectors)
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	bestInertia := -1.0
	var best []int

	for init := 0; init < kmeansInits; init++ {
		assignments, inertia := runKMeans(vectors, k, rng)
		if bestInertia < 0 || inertia < bestInertia {
			bestInertia = inertia
			best = assignments
		}
	}
	return best
}

func runKMeans(vectors [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	n := len(vectors)

	// Initial centroids are k distinct points.
	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), vectors[idx]...)
	}

	assignments := make([]int, n)
	for iter := 0; iter < kmeansMaxIters; iter++ {
		changed := false
		for i, v := range vectors {
			nearest, nearestDist := 0, squaredDistance(v, centroids[0])
			for c := 1; c < k; c++ {
				if d := squaredDistance(v, centroids[c]); d < nearestDist {
					nearest, nearestDist = c, d
				}
			}
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		for c := 0; c < k; c++ {
			var members []int
			for i, a := range assignments {
				if a == c {
					members = append(members, i)
				}
			}
			if len(members) == 0 {
				// Reseed an empty cluster to a random point.
				centroids[c] = append([]float64(nil), vectors[rng.Intn(n)]...)
				continue
			}
			centroids[c] = meanOf(vectors, members)
		}
	}

	var inertia float64
	for i, v := range vectors {
		inertia += squaredDistance(v, centroids[assignments[i]])
	}
	return assignments, inertia
}
