package cluster

import "sort"

const noiseLabel = -1

// dbscan labels vectors with density-based clustering. Points that belong to
// no dense region get the noise label. The neighborhood radius is derived
// from the data: the median distance to each point's minPts-th nearest
// neighbor.
func dbscan(vectors [][]float64, minPts int) []int {
	n := len(vectors)
	eps := estimateEps(vectors, minPts)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = noiseLabel
	}
	visited := make([]bool, n)

	neighborsOf := func(idx int) []int {
		var out []int
		for j := 0; j < n; j++ {
			if j != idx && euclidean(vectors[idx], vectors[j]) <= eps {
				out = append(out, j)
			}
		}
		return out
	}

	clusterID := 0
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := neighborsOf(i)
		if len(neighbors)+1 < minPts {
			continue
		}

		labels[i] = clusterID
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]

			if labels[p] == noiseLabel {
				labels[p] = clusterID
			}
			if visited[p] {
				continue
			}
			visited[p] = true

			pn := neighborsOf(p)
			if len(pn)+1 >= minPts {
				queue = append(queue, pn...)
			}
		}
		clusterID++
	}
	return labels
}

// estimateEps returns the median of each point's distance to its k-th
// nearest neighbor, the usual elbow heuristic without the plot.
func estimateEps(vectors [][]float64, k int) float64 {
	n := len(vectors)
	if k < 1 {
		k = 1
	}
	kth := make([]float64, 0, n)
	dists := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		dists = dists[:0]
		for j := 0; j < n; j++ {
			if j != i {
				dists = append(dists, euclidean(vectors[i], vectors[j]))
			}
		}
		sort.Float64s(dists)
		idx := k - 1
		if idx >= len(dists) {
			idx = len(dists) - 1
		}
		kth = append(kth, dists[idx])
	}
	sort.Float64s(kth)
	return kth[len(kth)/2]
}

// noiseFraction is the share of points labelled noise.
func noiseFraction(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	var noise int
	for _, l := range labels {
		if l == noiseLabel {
			noise++
		}
	}
	return float64(noise) / float64(len(labels))
}
