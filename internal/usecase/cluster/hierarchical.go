package cluster

// agglomerative merges vectors bottom-up with Ward linkage until k clusters
// remain. The merge cost between two clusters is the increase in total
// within-cluster variance, computed from sizes and centroid distance.
func agglomerative(vectors [][]float64, k int) []int {
	n := len(vectors)
	if k >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	type node struct {
		members  []int
		centroid []float64
	}
	active := make([]*node, n)
	for i, v := range vectors {
		active[i] = &node{
			members:  []int{i},
			centroid: append([]float64(nil), v...),
		}
	}

	wardCost := func(a, b *node) float64 {
		sa, sb := float64(len(a.members)), float64(len(b.members))
		return (sa * sb / (sa + sb)) * squaredDistance(a.centroid, b.centroid)
	}

	for len(active) > k {
		bestI, bestJ := 0, 1
		bestCost := wardCost(active[0], active[1])
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				if c := wardCost(active[i], active[j]); c < bestCost {
					bestI, bestJ, bestCost = i, j, c
				}
			}
		}

		a, b := active[bestI], active[bestJ]
		merged := &node{members: append(append([]int(nil), a.members...), b.members...)}
		sa, sb := float64(len(a.members)), float64(len(b.members))
		merged.centroid = make([]float64, len(a.centroid))
		for i := range merged.centroid {
			merged.centroid[i] = (a.centroid[i]*sa + b.centroid[i]*sb) / (sa + sb)
		}

		active[bestI] = merged
		active = append(active[:bestJ], active[bestJ+1:]...)
	}

	assignments := make([]int, n)
	for clusterID, nd := range active {
		for _, idx := range nd.members {
			assignments[idx] = clusterID
		}
	}
	return assignments
}
