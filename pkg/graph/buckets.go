package graph

import (
	"sort"
)

// WeightBuckets precomputes the edge weight distribution so threshold
// queries cost O(log E) instead of an edge rescan. Built once per
// dataset load.
type WeightBuckets struct {
	// weights holds every edge weight in ascending order
	weights []int
	// byWeightDesc holds edge indices ordered by descending weight, so
	// edges at or above a threshold form a prefix
	byWeightDesc []int
}

// NewWeightBuckets indexes the given edges by weight
func NewWeightBuckets(edges []*Edge) *WeightBuckets {
	wb := &WeightBuckets{
		weights:      make([]int, len(edges)),
		byWeightDesc: make([]int, len(edges)),
	}
	for i, e := range edges {
		wb.weights[i] = e.Weight
		wb.byWeightDesc[i] = i
	}
	sort.Ints(wb.weights)
	sort.SliceStable(wb.byWeightDesc, func(a, b int) bool {
		return edges[wb.byWeightDesc[a]].Weight > edges[wb.byWeightDesc[b]].Weight
	})
	return wb
}

// CountAtOrAbove returns how many edges have weight >= threshold
func (wb *WeightBuckets) CountAtOrAbove(threshold int) int {
	if threshold <= 0 {
		return len(wb.weights)
	}
	i := sort.SearchInts(wb.weights, threshold)
	return len(wb.weights) - i
}

// EdgesAtOrAbove returns the indices of edges with weight >= threshold,
// heaviest first. The returned slice aliases the index and must not be
// modified.
func (wb *WeightBuckets) EdgesAtOrAbove(threshold int) []int {
	n := wb.CountAtOrAbove(threshold)
	return wb.byWeightDesc[:n]
}

// MaxWeight returns the heaviest edge weight, or 0 for an edgeless graph
func (wb *WeightBuckets) MaxWeight() int {
	if len(wb.weights) == 0 {
		return 0
	}
	return wb.weights[len(wb.weights)-1]
}
