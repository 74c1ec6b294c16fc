package graph

import (
	"testing"
)

func bucketEdges(weights ...int) []*Edge {
	edges := make([]*Edge, len(weights))
	for i, w := range weights {
		edges[i] = &Edge{Source: "s", Target: "t", Weight: w}
	}
	return edges
}

func TestWeightBuckets_CountAtOrAbove(t *testing.T) {
	wb := NewWeightBuckets(bucketEdges(1, 3, 3, 7, 20, 55))

	tests := []struct {
		threshold int
		want      int
	}{
		{0, 6},
		{1, 6},
		{2, 5},
		{3, 5},
		{4, 3},
		{21, 1},
		{55, 1},
		{56, 0},
	}
	for _, tt := range tests {
		if got := wb.CountAtOrAbove(tt.threshold); got != tt.want {
			t.Errorf("CountAtOrAbove(%d) = %d, want %d", tt.threshold, got, tt.want)
		}
	}
}

func TestWeightBuckets_EdgesAtOrAbove(t *testing.T) {
	edges := bucketEdges(1, 3, 3, 7, 20, 55)
	wb := NewWeightBuckets(edges)

	got := wb.EdgesAtOrAbove(5)
	if len(got) != 3 {
		t.Fatalf("expected 3 edges at or above 5, got %d", len(got))
	}
	// Heaviest first
	prev := edges[got[0]].Weight
	for _, ei := range got[1:] {
		if edges[ei].Weight > prev {
			t.Error("expected descending weight order")
		}
		prev = edges[ei].Weight
	}
	for _, ei := range got {
		if edges[ei].Weight < 5 {
			t.Errorf("edge weight %d below threshold", edges[ei].Weight)
		}
	}
}

func TestWeightBuckets_Empty(t *testing.T) {
	wb := NewWeightBuckets(nil)
	if wb.CountAtOrAbove(0) != 0 {
		t.Error("expected 0 for empty buckets")
	}
	if wb.MaxWeight() != 0 {
		t.Error("expected max weight 0 for empty buckets")
	}
}

func TestWeightBuckets_MaxWeight(t *testing.T) {
	wb := NewWeightBuckets(bucketEdges(4, 9, 2))
	if got := wb.MaxWeight(); got != 9 {
		t.Errorf("expected max weight 9, got %d", got)
	}
}
