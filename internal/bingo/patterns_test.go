package bingo

import (
	"fmt"
	"testing"
)

func TestWinPatternsShape(t *testing.T) {
	for _, n := range []int{3, 4, 5, 6, 7} {
		patterns := WinPatterns(n)
		if len(patterns) != 2*n+2 {
			t.Fatalf("n=%d: expected %d patterns, got %d", n, 2*n+2, len(patterns))
		}
		seen := map[string]bool{}
		for _, p := range patterns {
			if len(p) != n {
				t.Fatalf("n=%d: pattern %v has length %d", n, p, len(p))
			}
			for _, idx := range p {
				if idx < 0 || idx >= n*n {
					t.Fatalf("n=%d: index %d out of range in %v", n, idx, p)
				}
			}
			key := fmt.Sprint(p)
			if seen[key] {
				t.Fatalf("n=%d: duplicate pattern %v", n, p)
			}
			seen[key] = true
		}
	}
}

func TestWinPatternsKnown5x5(t *testing.T) {
	patterns := WinPatterns(5)
	// first row, first column, main diagonal, anti diagonal
	want := [][]int{
		{0, 1, 2, 3, 4},
		{0, 5, 10, 15, 20},
		{0, 6, 12, 18, 24},
		{4, 8, 12, 16, 20},
	}
	got := [][]int{patterns[0], patterns[5], patterns[10], patterns[11]}
	for i := range want {
		if fmt.Sprint(got[i]) != fmt.Sprint(want[i]) {
			t.Fatalf("pattern mismatch: got %v want %v", got[i], want[i])
		}
	}
}

func TestWinPatternsInvalidDimension(t *testing.T) {
	if p := WinPatterns(0); p != nil {
		t.Fatalf("expected nil for n=0, got %v", p)
	}
}
