package bingo

// WinPatterns returns the index patterns that count as a completed line on
// an n x n board: n rows, n columns, the main diagonal and the anti
// diagonal, 2n+2 in total. Indices are row-major. The result must be
// regenerated whenever the board dimension changes.
func WinPatterns(n int) [][]int {
	if n < 1 {
		return nil
	}
	patterns := make([][]int, 0, 2*n+2)

	for row := 0; row < n; row++ {
		p := make([]int, n)
		for col := 0; col < n; col++ {
			p[col] = row*n + col
		}
		patterns = append(patterns, p)
	}
	for col := 0; col < n; col++ {
		p := make([]int, n)
		for row := 0; row < n; row++ {
			p[row] = row*n + col
		}
		patterns = append(patterns, p)
	}

	main := make([]int, n)
	anti := make([]int, n)
	for i := 0; i < n; i++ {
		main[i] = i*n + i
		anti[i] = i*n + (n - 1 - i)
	}
	return append(patterns, main, anti)
}
