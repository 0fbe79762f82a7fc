// internal/matching/hungarian.go
package matching

import "math"

// Hungarian computes a minimum-cost assignment for an m x n cost
// matrix and returns, for each row, the assigned column index (-1 when
// the row is left unassigned because m > n). Runs in O(max(m,n)^3)
// using the potentials formulation.
func Hungarian(cost [][]float64) []int {
	m := len(cost)
	if m == 0 {
		return nil
	}
	n := len(cost[0])
	if n == 0 {
		out := make([]int, m)
		for i := range out {
			out[i] = -1
		}
		return out
	}

	// The potentials algorithm needs rows <= cols; transpose otherwise
	// and invert the result at the end.
	transposed := false
	work := cost
	if m > n {
		work = make([][]float64, n)
		for j := 0; j < n; j++ {
			work[j] = make([]float64, m)
			for i := 0; i < m; i++ {
				work[j][i] = cost[i][j]
			}
		}
		m, n = n, m
		transposed = true
	}

	u := make([]float64, m+1)
	v := make([]float64, n+1)
	match := make([]int, n+1) // match[j] = row assigned to column j
	way := make([]int, n+1)

	for i := 1; i <= m; i++ {
		match[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := range minv {
			minv[j] = math.MaxFloat64
		}

		for {
			used[j0] = true
			i0 := match[j0]
			delta := math.MaxFloat64
			j1 := 0

			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := work[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= n; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if match[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	assigned := make([]int, m)
	for i := range assigned {
		assigned[i] = -1
	}
	for j := 1; j <= n; j++ {
		if match[j] > 0 {
			assigned[match[j]-1] = j - 1
		}
	}

	if !transposed {
		return assigned
	}

	// assigned maps original columns to original rows; flip it back.
	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for col, row := range assigned {
		if row >= 0 {
			out[row] = col
		}
	}
	return out
}
