package sudoku

import (
	"fmt"
	"math/rand"

	"github.com/satcore/dpllsat/solver"
)

// fillGrid completes an empty grid with a random full solution via plain
// backtracking (not the SAT solver — original_source keeps grid-filling
// and SAT-based uniqueness checking as two separate algorithms, and this
// mirrors that split). variant controls which extra regions must also
// hold each digit exactly once.
func fillGrid(g *Grid, variant Variant, rng *rand.Rand) bool {
	row, col := -1, -1
	for r := 0; r < Size && row < 0; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				row, col = r, c
				break
			}
		}
	}
	if row < 0 {
		return true // every cell filled.
	}

	nums := [Size]int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng.Shuffle(Size, func(i, j int) { nums[i], nums[j] = nums[j], nums[i] })

	for _, n := range nums {
		if !isSafe(g, row, col, n, variant) {
			continue
		}
		g[row][col] = n
		if fillGrid(g, variant, rng) {
			return true
		}
		g[row][col] = 0
	}
	return false
}

func isSafe(g *Grid, row, col, num int, variant Variant) bool {
	for i := 0; i < Size; i++ {
		if g[row][i] == num || g[i][col] == num {
			return false
		}
	}
	startRow, startCol := row-row%3, col-col%3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if g[startRow+i][startCol+j] == num {
				return false
			}
		}
	}
	if variant.Diagonals {
		if row == col {
			for i := 0; i < Size; i++ {
				if g[i][i] == num {
					return false
				}
			}
		}
		if row+col == Size-1 {
			for i := 0; i < Size; i++ {
				if g[i][Size-1-i] == num {
					return false
				}
			}
		}
	}
	if variant.Windows {
		if row >= 1 && row <= 3 && col >= 1 && col <= 3 {
			for _, p := range upperWindow {
				if g[p[0]][p[1]] == num {
					return false
				}
			}
		}
		if row >= 5 && row <= 7 && col >= 5 && col <= 7 {
			for _, p := range lowerWindow {
				if g[p[0]][p[1]] == num {
					return false
				}
			}
		}
	}
	return true
}

// Generate builds a full random grid and then removes cells from it until
// only clues filled cells remain (fewer cells are removed if uniqueness
// can't be preserved),
// checking after every removal that the resulting puzzle's solution
// remains unique via CountSolutions(..., 2) — exactly original_source's
// generatePuzzle loop, with SAT-based uniqueness checking standing in for
// its DPLL calls.
func Generate(clues int, variant Variant, seed int64) (full, puzzle Grid, err error) {
	rng := rand.New(rand.NewSource(seed))
	if !fillGrid(&full, variant, rng) {
		return full, puzzle, fmt.Errorf("sudoku: failed to generate a full grid")
	}
	puzzle = full

	positions := rng.Perm(Size * Size)
	removed := 0
	target := Size*Size - clues
	if target < 0 {
		target = 0
	}
	for _, idx := range positions {
		if removed >= target {
			break
		}
		r, c := idx/Size, idx%Size
		if puzzle[r][c] == 0 {
			continue
		}
		backup := puzzle[r][c]
		puzzle[r][c] = 0

		count, cerr := CountSolutions(puzzle, variant, 2)
		if cerr != nil {
			return full, puzzle, cerr
		}
		if count != 1 {
			puzzle[r][c] = backup
			continue
		}
		removed++
	}
	return full, puzzle, nil
}

// CountSolutions returns the number of distinct solutions to puzzle under
// variant, stopping as soon as max are found (original_source's
// countSolutions takes the same early-exit maxSolutions parameter).
// Each additional solution is excluded by asserting a blocking clause
// over the puzzle's empty cells before solving again, so earlier
// solutions can never recur.
func CountSolutions(puzzle Grid, variant Variant, max int) (int, error) {
	pb, err := Encode(puzzle, variant)
	if err != nil {
		return 0, err
	}

	count := 0
	for count < max {
		res, err := solver.Solve(pb, solver.Options{Mode: solver.SerialMode})
		if err != nil {
			return count, err
		}
		if res.Verdict == solver.Unsat {
			break
		}
		count++
		if count >= max {
			break
		}

		var blocking []solver.Lit
		for r := 0; r < Size; r++ {
			for c := 0; c < Size; c++ {
				if puzzle[r][c] != 0 {
					continue
				}
				for n := 1; n <= Size; n++ {
					idx := varIndex(r, c, n)
					if res.Model[idx-1] > 0 {
						blocking = append(blocking, lit(-idx))
						break
					}
				}
			}
		}
		if len(blocking) == 0 {
			// No free cells at all: the puzzle was already fully solved by
			// its unit clauses, so there is exactly one solution.
			break
		}
		pb.Clauses = append(pb.Clauses, solver.NewClause(blocking))
	}
	return count, nil
}
