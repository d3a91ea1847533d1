// Package sudoku encodes 9x9 Sudoku puzzles (and a "percent sudoku"
// variant adding both diagonals and two extra 3x3 windows) as CNF
// problems solvable by the solver package, generates puzzles with a
// unique solution, and counts solutions via blocking clauses. Grounded on
// original_source's sudoku.cpp/sudoku.h: varIndex's row*81+col*9+num
// encoding, the percent-sudoku window coordinates, and the
// generate-then-verify-uniqueness loop are all carried over from there.
package sudoku

import (
	"fmt"

	"github.com/satcore/dpllsat/solver"
)

const (
	// Size is the grid dimension.
	Size = 9
	// NbVars is the number of propositional variables in the encoding:
	// one per (row, col, digit) triple.
	NbVars = Size * Size * Size
)

// Grid is a 9x9 Sudoku grid; 0 marks an empty cell.
type Grid [Size][Size]int

// Variant selects which extra constraints augment the classic row/column/
// box rules. Windows is the "percent sudoku" pair of extra 3x3 regions
// from original_source (upper-left and lower-right of center), named for
// the diagonal stripe of boxes the puzzle's glyph resembles.
type Variant struct {
	Diagonals bool
	Windows   bool
}

// upperWindow and lowerWindow are the percent-sudoku's extra regions, as
// (row, col) pairs — carried verbatim from original_source's
// upperWindow/lowerWindow tables.
var (
	upperWindow = [Size][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}
	lowerWindow = [Size][2]int{{5, 5}, {5, 6}, {5, 7}, {6, 5}, {6, 6}, {6, 7}, {7, 5}, {7, 6}, {7, 7}}
)

// varIndex returns the 1-indexed SAT variable for placing num (1-9) at
// (row, col) (0-8 each).
func varIndex(row, col, num int) int {
	return row*81 + col*9 + num
}

func lit(v int) solver.Lit {
	return solver.IntToLit(v)
}

// atLeastOne builds the clause "at least one of vars holds".
func atLeastOne(vars []int) *solver.Clause {
	lits := make([]solver.Lit, len(vars))
	for i, v := range vars {
		lits[i] = lit(v)
	}
	return solver.NewClause(lits)
}

// appendAtMostOne appends the pairwise clauses "not(vars[i] and vars[j])"
// for every i < j, forbidding more than one of vars from holding.
func appendAtMostOne(clauses []*solver.Clause, vars []int) []*solver.Clause {
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			clauses = append(clauses, solver.NewClause([]solver.Lit{lit(-vars[i]), lit(-vars[j])}))
		}
	}
	return clauses
}

// Encode returns the CNF problem for grid under variant: every cell holds
// exactly one digit, every row/column/box holds each digit exactly once,
// the optional diagonal and window regions do too, and every filled cell
// of grid is asserted as a unit clause.
func Encode(grid Grid, variant Variant) (*solver.Problem, error) {
	var clauses []*solver.Clause

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cellVars := make([]int, Size)
			for n := 1; n <= Size; n++ {
				cellVars[n-1] = varIndex(r, c, n)
			}
			clauses = append(clauses, atLeastOne(cellVars))
			clauses = appendAtMostOne(clauses, cellVars)
		}
	}

	for n := 1; n <= Size; n++ {
		for r := 0; r < Size; r++ {
			rowVars := make([]int, Size)
			for c := 0; c < Size; c++ {
				rowVars[c] = varIndex(r, c, n)
			}
			clauses = append(clauses, atLeastOne(rowVars))
			clauses = appendAtMostOne(clauses, rowVars)
		}
		for c := 0; c < Size; c++ {
			colVars := make([]int, Size)
			for r := 0; r < Size; r++ {
				colVars[r] = varIndex(r, c, n)
			}
			clauses = append(clauses, atLeastOne(colVars))
			clauses = appendAtMostOne(clauses, colVars)
		}
		for br := 0; br < 3; br++ {
			for bc := 0; bc < 3; bc++ {
				boxVars := make([]int, 0, Size)
				for i := 0; i < 3; i++ {
					for j := 0; j < 3; j++ {
						boxVars = append(boxVars, varIndex(br*3+i, bc*3+j, n))
					}
				}
				clauses = append(clauses, atLeastOne(boxVars))
				clauses = appendAtMostOne(clauses, boxVars)
			}
		}
		if variant.Diagonals {
			mainVars := make([]int, Size)
			antiVars := make([]int, Size)
			for i := 0; i < Size; i++ {
				mainVars[i] = varIndex(i, i, n)
				antiVars[i] = varIndex(i, Size-1-i, n)
			}
			clauses = appendAtMostOne(clauses, mainVars)
			clauses = appendAtMostOne(clauses, antiVars)
		}
		if variant.Windows {
			upperVars := make([]int, Size)
			lowerVars := make([]int, Size)
			for i := 0; i < Size; i++ {
				upperVars[i] = varIndex(upperWindow[i][0], upperWindow[i][1], n)
				lowerVars[i] = varIndex(lowerWindow[i][0], lowerWindow[i][1], n)
			}
			clauses = appendAtMostOne(clauses, upperVars)
			clauses = appendAtMostOne(clauses, lowerVars)
		}
	}

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if grid[r][c] != 0 {
				clauses = append(clauses, solver.NewClause([]solver.Lit{lit(varIndex(r, c, grid[r][c]))}))
			}
		}
	}

	pb, err := solver.NewProblem(NbVars, clauses)
	if err != nil {
		return nil, fmt.Errorf("sudoku: encode: %w", err)
	}
	return pb, nil
}

// Decode converts a full solver model (1-indexed DIMACS literals, one per
// variable, as returned by solver.Result.Model) back into a Grid.
func Decode(model []int) Grid {
	var g Grid
	for _, lit := range model {
		if lit <= 0 {
			continue
		}
		v := lit - 1
		num := v%9 + 1
		v /= 9
		col := v % 9
		row := v / 9
		g[row][col] = num
	}
	return g
}
