package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satcore/dpllsat/solver"
	"github.com/satcore/dpllsat/sudoku"
)

func newSudokuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sudoku",
		Short: "Encode, solve, generate and count Sudoku puzzles",
	}
	cmd.AddCommand(newSudokuSolveCmd())
	cmd.AddCommand(newSudokuGenerateCmd())
	cmd.AddCommand(newSudokuCountCmd())
	return cmd
}

func addVariantFlags(cmd *cobra.Command, v *sudoku.Variant) {
	cmd.Flags().BoolVar(&v.Diagonals, "diagonals", false, "both long diagonals hold each digit once")
	cmd.Flags().BoolVar(&v.Windows, "windows", false, "percent-sudoku's two extra 3x3 windows hold each digit once")
}

func newSudokuSolveCmd() *cobra.Command {
	var variant sudoku.Variant
	cmd := &cobra.Command{
		Use:   "solve <puzzle.txt>",
		Short: "Solve a Sudoku puzzle read from a 9-line grid file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			grid, err := readGrid(f)
			if err != nil {
				return err
			}

			pb, err := sudoku.Encode(grid, variant)
			if err != nil {
				return err
			}
			res, err := solver.Solve(pb, solver.Options{Mode: solver.SerialMode})
			if err != nil {
				return err
			}
			if res.Verdict != solver.Sat {
				fmt.Println("no solution")
				os.Exit(exitUnsat)
			}
			writeGrid(os.Stdout, sudoku.Decode(res.Model))
			return nil
		},
	}
	addVariantFlags(cmd, &variant)
	return cmd
}

func newSudokuGenerateCmd() *cobra.Command {
	var (
		variant sudoku.Variant
		clues   int
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Sudoku puzzle with a unique solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, puzzle, err := sudoku.Generate(clues, variant, seed)
			if err != nil {
				return err
			}
			writeGrid(os.Stdout, puzzle)
			return nil
		},
	}
	addVariantFlags(cmd, &variant)
	cmd.Flags().IntVar(&clues, "clues", 30, "number of filled cells to keep")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	return cmd
}

func newSudokuCountCmd() *cobra.Command {
	var (
		variant sudoku.Variant
		max     int
	)
	cmd := &cobra.Command{
		Use:   "count <puzzle.txt>",
		Short: "Count solutions to a Sudoku puzzle, up to a limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			grid, err := readGrid(f)
			if err != nil {
				return err
			}
			count, err := sudoku.CountSolutions(grid, variant, max)
			if err != nil {
				return err
			}
			fmt.Println(count)
			return nil
		},
	}
	addVariantFlags(cmd, &variant)
	cmd.Flags().IntVar(&max, "max", 2, "stop counting after this many solutions")
	return cmd
}

// readGrid parses a 9-line grid where each line holds 9 characters, '0'
// or '.' for an empty cell and '1'-'9' for a given.
func readGrid(r io.Reader) (sudoku.Grid, error) {
	var g sudoku.Grid
	sc := bufio.NewScanner(r)
	row := 0
	for sc.Scan() && row < sudoku.Size {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if len(line) < sudoku.Size {
			return g, fmt.Errorf("sudoku: row %d has %d characters, want %d", row, len(line), sudoku.Size)
		}
		for col := 0; col < sudoku.Size; col++ {
			ch := line[col]
			if ch == '0' || ch == '.' {
				continue
			}
			n, err := strconv.Atoi(string(ch))
			if err != nil || n < 1 || n > 9 {
				return g, fmt.Errorf("sudoku: row %d: invalid cell %q", row, string(ch))
			}
			g[row][col] = n
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return g, err
	}
	if row != sudoku.Size {
		return g, fmt.Errorf("sudoku: expected %d rows, got %d", sudoku.Size, row)
	}
	return g, nil
}

func writeGrid(w io.Writer, g sudoku.Grid) {
	bw := bufio.NewWriter(w)
	for r := 0; r < sudoku.Size; r++ {
		for c := 0; c < sudoku.Size; c++ {
			if g[r][c] == 0 {
				fmt.Fprint(bw, ".")
			} else {
				fmt.Fprint(bw, g[r][c])
			}
		}
		fmt.Fprintln(bw)
	}
	bw.Flush()
}
