// Package resultio reads and writes the ".res" result file format of
// spec.md §6: an 's' line with 1 for SAT or 0 for UNSAT, a 'v' line with
// exactly NbVars signed DIMACS literals when SAT, and a 't' line giving
// elapsed wall time in milliseconds. Grounded on gophersat's line-oriented
// parser style (solver/parser.go), adapted from byte-level reads to
// bufio.Scanner so malformed lines report a line number.
package resultio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/satcore/dpllsat/solver"
)

// Result is the file-level representation of a solver.Result: independent
// of the solver package's Stats, since a ".res" file only ever carries the
// verdict, model and elapsed time.
type Result struct {
	Verdict solver.Verdict
	Model   []int
	Elapsed time.Duration
}

// Write renders res to w in the s/v/t format of spec.md §6.
func Write(w io.Writer, res Result) error {
	bw := bufio.NewWriter(w)
	if res.Verdict == solver.Sat {
		if _, err := fmt.Fprintln(bw, "s 1"); err != nil {
			return err
		}
		parts := make([]string, len(res.Model))
		for i, lit := range res.Model {
			parts[i] = strconv.Itoa(lit)
		}
		if _, err := fmt.Fprintf(bw, "v %s\n", strings.Join(parts, " ")); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(bw, "s 0"); err != nil {
			return err
		}
	}
	ms := float64(res.Elapsed) / float64(time.Millisecond)
	if _, err := fmt.Fprintf(bw, "t %g\n", ms); err != nil {
		return err
	}
	return bw.Flush()
}

// Read parses a ".res" stream written by Write (or by a compatible tool).
func Read(r io.Reader) (Result, error) {
	var res Result
	seenStatus := false

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "c":
			continue
		case "s":
			if len(fields) != 2 {
				return res, fmt.Errorf("resultio: line %d: malformed 's' line %q", lineNo, line)
			}
			switch fields[1] {
			case "1":
				res.Verdict = solver.Sat
			case "0":
				res.Verdict = solver.Unsat
			default:
				return res, fmt.Errorf("resultio: line %d: unknown status %q, want 0 or 1", lineNo, fields[1])
			}
			seenStatus = true
		case "v":
			for _, tok := range fields[1:] {
				val, err := strconv.Atoi(tok)
				if err != nil {
					return res, fmt.Errorf("resultio: line %d: invalid literal %q", lineNo, tok)
				}
				if val == 0 {
					continue
				}
				res.Model = append(res.Model, val)
			}
		case "t":
			if len(fields) != 2 {
				return res, fmt.Errorf("resultio: line %d: malformed 't' line %q", lineNo, line)
			}
			ms, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return res, fmt.Errorf("resultio: line %d: invalid elapsed time %q", lineNo, fields[1])
			}
			res.Elapsed = time.Duration(ms * float64(time.Millisecond))
		default:
			return res, fmt.Errorf("resultio: line %d: unrecognized line prefix %q", lineNo, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("resultio: %w", err)
	}
	if !seenStatus {
		return res, fmt.Errorf("resultio: missing 's' line")
	}
	return res, nil
}
