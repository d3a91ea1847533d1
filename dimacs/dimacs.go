// Package dimacs reads and writes the DIMACS CNF format that solver.Problem
// is built from. Grounded on gophersat's solver/parser.go, rewritten around
// bufio.Scanner's line-oriented reads so a malformed line can be reported
// with its line number and offending token rather than a byte offset.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/satcore/dpllsat/solver"
)

// ParseError reports a DIMACS syntax error at a specific line and token.
type ParseError struct {
	Line  int
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("dimacs: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("dimacs: line %d: %s: %q", e.Line, e.Msg, e.Token)
}

// Parse reads a DIMACS CNF stream and returns the corresponding Problem.
// It accepts 'c' comment lines anywhere, requires exactly one 'p cnf
// <vars> <clauses>' header before any clause line, and tolerates clauses
// split across several physical lines (each terminated by a literal 0).
func Parse(r io.Reader) (*solver.Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		nbVars     int
		headerSeen bool
		clauses    []*solver.Clause
		cur        []solver.Lit
		lineNo     int
	)

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			if headerSeen {
				return nil, &ParseError{lineNo, line, "duplicate 'p cnf' header"}
			}
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, &ParseError{lineNo, line, "malformed header, want 'p cnf <vars> <clauses>'"}
			}
			var err error
			nbVars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, &ParseError{lineNo, fields[2], "variable count is not an integer"}
			}
			nbClauses, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, &ParseError{lineNo, fields[3], "clause count is not an integer"}
			}
			clauses = make([]*solver.Clause, 0, nbClauses)
			headerSeen = true
		default:
			if !headerSeen {
				return nil, &ParseError{lineNo, line, "clause line before 'p cnf' header"}
			}
			for _, tok := range strings.Fields(line) {
				val, err := strconv.Atoi(tok)
				if err != nil {
					return nil, &ParseError{lineNo, tok, "literal is not an integer"}
				}
				if val == 0 {
					clauses = append(clauses, solver.NewClause(cur))
					cur = nil
					continue
				}
				if val > nbVars || -val > nbVars {
					return nil, &ParseError{lineNo, tok, fmt.Sprintf("literal out of range for %d variables", nbVars)}
				}
				cur = append(cur, solver.IntToLit(val))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	if !headerSeen {
		return nil, &ParseError{lineNo, "", "missing 'p cnf' header"}
	}
	if len(cur) != 0 {
		return nil, &ParseError{lineNo, "", "unterminated clause at end of file"}
	}
	return solver.NewProblem(nbVars, clauses)
}

// Write renders pb to w in DIMACS CNF format.
func Write(w io.Writer, pb *solver.Problem) error {
	_, err := io.WriteString(w, pb.CNF())
	return err
}
