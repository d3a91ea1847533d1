package solver

import (
	"fmt"
	"strings"
)

// A Problem is a CNF formula: a variable count and an ordered list of
// clauses, as read from DIMACS input or built programmatically (e.g. by the
// sudoku package). It carries no solving state; ClauseDB owns that.
type Problem struct {
	NbVars  int
	Clauses []*Clause
}

// NewProblem validates and returns a Problem. It returns an error if any
// literal's variable falls outside 1..nbVars. An empty clause is accepted:
// a formula containing it is UNSAT, which Solve reports as its verdict.
func NewProblem(nbVars int, clauses []*Clause) (*Problem, error) {
	for ci, c := range clauses {
		for _, l := range c.Lits() {
			if v := int(l.Var()); v < 0 || v >= nbVars {
				return nil, fmt.Errorf("clause %d: literal %d out of range for %d variables", ci, l.Int(), nbVars)
			}
		}
	}
	return &Problem{NbVars: nbVars, Clauses: clauses}, nil
}

// CNF renders pb in DIMACS format.
func (pb *Problem) CNF() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p cnf %d %d\n", pb.NbVars, len(pb.Clauses))
	for _, c := range pb.Clauses {
		b.WriteString(c.CNF())
		b.WriteByte('\n')
	}
	return b.String()
}

// HasEmptyClause reports whether pb contains a clause with no literals,
// which makes it trivially UNSAT regardless of any assignment.
func (pb *Problem) HasEmptyClause() bool {
	for _, c := range pb.Clauses {
		if c.Len() == 0 {
			return true
		}
	}
	return false
}
