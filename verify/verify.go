// Package verify independently checks a candidate model against a CNF
// problem, so the solver's own correctness does not have to be trusted
// when validating a result. Grounded on original_source's verify.cpp and
// other_examples's VerifySatAssignment (adenizgelir0-satfarm), generalized
// from a file-path argument to an in-memory solver.Problem.
package verify

import (
	"fmt"
	"strings"

	"github.com/satcore/dpllsat/solver"
)

// LitEval is the per-literal evaluation of one clause against a candidate
// model: the signed DIMACS literal and whether it was satisfied, falsified
// or free under the given (possibly partial) assignment.
type LitEval struct {
	Literal   int
	Assigned  bool
	Satisfied bool
}

// Failure describes the first clause a candidate model does not satisfy,
// per spec.md §6's verification contract ("a failing clause index and
// literal-by-literal evaluation must be reportable").
type Failure struct {
	ClauseIndex int
	Literals    []LitEval
}

func (f *Failure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "clause %d is unsatisfied:", f.ClauseIndex)
	for _, le := range f.Literals {
		state := "free"
		if le.Assigned {
			state = "falsified"
			if le.Satisfied {
				state = "satisfied"
			}
		}
		fmt.Fprintf(&b, " %+d(%s)", le.Literal, state)
	}
	return b.String()
}

// Model reports whether every clause of pb has at least one literal
// satisfied by model (a slice of 1-indexed DIMACS literals as returned by
// solver.Result.Model, or any subset of them for a partial assignment). It
// returns nil if model satisfies pb, or a *Failure naming the first
// violated clause and its literal-by-literal evaluation.
func Model(pb *solver.Problem, model []int) *Failure {
	assign := make(map[int]bool, len(model))
	for _, lit := range model {
		if lit == 0 {
			continue
		}
		if lit > 0 {
			assign[lit] = true
		} else {
			assign[-lit] = false
		}
	}

	for ci, c := range pb.Clauses {
		satisfied := false
		lits := c.Lits()
		evals := make([]LitEval, len(lits))
		for i, l := range lits {
			v := int(l.Var()) + 1
			val, ok := assign[v]
			ev := LitEval{Literal: l.Int(), Assigned: ok}
			if ok {
				ev.Satisfied = l.IsPositive() == val
				if ev.Satisfied {
					satisfied = true
				}
			}
			evals[i] = ev
		}
		if !satisfied {
			return &Failure{ClauseIndex: ci, Literals: evals}
		}
	}
	return nil
}
