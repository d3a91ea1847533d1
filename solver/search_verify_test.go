package solver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/satcore/dpllsat/solver"
	"github.com/satcore/dpllsat/verify"
)

func verifyClause(lits ...int) *Clause {
	ls := make([]Lit, len(lits))
	for i, l := range lits {
		ls[i] = IntToLit(l)
	}
	return NewClause(ls)
}

func verifyMustProblem(t *testing.T, nbVars int, clauses []*Clause) *Problem {
	t.Helper()
	pb, err := NewProblem(nbVars, clauses)
	require.NoError(t, err)
	return pb
}

func buildRandom3SAT(nbVars, nbClauses int, seed int64) *Problem {
	rng := rand.New(rand.NewSource(seed))
	clauses := make([]*Clause, nbClauses)
	for i := range clauses {
		lits := make([]Lit, 3)
		for k := 0; k < 3; k++ {
			v := rng.Intn(nbVars) + 1
			if rng.Intn(2) == 0 {
				v = -v
			}
			lits[k] = IntToLit(v)
		}
		clauses[i] = NewClause(lits)
	}
	pb, err := NewProblem(nbVars, clauses)
	if err != nil {
		panic(err)
	}
	return pb
}

// spec.md §8, scenario 4: variable 1 occurs only positively, so pure-literal
// elimination sets it true before any decision is made; the rest is
// trivially SAT regardless of variables 2 and 3.
func TestPureLiteral(t *testing.T) {
	pb := verifyMustProblem(t, 3, []*Clause{
		verifyClause(1, 2),
		verifyClause(1, -3),
	})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	require.Equal(t, Sat, res.Verdict)
	assert.Equal(t, 1, res.Model[0])
	assert.Nil(t, verify.Model(pb, res.Model))
}

// Boundary: a variable no clause mentions is still bound in the model (by
// the default-unassigned-to-true sweep) but its value is unconstrained.
func TestUnreferencedVariableIsFree(t *testing.T) {
	pb := verifyMustProblem(t, 2, []*Clause{verifyClause(1)})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	require.Equal(t, Sat, res.Verdict)
	assert.Equal(t, 1, res.Model[0])
	assert.Nil(t, verify.Model(pb, res.Model))
}

func TestSerialDualEquivalenceRandom3SAT(t *testing.T) {
	pb := buildRandom3SAT(90, 270, 1)

	serial, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	dual, err := Solve(pb, Options{Mode: DualMode})
	require.NoError(t, err)

	require.Equal(t, serial.Verdict, dual.Verdict)
	if serial.Verdict == Sat {
		assert.Nil(t, verify.Model(pb, serial.Model))
		assert.Nil(t, verify.Model(pb, dual.Model))
	}
}
