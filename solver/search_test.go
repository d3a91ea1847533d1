package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clause(lits ...int) *Clause {
	ls := make([]Lit, len(lits))
	for i, l := range lits {
		ls[i] = IntToLit(l)
	}
	return NewClause(ls)
}

func mustProblem(t *testing.T, nbVars int, clauses []*Clause) *Problem {
	t.Helper()
	pb, err := NewProblem(nbVars, clauses)
	require.NoError(t, err)
	return pb
}

// spec.md §8, scenario 1: "p cnf 1 1 / 1 0" -> SAT, v 1.
func TestTrivialSAT(t *testing.T) {
	pb := mustProblem(t, 1, []*Clause{clause(1)})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	require.Equal(t, Sat, res.Verdict)
	assert.Equal(t, []int{1}, res.Model)
}

// spec.md §8, scenario 2: "p cnf 1 2 / 1 0 / -1 0" -> UNSAT.
func TestTrivialUNSAT(t *testing.T) {
	pb := mustProblem(t, 1, []*Clause{clause(1), clause(-1)})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	assert.Equal(t, Unsat, res.Verdict)
	assert.Nil(t, res.Model)
}

// spec.md §8, scenario 3: unit propagation cascade forces 1, 2 and 3 true.
func TestUnitPropagationCascade(t *testing.T) {
	pb := mustProblem(t, 3, []*Clause{
		clause(1),
		clause(-1, 2),
		clause(-2, 3),
	})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	require.Equal(t, Sat, res.Verdict)
	assert.Equal(t, []int{1, 2, 3}, res.Model)
}

// spec.md §8, scenario 5: deciding 1=T (the default polarity) leaves
// clauses 3 and 4 jointly unsatisfiable over 3; flipping to 1=F conflicts
// on the first two clauses.
func TestChronologicalBacktrackToUNSAT(t *testing.T) {
	pb := mustProblem(t, 3, []*Clause{
		clause(1, 2),
		clause(1, -2),
		clause(-1, 3),
		clause(-1, -3),
	})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	assert.Equal(t, Unsat, res.Verdict)
}

// Boundary: an empty formula is vacuously SAT; spec.md §8 names all-TRUE as
// the canonical witness.
func TestEmptyFormulaIsSAT(t *testing.T) {
	pb := mustProblem(t, 3, nil)
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	require.Equal(t, Sat, res.Verdict)
	assert.Equal(t, []int{1, 2, 3}, res.Model)
}

// Boundary: a clause with zero literals is unsatisfiable under any
// assignment.
func TestEmptyClauseIsUNSAT(t *testing.T) {
	pb := mustProblem(t, 1, []*Clause{NewClause(nil)})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	assert.Equal(t, Unsat, res.Verdict)
}

// Boundary: a single unit clause forces its variable to the clause's
// polarity and nothing else is constrained.
func TestSingleUnitClause(t *testing.T) {
	pb := mustProblem(t, 1, []*Clause{clause(-1)})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	require.Equal(t, Sat, res.Verdict)
	assert.Equal(t, []int{-1}, res.Model)
}

// Boundary: contradictory unit clauses are detected at root, before any
// decision is made.
func TestContradictoryUnitsUNSATAtRoot(t *testing.T) {
	pb := mustProblem(t, 1, []*Clause{clause(1), clause(-1)})
	res, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	assert.Equal(t, Unsat, res.Verdict)
	assert.Equal(t, 0, res.Stats.Decisions)
}

func buildPigeonhole(t *testing.T, pigeons, holes int) *Problem {
	t.Helper()
	v := func(p, h int) int { return p*holes + h + 1 }
	var clauses []*Clause
	for p := 0; p < pigeons; p++ {
		vars := make([]int, holes)
		for h := 0; h < holes; h++ {
			vars[h] = v(p, h)
		}
		clauses = append(clauses, clause(vars...))
	}
	for h := 0; h < holes; h++ {
		for p1 := 0; p1 < pigeons; p1++ {
			for p2 := p1 + 1; p2 < pigeons; p2++ {
				clauses = append(clauses, clause(-v(p1, h), -v(p2, h)))
			}
		}
	}
	return mustProblem(t, pigeons*holes, clauses)
}

// spec.md §8, scenario 6: serial and dual modes agree on a pigeonhole
// instance (4 pigeons into 3 holes: unsatisfiable by the pigeonhole
// principle). The random 3-SAT half of the scenario is
// TestSerialDualEquivalenceRandom3SAT in search_verify_test.go.
func TestSerialDualEquivalencePigeonhole(t *testing.T) {
	pb := buildPigeonhole(t, 4, 3)

	serial, err := Solve(pb, Options{Mode: SerialMode})
	require.NoError(t, err)
	dual, err := Solve(pb, Options{Mode: DualMode})
	require.NoError(t, err)

	assert.Equal(t, Unsat, serial.Verdict)
	assert.Equal(t, Unsat, dual.Verdict)
}

// spec.md §8 "Round-trip laws": propagate(); propagate() is idempotent
// given no new assignments between calls.
func TestPropagateIdempotent(t *testing.T) {
	pb := mustProblem(t, 3, []*Clause{
		clause(-1, 2),
		clause(-2, 3),
	})
	db := NewClauseDB(pb)
	db.Assign(0, True, true, nil)
	require.Nil(t, db.Propagate(nil))
	trailLen := db.TrailLen()
	require.Nil(t, db.Propagate(nil))
	assert.Equal(t, trailLen, db.TrailLen())
}

// spec.md §8 "Round-trip laws": assign(v, x); unassign_to(level_before);
// state_of(v) == UNASSIGNED.
func TestAssignUnassignRoundTrip(t *testing.T) {
	pb := mustProblem(t, 2, []*Clause{clause(1, 2)})
	db := NewClauseDB(pb)
	levelBefore := db.CurrentLevel()
	db.Assign(0, True, true, nil)
	require.NotEqual(t, Unassigned, db.StateOf(0))
	db.UnassignTo(levelBefore)
	assert.Equal(t, Unassigned, db.StateOf(0))
	assert.Equal(t, levelBefore, db.CurrentLevel())
}

// spec.md §8 invariant 1: no clause is falsified by the current partial
// assignment at any BCP quiescent point reachable during a solve.
func TestNoClauseFalsifiedAtQuiescence(t *testing.T) {
	pb := buildPigeonhole(t, 3, 2)
	db := NewClauseDB(pb)
	h := NewHeuristic(pb.NbVars, db.clauses, false)
	require.Nil(t, h.PureLiteralPass(db))

	assertNoFalsifiedClause := func() {
		for _, c := range db.clauses {
			allFalse := true
			for _, l := range c.Lits() {
				if db.LiteralValue(l) != False {
					allFalse = false
					break
				}
			}
			assert.False(t, allFalse, "clause %s falsified at quiescence", c)
		}
	}

	for {
		if conflict := db.Propagate(nil); conflict != nil {
			break
		}
		assertNoFalsifiedClause()
		v, ok := h.ChooseVariable(db, 0)
		if !ok {
			break
		}
		db.Assign(v, h.ChoosePolarity(v), true, nil)
	}
}
