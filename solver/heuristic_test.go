package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoosePolarityDefaultsToTrue(t *testing.T) {
	h := NewHeuristic(2, nil, false)
	assert.Equal(t, True, h.ChoosePolarity(0))
	assert.Equal(t, True, h.ChoosePolarity(1))
}

func TestChoosePolarityMajorityWhenEnabled(t *testing.T) {
	clauses := []*Clause{
		clause(-1, 2),
		clause(-1, 3),
		clause(-1, 4),
		clause(1, 5),
	}
	h := NewHeuristic(5, clauses, true)
	// Variable 1 occurs three times negatively and once positively.
	assert.Equal(t, False, h.ChoosePolarity(0))
	// Variable 2 occurs only positively.
	assert.Equal(t, True, h.ChoosePolarity(1))
}

func TestPureLiteralPassForcesSinglePolarityVariables(t *testing.T) {
	pb := mustProblem(t, 3, []*Clause{
		clause(1, 2),
		clause(1, -3),
	})
	db := NewClauseDB(pb)
	h := NewHeuristic(pb.NbVars, db.clauses, false)
	require.Nil(t, h.PureLiteralPass(db))
	assert.Equal(t, True, db.StateOf(0))
}

func TestPureLiteralPassLeavesMixedPolarityVariablesAlone(t *testing.T) {
	pb := mustProblem(t, 2, []*Clause{
		clause(1, 2),
		clause(-1, 2),
	})
	db := NewClauseDB(pb)
	h := NewHeuristic(pb.NbVars, db.clauses, false)
	require.Nil(t, h.PureLiteralPass(db))
	assert.Equal(t, Unassigned, db.StateOf(0))
	// Variable 2 is pure positive across both clauses.
	assert.Equal(t, True, db.StateOf(1))
}

// spec.md §4.3: early decisions (d < N/4) use the MOM score. This test
// checks that early MOM phase.
func TestChooseVariableUsesMOMEarly(t *testing.T) {
	clauses := []*Clause{
		clause(1, 2, 3, 4),
		clause(-1, 2),
		clause(-1, 3),
	}
	pb := mustProblem(t, 8, clauses)
	db := NewClauseDB(pb)
	h := NewHeuristic(pb.NbVars, db.clauses, false)

	// Among the binary clauses (the minimum-size clauses) every variable's
	// pos*neg product is 0, so pos+neg decides: variable 1 occurs twice
	// there, so MOM should prefer it over variables 2 and 3 (once each) and
	// over variable 4, which appears only in a size-4 clause.
	v, ok := h.ChooseVariable(db, 0)
	require.True(t, ok)
	assert.Equal(t, Var(0), v)
}

func TestOnConflictBumpsActivityOfClauseVariables(t *testing.T) {
	h := NewHeuristic(3, nil, false)
	c := clause(1, -2)
	h.OnConflict(c)
	assert.Greater(t, h.activity[0], 0.0)
	assert.Greater(t, h.activity[1], 0.0)
	assert.Equal(t, 0.0, h.activity[2])
}

func TestReleaseVarMakesVariableSelectableAgain(t *testing.T) {
	pb := mustProblem(t, 2, []*Clause{clause(1, 2)})
	db := NewClauseDB(pb)
	h := NewHeuristic(pb.NbVars, db.clauses, false)

	// Drain the heap the way runSerial does: pop a variable, assign it,
	// repeat, so both variables end up consumed (removed from the heap).
	db.Assign(0, True, true, nil)
	v, ok := h.chooseActivity(db)
	require.True(t, ok)
	require.Equal(t, Var(1), v)
	db.Assign(1, True, false, nil)

	// Backtracking frees both variables; ReleaseVar must make each
	// selectable again.
	freed := db.UnassignTo(0)
	for _, fv := range freed {
		h.ReleaseVar(fv)
	}

	seen := map[Var]bool{}
	for {
		v, ok := h.chooseActivity(db)
		if !ok {
			break
		}
		seen[v] = true
		db.Assign(v, True, false, nil)
	}
	assert.True(t, seen[0])
	assert.True(t, seen[1])
}
