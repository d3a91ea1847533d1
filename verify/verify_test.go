package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satcore/dpllsat/solver"
)

func clause(lits ...int) *solver.Clause {
	ls := make([]solver.Lit, len(lits))
	for i, l := range lits {
		ls[i] = solver.IntToLit(l)
	}
	return solver.NewClause(ls)
}

func TestModelSatisfies(t *testing.T) {
	pb, err := solver.NewProblem(3, []*solver.Clause{
		clause(1, -2),
		clause(2, 3),
	})
	require.NoError(t, err)
	assert.Nil(t, Model(pb, []int{1, 2, 3}))
}

func TestModelViolatesClause(t *testing.T) {
	pb, err := solver.NewProblem(2, []*solver.Clause{
		clause(1, 2),
	})
	require.NoError(t, err)
	fail := Model(pb, []int{-1, -2})
	require.NotNil(t, fail)
	assert.Equal(t, 0, fail.ClauseIndex)
	require.Len(t, fail.Literals, 2)
	assert.Equal(t, 1, fail.Literals[0].Literal)
	assert.True(t, fail.Literals[0].Assigned)
	assert.False(t, fail.Literals[0].Satisfied)
	assert.Contains(t, fail.Error(), "clause 0 is unsatisfied")
}

func TestModelViolationPicksFirstFailingClause(t *testing.T) {
	pb, err := solver.NewProblem(3, []*solver.Clause{
		clause(1, 2),
		clause(3),
	})
	require.NoError(t, err)
	fail := Model(pb, []int{1, -3})
	require.NotNil(t, fail)
	assert.Equal(t, 1, fail.ClauseIndex)
}

func TestModelPartialAssignmentSkipsUnassignedVars(t *testing.T) {
	pb, err := solver.NewProblem(3, []*solver.Clause{
		clause(1, 2, 3),
	})
	require.NoError(t, err)
	assert.Nil(t, Model(pb, []int{1}))
}

func TestModelPartialAssignmentLeavesLiteralsFree(t *testing.T) {
	pb, err := solver.NewProblem(2, []*solver.Clause{
		clause(1, 2),
	})
	require.NoError(t, err)
	fail := Model(pb, []int{-1})
	require.NotNil(t, fail)
	require.Len(t, fail.Literals, 2)
	assert.True(t, fail.Literals[0].Assigned)
	assert.False(t, fail.Literals[1].Assigned)
}
