package resultio

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satcore/dpllsat/solver"
)

func TestWriteReadSat(t *testing.T) {
	in := Result{
		Verdict: solver.Sat,
		Model:   []int{1, -2, 3},
		Elapsed: 12345 * time.Microsecond,
	}
	var b strings.Builder
	require.NoError(t, Write(&b, in))

	out, err := Read(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, in.Verdict, out.Verdict)
	assert.Equal(t, in.Model, out.Model)
	assert.InDelta(t, in.Elapsed.Seconds(), out.Elapsed.Seconds(), 1e-6)
}

func TestWriteReadUnsat(t *testing.T) {
	in := Result{Verdict: solver.Unsat}
	var b strings.Builder
	require.NoError(t, Write(&b, in))
	assert.NotContains(t, b.String(), "v ")

	out, err := Read(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, solver.Unsat, out.Verdict)
	assert.Nil(t, out.Model)
}

func TestReadMissingStatus(t *testing.T) {
	_, err := Read(strings.NewReader("t 0.1\n"))
	require.Error(t, err)
}

func TestReadUnknownLine(t *testing.T) {
	_, err := Read(strings.NewReader("s 1\nx garbage\n"))
	require.Error(t, err)
}
