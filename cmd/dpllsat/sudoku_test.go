package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadGridRoundTrip(t *testing.T) {
	const src = "530070000\n600195000\n098000060\n800060003\n400803001\n700020006\n060000280\n000419005\n000080079\n"
	grid, err := readGrid(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 5, grid[0][0])
	assert.Equal(t, 0, grid[0][2])
	assert.Equal(t, 9, grid[8][8])

	var b strings.Builder
	writeGrid(&b, grid)
	assert.Contains(t, b.String(), "53..7....\n")
}

func TestReadGridRejectsShortRow(t *testing.T) {
	_, err := readGrid(strings.NewReader("12345\n"))
	require.Error(t, err)
}
