package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vennekilde/go-ordmap/ordmap"
)

const demoOutput = `
Map Class
Map Count: 0
{}
Map Count: 2
a = 2
b = 7
Map Count: 2
a = 6
b = 7
Map Count: 4
a = 6
b = 7
c = 8
d = 9

Print value of key, else print default value
a = 6
z = -1

Iterate
a = 6
b = 7
c = 8
d = 9
`

func TestRunDemo(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, runDemo(out))
	require.Equal(t, demoOutput, out.String())
}

func TestRunDemoFixedGrowth(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, runDemo(out, ordmap.WithGrowth(ordmap.FixedGrowth(10))))
	require.Equal(t, demoOutput, out.String())
}

func TestRunDemoOutOfBudget(t *testing.T) {
	out := &bytes.Buffer{}
	budget := ordmap.NewBudget(2 * (ordmap.EntrySize + ordmap.InitialKeyCapacity))
	err := runDemo(out, ordmap.WithAllocator(budget))
	require.ErrorIs(t, err, ordmap.ErrAllocation)
	require.Zero(t, budget.InUse())
}
