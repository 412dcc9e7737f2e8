package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/lineator"
	"github.com/aretw0/lineator/internal/presentation/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	src := `Name: Inc
StartState: q0
AcceptStates: qf
q0,1
qf,0,>
`
	out, err := lineator.New().Lineate(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	got := graph.GenerateMermaid(out, graph.Options{})

	for _, want := range []string{
		"graph LR\n",
		`s0(("q0"))`,
		`s1[["q0-#35;"]]`,
		`s2[["q0-1"]]`,
		`s0 -- "#35;" --> s1`,
		`s0 -- "1" --> s2`,
		"class s1,s2 determined;",
	} {
		assert.Contains(t, got, want)
	}
}

func TestGenerateMermaid_TwoTapes(t *testing.T) {
	src := `Name: Two
StartState: q"0
AcceptStates: qf
q"0,a,b
qf,a,b,>,>
`
	out, err := lineator.New().Lineate(context.Background(), strings.NewReader(src))
	require.NoError(t, err)

	got := graph.GenerateMermaid(out, graph.Options{Direction: "TD"})
	assert.True(t, strings.HasPrefix(got, "graph TD\n"))
	assert.Contains(t, got, `s0(("q#quot;0"))`, "quotes are escaped")
	assert.Contains(t, got, `s2["q#quot;0-a"]`, "intermediate states are rectangles")
	assert.Equal(t, 5, strings.Count(got, " --> "))
}
