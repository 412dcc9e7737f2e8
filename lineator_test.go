package lineator_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/lineator"
	"github.com/aretw0/lineator/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const copyMachine = `\\ two tapes, every pair of bits
Name: Pairs
StartState: q0
AcceptStates: qf
q0,0,0
qf,0,0,>,>
q0,0,1
qf,0,1,>,>
q0,1,0
qf,1,0,>,>
q0,1,1
qf,1,1,>,>
`

func TestLineate_TwoTapes(t *testing.T) {
	out, err := lineator.New().Lineate(context.Background(), strings.NewReader(copyMachine))
	require.NoError(t, err)

	assert.Equal(t, 2, out.Tapes)
	require.Len(t, out.Frontiers, 3)
	assert.Len(t, out.Frontiers[1], 3)
	assert.Len(t, out.Determined(), 7)
	assert.Len(t, out.Undetermined(), 4)
	assert.Equal(t, 10, out.Flat.Len())
	assert.Empty(t, out.Warnings)
	assert.Equal(t, "Pairs-flat", out.Flat.Name())
}

func TestLineate_Idempotent(t *testing.T) {
	l := lineator.New()
	render := func() []byte {
		out, err := l.Lineate(context.Background(), strings.NewReader(copyMachine))
		require.NoError(t, err)
		data, err := out.Flat.MarshalText()
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, render(), render())
}

func TestLineate_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"Missing Name", "StartState: q0\nAcceptStates: qf\nq0,1\nqf,1,>\n", domain.ErrMissingRequiredField},
		{"Reserved Symbol", "Name: M\nStartState: q0\nAcceptStates: qf\nq0,R\nqf,1,>\n", domain.ErrInvalidAlphabet},
		{"Mixed Arity", "Name: M\nStartState: q0\nAcceptStates: qf\nq0,1\nqf,1,>\nq0,1,1\nqf,1,1,>,>\n", domain.ErrInconsistentArity},
		{"Empty Start State", "Name: M\nStartState:\nAcceptStates: qf\nq0,1\nqf,0,>\n", domain.ErrMissingRequiredField},
		{"Start State With Comma", "Name: M\nStartState: q0,q1\nAcceptStates: qf\nq0,1\nqf,0,>\n", domain.ErrMissingRequiredField},
		{"Only Malformed Pairs", "Name: M\nStartState: q0\nAcceptStates: qf\nq0,1\nqf,1,1\n", domain.ErrDegenerateMachine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := lineator.New().Lineate(context.Background(), strings.NewReader(tt.src))
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFlatten_RejectsUnwritableStartState(t *testing.T) {
	tr, err := domain.ParseTransition("q0,1", "qf,0,>")
	require.NoError(t, err)
	m := domain.NewMachine("M", "q0:x", []domain.State{"qf"}, []domain.Transition{tr})

	out, err := lineator.New().Flatten(context.Background(), m)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredField)
	assert.Equal(t, domain.KindMissingField, domain.Kind(err))
}

func TestLineate_Limits(t *testing.T) {
	l := lineator.New(lineator.WithLimits(lineator.Limits{MaxTapes: 1}))
	_, err := l.Lineate(context.Background(), strings.NewReader(copyMachine))
	assert.ErrorIs(t, err, domain.ErrResourceLimit)
}

func TestCheck_ReturnsMachineOnFailure(t *testing.T) {
	src := "Name: M\nStartState: q0\nAcceptStates: qf\nq0,#\nqf,1,>\nq0,1,1\nqf,1,1,>,>\n"
	m, _, err := lineator.New().Check(context.Background(), strings.NewReader(src))
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Len())

	var agg *domain.AggregateError
	require.True(t, errors.As(err, &agg))
	assert.Len(t, agg.Errors, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidAlphabet)
	assert.ErrorIs(t, err, domain.ErrInconsistentArity)
}

func TestCommentPrefixes(t *testing.T) {
	src := "; comment\nName: M\nStartState: q0\nAcceptStates: qf\nq0,1\nqf,1,>\n"
	m, warnings, err := lineator.New(lineator.WithCommentPrefixes(";")).Compile(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, m.Len())

	// Without ';' as a prefix the comment shifts the domain/range pairing.
	m, warnings, err = lineator.New().Compile(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	assert.Equal(t, 0, m.Len())
}

func TestLineateFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pairs.tm")
	out := filepath.Join(dir, "nested", "pairs-flat.tm")
	require.NoError(t, os.WriteFile(in, []byte(copyMachine), 0644))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	res, err := lineator.New(lineator.WithLogger(logger)).LineateFile(context.Background(), in, out)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Machine lineated")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	expected, err := res.Flat.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, expected, data)

	// The flattened file is a valid description on its own.
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	again, warnings, err := lineator.New().Compile(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, res.Flat.Transitions(), again.Transitions())

	_, err = lineator.New().LineateFile(context.Background(), filepath.Join(dir, "missing.tm"), out)
	assert.Error(t, err)
}
