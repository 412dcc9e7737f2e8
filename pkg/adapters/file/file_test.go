package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/lineator/internal/compiler"
	"github.com/aretw0/lineator/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Read(t *testing.T) {
	src := "// header comment\r\nName: M\r\n\r\n\\\\ legacy comment\r\n   // indented comment\r\nq0,1\r\n"
	lines, err := NewLoader().Read(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []domain.Line{
		{Number: 2, Text: "Name: M"},
		{Number: 6, Text: "q0,1"},
	}, lines)
}

func TestLoader_CustomPrefixes(t *testing.T) {
	lines, err := NewLoader("#!").Read(strings.NewReader("#! note\n// kept\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "// kept", lines[0].Text)
}

func TestLoader_LongLines(t *testing.T) {
	long := "q0," + strings.Repeat("a,", 50000) + "a"
	lines, err := NewLoader().Read(strings.NewReader(long + "\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, long, lines[0].Text)
}

func TestLoader_LoadMissing(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.tm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveAndEncode(t *testing.T) {
	tr, err := domain.ParseTransition("q0,1", "qf,0,>")
	require.NoError(t, err)
	m := domain.NewMachine("Inc", "q0", []domain.State{"qf"}, []domain.Transition{tr})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m))
	assert.Equal(t, "Name: Inc\nStartState: q0\nAcceptStates: qf\nq0,1\nqf,0,>\n", buf.String())

	path := filepath.Join(t.TempDir(), "a", "b", "inc.tm")
	require.NoError(t, Save(path, m))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	lines, err := NewLoader().Load(path)
	require.NoError(t, err)
	again, warnings, err := compiler.NewParser().Parse(context.Background(), lines)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, m.Transitions(), again.Transitions())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}
