package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/lineator"
	"github.com/aretw0/lineator/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const twoTapes = `Name: Copy
StartState: q0
AcceptStates: qf
q0,a,b
qf,a,b,>,>
q0,b,b
qf,b,b,-,-
q0
`

func lineate(t *testing.T) *domain.Lineation {
	t.Helper()
	out, err := lineator.New().Lineate(context.Background(), strings.NewReader(twoTapes))
	require.NoError(t, err)
	return out
}

func TestBuild(t *testing.T) {
	r := Build(lineate(t))

	assert.Equal(t, "Copy", r.Machine)
	assert.Equal(t, "Copy-flat", r.Flat)
	assert.Equal(t, 2, r.Tapes)
	assert.Equal(t, []string{"a", "b"}, r.TapeLibrary)
	assert.Equal(t, 2, r.Source)
	require.Len(t, r.Frontiers, 3)
	assert.Equal(t, []string{"q0-#", "q0-a", "q0-b"}, r.Frontiers[1].States)
	assert.Equal(t, []string{"q0-#-#", "q0-a-#", "q0-a-b", "q0-b-#", "q0-b-b"}, r.Determined)
	assert.Equal(t, 8, r.Transitions)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "line 8")
}

func TestEncode(t *testing.T) {
	l := lineate(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, l, FormatText))
	assert.True(t, strings.HasPrefix(buf.String(), "Name: Copy-flat\n"))

	buf.Reset()
	require.NoError(t, Encode(&buf, l, FormatYAML))
	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, Build(l), fromYAML)

	buf.Reset()
	require.NoError(t, Encode(&buf, l, "JSON"))
	var fromJSON Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, Build(l), fromJSON)

	assert.Error(t, Encode(&buf, l, "xml"))
}

func TestMarkdown(t *testing.T) {
	md := Markdown(lineate(t))
	assert.Contains(t, md, "# Copy\n")
	assert.Contains(t, md, "- **Tapes:** 2\n")
	assert.Contains(t, md, "| 1 | 3 | `q0-#`, `q0-a`, `q0-b` |")
	assert.Contains(t, md, "## Determined states (5)")
	assert.Contains(t, md, "## Warnings")
}
