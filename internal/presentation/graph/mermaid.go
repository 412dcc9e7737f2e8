package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/lineator/pkg/domain"
)

// Options tunes the generated diagram.
type Options struct {
	// Direction is the Mermaid flowchart direction (LR, TD, ...). Defaults to LR.
	Direction string
}

// GenerateMermaid produces a Mermaid flowchart of the head-location automaton.
// Node shapes follow the role of each composite state:
// - Start: ((Circle))
// - Determined: [[Subroutine]], styled with the "determined" class
// - Undetermined: [Rectangle]
// Edges are labeled with the symbol the real head reads.
func GenerateMermaid(l *domain.Lineation, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = "LR"
	}

	var sb strings.Builder
	sb.WriteString("graph " + dir + "\n")

	ids := make(map[domain.State]string)
	last := len(l.Frontiers) - 1
	var determined []string

	for depth, frontier := range l.Frontiers {
		for _, s := range frontier {
			name := s.Name()
			id := fmt.Sprintf("s%d", len(ids))
			ids[name] = id

			opener, closer := "[", "]"
			switch {
			case depth == 0:
				opener, closer = "((", "))"
			case depth == last:
				opener, closer = "[[", "]]"
				determined = append(determined, id)
			}
			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(string(name)), closer)
		}
	}

	if l.Flat != nil {
		for _, t := range l.Flat.Transitions() {
			from, ok1 := ids[t.From()]
			to, ok2 := ids[t.To()]
			if !ok1 || !ok2 {
				continue
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, escapeLabel(string(t.Read(0))), to)
		}
	}

	if len(determined) > 0 {
		sb.WriteString("\n    %% Determined states\n")
		sb.WriteString("    classDef determined fill:#e8f5e9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s determined;\n", strings.Join(determined, ","))
	}

	return sb.String()
}

// escapeLabel protects characters Mermaid treats specially inside quoted labels.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "#", "#35;")
	return strings.ReplaceAll(s, `"`, "#quot;")
}
