package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/lineator/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Encode.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Report is the structured summary of one lineation.
type Report struct {
	Machine     string     `json:"machine" yaml:"machine"`
	Flat        string     `json:"flat" yaml:"flat"`
	Tapes       int        `json:"tapes" yaml:"tapes"`
	TapeLibrary []string   `json:"tape_library" yaml:"tape_library"`
	Source      int        `json:"source_transitions" yaml:"source_transitions"`
	Transitions int        `json:"transitions" yaml:"transitions"`
	Frontiers   []Frontier `json:"frontiers" yaml:"frontiers"`
	Determined  []string   `json:"determined" yaml:"determined"`
	Warnings    []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Frontier lists the states that have located Depth virtual heads.
type Frontier struct {
	Depth  int      `json:"depth" yaml:"depth"`
	States []string `json:"states" yaml:"states"`
}

// Build summarizes l.
func Build(l *domain.Lineation) Report {
	r := Report{
		Machine:     l.Source.Name(),
		Flat:        l.Flat.Name(),
		Tapes:       l.Tapes,
		Source:      l.Source.Len(),
		Transitions: l.Flat.Len(),
		TapeLibrary: symbols(l.Source.TapeLibrary()),
		Determined:  names(l.Determined()),
	}
	for depth, states := range l.Frontiers {
		r.Frontiers = append(r.Frontiers, Frontier{Depth: depth, States: names(states)})
	}
	for _, w := range l.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

// Encode writes l in the given format. FormatText writes the flattened
// machine itself; the other formats write the Report.
func Encode(w io.Writer, l *domain.Lineation, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		data, err := l.Flat.MarshalText()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Build(l)); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(Build(l)); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, FormatText, FormatYAML, FormatJSON)
	}
}

// Markdown renders the report for terminal display.
func Markdown(l *domain.Lineation) string {
	r := Build(l)
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Machine)
	fmt.Fprintf(&sb, "- **Tapes:** %d\n", r.Tapes)
	fmt.Fprintf(&sb, "- **Tape library:** %s\n", codeList(r.TapeLibrary))
	fmt.Fprintf(&sb, "- **Source transitions:** %d\n", r.Source)
	fmt.Fprintf(&sb, "- **Head-location transitions:** %d\n\n", r.Transitions)

	sb.WriteString("## Frontiers\n\n")
	sb.WriteString("| Depth | States | Members |\n|---|---|---|\n")
	for _, f := range r.Frontiers {
		fmt.Fprintf(&sb, "| %d | %d | %s |\n", f.Depth, len(f.States), codeList(f.States))
	}

	fmt.Fprintf(&sb, "\n## Determined states (%d)\n\n", len(r.Determined))
	for _, s := range r.Determined {
		fmt.Fprintf(&sb, "- `%s`\n", s)
	}

	if len(r.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
	}
	return sb.String()
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
	}
	return strings.Join(quoted, ", ")
}

func names(states []domain.CompositeState) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s.Name())
	}
	return out
}

func symbols(in []domain.Symbol) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
