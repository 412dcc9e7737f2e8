package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/lineator/pkg/domain"
)

// DefaultCommentPrefixes are the line prefixes treated as comments.
var DefaultCommentPrefixes = []string{"//", `\\`}

// Loader reads machine descriptions, dropping comment lines.
type Loader struct {
	CommentPrefixes []string
}

// NewLoader creates a Loader. With no prefixes it uses DefaultCommentPrefixes.
func NewLoader(prefixes ...string) *Loader {
	if len(prefixes) == 0 {
		prefixes = DefaultCommentPrefixes
	}
	return &Loader{CommentPrefixes: append([]string(nil), prefixes...)}
}

// Load reads the description at path.
func (l *Loader) Load(path string) ([]domain.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open machine description: %w", err)
	}
	defer f.Close()

	lines, err := l.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}

// Read reads a description from r. Comment and blank lines are dropped;
// every kept line carries its 1-based position in the input.
func (l *Loader) Read(r io.Reader) ([]domain.Line, error) {
	var lines []domain.Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || l.isComment(trimmed) {
			continue
		}
		lines = append(lines, domain.Line{Number: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (l *Loader) isComment(line string) bool {
	for _, p := range l.CommentPrefixes {
		if p != "" && strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// Encode writes the textual description of m to w.
func Encode(w io.Writer, m *domain.Machine) error {
	data, err := m.MarshalText()
	if err != nil {
		return fmt.Errorf("failed to encode machine: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write machine: %w", err)
	}
	return nil
}

// Save writes m to path, creating parent directories as needed.
// The file is written to a temporary sibling first and then renamed.
func Save(path string, m *domain.Machine) error {
	data, err := m.MarshalText()
	if err != nil {
		return fmt.Errorf("failed to encode machine: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}
