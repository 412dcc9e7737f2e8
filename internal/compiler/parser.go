package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/lineator/pkg/domain"
)

// Parser assembles a domain.Machine from the lines of a machine description.
type Parser struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used to report warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLifecycleHooks registers hooks; only OnWarning is used by the parser.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Parser) {
		p.hooks = hooks
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds a machine from description lines.
//
// Lines containing ':' are headers; every other non-blank line is half of a
// transition pair (domain line, then range line). Malformed pairs and a
// dangling domain line are dropped and reported as warnings. A missing
// required header is fatal and no machine is returned.
func (p *Parser) Parse(ctx context.Context, lines []domain.Line) (*domain.Machine, []domain.Warning, error) {
	var (
		warnings    []domain.Warning
		transitions []domain.Transition
		origins     []domain.Origin
		pending     *domain.Line
	)

	headers := newHeaderMap()

	warn := func(w domain.Warning) {
		warnings = append(warnings, w)
		p.logger.WarnContext(ctx, "Skipping input", "where", w.Origin.String(), "reason", w.Message)
		if p.hooks.OnWarning != nil {
			p.hooks.OnWarning(ctx, w)
		}
	}

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if key, value, ok := strings.Cut(text, domain.HeaderDelimiter); ok {
			key, value = strings.TrimSpace(key), strings.TrimSpace(value)
			if prev, dup := headers.set(key, value, line.Number); dup {
				warn(domain.Warning{
					Origin:  domain.Origin{DomainLine: line.Number},
					Message: fmt.Sprintf("duplicate header %q replaces earlier value %q", key, prev),
				})
			}
			continue
		}

		if pending == nil {
			l := line
			pending = &l
			continue
		}

		origin := domain.Origin{DomainLine: pending.Number, RangeLine: line.Number}
		t, err := domain.ParseTransition(pending.Text, line.Text)
		pending = nil
		if err != nil {
			msg := err.Error()
			var te *domain.TransitionError
			if errors.As(err, &te) {
				te.Origin = origin
			}
			warn(domain.Warning{Origin: origin, Message: msg, Err: err})
			continue
		}
		transitions = append(transitions, t)
		origins = append(origins, origin)
	}

	if pending != nil {
		err := &domain.TransitionError{Domain: pending.Text, Reason: "domain line has no range line"}
		msg := err.Error()
		err.Origin = domain.Origin{DomainLine: pending.Number}
		warn(domain.Warning{Origin: err.Origin, Message: msg, Err: err})
	}

	for _, key := range domain.RequiredKeys {
		if _, ok := headers.get(key); !ok {
			return nil, warnings, &domain.FieldError{Key: key}
		}
	}

	name, _ := headers.get(domain.KeyName)
	start, _ := headers.get(domain.KeyStartState)
	acceptRaw, _ := headers.get(domain.KeyAcceptStates)

	if err := domain.CheckHeaderState(domain.KeyStartState, headers.lines[domain.KeyStartState], domain.State(start)); err != nil {
		return nil, warnings, err
	}

	var accept []domain.State
	for _, s := range strings.Split(acceptRaw, domain.FieldDelimiter) {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		if err := domain.CheckHeaderState(domain.KeyAcceptStates, headers.lines[domain.KeyAcceptStates], domain.State(s)); err != nil {
			return nil, warnings, err
		}
		accept = append(accept, domain.State(s))
	}

	var extra []domain.Header
	for _, h := range headers.ordered() {
		if !isRequired(h.Key) {
			extra = append(extra, h)
		}
	}

	m := domain.NewMachine(name, domain.State(start), accept, transitions,
		domain.WithOrigins(origins),
		domain.WithHeaders(extra...),
	)

	p.logger.DebugContext(ctx, "Machine assembled",
		"name", m.Name(),
		"transitions", m.Len(),
		"tape_library", len(m.TapeLibrary()),
		"warnings", len(warnings),
	)

	return m, warnings, nil
}

// ParseText splits text into numbered lines and parses them.
// Comment stripping is left to the caller.
func (p *Parser) ParseText(ctx context.Context, text string) (*domain.Machine, []domain.Warning, error) {
	return p.Parse(ctx, SplitLines(text))
}

// SplitLines numbers every line of text, starting at 1.
func SplitLines(text string) []domain.Line {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]domain.Line, 0, len(raw))
	for i, l := range raw {
		lines = append(lines, domain.Line{Number: i + 1, Text: l})
	}
	return lines
}

func isRequired(key string) bool {
	for _, k := range domain.RequiredKeys {
		if k == key {
			return true
		}
	}
	return false
}

// headerMap keeps header values in first-seen key order.
type headerMap struct {
	keys   []string
	values map[string]string
	lines  map[string]int
}

func newHeaderMap() *headerMap {
	return &headerMap{values: make(map[string]string), lines: make(map[string]int)}
}

func (h *headerMap) set(key, value string, line int) (string, bool) {
	prev, ok := h.values[key]
	if !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
	h.lines[key] = line
	return prev, ok
}

func (h *headerMap) get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

func (h *headerMap) ordered() []domain.Header {
	out := make([]domain.Header, 0, len(h.keys))
	for _, k := range h.keys {
		out = append(out, domain.Header{Key: k, Value: h.values[k]})
	}
	return out
}
