package lineator

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/lineator/internal/compiler"
	"github.com/aretw0/lineator/internal/flatten"
	"github.com/aretw0/lineator/internal/validator"
	"github.com/aretw0/lineator/pkg/adapters/file"
	"github.com/aretw0/lineator/pkg/domain"
)

// Version is the module release, read from the VERSION file.
//
//go:embed VERSION
var Version string

// Limits bounds the work of one lineation.
type Limits = validator.Limits

// DefaultLimits returns the default resource bounds.
func DefaultLimits() Limits { return validator.DefaultLimits() }

// Lineator is the high-level entry point of the library.
// It wires the parser, the validator and the flattener together.
type Lineator struct {
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	limits   Limits
	prefixes []string
}

// Option defines a functional option for configuring the Lineator.
type Option func(*Lineator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lineator) {
		l.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Lineator) {
		l.hooks = hooks
	}
}

// WithLimits bounds the number of tapes and composite states.
func WithLimits(limits Limits) Option {
	return func(l *Lineator) {
		l.limits = limits
	}
}

// WithCommentPrefixes overrides the comment line prefixes (default "//" and "\\").
func WithCommentPrefixes(prefixes ...string) Option {
	return func(l *Lineator) {
		l.prefixes = prefixes
	}
}

// New creates a Lineator.
func New(opts ...Option) *Lineator {
	l := &Lineator{limits: validator.DefaultLimits()}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	l.limits = l.limits.Normalize()
	return l
}

// Compile reads a description and assembles the K-tape machine without validating it.
func (l *Lineator) Compile(ctx context.Context, r io.Reader) (*domain.Machine, []domain.Warning, error) {
	lines, err := file.NewLoader(l.prefixes...).Read(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read machine description: %w", err)
	}
	parser := compiler.NewParser(
		compiler.WithLogger(l.logger),
		compiler.WithLifecycleHooks(l.hooks),
	)
	return parser.Parse(ctx, lines)
}

// Check compiles a description and verifies the flattening preconditions.
// It returns the machine and warnings even when validation fails.
func (l *Lineator) Check(ctx context.Context, r io.Reader) (*domain.Machine, []domain.Warning, error) {
	m, warnings, err := l.Compile(ctx, r)
	if err != nil {
		return nil, warnings, err
	}
	if _, err := validator.ValidateMachine(m, l.limits); err != nil {
		return m, warnings, err
	}
	return m, warnings, nil
}

// Lineate compiles a K-tape description and flattens it.
func (l *Lineator) Lineate(ctx context.Context, r io.Reader) (*domain.Lineation, error) {
	m, warnings, err := l.Compile(ctx, r)
	if err != nil {
		return nil, err
	}
	out, err := l.Flatten(ctx, m)
	if err != nil {
		return nil, err
	}
	out.Warnings = warnings
	return out, nil
}

// Flatten flattens an already assembled machine.
func (l *Lineator) Flatten(ctx context.Context, m *domain.Machine) (*domain.Lineation, error) {
	f := flatten.New(
		flatten.WithLogger(l.logger),
		flatten.WithLifecycleHooks(l.hooks),
		flatten.WithLimits(l.limits),
	)
	res, err := f.Flatten(ctx, m)
	if err != nil {
		var name string
		if m != nil {
			name = m.Name()
		}
		l.logger.ErrorContext(ctx, "Lineation refused", "machine", name, "kind", domain.Kind(err), "err", err)
		return nil, err
	}

	frontiers := make([][]domain.CompositeState, len(res.Frontiers))
	for i, fr := range res.Frontiers {
		frontiers[i] = fr.States()
	}

	l.logger.InfoContext(ctx, "Machine lineated",
		"machine", m.Name(),
		"tapes", res.Tapes,
		"states", res.StateCount(),
		"transitions", len(res.Transitions),
	)

	return &domain.Lineation{
		Source:    m,
		Flat:      res.Machine(),
		Tapes:     res.Tapes,
		Frontiers: frontiers,
	}, nil
}

// LineateFile reads the description at inPath and writes the flattened machine to outPath.
func (l *Lineator) LineateFile(ctx context.Context, inPath, outPath string) (*domain.Lineation, error) {
	lines, err := file.NewLoader(l.prefixes...).Load(inPath)
	if err != nil {
		return nil, err
	}
	parser := compiler.NewParser(
		compiler.WithLogger(l.logger.With("file", inPath)),
		compiler.WithLifecycleHooks(l.hooks),
	)
	m, warnings, err := parser.Parse(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inPath, err)
	}

	out, err := l.Flatten(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inPath, err)
	}
	out.Warnings = warnings

	if err := file.Save(outPath, out.Flat); err != nil {
		return nil, err
	}
	return out, nil
}
