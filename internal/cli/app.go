package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/lineator"
	"github.com/aretw0/lineator/internal/config"
	"github.com/aretw0/lineator/internal/metrics"
	"github.com/aretw0/lineator/internal/presentation/graph"
	"github.com/aretw0/lineator/internal/presentation/report"
	"github.com/aretw0/lineator/internal/presentation/tui"
	httpAdapter "github.com/aretw0/lineator/pkg/adapters/http"
	"github.com/aretw0/lineator/pkg/adapters/file"
	"github.com/aretw0/lineator/pkg/adapters/memory"
	"github.com/aretw0/lineator/pkg/adapters/redis"
	"github.com/aretw0/lineator/pkg/domain"
	"github.com/aretw0/lineator/pkg/ports"
)

// App bundles what every command needs.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Lineator builds the library facade with metrics and debug hooks attached.
func (a *App) Lineator() *lineator.Lineator {
	hooks := DebugHooks(a.Logger)
	if a.Metrics != nil {
		hooks = domain.ComposeHooks(hooks, a.Metrics.Hooks())
	}
	return lineator.New(
		lineator.WithLogger(a.Logger),
		lineator.WithLimits(a.Config.Limits),
		lineator.WithCommentPrefixes(a.Config.CommentPrefixes...),
		lineator.WithLifecycleHooks(hooks),
	)
}

func (a *App) lineate(ctx context.Context, input string) (*domain.Lineation, string, error) {
	in, name, err := OpenInput(input, a.Stdin)
	if err != nil {
		return nil, name, err
	}
	defer in.Close()

	start := time.Now()
	out, err := a.Lineator().Lineate(ctx, in)
	if a.Metrics != nil {
		a.Metrics.ObserveLineation(start, err)
	}
	if err != nil {
		return nil, name, fmt.Errorf("%s: %w", name, err)
	}
	PrintWarnings(a.Stderr, name, out.Warnings)
	return out, name, nil
}

// RunLineate flattens input. With output set, the flattened machine is
// saved there; otherwise it is written to Stdout in Config.Format.
func (a *App) RunLineate(ctx context.Context, input, output string) error {
	out, name, err := a.lineate(ctx, input)
	if err != nil {
		return err
	}

	if output != "" {
		if err := file.Save(output, out.Flat); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "Flattened machine written", "input", name, "output", output)
	} else if err := report.Encode(a.Stdout, out, a.Config.Format); err != nil {
		return err
	}

	return a.flushMetrics()
}

// RunValidate parses and validates input without flattening it.
func (a *App) RunValidate(ctx context.Context, input string) error {
	in, name, err := OpenInput(input, a.Stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	m, warnings, err := a.Lineator().Check(ctx, in)
	PrintWarnings(a.Stderr, name, warnings)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	fmt.Fprintf(a.Stdout, "%s: machine %q is valid: %d tape(s), %d transition(s), tape library {%s}\n",
		name, m.Name(), m.Tapes(), m.Len(), joinSymbols(m.TapeLibrary()))
	return nil
}

// RunGraph prints the Mermaid diagram of the head-location automaton.
func (a *App) RunGraph(ctx context.Context, input, direction string) error {
	out, _, err := a.lineate(ctx, input)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.Stdout, graph.GenerateMermaid(out, graph.Options{Direction: direction}))
	return err
}

// RunInspect prints a human readable report. Styling is applied only when
// Stdout is a terminal.
func (a *App) RunInspect(ctx context.Context, input string) error {
	out, _, err := a.lineate(ctx, input)
	if err != nil {
		return err
	}

	md := report.Markdown(out)
	if !IsTerminal(a.Stdout) {
		_, err := io.WriteString(a.Stdout, md)
		return err
	}

	tui.PrintBanner(a.Stdout, strings.TrimSpace(lineator.Version))
	render, err := tui.NewRenderer(0)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	styled, err := render(md)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(a.Stdout, styled)
	return err
}

// BuildStore returns the result store and locker selected by the config:
// Redis when an address is set, process memory otherwise.
func (a *App) BuildStore() (ports.ResultStore, ports.DistributedLocker, func() error) {
	rc := a.Config.Redis
	if rc.Addr == "" {
		return memory.NewStore(), memory.NewLocker(), func() error { return nil }
	}
	store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(rc.TTL))
	prefix := rc.Prefix
	if prefix == "" {
		prefix = redis.DefaultPrefix
	}
	return store, redis.NewLocker(store.Client(), prefix), store.Close
}

// NewHandler assembles the HTTP handler served by RunServe.
func (a *App) NewHandler() (http.Handler, func() error) {
	store, locker, closeStore := a.BuildStore()
	h := httpAdapter.NewHandler(a.Lineator(),
		httpAdapter.WithStore(store),
		httpAdapter.WithLocker(locker),
		httpAdapter.WithMetrics(a.Metrics),
		httpAdapter.WithLogger(a.Logger),
		httpAdapter.WithMaxBody(a.Config.HTTP.MaxBody),
	)
	return h, closeStore
}

// RunServe serves the HTTP API until ctx is cancelled.
func (a *App) RunServe(ctx context.Context) error {
	handler, closeStore := a.NewHandler()
	defer func() {
		if err := closeStore(); err != nil {
			a.Logger.Warn("Failed to close result store", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:        a.Config.HTTP.Addr,
		Handler:     handler,
		ReadTimeout: a.Config.HTTP.ReadTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting lineator server", "addr", srv.Addr, "redis", a.Config.Redis.Addr != "")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		a.Logger.Info("Lineator server stopped gracefully")
		return nil
	}
}

func (a *App) flushMetrics() error {
	if a.Metrics == nil || a.Config.Metrics.Textfile == "" {
		return nil
	}
	if err := a.Metrics.WriteToTextfile(a.Config.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

func joinSymbols(symbols []domain.Symbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
