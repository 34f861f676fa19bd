// Package app implements the application layer for graphcache.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/graphcache/internal/adapters/export" //nolint:depguard // Format lookup
	"go.trai.ch/graphcache/internal/core/domain"
	"go.trai.ch/graphcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader    ports.ResolutionLoader
	store     ports.ResultStore
	renderers []ports.Renderer
	logger    ports.Logger
	root      string
}

// New creates a new App instance rooted at the current directory.
func New(
	loader ports.ResolutionLoader,
	store ports.ResultStore,
	renderers []ports.Renderer,
	log ports.Logger,
) *App {
	return &App{
		loader:    loader,
		store:     store,
		renderers: renderers,
		logger:    log,
		root:      ".",
	}
}

// WithRoot sets the workspace directory holding the session store.
func (a *App) WithRoot(root string) *App {
	a.root = root
	return a
}

// Write loads the resolution file at path and stores its results as a session.
// An empty session name selects domain.DefaultSessionName.
func (a *App) Write(ctx context.Context, path, session string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == "" {
		session = domain.DefaultSessionName
	}

	results, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load resolution")
	}
	a.logger.Debug("loaded resolution", "path", path, "results", len(results))

	if err := a.store.Put(a.root, session, results); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to store session"), "session", session)
	}

	a.logger.Info(fmt.Sprintf("wrote %s to session %s", plural(len(results), "result"), session))
	return nil
}

// ReadOptions configuration for the Read method.
type ReadOptions struct {
	Format string
	Out    io.Writer
}

// Read loads the named sessions and renders them in the order given.
// Sessions are decoded concurrently; each decode uses its own serializer.
func (a *App) Read(ctx context.Context, sessions []string, opts ReadOptions) error {
	if len(sessions) == 0 {
		return domain.ErrNoSessionsSpecified
	}

	renderer, err := export.Lookup(a.renderers, opts.Format)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	loaded := make([]domain.SessionResults, len(sessions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, name := range sessions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results, err := a.store.Get(a.root, name)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read session"), "session", name)
			}
			if results == nil {
				return zerr.With(zerr.Wrap(domain.ErrSessionNotFound, "cannot read session"), "session", name)
			}
			a.logger.Debug("decoded session", "session", name, "results", len(results))
			loaded[i] = domain.SessionResults{Session: name, Results: results}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return renderer.Render(out, loaded)
}

// Clean removes the session store.
func (a *App) Clean(_ context.Context) error {
	path := filepath.Join(a.root, domain.DefaultStorePath())

	a.logger.Info("removing session store...")
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove session store"), "path", path)
	}
	a.logger.Info("removed session store")
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
