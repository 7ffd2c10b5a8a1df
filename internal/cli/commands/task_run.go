package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/edtext-labs/edtext/internal/history"
	"github.com/edtext-labs/edtext/internal/task"
)

// watchDebounce batches filesystem event bursts into one re-run.
const watchDebounce = 400 * time.Millisecond

// newCleanRun returns the run function for the clean target.
func newCleanRun(cmdCtx *CommandContext, dryRun bool) func(ctx context.Context) error {
	return func(_ context.Context) error {
		r := cmdCtx.Renderer
		cleaner := &task.Cleaner{
			Root:     cmdCtx.Cfg.ProjectRoot,
			Patterns: cmdCtx.Cfg.CleanPatterns(),
		}

		removed, err := cleaner.Clean(dryRun)
		for _, path := range removed {
			r.Println(path)
		}
		if err != nil {
			return err
		}

		switch {
		case len(removed) == 0:
			r.Println("nothing to remove")
		case dryRun:
			r.Printf("would remove %d entries\n", len(removed))
		default:
			r.Success(fmt.Sprintf("removed %d entries", len(removed)))
		}
		return nil
	}
}

// newShellRun returns a run function delegating command to the shell in the
// project root.
func newShellRun(cmdCtx *CommandContext, command string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		r := cmdCtx.Renderer
		cmdCtx.Logger.Debug("running command", "command", command, "dir", cmdCtx.Cfg.ProjectRoot)
		return task.RunShell(ctx, cmdCtx.Cfg.ProjectRoot, command, r.Out(), r.ErrOut())
	}
}

// runTarget executes a target once, recording the run in the history store.
// History failures are logged and never fail the target.
func runTarget(ctx context.Context, cmdCtx *CommandContext, t *task.Task) error {
	rec := startRecord(cmdCtx, t.Name)
	err := t.Run(ctx)
	rec.complete(err)
	return err
}

// runRecorder tracks one run in the history store. The zero value records
// nothing.
type runRecorder struct {
	store  *history.Store
	id     string
	logger *slog.Logger
}

func startRecord(cmdCtx *CommandContext, target string) *runRecorder {
	logger := cmdCtx.Logger
	statePath := cmdCtx.Cfg.StatePath
	if statePath == "" {
		return &runRecorder{}
	}

	if dir := filepath.Dir(statePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			logger.Warn("run history unavailable", "error", err)
			return &runRecorder{}
		}
	}

	store, err := history.Open(statePath)
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return &runRecorder{}
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		logger.Warn("run history unavailable", "error", err)
		return &runRecorder{}
	}
	run, err := store.StartRun(target)
	if err != nil {
		_ = store.Close()
		logger.Warn("failed to record run", "error", err)
		return &runRecorder{}
	}

	return &runRecorder{store: store, id: run.ID, logger: logger}
}

func (rec *runRecorder) complete(runErr error) {
	if rec.store == nil {
		return
	}
	defer func() { _ = rec.store.Close() }()

	status := history.StatusSuccess
	exitCode := 0
	errMsg := ""
	if runErr != nil {
		status = history.StatusFailed
		errMsg = runErr.Error()
		exitCode = 1
		var exitErr *task.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.Code
		}
	}

	if err := rec.store.CompleteRun(rec.id, status, exitCode, errMsg); err != nil {
		rec.logger.Warn("failed to record run", "error", err)
	}
}

// watchTarget runs the target, then re-runs it whenever project files change,
// until the context is canceled. A failing run is reported but keeps the
// watch alive.
func watchTarget(ctx context.Context, cmdCtx *CommandContext, t *task.Task) error {
	r := cmdCtx.Renderer

	changes := make(chan []string, 1)
	w, err := task.NewWatcher(cmdCtx.Cfg.ProjectRoot, cmdCtx.Cfg.WatchIgnorePatterns(), watchDebounce, func(paths []string) {
		select {
		case changes <- paths:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	watchErr := make(chan error, 1)
	go func() { watchErr <- w.Run(ctx) }()

	for {
		if err := runTarget(ctx, cmdCtx, t); err != nil {
			r.Error(err.Error())
		}
		r.Printf("\nwatching for changes (Ctrl-C to stop)\n")

		select {
		case <-ctx.Done():
			return nil
		case err := <-watchErr:
			return err
		case paths := <-changes:
			r.Printf("%d paths changed, re-running %s\n\n", len(paths), t.Name)
		}
	}
}
