package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/edtext-labs/edtext/internal/cli/output"
	"github.com/edtext-labs/edtext/internal/history"
	"github.com/edtext-labs/edtext/internal/task"
	"github.com/jedib0t/go-pretty/v6/table"
)

// renderTargets writes a two-column target listing in the renderer's mode.
func renderTargets(r *output.Renderer, targets []task.Target) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(targets)

	case output.ModeText:
		t := table.NewWriter()
		t.SetOutputMirror(r.Out())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Target", "Description"})
		for _, tgt := range targets {
			t.AppendRow(table.Row{tgt.Name, tgt.Description})
		}
		t.Render()

	default:
		out := r.Out()
		_, _ = fmt.Fprintln(out, "| Target | Description |")
		_, _ = fmt.Fprintln(out, "| --- | --- |")
		for _, tgt := range targets {
			_, _ = fmt.Fprintf(out, "| %s | %s |\n", tgt.Name, tgt.Description)
		}
	}
	return nil
}

// showHistory lists the most recent recorded runs.
func showHistory(cmdCtx *CommandContext, limit int) error {
	r := cmdCtx.Renderer

	if dir := filepath.Dir(cmdCtx.Cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	store, err := history.Open(cmdCtx.Cfg.StatePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if err := store.InitSchema(); err != nil {
		return err
	}

	runs, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		if runs == nil {
			runs = []history.Run{}
		}
		return r.JSON(runs)
	}
	if len(runs) == 0 {
		r.Println("no recorded runs")
		return nil
	}

	switch r.EffectiveMode() {
	case output.ModeText:
		t := table.NewWriter()
		t.SetOutputMirror(r.Out())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Target", "Status", "Exit", "Duration", "Started"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.Target, string(run.Status), run.ExitCode,
				formatDuration(run), formatStarted(run),
			})
		}
		t.Render()

	default:
		out := r.Out()
		_, _ = fmt.Fprintln(out, "| Target | Status | Exit | Duration | Started |")
		_, _ = fmt.Fprintln(out, "| --- | --- | --- | --- | --- |")
		for _, run := range runs {
			_, _ = fmt.Fprintf(out, "| %s | %s | %d | %s | %s |\n",
				run.Target, run.Status, run.ExitCode,
				formatDuration(run), formatStarted(run))
		}
	}
	return nil
}

func formatDuration(run history.Run) string {
	if run.CompletedAt == nil {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}

func formatStarted(run history.Run) string {
	return run.StartedAt.Local().Format("2006-01-02 15:04:05")
}
