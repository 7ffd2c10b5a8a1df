package commands

import (
	"fmt"

	"github.com/edtext-labs/edtext/internal/task"
	"github.com/spf13/cobra"
)

// TaskOptions holds options for the task command.
type TaskOptions struct {
	DryRun   bool
	Watch    bool
	Makefile string
	History  int
}

// NewTaskCommand creates the task command.
func NewTaskCommand() *cobra.Command {
	opts := &TaskOptions{}
	cmd := &cobra.Command{
		Use:   "task [target]",
		Short: "Run a development target (clean, install, test, ...)",
		Long: `Run one of the registered development targets. Without an argument the
known targets are listed with their descriptions. clean, install and test
are built in; extra targets come from the tasks section of edtext.yaml.`,
		Example: `  # List available targets
  edtext task

  # Run the test suite, re-running on file changes
  edtext task test --watch

  # Preview what clean would remove
  edtext task clean --dry-run

  # Show the last ten recorded runs
  edtext task --history`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "For clean: print what would be removed without removing it")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run the target when project files change")
	cmd.Flags().StringVar(&opts.Makefile, "makefile", "", "List annotated targets from an existing Makefile instead")
	cmd.Flags().IntVar(&opts.History, "history", 0, "Show the most recent recorded runs")
	cmd.Flags().Lookup("history").NoOptDefVal = "10"

	return cmd
}

func runTask(cmd *cobra.Command, args []string, opts *TaskOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if cmd.Flags().Changed("history") {
		return showHistory(cmdCtx, opts.History)
	}

	if len(args) == 0 {
		if opts.Makefile != "" {
			return listMakefileTargets(cmdCtx, opts.Makefile)
		}
		reg, err := buildRegistry(cmdCtx, opts)
		if err != nil {
			return err
		}
		return renderTargets(cmdCtx.Renderer, registryTargets(reg))
	}

	reg, err := buildRegistry(cmdCtx, opts)
	if err != nil {
		return err
	}
	t, ok := reg.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown target %q (run \"edtext task\" to list targets)", args[0])
	}

	if opts.Watch {
		return watchTarget(cmd.Context(), cmdCtx, t)
	}
	return runTarget(cmd.Context(), cmdCtx, t)
}

// buildRegistry assembles the built-in targets plus any configured extras.
// A configured task that reuses a built-in name is a config error.
func buildRegistry(cmdCtx *CommandContext, opts *TaskOptions) (*task.Registry, error) {
	cfg := cmdCtx.Cfg
	reg := task.NewRegistry()

	builtins := []*task.Task{
		{
			Name:        "clean",
			Description: "Remove build artifacts and caches",
			Run:         newCleanRun(cmdCtx, opts.DryRun),
		},
		{
			Name:        "install",
			Description: "Install the package in editable mode with dev extras",
			Run:         newShellRun(cmdCtx, cfg.InstallCommand),
		},
		{
			Name:        "test",
			Description: "Run the test suite with coverage",
			Run:         newShellRun(cmdCtx, cfg.TestCommand),
		},
	}
	for _, t := range builtins {
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}

	for name, tc := range cfg.Tasks {
		if tc.Command == "" {
			return nil, fmt.Errorf("task %q has no command", name)
		}
		desc := tc.Description
		if desc == "" {
			desc = tc.Command
		}
		t := &task.Task{
			Name:        name,
			Description: desc,
			Run:         newShellRun(cmdCtx, tc.Command),
		}
		if err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("invalid task config: %w", err)
		}
	}

	return reg, nil
}

// registryTargets converts registered tasks to listable targets.
func registryTargets(reg *task.Registry) []task.Target {
	tasks := reg.List()
	targets := make([]task.Target, 0, len(tasks))
	for _, t := range tasks {
		targets = append(targets, task.Target{Name: t.Name, Description: t.Description})
	}
	return targets
}

func listMakefileTargets(cmdCtx *CommandContext, path string) error {
	targets, err := task.ParseTargetsFile(path)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		cmdCtx.Renderer.Warning(fmt.Sprintf("no annotated targets found in %s", path))
		return nil
	}
	return renderTargets(cmdCtx.Renderer, targets)
}
