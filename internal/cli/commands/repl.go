package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/edtext-labs/edtext/pkg/edtext"
	"github.com/spf13/cobra"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl [file]",
		Short: "Interactively evaluate range expressions against a file",
		Long: `Start an interactive session. Each input line is a range expression
evaluated against the loaded file; matching lines print with their line
numbers. Type .help for the available dot-commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, args)
		},
	}
}

// replSession holds the mutable state of one REPL run.
type replSession struct {
	text    *edtext.Text
	file    string
	numbers bool
}

func runRepl(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	session := &replSession{numbers: true}
	if len(args) == 1 {
		if err := session.load(args[0]); err != nil {
			return err
		}
	}

	// History lives next to the run history database.
	historyFile := filepath.Join(filepath.Dir(cfg.StatePath), "repl_history")
	_ = os.MkdirAll(filepath.Dir(historyFile), 0750)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "edtext> ",
		HistoryFile:     historyFile,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	if session.file != "" {
		_, _ = fmt.Fprintf(out, "edtext REPL (%s, %d lines)\n", session.file, session.text.Len())
	} else {
		_, _ = fmt.Fprintln(out, "edtext REPL (no file loaded, use .load <file>)")
	}
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleReplCommand(cmd, session, line); quit {
				break
			}
			continue
		}

		if err := session.eval(out, line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

// load reads a file into the session.
func (s *replSession) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	s.text = edtext.New(string(data))
	s.file = path
	return nil
}

// eval resolves a range expression and prints the selected lines.
func (s *replSession) eval(w io.Writer, expr string) error {
	if s.text == nil {
		return fmt.Errorf("no file loaded (use .load <file>)")
	}

	nums, err := s.text.LineNumbers(expr)
	if err != nil {
		return err
	}
	lines := s.text.Lines()
	for _, n := range nums {
		if n < 1 || n > len(lines) {
			return fmt.Errorf("line %d out of range (text has %d lines)", n, len(lines))
		}
	}
	for _, n := range nums {
		if s.numbers {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", n, trimLineEnd(lines[n-1]))
		} else {
			_, _ = fmt.Fprintln(w, trimLineEnd(lines[n-1]))
		}
	}
	return nil
}

// handleReplCommand executes a dot-command, reporting whether to quit.
func handleReplCommand(cmd *cobra.Command, session *replSession, line string) bool {
	out := cmd.OutOrStdout()
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(out)

	case ".load":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .load <file>")
			return false
		}
		if err := session.load(parts[1]); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return false
		}
		_, _ = fmt.Fprintf(out, "Loaded %s (%d lines)\n", session.file, session.text.Len())

	case ".numbers":
		session.numbers = !session.numbers
		if session.numbers {
			_, _ = fmt.Fprintln(out, "Line numbers on")
		} else {
			_, _ = fmt.Fprintln(out, "Line numbers off")
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", parts[0])
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help          Show this help message
  .load <file>   Load a file into the session
  .numbers       Toggle line number prefixes
  .clear         Clear the screen
  .quit / .exit  Exit the REPL

Expressions:
  5              line 5
  2,5            lines 2 through 5
  /foo/,$        first line matching foo through the end
  /a/;/b/        first match of a, then the next match of b
  .+2            two lines past the current line
`
	_, _ = fmt.Fprintln(w, help)
}

func newReplCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".load"),
		readline.PcItem(".numbers"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
