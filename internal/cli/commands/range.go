package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edtext-labs/edtext/internal/cli/output"
	"github.com/edtext-labs/edtext/pkg/edtext"
	"github.com/spf13/cobra"
)

// RangeOptions holds options for the range command.
type RangeOptions struct {
	File    string
	Numbers bool
}

// NewRangeCommand creates the range command.
func NewRangeCommand() *cobra.Command {
	opts := &RangeOptions{}
	cmd := &cobra.Command{
		Use:   "range <range>...",
		Short: "Select lines by ed-style range expressions",
		Long: `Select lines from a file (or stdin) using ed-style addressing.

An address is a line number, a /regex/, $ for the last line, or . for the
current line, optionally followed by an offset (+3, -1, ++). Two addresses
joined by , or ; form a range; with ; the second address resolves relative
to the first. Multiple ranges are evaluated in order, each starting from
where the previous one ended.`,
		Example: `  # Lines 2 through 5
  edtext range -f notes.txt 2,5

  # First TODO line through the end of the file
  edtext range -f notes.txt '/TODO/,$'

  # Read from stdin, number the output
  cat notes.txt | edtext range -n '/BEGIN/;/END/'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRange(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read from file instead of stdin")
	cmd.Flags().BoolVarP(&opts.Numbers, "numbers", "n", false, "Prefix each line with its 1-based line number")

	return cmd
}

// rangeLine is one selected line in JSON output.
type rangeLine struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

func runRange(cmd *cobra.Command, args []string, opts *RangeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var data []byte
	var err error
	if opts.File != "" {
		data, err = os.ReadFile(opts.File)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.File, err)
		}
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	text := edtext.New(string(data))
	nums, err := text.LineNumbers(args...)
	if err != nil {
		return err
	}
	lines := text.Lines()
	for _, n := range nums {
		if n < 1 || n > len(lines) {
			return fmt.Errorf("line %d out of range (text has %d lines)", n, len(lines))
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		selected := make([]rangeLine, 0, len(nums))
		for _, n := range nums {
			selected = append(selected, rangeLine{Line: n, Text: trimLineEnd(lines[n-1])})
		}
		return r.JSON(selected)
	}

	for _, n := range nums {
		if opts.Numbers {
			r.Printf("%d\t%s\n", n, trimLineEnd(lines[n-1]))
		} else {
			r.Println(trimLineEnd(lines[n-1]))
		}
	}
	return nil
}

// trimLineEnd strips the line terminator kept by the splitter.
func trimLineEnd(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
