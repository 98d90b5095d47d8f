package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardiosim/exprgen/internal/expr"
)

// ParseResult holds the parse command's output.
type ParseResult struct {
	File string `json:"file"`
	Kind string `json:"kind"`
	Tree string `json:"tree"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <expr.xml>",
		Short: "Parse a MathML expression and print its tree",
		Long: `Parse a content-MathML expression file and print the resulting tree in
prefix debug form. Useful for checking what a model fragment actually
encodes before rendering it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runParse(opts *RootOptions, cmd *cobra.Command, file string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	e, err := loadExpressionFile(file)
	if err != nil {
		return fail(formatter, ExitFailure, ErrCodeParse, fmt.Sprintf("%s: %v", file, err))
	}

	result := ParseResult{File: file, Kind: expr.KindOf(e), Tree: expr.Sprint(e)}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, result.Tree)
	return nil
}
