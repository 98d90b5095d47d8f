package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardiosim/exprgen/internal/profile"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Profile string `json:"profile,omitempty"`
	Targets int    `json:"targets,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile.cue>",
		Short: "Validate a target profile document",
		Long: `Validate a target profile against the embedded schema and the
cross-field rules (kernel-only options, required condition functions)
without rendering anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	p, err := profile.Load(path)
	if err != nil {
		var perr *profile.Error
		if errors.As(err, &perr) {
			if formatter.Format == "json" {
				result := ValidationResult{
					Valid:   false,
					Field:   perr.Field,
					Message: perr.Message,
				}
				if perr.Pos.IsValid() {
					result.Line = perr.Pos.Line()
				}
				enc := json.NewEncoder(formatter.Writer)
				enc.SetIndent("", "  ")
				_ = enc.Encode(CLIResponse{
					Status: "error",
					Data:   result,
					Error:  &CLIError{Code: ErrCodeProfile, Message: perr.Message},
				})
				return NewExitError(ExitFailure, perr.Error())
			}
			fmt.Fprintln(formatter.Writer, "✗ Profile invalid")
			fmt.Fprintf(formatter.Writer, "  %s\n", perr.Error())
			return NewExitError(ExitFailure, perr.Error())
		}
		return fail(formatter, ExitCommandError, ErrCodeProfile, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{
			Valid:   true,
			Profile: p.Name,
			Targets: len(p.Targets),
		})
	}
	fmt.Fprintf(formatter.Writer, "✓ Profile valid: %s (%d targets)\n", p.Name, len(p.Targets))
	return nil
}
