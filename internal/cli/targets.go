package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cardiosim/exprgen/internal/profile"
)

// TargetInfo describes one configured or available target.
type TargetInfo struct {
	Name          string `json:"name"`
	Backend       string `json:"backend"`
	Precision     string `json:"precision,omitempty"`
	NativeMath    bool   `json:"native_math,omitempty"`
	ConditionFunc string `json:"condition_function,omitempty"`
	TimeVariable  string `json:"time_variable,omitempty"`
}

// NewTargetsCommand creates the targets command.
func NewTargetsCommand(rootOpts *RootOptions) *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List available backends or a profile's configured targets",
		Long: `Without --profile, list every backend name a profile may configure.
With --profile, list the profile's targets and their options.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(rootOpts, cmd, profilePath)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "target profile document")
	return cmd
}

func runTargets(opts *RootOptions, cmd *cobra.Command, profilePath string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if profilePath == "" {
		backends := profile.Backends()
		if formatter.Format == "json" {
			return formatter.Success(backends)
		}
		for _, b := range backends {
			fmt.Fprintln(formatter.Writer, b)
		}
		return nil
	}

	p, err := profile.Load(profilePath)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeProfile, err.Error())
	}

	labels := make([]string, 0, len(p.Targets))
	for label := range p.Targets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	infos := make([]TargetInfo, 0, len(labels))
	for _, label := range labels {
		t := p.Targets[label]
		infos = append(infos, TargetInfo{
			Name:          label,
			Backend:       t.Backend,
			Precision:     t.Precision,
			NativeMath:    t.NativeMath,
			ConditionFunc: t.ConditionFunc,
			TimeVariable:  t.TimeVariable,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}
	fmt.Fprintf(formatter.Writer, "profile: %s\n", p.Name)
	for _, info := range infos {
		line := fmt.Sprintf("%s: %s", info.Name, info.Backend)
		if info.Precision != "" {
			line += " precision=" + info.Precision
		}
		if info.NativeMath {
			line += " native_math"
		}
		if info.ConditionFunc != "" {
			line += " condition_function=" + info.ConditionFunc
		}
		if info.TimeVariable != "" {
			line += " time_variable=" + info.TimeVariable
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}
