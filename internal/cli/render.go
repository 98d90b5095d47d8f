package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cardiosim/exprgen/internal/cache"
	"github.com/cardiosim/exprgen/internal/expr"
	"github.com/cardiosim/exprgen/internal/mathml"
	"github.com/cardiosim/exprgen/internal/profile"
	"github.com/cardiosim/exprgen/internal/writer"
)

// RenderOutput is one rendered expression for one target.
type RenderOutput struct {
	File    string `json:"file"`
	Target  string `json:"target"`
	Backend string `json:"backend"`
	Output  string `json:"output"`
	Cached  bool   `json:"cached,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var profilePath string
	var cachePath string

	cmd := &cobra.Command{
		Use:   "render --profile <profile.cue> <expr.xml> [expr.xml ...]",
		Short: "Render MathML expressions for every target in a profile",
		Long: `Render content-MathML expression files as source text for every target
the profile configures. With --cache, rendered output is stored in a SQLite
cache keyed by target and expression structure, and unchanged expressions
are served from it.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(rootOpts, cmd, profilePath, cachePath, args)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "target profile document (required)")
	cmd.Flags().StringVar(&cachePath, "cache", "", "render cache database path")
	cmd.MarkFlagRequired("profile")

	return cmd
}

func runRender(opts *RootOptions, cmd *cobra.Command, profilePath, cachePath string, files []string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := profile.Load(profilePath)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeProfile, err.Error())
	}
	formatter.VerboseLog("Loaded profile %s with %d target(s)", p.Name, len(p.Targets))

	labels := make([]string, 0, len(p.Targets))
	for label := range p.Targets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	writers := make(map[string]writer.Writer, len(labels))
	for _, label := range labels {
		w, err := p.Targets[label].NewWriter()
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeProfile,
				fmt.Sprintf("target %s: %v", label, err))
		}
		writers[label] = w
	}

	var c *cache.Cache
	var runToken string
	if cachePath != "" {
		c, err = cache.Open(cachePath)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeCache, err.Error())
		}
		defer c.Close()
		if runToken, err = c.BeginRun(ctx, p.Name); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeCache, err.Error())
		}
		formatter.VerboseLog("Render run %s", runToken)
	}

	var outputs []RenderOutput
	for _, file := range files {
		e, err := loadExpressionFile(file)
		if err != nil {
			return fail(formatter, ExitFailure, ErrCodeParse,
				fmt.Sprintf("%s: %v", file, err))
		}
		for _, label := range labels {
			out := RenderOutput{
				File:    file,
				Target:  label,
				Backend: p.Targets[label].Backend,
			}
			if c != nil {
				if hit, ok, err := c.Get(ctx, label, e); err != nil {
					return fail(formatter, ExitCommandError, ErrCodeCache, err.Error())
				} else if ok {
					out.Output, out.Cached = hit, true
				}
			}
			if !out.Cached {
				rendered, err := writers[label].Ex(e)
				if err != nil {
					return fail(formatter, ExitFailure, ErrCodeRender,
						fmt.Sprintf("%s: target %s: %v", file, label, err))
				}
				out.Output = rendered
				if c != nil {
					if err := c.Put(ctx, runToken, label, e, rendered); err != nil {
						return fail(formatter, ExitCommandError, ErrCodeCache, err.Error())
					}
				}
			}
			outputs = append(outputs, out)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(outputs)
	}
	current := ""
	for _, out := range outputs {
		if out.File != current {
			current = out.File
			fmt.Fprintf(formatter.Writer, "== %s\n", current)
		}
		line := out.Output
		if out.Cached && opts.Verbose {
			line += "  (cached)"
		}
		fmt.Fprintf(formatter.Writer, "%s: %s\n", out.Target, line)
	}
	return nil
}

// loadExpressionFile decodes and parses one content-MathML file.
func loadExpressionFile(path string) (expr.Expression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	el, err := mathml.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return mathml.Parse(el, mathml.Options{})
}
