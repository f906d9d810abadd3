package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"

	"github.com/agentflare-ai/go-jsdocmd/internal/config"
)

const rootLongDesc = `
jsdocmd runs jsdoc over a JavaScript source tree and renders the documentation as a
single Markdown file, optionally spliced into a template at the {{jsdoc}} marker.

  • Patterns select the sources (default **/*.js) relative to --input-dir; prefix a
    pattern with ! to exclude files
  • --records reads a jsdoc -X dump instead of running jsdoc (use - for stdin)
  • Settings can live in .jsdocmd.yaml; flags override the file
  • A --output ending in / writes README.md into that directory, - writes to stdout
`

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := &cobra.Command{
		Use:           "jsdocmd [flags] [pattern...]",
		Short:         "Render jsdoc documentation as Markdown",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVarP(&app.opts.configPath, "config", "c", "", "config file (default "+config.DefaultFile+" when present)")
	flags.StringVarP(&app.opts.inputDir, "input-dir", "i", ".", "directory the patterns are relative to")
	flags.StringVarP(&app.opts.templateFile, "template", "t", "", "template file containing the {{jsdoc}} marker")
	flags.StringVar(&app.opts.outputDir, "output-dir", "", "directory the output file is relative to")
	flags.StringVarP(&app.opts.outputFile, "output", "o", "", "output file, directory (trailing /) or - for stdout")
	flags.StringVar(&app.opts.jsdocPath, "jsdoc", "", "path to the jsdoc executable (default: search node_modules/.bin, then $PATH)")
	flags.StringVar(&app.opts.recordsPath, "records", "", "read doclets from a jsdoc -X JSON file instead of running jsdoc")
	flags.StringVar(&app.opts.format, "format", "markdown", "output format: markdown or html")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.execute(ctx, cmd.Flags(), args)
	}

	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for jsdocmd.

The output should be evaluated by your shell. For example:

  # bash
  jsdocmd completion bash > /usr/local/etc/bash_completion.d/jsdocmd

  # zsh
  jsdocmd completion zsh > "${fpath[1]}/_jsdocmd"

  # fish
  jsdocmd completion fish | source

  # PowerShell
  jsdocmd completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  jsdocmd gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
