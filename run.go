package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/agentflare-ai/go-jsdocmd/internal/config"
	"github.com/agentflare-ai/go-jsdocmd/internal/jsdoc"
	"github.com/agentflare-ai/go-jsdocmd/internal/publish"
	"github.com/agentflare-ai/go-jsdocmd/internal/sources"
)

type options struct {
	configPath   string
	inputDir     string
	templateFile string
	outputDir    string
	outputFile   string
	jsdocPath    string
	recordsPath  string
	format       string
	verbose      bool
}

type cliApp struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	opts   options
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(os.Stdin, stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

func (app *cliApp) logger() *slog.Logger {
	level := slog.LevelInfo
	if app.opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(app.stderr, &slog.HandlerOptions{Level: level}))
}

func (app *cliApp) execute(ctx context.Context, flags *pflag.FlagSet, patterns []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log := app.logger()
	cfg, err := app.loadConfig(flags, patterns)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	records, err := app.collectRecords(ctx, cfg, log)
	if err != nil {
		return err
	}

	opts := publish.Options{
		Template: cfg.TemplateFile,
		Format:   publish.Format(cfg.Format),
		Logger:   log,
	}
	if cfg.OutputFile == "-" {
		return writeOutput(app.stdout, records, opts)
	}
	opts.Destination = cfg.Destination()
	_, err = publish.Publish(records, opts)
	return err
}

// loadConfig reads the config file and lets explicitly set flags and
// positional patterns take precedence over it.
func (app *cliApp) loadConfig(flags *pflag.FlagSet, patterns []string) (config.Config, error) {
	cfg, err := config.Load(app.opts.configPath)
	if err != nil {
		return cfg, err
	}
	override := func(name string, dst *string, value string) {
		if flags != nil && flags.Changed(name) {
			*dst = value
		}
	}
	override("input-dir", &cfg.InputDir, app.opts.inputDir)
	override("template", &cfg.TemplateFile, app.opts.templateFile)
	override("output-dir", &cfg.OutputDir, app.opts.outputDir)
	override("output", &cfg.OutputFile, app.opts.outputFile)
	override("jsdoc", &cfg.JSDoc, app.opts.jsdocPath)
	override("records", &cfg.Records, app.opts.recordsPath)
	override("format", &cfg.Format, app.opts.format)
	if len(patterns) > 0 {
		cfg.Glob = patterns
	}
	return cfg, nil
}

func (app *cliApp) collectRecords(ctx context.Context, cfg config.Config, log *slog.Logger) ([]jsdoc.Record, error) {
	if cfg.Records != "" {
		return app.readRecords(cfg.Records)
	}
	files, err := sources.Expand(cfg.InputDir, cfg.Glob)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no source files match %s in %s",
			config.ErrConfiguration, strings.Join(cfg.Glob, ", "), cfg.InputDir)
	}
	log.Debug("documenting sources", "files", len(files), "inputDir", cfg.InputDir)
	extractor := &jsdoc.Extractor{Path: cfg.JSDoc, SearchDir: cfg.InputDir, Logger: log}
	records, err := extractor.Extract(ctx, files)
	if err != nil {
		return nil, err
	}
	log.Debug("extracted doclets", "count", len(records))
	return records, nil
}

func (app *cliApp) readRecords(path string) ([]jsdoc.Record, error) {
	if path == "-" {
		return jsdoc.Decode(app.stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return jsdoc.Decode(f)
}

func writeOutput(stdout io.Writer, records []jsdoc.Record, opts publish.Options) error {
	var template []byte
	hasTemplate := opts.Template != ""
	if hasTemplate {
		data, err := os.ReadFile(opts.Template)
		if err != nil {
			return fmt.Errorf("read template: %w", err)
		}
		template = data
	}
	return publish.Write(stdout, records, template, hasTemplate, opts)
}

var legacyLongFlagSet = map[string]struct{}{
	"config":     {},
	"input-dir":  {},
	"template":   {},
	"output-dir": {},
	"output":     {},
	"jsdoc":      {},
	"records":    {},
	"format":     {},
	"verbose":    {},
}

// normalizeLegacyArgs accepts single-dash long flags (-template x) and the
// arguments jsdoc passes to a template plugin: "-d DEST" for the destination
// and "-q template=FILE&format=html" for query options.
func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, arg)
			converted = append(converted, args[i+1:]...)
			if i != len(args)-1 {
				modified = true
			}
			break
		}
		switch {
		case arg == "-d" && i+1 < len(args):
			converted = append(converted, "--output", args[i+1])
			i++
			modified = true
			continue
		case arg == "-q" && i+1 < len(args):
			converted = append(converted, queryFlags(args[i+1])...)
			i++
			modified = true
			continue
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" {
			converted = append(converted, arg)
			continue
		}
		if len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		if idx := strings.Index(arg, "="); idx > 0 {
			name := arg[1:idx]
			if _, ok := legacyLongFlagSet[name]; ok {
				converted = append(converted, "--"+name+arg[idx:])
				modified = true
				continue
			}
		}
		name := arg[1:]
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "--"+name)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified && len(converted) == len(args) {
		return args
	}
	return converted
}

func queryFlags(query string) []string {
	var flags []string
	for _, pair := range strings.Split(query, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		if _, known := legacyLongFlagSet[key]; !known {
			continue
		}
		flags = append(flags, "--"+key+"="+value)
	}
	return flags
}
