package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/hayeah/amc"
)

// OutCmd defines the command-line arguments for the out subcommand
type OutCmd struct {
	Dir    string `arg:"-d,--dir" default:"." help:"Directory to scan"`
	Config string `arg:"-c,--config" default:".amc.toml" help:"Config file path"`
}

// OutRunner encapsulates the state and behavior for the out subcommand
type OutRunner struct {
	Args   OutCmd
	Logger *slog.Logger
	Output io.Writer
}

// NewOutRunner creates and initializes a new OutRunner
func NewOutRunner(cmd OutCmd, logger *slog.Logger) *OutRunner {
	return &OutRunner{
		Args:   cmd,
		Logger: logger,
		Output: os.Stdout,
	}
}

// Run executes the out subcommand: load config, discover files, and write
// the annotated concatenation.
func (r *OutRunner) Run() error {
	cfg, err := amc.LoadConfig(r.Args.Config)
	if err != nil {
		return err
	}
	if len(cfg.Extensions) == 0 {
		r.Logger.Warn("config lists no extensions; no files will match", "config", r.Args.Config)
	}

	walker := amc.NewFileWalker(cfg.Extensions, cfg.ExcludedFolders)
	walker.Logger = r.Logger

	files, err := walker.Walk(r.Args.Dir)
	if err != nil {
		return err
	}

	annotator := amc.NewAnnotator(cfg.Delimiter, r.Output)
	annotator.Logger = r.Logger
	return annotator.WriteFiles(files)
}
