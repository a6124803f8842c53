package main

import (
	"io"
	"os"

	"github.com/hayeah/amc"
)

// CleanCmd defines the command-line arguments for the clean subcommand
type CleanCmd struct {
	Input  string `arg:"positional,required" help:"File to clean"`
	Output string `arg:"-o,--output" help:"Output path (default: clean in place)"`
	Backup bool   `arg:"--backup" help:"Create a .backup copy before cleaning in place"`
	Report bool   `arg:"--report" help:"Print a summary of removed bytes"`
	DryRun bool   `arg:"--dry-run" help:"Report what would be removed without writing"`
}

// CleanRunner encapsulates the state and behavior for the clean subcommand
type CleanRunner struct {
	Args   CleanCmd
	Output io.Writer
}

// NewCleanRunner creates and initializes a new CleanRunner
func NewCleanRunner(cmd CleanCmd) *CleanRunner {
	return &CleanRunner{
		Args:   cmd,
		Output: os.Stdout,
	}
}

// Run executes the clean subcommand
func (r *CleanRunner) Run() error {
	return amc.CleanFile(amc.CleanOptions{
		Input:  r.Args.Input,
		Output: r.Args.Output,
		Backup: r.Args.Backup,
		Report: r.Args.Report,
		DryRun: r.Args.DryRun,
	}, r.Output)
}
