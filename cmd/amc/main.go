package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"
)

// Args defines the command-line arguments with subcommands
type Args struct {
	Out     *OutCmd   `arg:"subcommand:out" help:"Annotate and concatenate files to stdout"`
	Clean   *CleanCmd `arg:"subcommand:clean" help:"Strip null bytes and control characters from a file"`
	Verbose bool      `arg:"-v,--verbose" help:"Enable debug logging"`
}

// Runner encapsulates the state and behavior for the CLI
type Runner struct {
	Args   Args
	Logger *slog.Logger
}

// NewRunner creates and initializes a new Runner
func NewRunner(args Args) *Runner {
	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return &Runner{
		Args:   args,
		Logger: logger,
	}
}

// Run dispatches to the appropriate subcommand. Running with no subcommand
// behaves like "amc out" with its defaults.
func (r *Runner) Run() error {
	switch {
	case r.Args.Clean != nil:
		cleanRunner := NewCleanRunner(*r.Args.Clean)
		return cleanRunner.Run()
	case r.Args.Out != nil:
		outRunner := NewOutRunner(*r.Args.Out, r.Logger)
		return outRunner.Run()
	default:
		outRunner := NewOutRunner(OutCmd{Dir: ".", Config: ".amc.toml"}, r.Logger)
		return outRunner.Run()
	}
}

// main is our entrypoint: parse args and run the application
func main() {
	var args Args
	arg.MustParse(&args)

	runner := NewRunner(args)
	if err := runner.Run(); err != nil {
		log.Fatal(err)
	}
}
