package amc

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fatih/color"
)

// CleanStats summarizes what CleanBytes removed from a buffer.
type CleanStats struct {
	NullBytes     int
	ControlChars  int
	TotalBytes    int
	LinesAffected int
}

// CleanOptions drives CleanFile.
type CleanOptions struct {
	// Input is the file to clean. Required.
	Input string
	// Output is where the cleaned content is written; defaults to Input.
	Output string
	// Backup copies Input to Input+".backup" before an in-place write.
	Backup bool
	// Report prints a summary of what was removed.
	Report bool
	// DryRun reports without writing anything.
	DryRun bool
}

// CleanBytes removes null bytes and control characters (except \t, \n, \r)
// from buf, returning the cleaned content coerced to valid UTF-8. Stats are
// only collected when collectStats is true.
func CleanBytes(buf []byte, collectStats bool) ([]byte, CleanStats) {
	stats := CleanStats{TotalBytes: len(buf)}

	cleaned := make([]byte, 0, len(buf))
	lineAffected := false

	for _, b := range buf {
		switch {
		case b == 0:
			if collectStats {
				stats.NullBytes++
				lineAffected = true
			}
		case (b >= 1 && b <= 8) || b == 11 || b == 12 || (b >= 14 && b <= 31):
			if collectStats {
				stats.ControlChars++
				lineAffected = true
			}
		case b == '\n':
			cleaned = append(cleaned, b)
			if collectStats && lineAffected {
				stats.LinesAffected++
				lineAffected = false
			}
		default:
			cleaned = append(cleaned, b)
		}
	}

	// Last line may not end with a newline.
	if collectStats && lineAffected {
		stats.LinesAffected++
	}

	return lossyUTF8(cleaned), stats
}

// lossyUTF8 coerces b to valid UTF-8, substituting a replacement character
// for each invalid byte rather than collapsing runs of them.
func lossyUTF8(b []byte) []byte {
	if utf8.Valid(b) {
		return b
	}
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			out = append(out, "�"...)
		} else {
			out = append(out, b[:size]...)
		}
		b = b[size:]
	}
	return out
}

// CleanFile reads opts.Input, strips null and control bytes, and writes the
// result per opts. Progress and report output go to out.
func CleanFile(opts CleanOptions, out io.Writer) error {
	if _, err := os.Stat(opts.Input); err != nil {
		return fmt.Errorf("input file does not exist: %s", opts.Input)
	}

	buf, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.Input, err)
	}

	cleaned, stats := CleanBytes(buf, opts.Report || opts.DryRun)

	if opts.Report || opts.DryRun {
		printCleanReport(out, stats, opts.DryRun)
	}

	if opts.DryRun {
		return nil
	}

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = opts.Input
	}

	if opts.Backup && outputPath == opts.Input {
		backupPath := opts.Input + ".backup"
		if err := copyFile(opts.Input, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		fmt.Fprintf(out, "Created backup: %s\n", backupPath)
	}

	if err := os.WriteFile(outputPath, cleaned, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	fmt.Fprintf(out, "Cleaned file written to: %s\n", outputPath)

	return nil
}

func printCleanReport(out io.Writer, stats CleanStats, dryRun bool) {
	action := "Removed"
	if dryRun {
		action = "Would remove"
	}

	fmt.Fprintln(out, "\n=== Clean Report ===")
	fmt.Fprintf(out, "Total bytes processed: %d\n", stats.TotalBytes)
	fmt.Fprintf(out, "%s null bytes: %d\n", action, stats.NullBytes)
	fmt.Fprintf(out, "%s control characters: %d\n", action, stats.ControlChars)
	fmt.Fprintf(out, "Lines affected: %d\n", stats.LinesAffected)

	if stats.NullBytes == 0 && stats.ControlChars == 0 {
		color.New(color.FgGreen).Fprintln(out, "✓ No cleaning needed - file is already clean!")
		return
	}

	verb := "removed"
	if dryRun {
		verb = "to remove"
	}
	fmt.Fprintf(out, "Total characters %s: %d\n", verb, stats.NullBytes+stats.ControlChars)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
