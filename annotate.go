package amc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Annotator writes discovered files to an output stream, each framed by a
// delimiter and headed with its relative path and git commit metadata.
type Annotator struct {
	// Logger receives warnings about skipped files. Defaults to discard.
	Logger *slog.Logger

	delimiter string
	out       io.Writer
	gitInfo   func(path string) (CommitInfo, error)
}

// NewAnnotator creates an Annotator writing to out with the given delimiter.
func NewAnnotator(delimiter string, out io.Writer) *Annotator {
	return &Annotator{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		delimiter: delimiter,
		out:       out,
		gitInfo:   HeadCommit,
	}
}

// WriteFiles emits each record's annotated content. A file that cannot be
// read or looks binary is skipped with a warning; missing git metadata is
// reported as "unknown" rather than failing the file.
func (a *Annotator) WriteFiles(records []FileRecord) error {
	for _, rec := range records {
		content, err := os.ReadFile(rec.AbsolutePath)
		if err != nil {
			a.Logger.Warn("skipping unreadable file", "path", rec.AbsolutePath, "error", err)
			continue
		}
		if IsBinaryFile(content) {
			a.Logger.Warn("skipping binary file", "path", rec.RelativePath)
			continue
		}

		hash, updated := "unknown", "unknown"
		if info, err := a.gitInfo(rec.AbsolutePath); err == nil {
			hash = info.Hash
			updated = strconv.FormatInt(info.Timestamp, 10)
		}

		fmt.Fprintln(a.out, a.delimiter)
		fmt.Fprintf(a.out, "File: %s\n", rec.RelativePath)
		fmt.Fprintf(a.out, "Last commit: %s\n", hash)
		fmt.Fprintf(a.out, "Last update: %s\n", updated)
		fmt.Fprintln(a.out, a.delimiter)
		fmt.Fprintf(a.out, "%s\n\n", content)
	}
	return nil
}

// IsBinaryFile checks if content is likely binary by sampling the first 100
// runes and checking if they are printable Unicode characters.
func IsBinaryFile(content []byte) bool {
	const sampleSize = 100
	var nonPrintable int
	var totalRunes int

	for i := 0; i < len(content) && totalRunes < sampleSize; {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError {
			nonPrintable++
		} else if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			nonPrintable++
		}
		i += size
		totalRunes++
	}

	if totalRunes == 0 {
		return false // empty file, not binary
	}
	return float64(nonPrintable)/float64(totalRunes) > 0.1
}
