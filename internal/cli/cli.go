package cli

import (
	"flag"
	"io"
)

// CLIArgs are the command-line arguments that control a single one-shot
// analysis run.
type CLIArgs struct {
	// InputPath points at a JSON file holding a NormalizedAnalysisInput.
	// Empty means "use the built-in sample input".
	InputPath string

	// PageURL labels the report; optional.
	PageURL string

	// Pretty requests indented JSON output.
	Pretty bool

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not read
// os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("pagesentry-cli", flag.ContinueOnError)
	var (
		inputPath = fs.String("input", "", "Path to a NormalizedAnalysisInput JSON file (empty = built-in sample)")
		pageURL   = fs.String("url", "", "Page URL to label the report with")
		pretty    = fs.Bool("pretty", false, "Indent the JSON output")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}

	return &CLIArgs{
		InputPath: *inputPath,
		PageURL:   *pageURL,
		Pretty:    *pretty,
		RawArgs:   args,
	}, nil
}
