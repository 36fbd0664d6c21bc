package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"sentrim/internal/workflow"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"

	timeRounding = 100 * time.Millisecond
)

func printSummary(out io.Writer, summary workflow.Summary) {
	colorize := shouldColorize(out)

	label := func(text, color string) string {
		if !colorize {
			return text
		}
		return color + text + ansiReset
	}

	fmt.Fprintf(out, "Batch finished in %s\n", summary.Duration.Round(timeRounding))
	fmt.Fprintf(out, "  %s %d\n", label("Trimmed:", ansiGreen), summary.Processed)
	if summary.Failed > 0 {
		fmt.Fprintf(out, "  %s  %d\n", label("Failed:", ansiRed), summary.Failed)
	}
	if summary.Review > 0 {
		fmt.Fprintf(out, "  Review:  %d\n", summary.Review)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
