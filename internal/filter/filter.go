// Package filter prunes wrap candidates between analysis and transformation.
package filter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/standardbeagle/lingo/internal/types"
)

// ByConfidence keeps the candidates at or above min, preserving order.
func ByConfidence(cands []types.WrapCandidate, min types.Confidence) []types.WrapCandidate {
	out := make([]types.WrapCandidate, 0, len(cands))
	for _, c := range cands {
		if c.Confidence.AtLeast(min) {
			out = append(out, c)
		}
	}
	return out
}

var (
	locationColor    = color.New(color.FgCyan)
	textColor        = color.New(color.FgGreen, color.Bold)
	promptColor      = color.New(color.FgYellow)
	confidenceColors = map[types.Confidence]*color.Color{
		types.ConfidenceHigh:   color.New(color.FgGreen),
		types.ConfidenceMedium: color.New(color.FgYellow),
		types.ConfidenceLow:    color.New(color.FgRed),
	}
)

// Describe renders a candidate as one coloured line.
func Describe(c types.WrapCandidate) string {
	return fmt.Sprintf("%s %s %s %s",
		locationColor.Sprintf("%s:%d:%d", c.File, c.Line, c.Column),
		confidenceColors[c.Confidence].Sprintf("[%s]", c.Confidence),
		c.Strategy,
		textColor.Sprintf("%q", c.Text))
}

// Confirm asks about each candidate on out and reads the answers from in:
// y accepts, n rejects, a accepts this and every remaining candidate, q
// rejects this and every remaining one. Unrecognised answers are asked again;
// end of input is treated as q.
func Confirm(cands []types.WrapCandidate, in io.Reader, out io.Writer) ([]types.WrapCandidate, error) {
	scanner := bufio.NewScanner(in)
	var accepted []types.WrapCandidate

	for i, c := range cands {
		for {
			fmt.Fprintf(out, "%s (%s)\n", Describe(c), c.Reason)
			promptColor.Fprintf(out, "wrap? [y]es [n]o [a]ll [q]uit (%d/%d): ", i+1, len(cands))

			if !scanner.Scan() {
				fmt.Fprintln(out)
				return accepted, scanner.Err()
			}
			switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
			case "y", "yes":
				accepted = append(accepted, c)
			case "n", "no":
			case "a", "all":
				return append(accepted, cands[i:]...), nil
			case "q", "quit":
				return accepted, nil
			default:
				fmt.Fprintln(out, "please answer y, n, a or q")
				continue
			}
			break
		}
	}
	return accepted, nil
}
