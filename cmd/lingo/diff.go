package main

import (
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff renders a three-line-context diff of one file, or "" when the
// contents are equal.
func unifiedDiff(rel string, before, after []byte) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  3,
	})
}
