// Package utils holds small filesystem, TOML and word list helpers shared by the commands.
package utils

import (
	"sort"
	"strings"
)

// UniqueSorted returns the distinct words of list in ascending order.
func UniqueSorted(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// SplitLines splits a newline separated body into lines, dropping a trailing \r
// from each one. Empty lines are kept.
func SplitLines(body string) []string {
	if body == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
