// Package cli provides terminal output and error helpers for fslw.
package cli

import (
	"fmt"
	"strings"
)

// MatchProgram resolves a possibly abbreviated program name against
// programs. An exact match wins; otherwise the prefix must be unique.
func MatchProgram(prefix string, programs []string) (string, error) {
	prefix = strings.ToLower(prefix)

	for _, p := range programs {
		if strings.ToLower(p) == prefix {
			return p, nil
		}
	}

	var matches []string
	for _, p := range programs {
		if strings.HasPrefix(strings.ToLower(p), prefix) {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown program %q; known: %s", prefix, strings.Join(programs, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous program %q matches: %s", prefix, strings.Join(matches, ", "))
	}
}
