package core

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// IgnoreRules skips archive entries matching gitignore-style patterns
// (readme files, screenshots, installer images) during mapping.
type IgnoreRules struct {
	matcher *pathrules.Matcher
}

func NewIgnoreRules(patterns []string) (*IgnoreRules, error) {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = cleanPattern(pattern)
		if pattern == "" {
			continue
		}
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionInclude, Pattern: pattern})
	}
	if len(rules) == 0 {
		return &IgnoreRules{}, nil
	}

	matcher, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		return nil, fmt.Errorf("compile ignore rules: %w", err)
	}
	return &IgnoreRules{matcher: matcher}, nil
}

func (this *IgnoreRules) Ignored(entryPath string) bool {
	if this == nil || this.matcher == nil {
		return false
	}
	return this.matcher.Included(entryPath, false)
}

// cleanPattern normalizes separators but keeps leading and trailing slashes,
// which anchor a pattern or restrict it to directories.
func cleanPattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	pattern = strings.ReplaceAll(pattern, `\`, "/")
	return strings.TrimPrefix(pattern, "./")
}
