package output

import (
	"fmt"
	"regexp"
	"strings"
)

var modelFamilies = []string{"Opus", "Sonnet", "Haiku"}

// ShortModelName reduces a display name such as "Claude 3.5 Sonnet" to its
// family. Matching is a case-insensitive substring test in family order.
func ShortModelName(displayName string) string {
	lower := strings.ToLower(displayName)
	for _, family := range modelFamilies {
		if strings.Contains(lower, strings.ToLower(family)) {
			return family
		}
	}
	return "Unknown"
}

var (
	modelIDWithMinor = regexp.MustCompile(`^claude-(\w+)-(\d+)-(\d+)-\d+`)
	modelIDMajor     = regexp.MustCompile(`^claude-(\w+)-(\d+)-\d+`)
)

// ShortenModelName turns a transcript model ID into a compact label:
// claude-sonnet-4-5-20250929 -> Sonnet-4.5, claude-opus-4-20250514 -> Opus-4.
func ShortenModelName(model string) string {
	if matches := modelIDWithMinor.FindStringSubmatch(model); matches != nil {
		return fmt.Sprintf("%s-%s.%s", titleCase(matches[1]), matches[2], matches[3])
	}

	if matches := modelIDMajor.FindStringSubmatch(model); matches != nil {
		return fmt.Sprintf("%s-%s", titleCase(matches[1]), matches[2])
	}

	if model == "<synthetic>" {
		return "synthetic"
	}

	if len(model) > 12 {
		return model[:12]
	}
	return model
}

func titleCase(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
