package i18n

import (
	"fmt"
	"maps"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength prevents oversized Accept-Language headers from
// being parsed.
const maxAcceptLanguageLength = 4096

// placeholderRe matches {{name}} placeholders.
var placeholderRe = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// ReplacePlaceholders replaces {{name}} placeholders in template with values
// from placeholders. Substitution happens in a single pass, so substituted
// values are never re-scanned. Unknown placeholders remain unchanged.
//
// Example:
//
//	template: "Must be at least {{min}} characters"
//	placeholders: M{"min": 2}
//	returns: "Must be at least 2 characters"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-2]
		value, ok := placeholders[name]
		if !ok {
			return match
		}
		return fmt.Sprintf("%v", value)
	})
}

// replacePlaceholdersWithMerge replaces placeholders with values from multiple maps.
// Later maps win on conflicting names.
func replacePlaceholdersWithMerge(template string, placeholders ...M) string {
	if len(placeholders) == 0 {
		return template
	}
	if len(placeholders) == 1 {
		return ReplacePlaceholders(template, placeholders[0])
	}

	merged := make(M)
	for _, p := range placeholders {
		maps.Copy(merged, p)
	}

	return ReplacePlaceholders(template, merged)
}

// NegotiateLanguage picks the best language from available for an
// Accept-Language header. Returns "" when the header is empty, malformed,
// or matches none of the available languages.
//
// Example header: "fr-CH, fr;q=0.9, en;q=0.8"
// Available: ["en", "fr", "de"]
// Returns: "fr"
func NegotiateLanguage(header string, available []string) string {
	if header == "" || len(available) == 0 {
		return ""
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	requested, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(requested) == 0 {
		return ""
	}

	supported := make([]language.Tag, 0, len(available))
	codes := make([]string, 0, len(available))
	for _, code := range available {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		codes = append(codes, code)
	}
	if len(supported) == 0 {
		return ""
	}

	matcher := language.NewMatcher(supported)
	_, index, confidence := matcher.Match(requested...)
	if confidence == language.No {
		return ""
	}

	return codes[index]
}
