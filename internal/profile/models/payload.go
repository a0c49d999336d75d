package models

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// EncodePayload derives the canonical card payload from identity fields:
// lowercase, whitespace runs collapsed to single hyphens, then either the
// company slug (professional with a company) or the literal token "personal"
// appended. The rule is intentionally lossy: hyphens already present in the
// name or company are not escaped, so distinct inputs can collide. The payload
// is computed once at profile creation and never recomputed.
//
// It never fails; an empty name yields the degenerate "-personal" string,
// which creation-time validation prevents from ever being stored.
func EncodePayload(name string, profileType ProfileType, company string) string {
	suffix := "personal"
	if profileType == TypeProfessional && company != "" {
		suffix = slugify(company)
	}
	return slugify(name) + "-" + suffix
}

func slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "-")
}
