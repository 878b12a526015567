package core

import (
	"strconv"
	"strings"

	"invconv/internal/types"
)

const (
	sectFilePrefix    = "FILE:"
	sectSectionPrefix = "SECTION:"
)

// isFloat reports whether text is two digit runs joined by a single dot.
func isFloat(text string) bool {
	if strings.Count(text, ".") != 1 {
		return false
	}
	digits := strings.Replace(text, ".", "", 1)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseFloat splits a float literal into its whole and fractional integers,
// so 3.10 and 3.1 stay distinct.
func parseFloat(text string) (Version, bool) {
	if !isFloat(text) {
		return Version{}, false
	}
	whole, fraction, _ := strings.Cut(text, ".")
	major, err := strconv.Atoi(strings.TrimSpace(whole))
	if err != nil {
		return Version{}, false
	}
	minor, err := strconv.Atoi(strings.TrimSpace(fraction))
	if err != nil {
		return Version{}, false
	}
	return Version{Major: major, Minor: minor}, true
}

// isSect reports whether text holds a [FILE: f, SECTION: s] literal.
func isSect(text string) bool {
	if strings.Count(text, "[") != 1 || strings.Count(text, "]") != 1 {
		return false
	}
	start := strings.Index(text, "[")
	end := strings.Index(text, "]")
	if end < start {
		return false
	}
	inner := text[start+1 : end]
	if !strings.Contains(inner, sectFilePrefix) {
		return false
	}
	if strings.Contains(inner, sectSectionPrefix) {
		return strings.Contains(inner, ",")
	}
	return true
}

// parseSect reads a section literal. File and section names may contain
// commas; the section starts at SECTION: and a missing section means
// common.
func parseSect(text string) (types.FileSection, bool) {
	if !isSect(text) {
		return types.FileSection{}, false
	}
	inner := strings.TrimSpace(text)
	inner = strings.TrimPrefix(inner, "[")
	inner = strings.TrimSuffix(inner, "]")
	inner = strings.TrimSpace(inner)

	pos := strings.Index(inner, sectSectionPrefix)
	if pos < 0 {
		file := strings.TrimSpace(strings.TrimPrefix(inner, sectFilePrefix))
		return types.NewFileSection(file, types.SectFallback), true
	}
	file := strings.TrimSpace(inner[:pos])
	file = strings.TrimSpace(strings.TrimSuffix(file, ","))
	file = strings.TrimSpace(strings.TrimPrefix(file, sectFilePrefix))
	section := strings.TrimSpace(strings.TrimPrefix(inner[pos:], sectSectionPrefix))
	if section == "" {
		section = types.SectFallback
	}
	return types.NewFileSection(file, section), true
}

// isStruct reports whether text is any struct literal.
func isStruct(text string) bool {
	return isFloat(text) || isSect(text)
}

// structKind names the struct literal text holds.
func structKind(text string) (types.StructKind, bool) {
	switch {
	case isFloat(text):
		return types.StructFloat, true
	case isSect(text):
		return types.StructSect, true
	default:
		return "", false
	}
}
