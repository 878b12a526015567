package policies

import "strings"

// hasShorthand reports whether short appears in text as a word of its own:
// the whole text, a leading word, or a word preceded by whitespace that is
// followed by whitespace or ends the text (optionally before a final '.').
func hasShorthand(text string, short string) bool {
	if short == "" {
		return false
	}
	if text == short {
		return true
	}
	for _, pos := range occurrences(text, short) {
		end := pos + len(short)
		before := pos > 0 && isSpace(text[pos-1])
		after := end < len(text) && isSpace(text[end])
		if pos == 0 && after {
			return true
		}
		if before && (after || endsText(text, end)) {
			return true
		}
	}
	return false
}

// hasUnitShorthand reports whether short appears in text as a unit after a
// quantity: "5kg", "5 kg" or "5 kg." at the end of the text, or an inner
// word such as "5kg box" or "a kg box".
func hasUnitShorthand(text string, short string) bool {
	if short == "" {
		return false
	}
	if text == short {
		return true
	}
	if last := strings.LastIndex(text, short); last >= 0 && endsText(text, last+len(short)) {
		if last >= 1 && isDigit(text[last-1]) {
			return true
		}
		if last >= 2 && isSpace(text[last-1]) && isDigit(text[last-2]) {
			return true
		}
	}
	for _, pos := range occurrences(text, short) {
		end := pos + len(short)
		if pos == 0 || end >= len(text) {
			continue
		}
		if isSpace(text[end]) && (isSpace(text[pos-1]) || isDigit(text[pos-1])) {
			return true
		}
	}
	return false
}

func occurrences(text string, short string) []int {
	var found []int
	for offset := 0; offset <= len(text); {
		idx := strings.Index(text[offset:], short)
		if idx < 0 {
			break
		}
		found = append(found, offset+idx)
		offset += idx + 1
	}
	return found
}

// endsText reports whether end is the end of text or precedes a final '.'.
func endsText(text string, end int) bool {
	return end == len(text) || (end == len(text)-1 && text[end] == '.')
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
