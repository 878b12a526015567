package types

// Header is a named input column and its 1-based position in the sheet.
type Header struct {
	Name  string
	Index int
}

// Sheet is one section of an input source: its headers and the data rows
// below the header row. Rows are indexed by header position minus one.
type Sheet struct {
	File    string
	Section string
	Headers []Header
	Rows    [][]string
}

func (s Sheet) FileSection() FileSection {
	return FileSection{File: s.File, Section: s.Section}
}

// HeaderNames returns the header names in column order.
func (s Sheet) HeaderNames() []string {
	names := make([]string, 0, len(s.Headers))
	for _, header := range s.Headers {
		names = append(names, header.Name)
	}
	return names
}

// Cell returns the text under header in row, or "" past the row end.
func (s Sheet) Cell(row []string, header Header) string {
	pos := header.Index - 1
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return row[pos]
}
