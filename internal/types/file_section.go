package types

import "fmt"

// Reserved names meaning "any file" and "any section" in an AXM mapping.
const (
	FileFallback = "common"
	SectFallback = "common"
)

// FileSection scopes mapping declarations to a source file and one of its
// sections (a worksheet for xlsx input).
type FileSection struct {
	File    string `yaml:"file"`
	Section string `yaml:"section"`
}

func NewFileSection(file string, section string) FileSection {
	return FileSection{File: file, Section: section}
}

// GenericFileSection is the (common, common) key every other key inherits from.
func GenericFileSection() FileSection {
	return FileSection{File: FileFallback, Section: SectFallback}
}

// IsGeneric reports whether both file and section are fallbacks.
func (fs FileSection) IsGeneric() bool {
	return fs.File == FileFallback && fs.Section == SectFallback
}

// IsFileGeneric reports whether the section is the fallback.
func (fs FileSection) IsFileGeneric() bool {
	return fs.Section == SectFallback
}

// FileGeneric returns the (file, common) key of the same file.
func (fs FileSection) FileGeneric() FileSection {
	return FileSection{File: fs.File, Section: SectFallback}
}

// Rank orders keys from most generic (0) to fully specific (2).
func (fs FileSection) Rank() int {
	switch {
	case fs.IsGeneric():
		return 0
	case fs.IsFileGeneric():
		return 1
	default:
		return 2
	}
}

// Less sorts keys generic first, then by file and section name.
func (fs FileSection) Less(other FileSection) bool {
	if fs.Rank() != other.Rank() {
		return fs.Rank() < other.Rank()
	}
	if fs.File != other.File {
		return fs.File < other.File
	}
	return fs.Section < other.Section
}

func (fs FileSection) String() string {
	return fmt.Sprintf("(%s, %s)", fs.File, fs.Section)
}
