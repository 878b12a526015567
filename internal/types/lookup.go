package types

// LookupEntry is one named row of a lookup table. Shorthand is the
// abbreviation matched against free text (e.g. "KG" for "Kilogram").
type LookupEntry struct {
	Name      string `yaml:"name"`
	ID        string `yaml:"id"`
	Shorthand string `yaml:"shorthand,omitempty"`
}

type LookupTable struct {
	Fallback string        `yaml:"fallback"`
	Entries  []LookupEntry `yaml:"entries"`
}

// Find returns the entry with the given name.
func (t LookupTable) Find(name string) (LookupEntry, bool) {
	for _, entry := range t.Entries {
		if entry.Name == name {
			return entry, true
		}
	}
	return LookupEntry{}, false
}

// FindByID returns the first entry carrying the given id.
func (t LookupTable) FindByID(id string) (LookupEntry, bool) {
	for _, entry := range t.Entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return LookupEntry{}, false
}

// FallbackEntry returns the entry named by Fallback.
func (t LookupTable) FallbackEntry() LookupEntry {
	entry, _ := t.Find(t.Fallback)
	return entry
}

// LookupTables is the per-deployment data file: the ordered output
// columns of the import type plus the unit/category/family/type tables.
type LookupTables struct {
	FormatVersion int                    `yaml:"format_version"`
	Type          string                 `yaml:"type"`
	Columns       []string               `yaml:"columns"`
	Tables        map[string]LookupTable `yaml:"tables"`
}

// Table returns the named table or an empty one.
func (l LookupTables) Table(name string) LookupTable {
	return l.Tables[name]
}

// FallbackOverrides replaces table fallbacks chosen on the command line.
type FallbackOverrides struct {
	Category string
	Family   string
	Type     string
	Unit     string
}
