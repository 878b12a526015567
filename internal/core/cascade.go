package core

import "invconv/internal/types"

// keyed is a per-FileSection table that can grow empty keys.
type keyed interface {
	Has(fs types.FileSection) bool
	Keys() []types.FileSection
	AddEmpty(fs types.FileSection)
}

// inheritable is a keyed table whose items cascade between keys.
type inheritable interface {
	keyed
	InheritFrom(dst types.FileSection, src types.FileSection)
}

// specialize expands generic keys of table into every known FileSection
// they cover. A (common, common) key covers everything, so the per-file
// pass only runs when it is absent. Avoided keys are never added.
func specialize(table keyed, known []types.FileSection, avoid *KeyList) {
	skip := func(fs types.FileSection) bool {
		return table.Has(fs) || (avoid != nil && avoid.Has(fs))
	}
	if table.Has(types.GenericFileSection()) {
		for _, fs := range known {
			if !skip(fs) {
				table.AddEmpty(fs)
			}
		}
		return
	}
	for _, key := range table.Keys() {
		if !key.IsFileGeneric() || key.IsGeneric() {
			continue
		}
		for _, fs := range known {
			if fs.File == key.File && !skip(fs) {
				table.AddEmpty(fs)
			}
		}
	}
}

// inherit fills every key with the items of its (file, common) parent and
// then with the items of (common, common). More specific items win.
func inherit(table inheritable) {
	keys := table.Keys()
	for _, fs := range keys {
		if fs.IsFileGeneric() {
			continue
		}
		if parent := fs.FileGeneric(); table.Has(parent) {
			table.InheritFrom(fs, parent)
		}
	}
	generic := types.GenericFileSection()
	if !table.Has(generic) {
		return
	}
	for _, fs := range keys {
		if fs != generic {
			table.InheritFrom(fs, generic)
		}
	}
}
