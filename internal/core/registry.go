package core

import (
	"sort"

	"invconv/internal/types"
)

// Registry maps each FileSection to a set of named items. It backs the
// mapping, template, optional and deletion tables.
type Registry[T any] struct {
	entries map[types.FileSection]map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: map[types.FileSection]map[string]T{}}
}

func (r *Registry[T]) Has(fs types.FileSection) bool {
	_, ok := r.entries[fs]
	return ok
}

// Keys returns every FileSection, generic keys first.
func (r *Registry[T]) Keys() []types.FileSection {
	keys := make([]types.FileSection, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sortFileSections(keys)
	return keys
}

// AddEmpty creates fs with no items if it is absent.
func (r *Registry[T]) AddEmpty(fs types.FileSection) {
	if _, ok := r.entries[fs]; !ok {
		r.entries[fs] = map[string]T{}
	}
}

func (r *Registry[T]) Get(fs types.FileSection, name string) (T, bool) {
	value, ok := r.entries[fs][name]
	return value, ok
}

func (r *Registry[T]) Set(fs types.FileSection, name string, value T) {
	r.AddEmpty(fs)
	r.entries[fs][name] = value
}

func (r *Registry[T]) Delete(fs types.FileSection, name string) {
	delete(r.entries[fs], name)
}

// Remove drops fs with all of its items.
func (r *Registry[T]) Remove(fs types.FileSection) {
	delete(r.entries, fs)
}

func (r *Registry[T]) Len(fs types.FileSection) int {
	return len(r.entries[fs])
}

// Names returns the item names of fs in sorted order.
func (r *Registry[T]) Names(fs types.FileSection) []string {
	names := make([]string, 0, len(r.entries[fs]))
	for name := range r.entries[fs] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InheritFrom copies every item of src that dst lacks. Existing items are
// never overwritten.
func (r *Registry[T]) InheritFrom(dst types.FileSection, src types.FileSection) {
	from, ok := r.entries[src]
	if !ok || dst == src {
		return
	}
	r.AddEmpty(dst)
	for name, value := range from {
		if _, exists := r.entries[dst][name]; !exists {
			r.entries[dst][name] = value
		}
	}
}

// KeyList is an ordered set of FileSections. It backs the avoid list.
type KeyList struct {
	keys []types.FileSection
}

func NewKeyList() *KeyList {
	return &KeyList{}
}

func (l *KeyList) Has(fs types.FileSection) bool {
	for _, key := range l.keys {
		if key == fs {
			return true
		}
	}
	return false
}

// Keys returns the entries in insertion order.
func (l *KeyList) Keys() []types.FileSection {
	return append([]types.FileSection(nil), l.keys...)
}

// AddEmpty appends fs unless it is already listed.
func (l *KeyList) AddEmpty(fs types.FileSection) {
	if !l.Has(fs) {
		l.keys = append(l.keys, fs)
	}
}

func (l *KeyList) Len() int {
	return len(l.keys)
}

func sortFileSections(keys []types.FileSection) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
}
