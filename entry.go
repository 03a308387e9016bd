package gettext

import (
	"iter"
	"slices"
)

// Entry is a single message of a catalog: its source identifier and the
// translation attached to it.
type Entry struct {
	ID    string
	Value Value
}

// Value is the translation of an Entry. It is either an Invariant or a
// Plural.
type Value interface {
	isValue()
}

// Invariant is the translation of a message without plural forms.
type Invariant string

// Plural is the translation of a message with plural forms. Variants[i]
// holds the translation for plural category i.
type Plural struct {
	PluralID string
	Variants []string
}

func (Invariant) isValue() {}
func (Plural) isValue()    {}

// Catalog is the ordered set of entries read from a catalog file, along
// with its header.
type Catalog struct {
	header  Header
	plurals PluralForms
	entries []Entry
	index   map[string]int
}

func newCatalog(header Header, entries []Entry) *Catalog {
	index := make(map[string]int, len(entries))
	for i, entry := range entries {
		index[entry.ID] = i
	}
	forms, err := header.PluralForms()
	if err != nil {
		forms = germanicPluralForms
	}
	return &Catalog{
		header:  header,
		plurals: forms,
		entries: entries,
		index:   index,
	}
}

// Header returns the catalog header, which is empty if the file had none.
func (c *Catalog) Header() Header {
	return c.header
}

// Len returns the number of entries in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// All iterates over the entries in file order.
func (c *Catalog) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, entry := range c.entries {
			if !yield(entry) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in file order.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	for i, entry := range c.entries {
		entries[i] = entry
		if plural, ok := entry.Value.(Plural); ok {
			plural.Variants = slices.Clone(plural.Variants)
			entries[i].Value = plural
		}
	}
	return entries
}

// Lookup finds the entry with the given (already normalised) id. If the
// id occurs more than once, the last occurrence is returned.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}
