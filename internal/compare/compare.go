// Package compare works out which messages a catalog lacks, and how much
// of a template a translation covers.
package compare

import (
	"iter"
	"strings"

	"github.com/rs/zerolog"

	gettext "github.com/snapcore/po-converter"
)

// Logger is the logger used by package compare.
var Logger = zerolog.Nop()

// catalogKey returns the form an id takes once written to and read back
// from a catalog. Parsed catalogs keep the escaped text of their strings,
// while entries from other sources hold plain text.
func catalogKey(id string) string {
	quoted := gettext.Quote(id)
	return quoted[1 : len(quoted)-1]
}

// Missing returns the entries of wanted whose id does not appear in
// template, in the order of wanted. Each id is returned once.
//
// Template entries are expected to come from a parsed catalog, and wanted
// entries to hold unescaped text, as the entries passed to gettext.Append
// do.
func Missing(template iter.Seq[gettext.Entry], wanted iter.Seq[gettext.Entry]) []gettext.Entry {
	known := make(map[string]struct{})
	for entry := range template {
		known[entry.ID] = struct{}{}
	}

	var missing []gettext.Entry
	for entry := range wanted {
		key := catalogKey(entry.ID)
		if _, ok := known[key]; ok {
			continue
		}
		known[key] = struct{}{}
		missing = append(missing, entry)

		Logger.Debug().
			Str("msgid", entry.ID).
			Bool("plural", isPlural(entry)).
			Msg("Missing from template")
	}
	return missing
}

func isPlural(entry gettext.Entry) bool {
	_, ok := entry.Value.(gettext.Plural)
	return ok
}

// Report describes how much of a template a translation covers.
type Report struct {
	Total      int
	Translated int
	// Untranslated lists the ids present in the translation without a
	// complete translation.
	Untranslated []string
	// Absent lists the ids of the template missing from the translation.
	Absent []string
	// Obsolete lists the ids of the translation no longer in the template.
	Obsolete []string
}

// Percent returns the share of translated template messages.
func (r Report) Percent() float64 {
	if r.Total == 0 {
		return 100
	}
	return float64(r.Translated) * 100 / float64(r.Total)
}

// Completeness compares a translation against its template. A plural
// message counts as translated when it has one non-empty variant per
// plural form of the translation.
func Completeness(template, translation *gettext.Catalog) Report {
	nplurals := 2
	if forms, err := translation.Header().PluralForms(); err == nil {
		nplurals = forms.NPlurals
	} else {
		Logger.Warn().Err(err).Msg("Invalid plural forms, assuming two")
	}

	var report Report
	inTemplate := make(map[string]struct{}, template.Len())
	for entry := range template.All() {
		if _, dup := inTemplate[entry.ID]; dup {
			continue
		}
		inTemplate[entry.ID] = struct{}{}
		report.Total++

		translated, ok := translation.Lookup(entry.ID)
		switch {
		case !ok:
			report.Absent = append(report.Absent, entry.ID)
		case isTranslated(translated, nplurals):
			report.Translated++
		default:
			report.Untranslated = append(report.Untranslated, entry.ID)
		}
	}

	seen := make(map[string]struct{})
	for entry := range translation.All() {
		if _, ok := inTemplate[entry.ID]; ok {
			continue
		}
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}
		report.Obsolete = append(report.Obsolete, entry.ID)
	}
	return report
}

func isTranslated(entry gettext.Entry, nplurals int) bool {
	switch value := entry.Value.(type) {
	case gettext.Invariant:
		return strings.TrimSpace(string(value)) != ""
	case gettext.Plural:
		if len(value.Variants) != nplurals {
			return false
		}
		for _, variant := range value.Variants {
			if strings.TrimSpace(variant) == "" {
				return false
			}
		}
		return true
	}
	return false
}
