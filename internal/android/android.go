// Package android reads Android string resources so they can be compared
// with gettext catalogs.
package android

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"iter"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"

	gettext "github.com/snapcore/po-converter"
)

// String is a <string> resource.
type String struct {
	Name  string
	Value string
}

// Plurals is a <plurals> resource. Items maps quantity keywords (zero,
// one, two, few, many, other) to their text.
type Plurals struct {
	Name  string
	Items map[string]string
}

// Resources holds the translatable resources of a strings.xml file, in
// document order. Values are unescaped and normalised.
type Resources struct {
	Strings []String
	Plurals []Plurals
}

type itemXML struct {
	Quantity string `xml:"quantity,attr"`
	Value    string `xml:",innerxml"`
}

type resourcesXML struct {
	XMLName xml.Name `xml:"resources"`
	Strings []struct {
		Name         string `xml:"name,attr"`
		Translatable string `xml:"translatable,attr"`
		Value        string `xml:",innerxml"`
	} `xml:"string"`
	Plurals []struct {
		Name         string    `xml:"name,attr"`
		Translatable string    `xml:"translatable,attr"`
		Items        []itemXML `xml:"item"`
	} `xml:"plurals"`
}

// Parse reads a strings.xml document. Resources marked
// translatable="false" are skipped.
func Parse(r io.Reader) (*Resources, error) {
	var doc resourcesXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode string resources: %w", err)
	}

	res := &Resources{}
	for _, s := range doc.Strings {
		if strings.EqualFold(s.Translatable, "false") {
			continue
		}
		res.Strings = append(res.Strings, String{
			Name:  s.Name,
			Value: Normalize(s.Value),
		})
	}
	for _, p := range doc.Plurals {
		if strings.EqualFold(p.Translatable, "false") {
			continue
		}
		plurals := Plurals{Name: p.Name, Items: make(map[string]string, len(p.Items))}
		for _, item := range p.Items {
			if item.Quantity == "" {
				return nil, fmt.Errorf("plurals %q has an item without quantity", p.Name)
			}
			plurals.Items[item.Quantity] = Normalize(item.Value)
		}
		if _, ok := plurals.Items["other"]; !ok {
			return nil, fmt.Errorf("plurals %q has no \"other\" item", p.Name)
		}
		res.Plurals = append(res.Plurals, plurals)
	}
	return res, nil
}

// ParseFile reads the strings.xml file at path.
func ParseFile(path string) (*Resources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Entries returns the resources as untranslated catalog entries: strings
// become invariant messages keyed by their value, plurals become plural
// messages keyed by their "one" item with nplurals empty variants.
func (r *Resources) Entries(nplurals int) iter.Seq[gettext.Entry] {
	return func(yield func(gettext.Entry) bool) {
		for _, s := range r.Strings {
			if !yield(gettext.Entry{ID: s.Value, Value: gettext.Invariant("")}) {
				return
			}
		}
		for _, p := range r.Plurals {
			other := p.Items["other"]
			one, ok := p.Items["one"]
			if !ok {
				one = other
			}
			entry := gettext.Entry{
				ID: one,
				Value: gettext.Plural{
					PluralID: other,
					Variants: make([]string, nplurals),
				},
			}
			if !yield(entry) {
				return
			}
		}
	}
}

var (
	positionalParameter = regexp.MustCompile(`%[0-9]+\$`)
	androidEscape       = regexp.MustCompile(`\\[\\'"@?nt]`)
)

func unescape(s string) string {
	return androidEscape.ReplaceAllStringFunc(s, func(m string) string {
		switch m[1] {
		case 'n':
			return "\n"
		case 't':
			return "\t"
		}
		return m[1:]
	})
}

// Normalize turns the raw inner XML of a resource into text comparable
// with catalog messages: CDATA sections and entities are decoded, the
// surrounding quotes and escapes Android uses are removed, and positional
// placeholders such as %1$s become %s.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if inner, ok := strings.CutPrefix(s, "<![CDATA["); ok {
		s = strings.TrimSuffix(inner, "]]>")
	} else {
		s = html.UnescapeString(s)
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = unescape(s)
	s = positionalParameter.ReplaceAllLiteralString(s, "%")
	return gettext.Normalize(s)
}

// LocaleFromDir returns the locale of a resource directory name such as
// "values-pt-rBR" or "values-b+sr+Latn".
func LocaleFromDir(dir string) (language.Tag, error) {
	qualifier, ok := strings.CutPrefix(filepath.Base(dir), "values-")
	if !ok || qualifier == "" {
		return language.Und, fmt.Errorf("%q is not a localised values directory", dir)
	}
	if bcp, ok := strings.CutPrefix(qualifier, "b+"); ok {
		return language.Parse(strings.ReplaceAll(bcp, "+", "-"))
	}
	return language.Parse(strings.Replace(qualifier, "-r", "-", 1))
}

// DirForLocale returns the resource directory name for a locale.
func DirForLocale(tag language.Tag) string {
	base, script, region := tag.Raw()
	if script != (language.Script{}) {
		parts := []string{base.String(), script.String()}
		if region != (language.Region{}) {
			parts = append(parts, region.String())
		}
		return "values-b+" + strings.Join(parts, "+")
	}
	if region != (language.Region{}) {
		return fmt.Sprintf("values-%s-r%s", base, region)
	}
	return "values-" + base.String()
}

// Locales lists the locales that have a strings.xml file under resDir.
func Locales(resDir string) ([]language.Tag, error) {
	matches, err := filepath.Glob(filepath.Join(resDir, "values-*", "strings.xml"))
	if err != nil {
		return nil, err
	}
	var tags []language.Tag
	for _, match := range matches {
		tag, err := LocaleFromDir(filepath.Dir(match))
		if err != nil {
			// qualifiers such as values-night or values-v21
			continue
		}
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	return tags, nil
}
