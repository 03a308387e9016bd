package gettext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext/plurals"
	"golang.org/x/text/language"
)

// Header holds the metadata fields of a catalog, as stored in the msgstr
// of the entry with an empty msgid.
type Header struct {
	fields map[string]string
}

// parseHeader reads the "Key: value" lines of a header body. The body is
// the raw quoted text, so lines are separated by literal \n sequences.
func parseHeader(body string) Header {
	h := Header{fields: make(map[string]string)}
	lastk := ""
	for _, line := range strings.Split(body, `\n`) {
		item := strings.TrimSpace(line)
		if len(item) == 0 {
			continue
		}
		if k, v, ok := strings.Cut(item, ":"); ok {
			k = strings.ToLower(strings.TrimSpace(k))
			h.fields[k] = strings.TrimSpace(v)
			lastk = k
		} else if len(lastk) != 0 {
			h.fields[lastk] += "\n" + item
		}
	}
	return h
}

// Get returns the value of a header field. Keys are case-insensitive.
func (h Header) Get(key string) string {
	return h.fields[strings.ToLower(key)]
}

// Charset returns the charset named in Content-Type, if any.
func (h Header) Charset() string {
	_, charset, ok := strings.Cut(h.Get("Content-Type"), "charset=")
	if !ok {
		return ""
	}
	return strings.TrimSpace(charset)
}

// Language parses the Language field as a BCP 47 tag. Catalogs usually
// write it POSIX style ("pt_BR"), which is accepted too.
func (h Header) Language() (language.Tag, error) {
	lang := h.Get("Language")
	if lang == "" {
		return language.Und, fmt.Errorf("catalog header has no language")
	}
	return language.Parse(strings.ReplaceAll(lang, "_", "-"))
}

// PluralForms describes how a catalog maps a count to a plural variant.
type PluralForms struct {
	NPlurals int
	Expr     plurals.Expression
}

// Index returns the variant index to use for count n.
func (p PluralForms) Index(n uint32) int {
	if p.Expr == nil {
		// Germanic plural rule
		if n == 1 {
			return 0
		}
		return 1
	}
	return p.Expr.Eval(n)
}

var germanicPluralForms = PluralForms{NPlurals: 2}

// PluralForms compiles the Plural-Forms field. A catalog without the field
// uses the Germanic rule with two forms.
func (h Header) PluralForms() (PluralForms, error) {
	v := h.Get("Plural-Forms")
	if v == "" {
		return germanicPluralForms, nil
	}

	var forms PluralForms
	for _, part := range strings.Split(v, ";") {
		k, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "nplurals":
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil || n < 1 {
				return PluralForms{}, fmt.Errorf("invalid nplurals %q", val)
			}
			forms.NPlurals = n
		case "plural":
			expr, err := plurals.Compile(strings.TrimSpace(val))
			if err != nil {
				return PluralForms{}, fmt.Errorf("invalid plural expression %q: %w", val, err)
			}
			forms.Expr = expr
		}
	}
	if forms.NPlurals == 0 {
		return PluralForms{}, fmt.Errorf("plural forms %q lack nplurals", v)
	}
	return forms, nil
}
