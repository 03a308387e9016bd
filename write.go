package gettext

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// Quote returns s as a single-line catalog string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Write serialises entries in catalog syntax, each preceded by a blank
// line. Entries are checked before anything is written, so w is left
// untouched when one of them has no Invariant or Plural value.
func Write(w io.Writer, entries iter.Seq[Entry]) error {
	var all []Entry
	for entry := range entries {
		switch entry.Value.(type) {
		case Invariant, Plural:
		default:
			return fmt.Errorf("msgid %q has no value", entry.ID)
		}
		all = append(all, entry)
	}

	bw := bufio.NewWriter(w)
	for _, entry := range all {
		fmt.Fprintf(bw, "\nmsgid %s\n", Quote(entry.ID))
		switch value := entry.Value.(type) {
		case Invariant:
			fmt.Fprintf(bw, "msgstr %s\n", Quote(string(value)))
		case Plural:
			fmt.Fprintf(bw, "msgid_plural %s\n", Quote(value.PluralID))
			for i, variant := range value.Variants {
				fmt.Fprintf(bw, "msgstr[%d] %s\n", i, Quote(variant))
			}
		}
	}
	return bw.Flush()
}

// Append adds entries to the end of the existing catalog at path. The file
// is neither created nor truncated, and its current content is not
// checked for the ids being added.
func Append(path string, entries iter.Seq[Entry]) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, entries)
}
