package gettext

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/leonelquinteros/gotext"
	. "gopkg.in/check.v1"
)

var _ = Suite(writeSuite{})

type writeSuite struct{}

const testHeader = `# Test catalog
msgid ""
msgstr ""
"Project-Id-Version: test\n"
"Language: fr\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n > 1);\n"
`

func (writeSuite) TestQuote(c *C) {
	for _, test := range []struct {
		raw, expected string
	}{
		{"", `""`},
		{"hello", `"hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
		{"tab\there\r", `"tab\there\r"`},
		{"bell\x07", `"bell\a"`},
		{"esc\x1b", `"esc\033"`},
		{"Olá ’", `"Olá ’"`},
	} {
		c.Check(Quote(test.raw), Equals, test.expected, Commentf("raw: %q", test.raw))
	}
}

func (writeSuite) TestWrite(c *C) {
	var buf bytes.Buffer
	err := Write(&buf, slices.Values([]Entry{
		{ID: "hello", Value: Invariant("hi")},
		{ID: "cat", Value: Plural{PluralID: "cats", Variants: []string{"chat", "chats"}}},
	}))
	c.Assert(err, IsNil)
	c.Check(buf.String(), Equals, `
msgid "hello"
msgstr "hi"

msgid "cat"
msgid_plural "cats"
msgstr[0] "chat"
msgstr[1] "chats"
`)
}

func (writeSuite) TestWriteRejectsMissingValue(c *C) {
	var buf bytes.Buffer
	err := Write(&buf, slices.Values([]Entry{{ID: "hello"}}))
	c.Check(err, ErrorMatches, `msgid "hello" has no value`)
}

func (writeSuite) TestWriteRejectsPointerValueBeforeWriting(c *C) {
	var buf bytes.Buffer
	err := Write(&buf, slices.Values([]Entry{
		{ID: "hello", Value: Invariant("hi")},
		{ID: "cat", Value: &Plural{PluralID: "cats", Variants: []string{"chat", "chats"}}},
	}))
	c.Check(err, ErrorMatches, `msgid "cat" has no value`)
	c.Check(buf.String(), Equals, "")
}

func (writeSuite) TestAppendInvalidLeavesFileUnchanged(c *C) {
	path := filepath.Join(c.MkDir(), "messages.pot")
	c.Assert(os.WriteFile(path, []byte(testHeader), 0644), IsNil)

	invariant := Invariant("")
	err := Append(path, slices.Values([]Entry{
		{ID: "Connect", Value: Invariant("")},
		{ID: "Quit", Value: &invariant},
	}))
	c.Check(err, ErrorMatches, `msgid "Quit" has no value`)

	data, err := os.ReadFile(path)
	c.Assert(err, IsNil)
	c.Check(string(data), Equals, testHeader)
}

func (writeSuite) TestAppendRoundTrip(c *C) {
	path := filepath.Join(c.MkDir(), "messages.pot")
	c.Assert(os.WriteFile(path, []byte(testHeader), 0644), IsNil)

	entries := []Entry{
		{ID: "hello", Value: Invariant("salut")},
		{ID: "cat", Value: Plural{PluralID: "cats", Variants: []string{"chat", "chats"}}},
		{ID: "% files", Value: Plural{PluralID: "% files", Variants: []string{"", "", ""}}},
		{ID: "empty", Value: Invariant("")},
		{ID: "don't", Value: Invariant("ne pas")},
	}
	c.Assert(Append(path, slices.Values(entries[:2])), IsNil)
	c.Assert(Append(path, slices.Values(entries[2:])), IsNil)

	catalog, err := Parse(path)
	c.Assert(err, IsNil)
	c.Check(catalog.Entries(), DeepEquals, entries)
	c.Check(catalog.Header().Get("Project-Id-Version"), Equals, "test")
}

func (writeSuite) TestAppendReadableByGotext(c *C) {
	path := filepath.Join(c.MkDir(), "fr.po")
	c.Assert(os.WriteFile(path, []byte(testHeader), 0644), IsNil)

	err := Append(path, slices.Values([]Entry{
		{ID: "hello", Value: Invariant("salut")},
		{ID: "cat", Value: Plural{PluralID: "cats", Variants: []string{"chat", "chats"}}},
	}))
	c.Assert(err, IsNil)

	po := gotext.NewPo()
	po.ParseFile(path)
	c.Check(po.Get("hello"), Equals, "salut")
	c.Check(po.GetN("cat", "cats", 1), Equals, "chat")
	c.Check(po.GetN("cat", "cats", 5), Equals, "chats")
}

func (writeSuite) TestAppendKeepsExistingContent(c *C) {
	path := filepath.Join(c.MkDir(), "messages.pot")
	c.Assert(os.WriteFile(path, []byte("msgid \"a\"\nmsgstr \"b\"\n"), 0644), IsNil)

	c.Assert(Append(path, slices.Values([]Entry{{ID: "c", Value: Invariant("d")}})), IsNil)

	content, err := os.ReadFile(path)
	c.Assert(err, IsNil)
	c.Check(string(content), Equals, "msgid \"a\"\nmsgstr \"b\"\n\nmsgid \"c\"\nmsgstr \"d\"\n")
}

func (writeSuite) TestAppendDoesNotCreate(c *C) {
	path := filepath.Join(c.MkDir(), "missing.pot")
	err := Append(path, slices.Values([]Entry{{ID: "a", Value: Invariant("b")}}))
	c.Check(errors.Is(err, os.ErrNotExist), Equals, true)
	_, err = os.Stat(path)
	c.Check(os.IsNotExist(err), Equals, true)
}
