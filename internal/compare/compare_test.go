package compare

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gettext "github.com/snapcore/po-converter"
)

func parse(t *testing.T, content string) *gettext.Catalog {
	t.Helper()
	catalog, err := gettext.ParseReader(strings.NewReader(content))
	require.NoError(t, err)
	return catalog
}

const template = `msgid ""
msgstr ""
"Project-Id-Version: app\n"

msgid "Connect"
msgstr ""

msgid "Say \"hi\""
msgstr ""

msgid "%(n) day"
msgid_plural "%(n) days"
msgstr[0] ""
msgstr[1] ""

msgid "Quit"
msgstr ""
`

func TestMissing(t *testing.T) {
	wanted := []gettext.Entry{
		{ID: "Connect", Value: gettext.Invariant("")},
		{ID: "Disconnect", Value: gettext.Invariant("")},
		{ID: `Say "hi"`, Value: gettext.Invariant("")},
		{ID: "% day", Value: gettext.Plural{PluralID: "% days", Variants: []string{"", ""}}},
		{ID: "% hour", Value: gettext.Plural{PluralID: "% hours", Variants: []string{"", ""}}},
		{ID: "Disconnect", Value: gettext.Invariant("")},
	}

	missing := Missing(parse(t, template).All(), slices.Values(wanted))
	assert.Equal(t, []gettext.Entry{
		{ID: "Disconnect", Value: gettext.Invariant("")},
		{ID: "% hour", Value: gettext.Plural{PluralID: "% hours", Variants: []string{"", ""}}},
	}, missing)
}

func TestMissingNone(t *testing.T) {
	tmpl := parse(t, template)
	assert.Empty(t, Missing(tmpl.All(), slices.Values([]gettext.Entry{{ID: "Quit", Value: gettext.Invariant("")}})))
}

func TestMissingLogs(t *testing.T) {
	var buf bytes.Buffer
	old := Logger
	Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	defer func() { Logger = old }()

	Missing(parse(t, template).All(), slices.Values([]gettext.Entry{{ID: "Help", Value: gettext.Invariant("")}}))
	assert.Contains(t, buf.String(), `"msgid":"Help"`)
	assert.Contains(t, buf.String(), `"plural":false`)
}

const translation = `msgid ""
msgstr ""
"Language: pl\n"
"Plural-Forms: nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);\n"

msgid "Connect"
msgstr "Połącz"

msgid "%(n) day"
msgid_plural "%(n) days"
msgstr[0] "% dzień"
msgstr[1] "% dni"

msgid "Quit"
msgstr " "

msgid "Old"
msgstr "Stary"
`

func TestCompleteness(t *testing.T) {
	report := Completeness(parse(t, template), parse(t, translation))
	assert.Equal(t, Report{
		Total:        4,
		Translated:   1,
		Untranslated: []string{"% day", "Quit"},
		Absent:       []string{`Say \"hi\"`},
		Obsolete:     []string{"Old"},
	}, report)
	assert.InDelta(t, 25.0, report.Percent(), 0.001)
}

func TestCompletenessPluralCount(t *testing.T) {
	tmpl := parse(t, "msgid \"a\"\nmsgid_plural \"as\"\nmsgstr[0] \"\"\nmsgstr[1] \"\"\n")
	tr := parse(t, "msgid \"a\"\nmsgid_plural \"as\"\nmsgstr[0] \"x\"\nmsgstr[1] \"y\"\n")
	report := Completeness(tmpl, tr)
	assert.Equal(t, 1, report.Translated)
	assert.Equal(t, 100.0, report.Percent())
}

func TestPercentEmpty(t *testing.T) {
	assert.Equal(t, 100.0, Report{}.Percent())
}
