package potemplate

import (
	"errors"
	"io"
	"os"
	"text/template"
	"time"

	gettext "github.com/snapcore/po-converter"
)

var ErrExists = errors.New("template already exists")

// Header holds the values filled into a new template header.
type Header struct {
	PackageName      string
	MsgidBugsAddress string
	CreationDate     string
	Language         string
	PluralForms      string
}

// FormatTime formats t the way catalog headers expect.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04-0700")
}

const headerTemplateData = `# SOME DESCRIPTIVE TITLE.
# Copyright (C) YEAR THE PACKAGE'S COPYRIGHT HOLDER
# This file is distributed under the same license as the {{ or .PackageName "PACKAGE" }} package.
# FIRST AUTHOR <EMAIL@ADDRESS>, YEAR.
#
#, fuzzy
msgid ""
msgstr ""
{{ quote (printf "Project-Id-Version: %s\n" (or .PackageName "PACKAGE")) }}
{{ if .MsgidBugsAddress -}}
{{ quote (printf "Report-Msgid-Bugs-To: %s\n" .MsgidBugsAddress) }}
{{ end -}}
{{ quote (printf "POT-Creation-Date: %s\n" .CreationDate) }}
"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language-Team: LANGUAGE <LL@li.org>\n"
{{ quote (printf "Language: %s\n" .Language) }}
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
{{ if .PluralForms -}}
{{ quote (printf "Plural-Forms: %s\n" .PluralForms) }}
{{ end -}}
`

var headerTemplate = template.Must(template.New("pot").Funcs(template.FuncMap{
	"quote": gettext.Quote,
}).Parse(headerTemplateData))

// Write writes a template header to w. Entries can then be added with
// gettext.Write or gettext.Append.
func Write(w io.Writer, h Header) error {
	if h.CreationDate == "" {
		h.CreationDate = FormatTime(time.Now())
	}
	return headerTemplate.Execute(w, h)
}

// Create writes a new template file holding only a header. It fails with
// ErrExists rather than overwrite an existing file.
func Create(path string, h Header) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return ErrExists
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, h)
}
