package gettext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrMissingMsgid           = errors.New("missing msgid")
	ErrMissingPluralID        = errors.New("plural msgstr without msgid_plural")
	ErrUnexpectedMsgstr       = errors.New("unexpected msgstr or msgid_plural in plural message")
	ErrMalformedVariant       = errors.New("malformed plural msgstr")
	ErrInvalidVariantIndex    = errors.New("invalid variant index")
	ErrDuplicateVariantIndex  = errors.New("duplicate variant index")
	ErrUnexpectedVariantIndex = errors.New("unexpected variant index")
)

// ParseError reports a malformed record. Err is one of the Err* values of
// this package.
type ParseError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("%s:%d: %v: %s", e.File, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// parserState is one of idleState, haveID, havePluralID or headerBody.
type parserState interface {
	isParserState()
}

// idleState has no pending record.
type idleState struct{}

// haveID has read a msgid line.
type haveID struct {
	id string
}

// havePluralID has read msgid and msgid_plural lines, and collects the
// plural msgstr lines that follow.
type havePluralID struct {
	id       string
	pluralID string
	variants map[int]string
	// line of each variant, for error reporting
	lines map[int]int
}

// headerBody collects continuation lines of the header msgstr.
type headerBody struct{}

func (idleState) isParserState()     {}
func (haveID) isParserState()        {}
func (*havePluralID) isParserState() {}
func (headerBody) isParserState()    {}

type parser struct {
	normalizer *Normalizer

	state   parserState
	lineNo  int
	header  []string
	entries []Entry
}

// Parse reads the catalog at path. The whole file is read before Parse
// returns; any malformed record aborts the parse with a *ParseError.
func Parse(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	catalog, err := ParseReader(f)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.File = path
	}
	return catalog, err
}

// ParseReader reads a catalog from r.
func ParseReader(r io.Reader) (*Catalog, error) {
	p := &parser{
		normalizer: defaultNormalizer,
		state:      idleState{},
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.lineNo++
		if err := p.feed(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return newCatalog(parseHeader(strings.Join(p.header, "")), p.entries), nil
}

func (p *parser) errorf(line int, text string, err error) error {
	return &ParseError{Line: line, Text: text, Err: err}
}

func (p *parser) feed(line string) error {
	switch state := p.state.(type) {
	case headerBody:
		if text, ok := quotedText(line, `"`); ok {
			p.header = append(p.header, text)
			return nil
		}
		p.state = idleState{}
		return p.feed(line)

	case *havePluralID:
		if text, ok := quotedText(line, `msgstr[`); ok {
			return p.addVariant(state, line, text)
		}
		if _, ok := quotedText(line, `msgstr "`); ok {
			return p.errorf(p.lineNo, line, ErrUnexpectedMsgstr)
		}
		if _, ok := quotedText(line, `msgid_plural "`); ok {
			return p.errorf(p.lineNo, line, ErrUnexpectedMsgstr)
		}
		if err := p.finishPlural(state); err != nil {
			return err
		}
		p.state = idleState{}
		// A msgid may start the next record without a separating blank
		// line.
		if _, ok := quotedText(line, `msgid "`); ok {
			return p.feed(line)
		}
		return nil

	case haveID:
		if text, ok := quotedText(line, `msgstr "`); ok {
			p.emitInvariant(state.id, text)
			return nil
		}
		if text, ok := quotedText(line, `msgid_plural "`); ok {
			p.state = &havePluralID{
				id:       state.id,
				pluralID: p.normalizer.Normalize(text),
				variants: make(map[int]string),
				lines:    make(map[int]int),
			}
			return nil
		}
		if _, ok := quotedText(line, `msgstr[`); ok {
			return p.errorf(p.lineNo, line, ErrMissingPluralID)
		}
		if text, ok := quotedText(line, `msgid "`); ok {
			p.state = haveID{id: p.normalizer.Normalize(text)}
		}
		return nil

	default:
		if text, ok := quotedText(line, `msgid "`); ok {
			p.state = haveID{id: p.normalizer.Normalize(text)}
			return nil
		}
		for _, prefix := range []string{`msgstr "`, `msgid_plural "`, `msgstr[`} {
			if _, ok := quotedText(line, prefix); ok {
				return p.errorf(p.lineNo, line, ErrMissingMsgid)
			}
		}
		return nil
	}
}

func (p *parser) emitInvariant(id, text string) {
	if id == "" && p.header == nil && len(p.entries) == 0 {
		// The leading entry with an empty msgid is the catalog header
		p.header = []string{text}
		p.state = headerBody{}
		return
	}
	p.entries = append(p.entries, Entry{
		ID:    id,
		Value: Invariant(p.normalizer.Normalize(text)),
	})
	p.state = idleState{}
}

// addVariant handles the text following "msgstr[", e.g. `1] "cats`.
func (p *parser) addVariant(state *havePluralID, line, text string) error {
	end := strings.IndexByte(text, ']')
	if end < 0 {
		return p.errorf(p.lineNo, line, ErrMalformedVariant)
	}
	index, err := strconv.ParseUint(text[:end], 10, 31)
	if err != nil {
		return p.errorf(p.lineNo, line, ErrInvalidVariantIndex)
	}
	msg, ok := strings.CutPrefix(text[end:], `] "`)
	if !ok {
		return p.errorf(p.lineNo, line, ErrMalformedVariant)
	}
	i := int(index)
	if first, ok := state.lines[i]; ok {
		return p.errorf(p.lineNo, line, fmt.Errorf("%w %d (first seen on line %d)", ErrDuplicateVariantIndex, i, first))
	}
	state.variants[i] = p.normalizer.Normalize(msg)
	state.lines[i] = p.lineNo
	return nil
}

// finishPlural emits the pending plural record. The variant indices must
// be exactly 0..n-1.
func (p *parser) finishPlural(state *havePluralID) error {
	indices := make([]int, 0, len(state.variants))
	for i := range state.variants {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	variants := make([]string, 0, len(indices))
	for expected, i := range indices {
		if i != expected {
			return p.errorf(state.lines[i], fmt.Sprintf("msgstr[%d]", i),
				fmt.Errorf("%w %d for msgid %q (expected %d)", ErrUnexpectedVariantIndex, i, state.id, expected))
		}
		variants = append(variants, state.variants[i])
	}
	p.entries = append(p.entries, Entry{
		ID: state.id,
		Value: Plural{
			PluralID: state.pluralID,
			Variants: variants,
		},
	})
	return nil
}

// finish flushes a plural record left pending at the end of the input.
func (p *parser) finish() error {
	if state, ok := p.state.(*havePluralID); ok {
		if err := p.finishPlural(state); err != nil {
			return err
		}
	}
	p.state = idleState{}
	return nil
}

// quotedText returns the text between prefix and the closing quote of line.
func quotedText(line, prefix string) (string, bool) {
	if len(line) < len(prefix)+1 || !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, `"`) {
		return "", false
	}
	return line[len(prefix) : len(line)-1], true
}
