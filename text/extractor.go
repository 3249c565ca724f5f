package text

import (
	"io"
	"strings"

	"github.com/tsawler/rtf/parser"
)

// Paragraph is one paragraph of body text.
type Paragraph struct {
	Text      string
	Style     parser.Style
	Direction Direction
}

// skippedDestinations hold data rather than readable text.
var skippedDestinations = map[string]bool{
	"pict":       true,
	"object":     true,
	"fldinst":    true,
	"nonshppict": true,
}

// replacements maps control words and symbols to the text they stand for.
var replacements = map[string]string{
	"tab":       "\t",
	"cell":      "\t",
	"line":      "\n",
	"emdash":    "\u2014",
	"endash":    "\u2013",
	"emspace":   "\u2003",
	"enspace":   "\u2002",
	"bullet":    "\u2022",
	"lquote":    "\u2018",
	"rquote":    "\u2019",
	"ldblquote": "\u201c",
	"rdblquote": "\u201d",
	"~":         "\u00a0",
	"_":         "\u2011",
}

// paragraphBreaks end the current paragraph.
var paragraphBreaks = map[string]bool{
	"par":  true,
	"sect": true,
	"page": true,
	"row":  true,
}

// Extractor collects the readable text of a document. It implements
// parser.Delegate; use it for a single parse.
type Extractor struct {
	parser.NopDelegate

	out        strings.Builder
	para       strings.Builder
	paraStyle  parser.Style
	paraDir    Direction
	explicit   bool
	paragraphs []Paragraph

	styles   []string
	info     map[string]string
	payloads int

	depth int
	head  bool
	// skipDepth is the depth of the group being skipped, 0 if none.
	skipDepth int

	infoKey   string
	infoDepth int
	infoText  strings.Builder
}

var _ parser.Delegate = (*Extractor)(nil)

// NewExtractor creates an empty extractor.
func NewExtractor() *Extractor {
	return &Extractor{info: make(map[string]string)}
}

// Text returns the document body. Paragraphs end with a newline; the text
// after the last paragraph mark is included as is.
func (e *Extractor) Text() string {
	return e.out.String()
}

// Paragraphs returns the body split at paragraph marks. Empty paragraphs
// are kept so that blank lines survive.
func (e *Extractor) Paragraphs() []Paragraph {
	return e.paragraphs
}

// Info returns the \info fields that carried text.
func (e *Extractor) Info() map[string]string {
	return e.info
}

// Styles returns the style names declared by the document.
func (e *Extractor) Styles() []string {
	return e.styles
}

// BinaryPayloads returns the number of \bin payloads that were discarded.
func (e *Extractor) BinaryPayloads() int {
	return e.payloads
}

// EndDocument flushes the last paragraph.
func (e *Extractor) EndDocument() error {
	if e.para.Len() > 0 {
		e.endParagraph()
	}
	return nil
}

// OpenGroup tracks the group depth.
func (e *Extractor) OpenGroup(depth int) error {
	e.depth = depth
	e.head = true
	return nil
}

// CloseGroup ends skipped groups and \info fields.
func (e *Extractor) CloseGroup(depth int) error {
	if e.skipDepth == depth {
		e.skipDepth = 0
	}
	if e.infoKey != "" && e.infoDepth == depth {
		if value := strings.TrimSpace(e.infoText.String()); value != "" {
			e.info[e.infoKey] = value
		}
		e.infoKey = ""
		e.infoText.Reset()
	}
	e.depth = depth - 1
	e.head = false
	return nil
}

// ControlWord handles breaks, special characters and skipped destinations.
func (e *Extractor) ControlWord(name string, value int, ctx parser.Context) error {
	if e.skipping() {
		return nil
	}
	atHead := e.head
	e.head = false

	if atHead && skippedDestinations[name] {
		e.skipDepth = e.depth
		return nil
	}

	switch ctx {
	case parser.Info:
		if atHead && e.infoKey == "" {
			e.infoKey = name
			e.infoDepth = e.depth
		}
		return nil
	case parser.Document, parser.PlainTextInNotes:
	default:
		return nil
	}

	switch {
	case paragraphBreaks[name]:
		e.out.WriteByte('\n')
		e.endParagraph()
	case name == "rtlpar":
		e.paraDir, e.explicit = RTL, true
	case name == "ltrpar":
		e.paraDir, e.explicit = LTR, true
	case name == "pard":
		e.explicit = false
	default:
		if s, ok := replacements[name]; ok {
			e.write(s, parser.NoStyle)
		}
	}
	return nil
}

// ControlSymbol handles special characters and ignorable destinations.
func (e *Extractor) ControlSymbol(symbol string, ctx parser.Context) error {
	if e.skipping() {
		return nil
	}
	if symbol == "*" && e.head {
		// \info fields such as \*\company keep their key word.
		if ctx != parser.Info {
			e.skipDepth = e.depth
		}
		return nil
	}
	e.head = false

	if ctx != parser.Document && ctx != parser.PlainTextInNotes {
		return nil
	}
	if s, ok := replacements[symbol]; ok {
		e.write(s, parser.NoStyle)
	}
	return nil
}

// Text collects body text and \info field values.
func (e *Extractor) Text(text string, style parser.Style, ctx parser.Context) error {
	if e.skipping() {
		return nil
	}
	e.head = false

	switch ctx {
	case parser.Document, parser.PlainTextInNotes:
		e.write(text, style)
	case parser.Info:
		if e.infoKey != "" {
			e.infoText.WriteString(text)
		}
	}
	return nil
}

// StyleList records the style names.
func (e *Extractor) StyleList(styles []string) error {
	e.styles = styles
	return nil
}

// NextOutputStream discards binary payloads.
func (e *Extractor) NextOutputStream(ctx parser.Context) (io.WriteCloser, error) {
	e.payloads++
	e.head = false
	return e.NopDelegate.NextOutputStream(ctx)
}

func (e *Extractor) skipping() bool {
	return e.skipDepth > 0 && e.depth >= e.skipDepth
}

func (e *Extractor) write(s string, style parser.Style) {
	e.out.WriteString(s)
	e.para.WriteString(s)
	if e.paraStyle == parser.NoStyle {
		e.paraStyle = style
	}
}

func (e *Extractor) endParagraph() {
	text := e.para.String()
	dir := e.paraDir
	if !e.explicit {
		dir = DetectDirection(text)
	}
	e.paragraphs = append(e.paragraphs, Paragraph{Text: text, Style: e.paraStyle, Direction: dir})

	e.para.Reset()
	e.paraStyle = parser.NoStyle
}
