package rtf

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/tsawler/rtf/core"
	"github.com/tsawler/rtf/format"
	"github.com/tsawler/rtf/parser"
	"github.com/tsawler/rtf/text"
)

// Extractor provides a fluent interface for reading RTF documents.
// Each configuration method returns a new Extractor instance, making it
// safe to share a configured Extractor and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	reader   io.Reader

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor with a copy of its options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		reader:   e.reader,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// CodePage sets the code page used for 8-bit text until the document
// declares its own with \ansicpg. An unsupported code page makes every
// terminal operation fail.
//
// Example:
//
//	text, _, err := rtf.Open("legacy.rtf").CodePage(1251).Text()
func (e *Extractor) CodePage(cp int) *Extractor {
	newExt := e.clone()
	if _, ok := core.CodePageEncoding(cp); !ok && newExt.err == nil {
		newExt.err = fmt.Errorf("%w: %d", core.ErrUnsupportedCodePage, cp)
	}
	newExt.options.codePage = cp
	return newExt
}

// UnicodeSkip sets the number of fallback characters skipped after each
// \uN escape until the document sets its own with \uc. Values below 1
// mean the default of 1.
func (e *Extractor) UnicodeSkip(n int) *Extractor {
	newExt := e.clone()
	newExt.options.unicodeSkip = n
	return newExt
}

// BufferSize sets the size of the input buffer. It also bounds the memory
// used while relaying \bin payloads.
func (e *Extractor) BufferSize(n int) *Extractor {
	newExt := e.clone()
	newExt.options.bufferSize = n
	return newExt
}

// Logger sets the logger that receives parser diagnostics.
func (e *Extractor) Logger(l commonlog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Parse reports every event of the document to d and returns the parse
// statistics.
//
// Example:
//
//	stats, warnings, err := rtf.Open("document.rtf").Parse(parser.NopDelegate{})
func (e *Extractor) Parse(d parser.Delegate) (parser.Stats, []Warning, error) {
	return e.run(d)
}

// Text returns the readable text of the document: body text with
// paragraph marks as newlines and table cells separated by tabs.
//
// Example:
//
//	text, warnings, err := rtf.Open("document.rtf").Text()
func (e *Extractor) Text() (string, []Warning, error) {
	ex := text.NewExtractor()
	_, warnings, err := e.run(ex)
	if err != nil {
		return "", warnings, err
	}
	return ex.Text(), warnings, nil
}

// Paragraphs returns the body text split into paragraphs with their style
// and writing direction.
func (e *Extractor) Paragraphs() ([]text.Paragraph, []Warning, error) {
	ex := text.NewExtractor()
	_, warnings, err := e.run(ex)
	if err != nil {
		return nil, warnings, err
	}
	return ex.Paragraphs(), warnings, nil
}

// Info returns the document metadata from the \info destination, keyed by
// field name ("title", "author", ...).
//
// Example:
//
//	info, err := rtf.Open("document.rtf").Info()
//	fmt.Println(info["title"])
func (e *Extractor) Info() (map[string]string, error) {
	ex := text.NewExtractor()
	if _, _, err := e.run(ex); err != nil {
		return nil, err
	}
	return ex.Info(), nil
}

// Styles returns the style names declared in the document's style sheet.
func (e *Extractor) Styles() ([]string, error) {
	ex := text.NewExtractor()
	if _, _, err := e.run(ex); err != nil {
		return nil, err
	}
	return ex.Styles(), nil
}

// Stats parses the document without collecting anything and returns its
// statistics.
func (e *Extractor) Stats() (parser.Stats, error) {
	stats, _, err := e.run(parser.NopDelegate{})
	return stats, err
}

// Encapsulation reports whether the document wraps HTML or plain text.
func (e *Extractor) Encapsulation() (format.Encapsulation, error) {
	if e.err != nil {
		return format.EncapsulationNone, e.err
	}
	r, closeFn, err := e.open()
	if err != nil {
		return format.EncapsulationNone, err
	}
	defer closeFn()

	return format.DetectEncapsulation(r)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// run parses the source with d after checking that it is RTF.
func (e *Extractor) run(d parser.Delegate) (parser.Stats, []Warning, error) {
	if e.err != nil {
		return parser.Stats{}, nil, e.err
	}

	r, closeFn, err := e.open()
	if err != nil {
		return parser.Stats{}, nil, err
	}
	defer closeFn()

	br := bufio.NewReaderSize(r, max(format.MagicSize, e.options.bufferSize))
	magic, err := br.Peek(format.MagicSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return parser.Stats{}, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if format.DetectFromMagic(magic) != format.RTF {
		if e.filename != "" {
			return parser.Stats{}, nil, fmt.Errorf("%s: %w", e.filename, ErrNotRTF)
		}
		return parser.Stats{}, nil, ErrNotRTF
	}

	if bytes.HasPrefix(magic, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return parser.Stats{}, nil, err
		}
	}

	collector := newWarningCollector(d)
	p := parser.NewParser(br, collector, e.options.config())
	err = p.Parse()
	return p.Stats(), collector.warnings, err
}

// open returns the source reader and a function releasing it.
func (e *Extractor) open() (io.Reader, func(), error) {
	if e.reader != nil {
		return e.reader, func() {}, nil
	}
	if e.filename == "" {
		return nil, nil, fmt.Errorf("no filename specified")
	}

	f, err := os.Open(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open RTF: %w", err)
	}
	return f, func() { f.Close() }, nil
}
