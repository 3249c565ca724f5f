// Package rtf provides a fluent API for reading Rich Text Format documents.
//
// Basic usage:
//
//	text, warnings, err := rtf.Open("document.rtf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rtf.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := rtf.Open("legacy.rtf").
//	    CodePage(1251).
//	    UnicodeSkip(2).
//	    Text()
//
// Event-level access goes through Parse with any parser.Delegate:
//
//	stats, _, err := rtf.Open("document.rtf").Parse(myDelegate)
//
// For lower-level control, the parser and core packages are also available.
package rtf

import (
	"errors"
	"io"
)

// ErrNotRTF is returned when the input does not start with an RTF header.
var ErrNotRTF = errors.New("rtf: input is not an RTF document")

// Open returns an Extractor for the RTF file at filename. The file is opened
// by each terminal operation and closed before it returns.
//
// Example:
//
//	text, warnings, err := rtf.Open("document.rtf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns an Extractor reading from r. The reader is consumed by
// the first terminal operation; the caller is responsible for closing it.
//
// Example:
//
//	f, err := os.Open("document.rtf")
//	if err != nil {
//	    // handle error
//	}
//	defer f.Close()
//	text, warnings, err := rtf.FromReader(f).Text()
func FromReader(r io.Reader) *Extractor {
	return &Extractor{
		reader:  r,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	info := rtf.Must(rtf.Open("document.rtf").Info())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to Text() or Paragraphs() and
// panics if the error is non-nil. It discards warnings and returns just the
// value.
//
// Example:
//
//	text := rtf.MustText(rtf.Open("document.rtf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
