// Package format identifies RTF documents and the content they encapsulate.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/rtf/core"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// RTF indicates a Rich Text Format document.
	RTF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case RTF:
		return "RTF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case RTF:
		return ".rtf"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".rtf":
		return RTF
	default:
		return Unknown
	}
}

var (
	rtfMagic = []byte(`{\rtf`)
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// MagicSize is the number of leading bytes DetectFromMagic needs to see in
// the worst case.
const MagicSize = 512

// DetectFromMagic checks the leading bytes of a file. A UTF-8 byte order
// mark and leading whitespace are tolerated.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(data, rtfMagic) {
		return RTF
	}
	return Unknown
}

// Encapsulation is the original format of an RTF document produced by
// wrapping another format.
type Encapsulation int

const (
	// EncapsulationNone is a native RTF document.
	EncapsulationNone Encapsulation = iota
	// EncapsulationHTML marks HTML wrapped in RTF (\fromhtml).
	EncapsulationHTML
	// EncapsulationText marks plain text wrapped in RTF (\fromtext).
	EncapsulationText
)

// String returns the string representation of the encapsulation.
func (e Encapsulation) String() string {
	switch e {
	case EncapsulationHTML:
		return "HTML"
	case EncapsulationText:
		return "Text"
	default:
		return "None"
	}
}

// HeaderTokens is how many tokens DetectEncapsulation reads. Writers put
// the encapsulation marker in the document header.
const HeaderTokens = 10

// DetectEncapsulation reports whether r holds an encapsulated document, as
// written by mail clients that wrap HTML or text bodies in RTF.
func DetectEncapsulation(r io.Reader) (Encapsulation, error) {
	lexer := core.NewLexer(r)
	for i := 0; i < HeaderTokens; i++ {
		tok, err := lexer.NextToken()
		if err != nil {
			return EncapsulationNone, err
		}

		switch tok.Type {
		case core.TokenEOF:
			return EncapsulationNone, nil
		case core.TokenBinary:
			// Nothing in a header comes after a payload.
			return EncapsulationNone, nil
		case core.TokenControlWord:
			switch tok.Name {
			case "fromhtml":
				return EncapsulationHTML, nil
			case "fromtext":
				return EncapsulationText, nil
			}
		}
	}
	return EncapsulationNone, nil
}
