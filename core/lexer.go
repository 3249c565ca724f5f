package core

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

const (
	// MaxNameLength is the longest control word name the lexer accepts.
	MaxNameLength = 32

	// DefaultUnicodeSkip is the number of fallback characters that follow a
	// \uN escape when no \ucN is in effect.
	DefaultUnicodeSkip = 1

	// DefaultBufferSize is the read buffer used by NewLexer. It also bounds
	// the memory used while relaying binary payloads.
	DefaultBufferSize = 4096

	maxParamDigits = 10
)

// Lexer performs lexical analysis of RTF content
type Lexer struct {
	reader *bufio.Reader
	pos    int64

	// pending holds a control token read while a text run was open; the
	// run is returned first and the token on the following call.
	pending *Token

	unicodeSkip int
	codePage    int
	decoder     *encoding.Decoder

	text textRun
}

// textRun accumulates one TokenText. Code page bytes are buffered in raw so
// that double-byte sequences decode together.
type textRun struct {
	active bool
	start  int64
	raw    []byte
	out    strings.Builder
	high   rune // pending UTF-16 high surrogate
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return NewLexerSize(r, DefaultBufferSize)
}

// NewLexerSize creates a lexer whose read buffer holds size bytes.
func NewLexerSize(r io.Reader, size int) *Lexer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	enc, _ := CodePageEncoding(DefaultCodePage)
	return &Lexer{
		reader:      bufio.NewReaderSize(r, size),
		unicodeSkip: DefaultUnicodeSkip,
		codePage:    DefaultCodePage,
		decoder:     enc.NewDecoder(),
	}
}

// Pos returns the offset of the next unread byte.
func (l *Lexer) Pos() int64 {
	return l.pos
}

// SetUnicodeSkip sets the number of fallback characters skipped after each
// \uN escape (the \ucN value).
func (l *Lexer) SetUnicodeSkip(n int) {
	if n < 0 {
		n = 0
	}
	l.unicodeSkip = n
}

// UnicodeSkip returns the current fallback count.
func (l *Lexer) UnicodeSkip() int {
	return l.unicodeSkip
}

// SetCodePage selects the code page used to decode 8-bit text. Unsupported
// code pages leave the current one active and return ErrUnsupportedCodePage.
func (l *Lexer) SetCodePage(cp int) error {
	enc, ok := CodePageEncoding(cp)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedCodePage, cp)
	}
	l.flushRaw()
	l.codePage = cp
	l.decoder = enc.NewDecoder()
	return nil
}

// CodePage returns the active code page.
func (l *Lexer) CodePage() int {
	return l.codePage
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() (*Token, error) {
	if l.pending != nil {
		tok := l.pending
		l.pending = nil
		return tok, nil
	}

	for {
		b, err := l.peek()
		if err == io.EOF {
			if tok := l.takeText(); tok != nil {
				return tok, nil
			}
			return &Token{Type: TokenEOF, Pos: l.pos}, nil
		}
		if err != nil {
			return nil, l.readError(err)
		}

		switch b {
		case '\r', '\n':
			// Line breaks are not content, not even inside a text run
			l.readByte()

		case '{', '}':
			if tok := l.takeText(); tok != nil {
				return tok, nil
			}
			l.readByte()
			if b == '{' {
				return &Token{Type: TokenGroupStart, Pos: l.pos - 1}, nil
			}
			return &Token{Type: TokenGroupEnd, Pos: l.pos - 1}, nil

		case '\\':
			tok, err := l.readEscape()
			if err != nil {
				return nil, err
			}
			if tok == nil {
				// The escape contributed to the current text run
				continue
			}
			if text := l.takeText(); text != nil {
				l.pending = tok
				return text, nil
			}
			return tok, nil

		default:
			l.text.begin(l.pos)
			l.readByte()
			l.appendByte(b)
		}
	}
}

// readByte reads a single byte and advances position
func (l *Lexer) readByte() (byte, error) {
	b, err := l.reader.ReadByte()
	if err != nil {
		return 0, err
	}
	l.pos++
	return b, nil
}

// peek looks at the next byte without consuming it
func (l *Lexer) peek() (byte, error) {
	bytes, err := l.reader.Peek(1)
	if err != nil {
		return 0, err
	}
	return bytes[0], nil
}

func (l *Lexer) readError(err error) error {
	return fmt.Errorf("read input at offset %d: %w", l.pos, err)
}

// readEscape reads everything introduced by a backslash. It returns nil when
// the escape decoded to text (\\, \{, \}, \'hh, \uN), which has then been
// appended to the current run.
func (l *Lexer) readEscape() (*Token, error) {
	start := l.pos
	l.readByte() // the backslash

	b, err := l.peek()
	if err == io.EOF {
		return nil, malformed(start, "backslash at end of input")
	}
	if err != nil {
		return nil, l.readError(err)
	}

	switch {
	case isAlpha(b):
		tok, err := l.readControlWord(start)
		if err != nil {
			return nil, err
		}
		switch tok.Name {
		case "u":
			if tok.HasParam {
				l.text.begin(start)
				l.appendUnit(unicodeUnit(tok.Param))
				return nil, l.skipFallback()
			}
		case "bin":
			if tok.Param < 0 {
				return nil, malformed(start, "negative binary length %d", tok.Param)
			}
			tok.Type = TokenBinary
		}
		return tok, nil

	case b == '\'':
		l.readByte()
		v, err := l.readHexByte(start)
		if err != nil {
			return nil, err
		}
		l.text.begin(start)
		l.appendByte(v)
		return nil, nil

	case b == '\\' || b == '{' || b == '}':
		l.readByte()
		l.text.begin(start)
		l.appendByte(b)
		return nil, nil

	case b == '\r' || b == '\n':
		// An escaped line break is equivalent to \par
		l.readByte()
		return &Token{Type: TokenControlWord, Name: "par", Pos: start}, nil

	default:
		l.readByte()
		return &Token{Type: TokenControlSymbol, Name: string(b), Pos: start}, nil
	}
}

// readControlWord reads the letters, optional parameter and delimiter of a
// control word whose backslash has already been consumed.
func (l *Lexer) readControlWord(start int64) (*Token, error) {
	var name [MaxNameLength]byte
	n := 0

	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, l.readError(err)
		}
		if !isAlpha(b) {
			break
		}
		if n == MaxNameLength {
			return nil, malformed(start, "control word longer than %d letters", MaxNameLength)
		}
		l.readByte()
		name[n] = b
		n++
	}

	tok := &Token{Type: TokenControlWord, Name: string(name[:n]), Pos: start}

	b, err := l.peek()
	if err != nil && err != io.EOF {
		return nil, l.readError(err)
	}
	if err == nil && (b == '-' || isDigit(b)) {
		param, err := l.readParam(start)
		if err != nil {
			return nil, err
		}
		tok.Param = param
		tok.HasParam = true
	}

	// A single space delimiter belongs to the control word
	if b, err := l.peek(); err == nil && b == ' ' {
		l.readByte()
	}

	return tok, nil
}

// readParam reads a signed decimal control word parameter.
func (l *Lexer) readParam(start int64) (int, error) {
	negative := false
	if b, _ := l.peek(); b == '-' {
		l.readByte()
		negative = true
	}

	var value int64
	digits := 0
	for {
		b, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, l.readError(err)
		}
		if !isDigit(b) {
			break
		}
		if digits == maxParamDigits {
			return 0, malformed(start, "numeric parameter longer than %d digits", maxParamDigits)
		}
		l.readByte()
		value = value*10 + int64(b-'0')
		digits++
	}

	if digits == 0 {
		return 0, malformed(start, "'-' without digits")
	}
	if negative {
		value = -value
	}
	if value > math.MaxInt32 || value < math.MinInt32 {
		return 0, malformed(start, "numeric parameter %d out of range", value)
	}
	return int(value), nil
}

// readHexByte reads the two hex digits of a \'hh escape.
func (l *Lexer) readHexByte(start int64) (byte, error) {
	var v byte
	for i := 0; i < 2; i++ {
		b, err := l.readByte()
		if err == io.EOF {
			return 0, malformed(start, "incomplete \\' escape")
		}
		if err != nil {
			return 0, l.readError(err)
		}
		if !isHexDigit(b) {
			return 0, malformed(start, "invalid hex digit %q in \\' escape", b)
		}
		v = v*16 + hexValue(b)
	}
	return v, nil
}

// skipFallback discards the replacement characters that follow a \uN
// escape. A literal byte, a \'hh escape and a whole control word or symbol
// each count as one character, a \binN word with its payload included;
// braces end the skip early.
func (l *Lexer) skipFallback() error {
	for n := l.unicodeSkip; n > 0; {
		b, err := l.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return l.readError(err)
		}

		switch b {
		case '{', '}':
			return nil
		case '\r', '\n':
			l.readByte()
			continue
		case '\\':
			if err := l.skipEscape(); err != nil {
				return err
			}
		default:
			l.readByte()
		}
		n--
	}
	return nil
}

// skipEscape consumes one escape without producing a token or text.
func (l *Lexer) skipEscape() error {
	start := l.pos
	l.readByte()

	b, err := l.peek()
	if err == io.EOF {
		return malformed(start, "backslash at end of input")
	}
	if err != nil {
		return l.readError(err)
	}

	switch {
	case isAlpha(b):
		tok, err := l.readControlWord(start)
		if err != nil || tok.Name != "bin" {
			return err
		}
		// The payload is skipped together with its \bin word
		if tok.Param < 0 {
			return malformed(start, "negative binary length %d", tok.Param)
		}
		_, err = l.CopyBinary(io.Discard, int64(tok.Param))
		return err
	case b == '\'':
		l.readByte()
		_, err := l.readHexByte(start)
		return err
	default:
		l.readByte()
		return nil
	}
}

// CopyBinary copies exactly n raw bytes of input to dst without interpreting
// them. It is called after a TokenBinary. If the input ends early the error
// is a *ParseError of kind ErrTruncatedBinaryData; any other error comes from
// reading the input or writing dst.
func (l *Lexer) CopyBinary(dst io.Writer, n int64) (int64, error) {
	start := l.pos
	written, err := io.CopyN(dst, l.reader, n)
	l.pos += written
	if err == io.EOF {
		return written, &ParseError{
			Kind:   ErrTruncatedBinaryData,
			Pos:    start,
			Detail: fmt.Sprintf("expected %d bytes, got %d", n, written),
		}
	}
	return written, err
}

func (r *textRun) begin(pos int64) {
	if !r.active {
		r.active = true
		r.start = pos
	}
}

// appendByte adds one code page byte to the current run.
func (l *Lexer) appendByte(b byte) {
	if l.text.high != 0 {
		l.text.out.WriteRune(utf8.RuneError)
		l.text.high = 0
	}
	l.text.raw = append(l.text.raw, b)
}

// appendUnit adds one UTF-16 code unit from a \uN escape, pairing surrogates.
func (l *Lexer) appendUnit(u uint16) {
	l.flushRaw()
	r := rune(u)
	out := &l.text.out

	switch {
	case r >= 0xD800 && r < 0xDC00:
		if l.text.high != 0 {
			out.WriteRune(utf8.RuneError)
		}
		l.text.high = r
		return
	case utf16.IsSurrogate(r):
		if l.text.high != 0 {
			out.WriteRune(utf16.DecodeRune(l.text.high, r))
			l.text.high = 0
		} else {
			out.WriteRune(utf8.RuneError)
		}
		return
	}

	if l.text.high != 0 {
		out.WriteRune(utf8.RuneError)
		l.text.high = 0
	}
	out.WriteRune(r)
}

// flushRaw decodes buffered code page bytes into the run.
func (l *Lexer) flushRaw() {
	if len(l.text.raw) == 0 {
		return
	}
	decoded, err := l.decoder.Bytes(l.text.raw)
	if err != nil {
		l.text.out.WriteRune(utf8.RuneError)
	} else {
		l.text.out.Write(decoded)
	}
	l.text.raw = l.text.raw[:0]
}

// takeText finishes the current run and returns it, or nil if it is empty.
func (l *Lexer) takeText() *Token {
	if !l.text.active {
		return nil
	}
	l.flushRaw()
	if l.text.high != 0 {
		l.text.out.WriteRune(utf8.RuneError)
		l.text.high = 0
	}

	tok := &Token{Type: TokenText, Text: l.text.out.String(), Pos: l.text.start}
	l.text.out.Reset()
	l.text.active = false

	if tok.Text == "" {
		return nil
	}
	return tok
}

// unicodeUnit converts a \uN parameter to a UTF-16 code unit. RTF writes
// units above 32767 as negative numbers.
func unicodeUnit(param int) uint16 {
	if param < 0 {
		param += 65536
	}
	if param < 0 || param > 0xFFFF {
		return utf8.RuneError
	}
	return uint16(param)
}

// Helper functions

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func hexValue(b byte) byte {
	if b >= '0' && b <= '9' {
		return b - '0'
	}
	if b >= 'a' && b <= 'f' {
		return b - 'a' + 10
	}
	if b >= 'A' && b <= 'F' {
		return b - 'A' + 10
	}
	return 0
}
