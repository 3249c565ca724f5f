package core

import "fmt"

// TokenType represents the type of token
type TokenType int

const (
	TokenEOF           TokenType = iota
	TokenGroupStart              // {
	TokenGroupEnd                // }
	TokenControlWord             // \fonttbl, \f0, \li-720
	TokenControlSymbol           // \*, \~, \-
	TokenText                    // decoded literal text
	TokenBinary                  // \binN, payload follows
)

// String returns the name of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenGroupStart:
		return "GroupStart"
	case TokenGroupEnd:
		return "GroupEnd"
	case TokenControlWord:
		return "ControlWord"
	case TokenControlSymbol:
		return "ControlSymbol"
	case TokenText:
		return "Text"
	case TokenBinary:
		return "Binary"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token represents a lexical token
type Token struct {
	Type TokenType

	// Name is the control word name (without backslash) or the control
	// symbol character. Empty for other token types.
	Name string

	// Param is the numeric parameter of a control word or the byte count of
	// a binary token. It is 0 when the source omitted it.
	Param    int
	HasParam bool

	// Text holds the decoded content of a TokenText.
	Text string

	Pos int64 // Position in stream
}

// String returns a compact, RTF-like rendering of the token for diagnostics.
func (t *Token) String() string {
	switch t.Type {
	case TokenGroupStart:
		return "{"
	case TokenGroupEnd:
		return "}"
	case TokenControlWord:
		if t.HasParam {
			return fmt.Sprintf("\\%s%d", t.Name, t.Param)
		}
		return "\\" + t.Name
	case TokenControlSymbol:
		return "\\" + t.Name
	case TokenText:
		return fmt.Sprintf("%q", t.Text)
	case TokenBinary:
		return fmt.Sprintf("\\bin%d", t.Param)
	default:
		return t.Type.String()
	}
}
