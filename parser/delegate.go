package parser

import (
	"fmt"
	"io"
)

// Style is the handle of a style declared in the document's style sheet.
// Handles are minted once, when the style name is declared, and compare
// equal exactly when they refer to the same declaration.
type Style int

// NoStyle is carried by text that has no declared style in effect.
const NoStyle Style = 0

// Index returns the position of the style in the list passed to
// Delegate.StyleList, or -1 for NoStyle.
func (s Style) Index() int {
	return int(s) - 1
}

func (s Style) String() string {
	if s == NoStyle {
		return "NoStyle"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Delegate receives parser events. Returning an error from any method aborts
// the parse; the error is reported wrapped in a *core.ParseError of kind
// core.ErrConsumerAborted and EndDocument is not sent.
type Delegate interface {
	// StartDocument is called once, before any other event.
	StartDocument() error

	// EndDocument is called once after a successful parse.
	EndDocument() error

	// OpenGroup reports the depth of the group just opened.
	OpenGroup(depth int) error

	// CloseGroup reports the depth of the group just closed.
	CloseGroup(depth int) error

	// ControlWord reports a control word. value is 0 when the source
	// omitted the parameter.
	ControlWord(name string, value int, ctx Context) error

	// ControlSymbol reports a control symbol such as "*" or "~".
	ControlSymbol(symbol string, ctx Context) error

	// Text reports a run of decoded text.
	Text(text string, style Style, ctx Context) error

	// StyleList reports the declared style names in declaration order.
	// styles[s.Index()] is the name of Style s.
	StyleList(styles []string) error

	// NextOutputStream returns the sink for the next binary payload. The
	// parser writes exactly the declared number of bytes and closes it.
	NextOutputStream(ctx Context) (io.WriteCloser, error)
}

// NopDelegate implements Delegate by ignoring every event and discarding
// binary payloads. Embed it to implement only the events of interest.
type NopDelegate struct{}

var _ Delegate = NopDelegate{}

func (NopDelegate) StartDocument() error                  { return nil }
func (NopDelegate) EndDocument() error                    { return nil }
func (NopDelegate) OpenGroup(int) error                   { return nil }
func (NopDelegate) CloseGroup(int) error                  { return nil }
func (NopDelegate) ControlWord(string, int, Context) error { return nil }
func (NopDelegate) ControlSymbol(string, Context) error   { return nil }
func (NopDelegate) Text(string, Style, Context) error     { return nil }
func (NopDelegate) StyleList([]string) error              { return nil }

func (NopDelegate) NextOutputStream(Context) (io.WriteCloser, error) {
	return discard{}, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
func (discard) Close() error                { return nil }
