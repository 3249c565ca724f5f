// Package parser implements the RTF grammar state machine and the push-event
// contract between the parser and its consumer.
//
// A [Parser] pulls tokens from a [core.Lexer], tracks nested groups and the
// active destination [Context], and pushes notifications to a [Delegate]:
//
//	type printer struct{ parser.NopDelegate }
//
//	func (printer) Text(text string, style parser.Style, ctx parser.Context) error {
//	    fmt.Printf("%s: %q\n", ctx, text)
//	    return nil
//	}
//
//	err := parser.Parse(f, printer{})
//
// # Event Order
//
// StartDocument is always first and EndDocument last; the latter is only
// sent for successful parses. OpenGroup and CloseGroup nest properly and
// carry the depth of the group just opened or closed (the outermost group of
// a document has depth 1). All other events follow input order, except
// StyleList which is sent once, right after the style sheet group closes.
//
// # Destinations
//
// A control word listed in the destination table (\fonttbl, \colortbl,
// \stylesheet, \info, ...) changes the context of its group when it is the
// first token after the opening brace, optionally preceded by \*. Such head
// words are consumed. Anywhere else they are forwarded as ordinary control
// words and change nothing.
//
// # Styles
//
// Text inside the style sheet is collected into style names instead of being
// forwarded. After the style sheet closes, text carries the [Style] handle of
// the paragraph (\sN) or character (\csN) style in effect, so consumers can
// compare styles by handle.
//
// # Binary Data
//
// A \binN control word makes the parser request a sink with
// Delegate.NextOutputStream, copy exactly N raw bytes into it and close it.
package parser
