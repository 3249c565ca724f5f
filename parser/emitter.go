package parser

import (
	"io"

	"github.com/tsawler/rtf/core"
)

// emitter forwards parser actions to the Delegate and turns delegate
// failures into ConsumerAborted parse errors.
type emitter struct {
	d Delegate
}

func (e *emitter) abort(pos int64, event string, err error) error {
	return &core.ParseError{Kind: core.ErrConsumerAborted, Pos: pos, Detail: event, Err: err}
}

func (e *emitter) startDocument() error {
	if err := e.d.StartDocument(); err != nil {
		return e.abort(0, "startDocument", err)
	}
	return nil
}

func (e *emitter) endDocument(pos int64) error {
	if err := e.d.EndDocument(); err != nil {
		return e.abort(pos, "endDocument", err)
	}
	return nil
}

func (e *emitter) openGroup(pos int64, depth int) error {
	if err := e.d.OpenGroup(depth); err != nil {
		return e.abort(pos, "openGroup", err)
	}
	return nil
}

func (e *emitter) closeGroup(pos int64, depth int) error {
	if err := e.d.CloseGroup(depth); err != nil {
		return e.abort(pos, "closeGroup", err)
	}
	return nil
}

func (e *emitter) controlWord(pos int64, name string, value int, ctx Context) error {
	if err := e.d.ControlWord(name, value, ctx); err != nil {
		return e.abort(pos, "controlWord \\"+name, err)
	}
	return nil
}

func (e *emitter) controlSymbol(pos int64, symbol string, ctx Context) error {
	if err := e.d.ControlSymbol(symbol, ctx); err != nil {
		return e.abort(pos, "controlSymbol \\"+symbol, err)
	}
	return nil
}

func (e *emitter) text(pos int64, text string, style Style, ctx Context) error {
	if err := e.d.Text(text, style, ctx); err != nil {
		return e.abort(pos, "text", err)
	}
	return nil
}

func (e *emitter) styleList(pos int64, styles []string) error {
	if err := e.d.StyleList(styles); err != nil {
		return e.abort(pos, "styleList", err)
	}
	return nil
}

func (e *emitter) nextOutputStream(pos int64, ctx Context) (io.WriteCloser, error) {
	sink, err := e.d.NextOutputStream(ctx)
	if err != nil {
		return nil, e.abort(pos, "getNextOutputStream", err)
	}
	if sink == nil {
		return nil, e.abort(pos, "getNextOutputStream", errNilSink)
	}
	return sink, nil
}
