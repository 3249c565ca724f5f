package parser

import (
	"errors"
	"io"

	"github.com/tsawler/rtf/core"
)

var errNilSink = errors.New("delegate returned a nil output stream")

// sinkWriter records write failures so they can be told apart from input
// errors after io.CopyN returns.
type sinkWriter struct {
	w   io.Writer
	err error
}

func (s *sinkWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

// relayBinary copies a \binN payload verbatim into a sink obtained from the
// delegate. The payload is streamed through the lexer's buffer and never
// held in memory as a whole.
func (p *Parser) relayBinary(tok *core.Token) error {
	g := p.groups.top()
	g.head = false
	g.Binary = true

	sink, err := p.emit.nextOutputStream(tok.Pos, g.Context)
	if err != nil {
		return err
	}

	w := &sinkWriter{w: sink}
	n, copyErr := p.lexer.CopyBinary(w, int64(tok.Param))
	closeErr := sink.Close()

	p.stats.BinaryPayloads++
	p.stats.BinaryBytes += n

	switch {
	case w.err != nil:
		return p.emit.abort(tok.Pos, "binary payload write", w.err)
	case copyErr != nil:
		return copyErr
	case closeErr != nil:
		return p.emit.abort(tok.Pos, "binary payload close", closeErr)
	}

	p.log.Debugf("relayed %d binary bytes in %s at depth %d", n, g.Context, g.Depth)
	return nil
}
