package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

var errStop = errors.New("stop requested by test delegate")

type textEvent struct {
	text  string
	style Style
	ctx   Context
}

type bufferSink struct {
	bytes.Buffer
	closed   bool
	writeErr error
}

func (s *bufferSink) Write(p []byte) (int, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	return s.Buffer.Write(p)
}

func (s *bufferSink) Close() error {
	s.closed = true
	return nil
}

// recorder captures the event stream as strings. failOn makes the first
// event starting with that prefix fail.
type recorder struct {
	events []string
	texts  []textEvent
	styles []string
	sinks  []*bufferSink

	failOn    string
	sinkErr   error
	sinkWrite error
}

var _ Delegate = (*recorder)(nil)

func (r *recorder) record(format string, args ...any) error {
	ev := fmt.Sprintf(format, args...)
	r.events = append(r.events, ev)
	if r.failOn != "" && strings.HasPrefix(ev, r.failOn) {
		return errStop
	}
	return nil
}

func (r *recorder) StartDocument() error { return r.record("startDocument") }
func (r *recorder) EndDocument() error   { return r.record("endDocument") }

func (r *recorder) OpenGroup(depth int) error  { return r.record("openGroup(%d)", depth) }
func (r *recorder) CloseGroup(depth int) error { return r.record("closeGroup(%d)", depth) }

func (r *recorder) ControlWord(name string, value int, ctx Context) error {
	return r.record("controlWord(%s,%d,%s)", name, value, ctx)
}

func (r *recorder) ControlSymbol(symbol string, ctx Context) error {
	return r.record("controlSymbol(%s,%s)", symbol, ctx)
}

func (r *recorder) Text(text string, style Style, ctx Context) error {
	r.texts = append(r.texts, textEvent{text: text, style: style, ctx: ctx})
	return r.record("text(%s,%s,%s)", text, style, ctx)
}

func (r *recorder) StyleList(styles []string) error {
	r.styles = styles
	return r.record("styleList(%s)", strings.Join(styles, "|"))
}

func (r *recorder) NextOutputStream(ctx Context) (io.WriteCloser, error) {
	if err := r.record("getNextOutputStream(%s)", ctx); err != nil {
		return nil, err
	}
	if r.sinkErr != nil {
		return nil, r.sinkErr
	}
	sink := &bufferSink{writeErr: r.sinkWrite}
	r.sinks = append(r.sinks, sink)
	return sink, nil
}

// joinedText concatenates the content of all text events.
func (r *recorder) joinedText() string {
	var b strings.Builder
	for _, t := range r.texts {
		b.WriteString(t.text)
	}
	return b.String()
}

func (r *recorder) has(event string) bool {
	for _, ev := range r.events {
		if ev == event {
			return true
		}
	}
	return false
}

func parseString(input string) (*recorder, error) {
	rec := &recorder{}
	err := NewParser(strings.NewReader(input), rec, DefaultConfig()).Parse()
	return rec, err
}
