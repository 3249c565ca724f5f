package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/rtf/internal/hexdata"
	"github.com/tsawler/rtf/parser"
)

var binDir string

var eventsCmd = &cobra.Command{
	Use:   "events FILE",
	Short: "Print the parser event stream",
	Long: `Print every event the parser reports, indented by group depth.
Binary payloads are counted, or saved to --bin-dir when it is set. With
--bin-dir, hex encoded \pict and \objdata bodies are decoded and saved too.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&binDir, "bin-dir", "", "directory to save \\bin payloads to")
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	dir := cfg.BinDir
	if cmd.Flags().Changed("bin-dir") {
		dir = binDir
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	printer := &eventPrinter{w: cmd.OutOrStdout(), binDir: dir}
	stats, warnings, err := newExtractor(cmd, args[0]).Parse(printer)
	printWarnings(cmd, warnings)
	if err != nil {
		printer.abortHex()
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "-- %d groups (max depth %d), %d control words, %d control symbols, %d text runs, %d styles, %d binary payloads (%d bytes)\n",
		stats.Groups, stats.MaxDepth, stats.ControlWords, stats.ControlSymbols,
		stats.TextRuns, stats.Styles, stats.BinaryPayloads, stats.BinaryBytes)
	return nil
}

// eventPrinter writes one line per event.
type eventPrinter struct {
	w        io.Writer
	depth    int
	head     bool
	binDir   string
	payloads int

	// hex is the sink of the hex encoded group being saved, if any.
	hex *hexSink
}

// hexDestinations carry hex encoded data in their text.
var hexDestinations = map[string]bool{
	"pict":    true,
	"objdata": true,
}

var _ parser.Delegate = (*eventPrinter)(nil)

func (p *eventPrinter) line(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, strings.Repeat("  ", p.depth)+format+"\n", args...)
	return err
}

func (p *eventPrinter) StartDocument() error { return p.line("startDocument") }
func (p *eventPrinter) EndDocument() error   { return p.line("endDocument") }

func (p *eventPrinter) OpenGroup(depth int) error {
	p.depth = depth - 1
	err := p.line("{")
	p.depth = depth
	p.head = true
	return err
}

func (p *eventPrinter) CloseGroup(depth int) error {
	if p.hex != nil && p.hex.depth == depth {
		if err := p.finishHex(); err != nil {
			return err
		}
	}
	p.depth = depth - 1
	p.head = false
	return p.line("}")
}

func (p *eventPrinter) ControlWord(name string, value int, ctx parser.Context) error {
	if p.head && hexDestinations[name] && p.binDir != "" && p.hex == nil {
		if err := p.startHex(name, ctx); err != nil {
			return err
		}
	}
	p.head = false
	return p.line("\\%s %d [%s]", name, value, ctx)
}

func (p *eventPrinter) ControlSymbol(symbol string, ctx parser.Context) error {
	// \* keeps the group head for the destination word that follows.
	if symbol != "*" {
		p.head = false
	}
	return p.line("\\%s [%s]", symbol, ctx)
}

func (p *eventPrinter) Text(text string, style parser.Style, ctx parser.Context) error {
	p.head = false
	if p.hex != nil && p.hex.depth == p.depth {
		if _, err := p.hex.dec.Write([]byte(text)); err != nil {
			return fmt.Errorf("%s: %w", p.hex.path, err)
		}
	}
	return p.line("%q %s [%s]", text, style, ctx)
}

// hexSink saves the decoded body of a hex encoded destination.
type hexSink struct {
	depth int
	ctx   parser.Context
	path  string
	file  *os.File
	dec   *hexdata.Writer
}

func (p *eventPrinter) startHex(name string, ctx parser.Context) error {
	p.payloads++
	path := filepath.Join(p.binDir, fmt.Sprintf("%s-%03d.bin", name, p.payloads))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	p.hex = &hexSink{depth: p.depth, ctx: ctx, path: path, file: f, dec: hexdata.NewWriter(f)}
	return nil
}

func (p *eventPrinter) finishHex() error {
	h := p.hex
	p.hex = nil

	decErr := h.dec.Close()
	if err := h.file.Close(); err != nil {
		return err
	}
	if decErr != nil {
		return decErr
	}
	return p.line("hex data %d bytes -> %s [%s]", h.dec.Decoded(), h.path, h.ctx)
}

// abortHex closes the sink of a hex group left open by a failed parse. The
// data decoded so far stays on disk.
func (p *eventPrinter) abortHex() {
	if p.hex == nil {
		return
	}
	p.hex.dec.Close()
	p.hex.file.Close()
	p.hex = nil
}

func (p *eventPrinter) StyleList(styles []string) error {
	return p.line("styles: %s", strings.Join(styles, ", "))
}

func (p *eventPrinter) NextOutputStream(ctx parser.Context) (io.WriteCloser, error) {
	p.head = false
	p.payloads++
	sink := &payloadSink{printer: p, ctx: ctx, w: io.Discard}
	if p.binDir == "" {
		return sink, nil
	}

	sink.path = filepath.Join(p.binDir, fmt.Sprintf("payload-%03d.bin", p.payloads))
	f, err := os.Create(sink.path)
	if err != nil {
		return nil, err
	}
	sink.w, sink.file = f, f
	return sink, nil
}

// payloadSink counts a payload and reports it when closed.
type payloadSink struct {
	printer *eventPrinter
	ctx     parser.Context
	w       io.Writer
	file    *os.File
	path    string
	n       int64
}

func (s *payloadSink) Write(b []byte) (int, error) {
	n, err := s.w.Write(b)
	s.n += int64(n)
	return n, err
}

func (s *payloadSink) Close() error {
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			return err
		}
		return s.printer.line("binary %d bytes -> %s [%s]", s.n, s.path, s.ctx)
	}
	return s.printer.line("binary %d bytes [%s]", s.n, s.ctx)
}
