package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/tsawler/rtf/core"
)

// ErrAlreadyParsed is returned when Parse is called a second time.
var ErrAlreadyParsed = errors.New("parser: input already parsed")

// Config holds parser settings.
type Config struct {
	// CodePage is the code page used for 8-bit text until the document
	// selects one. Zero means core.DefaultCodePage.
	CodePage int

	// UnicodeSkip is the initial number of fallback characters after \uN.
	// Values below 1 mean core.DefaultUnicodeSkip; documents switch to \uc0
	// themselves.
	UnicodeSkip int

	// BufferSize is the size of the input buffer, which also bounds the
	// memory used to relay binary payloads. Zero means core.DefaultBufferSize.
	BufferSize int

	// Logger receives diagnostics. Nil means the "rtf.parser" logger.
	Logger commonlog.Logger
}

// DefaultConfig returns the default parser settings.
func DefaultConfig() Config {
	return Config{
		CodePage:    core.DefaultCodePage,
		UnicodeSkip: core.DefaultUnicodeSkip,
		BufferSize:  core.DefaultBufferSize,
	}
}

func (c Config) withDefaults() Config {
	if c.CodePage == 0 {
		c.CodePage = core.DefaultCodePage
	}
	if c.UnicodeSkip < 1 {
		c.UnicodeSkip = core.DefaultUnicodeSkip
	}
	if c.BufferSize <= 0 {
		c.BufferSize = core.DefaultBufferSize
	}
	if c.Logger == nil {
		c.Logger = commonlog.GetLogger("rtf.parser")
	}
	return c
}

// Stats summarizes a parse.
type Stats struct {
	Groups         int
	MaxDepth       int
	ControlWords   int
	ControlSymbols int
	TextRuns       int
	Styles         int
	BinaryPayloads int
	BinaryBytes    int64
}

// Parser drives a Delegate from an RTF byte stream. A Parser parses its
// input once and is not safe for concurrent use.
type Parser struct {
	lexer  *core.Lexer
	groups *groupStack
	styles *styleTable
	emit   *emitter
	log    commonlog.Logger
	stats  Stats

	// heldStar is a \* seen at the head of a group, reported only if the
	// next token is not a destination word.
	heldStar *core.Token
	used     bool
}

// NewParser creates a parser reading r and reporting to d.
func NewParser(r io.Reader, d Delegate, cfg Config) *Parser {
	cfg = cfg.withDefaults()

	lexer := core.NewLexerSize(r, cfg.BufferSize)
	lexer.SetUnicodeSkip(cfg.UnicodeSkip)

	p := &Parser{
		lexer:  lexer,
		groups: newGroupStack(cfg.UnicodeSkip),
		styles: newStyleTable(),
		emit:   &emitter{d: d},
		log:    cfg.Logger,
	}
	p.setCodePage(cfg.CodePage)
	return p
}

// Parse parses r with the default configuration.
func Parse(r io.Reader, d Delegate) error {
	return NewParser(r, d, DefaultConfig()).Parse()
}

// Parse reads the whole input and reports it to the delegate. Every failure
// is fatal and returned as is; EndDocument is only sent on success.
func (p *Parser) Parse() error {
	if p.used {
		return ErrAlreadyParsed
	}
	p.used = true

	if err := p.emit.startDocument(); err != nil {
		return err
	}

	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return err
		}
		if tok.Type == core.TokenEOF {
			return p.finish(tok)
		}
		if err := p.dispatch(tok); err != nil {
			return err
		}
	}
}

// Stats returns counters for the input parsed so far.
func (p *Parser) Stats() Stats {
	return p.stats
}

// StyleName returns the declared name of a style handle.
func (p *Parser) StyleName(s Style) (string, bool) {
	return p.styles.name(s)
}

// Depth returns the depth of the innermost open group.
func (p *Parser) Depth() int {
	return p.groups.depth()
}

func (p *Parser) dispatch(tok *core.Token) error {
	if tok.Type != core.TokenControlWord {
		if err := p.releaseStar(); err != nil {
			return err
		}
	}

	switch tok.Type {
	case core.TokenGroupStart:
		return p.openGroup(tok)
	case core.TokenGroupEnd:
		return p.closeGroup(tok)
	case core.TokenControlWord:
		return p.controlWord(tok)
	case core.TokenControlSymbol:
		return p.controlSymbol(tok)
	case core.TokenText:
		return p.text(tok)
	case core.TokenBinary:
		return p.relayBinary(tok)
	}
	return fmt.Errorf("unexpected token %v at offset %d", tok.Type, tok.Pos)
}

func (p *Parser) finish(eof *core.Token) error {
	if err := p.releaseStar(); err != nil {
		return err
	}
	if depth := p.groups.depth(); depth > 0 {
		return &core.ParseError{
			Kind:   core.ErrUnterminatedGroup,
			Pos:    eof.Pos,
			Detail: fmt.Sprintf("%d group(s) still open", depth),
		}
	}

	p.log.Debugf("parsed %d bytes: %d groups (max depth %d), %d control words, %d text runs, %d styles, %d binary payloads",
		eof.Pos, p.stats.Groups, p.stats.MaxDepth, p.stats.ControlWords, p.stats.TextRuns, p.stats.Styles, p.stats.BinaryPayloads)
	return p.emit.endDocument(eof.Pos)
}

func (p *Parser) openGroup(tok *core.Token) error {
	p.groups.top().head = false
	g := p.groups.enter()

	p.stats.Groups++
	if g.Depth > p.stats.MaxDepth {
		p.stats.MaxDepth = g.Depth
	}
	return p.emit.openGroup(tok.Pos, g.Depth)
}

func (p *Parser) closeGroup(tok *core.Token) error {
	g, ok := p.groups.leave()
	if !ok {
		return &core.ParseError{
			Kind:   core.ErrUnbalancedGroup,
			Pos:    tok.Pos,
			Detail: "'}' without matching '{'",
		}
	}
	p.lexer.SetUnicodeSkip(p.groups.top().unicodeSkip)

	if p.styles.collecting() && g.Depth == p.styles.sheetDepth+1 {
		p.styles.endEntry()
	}

	if err := p.emit.closeGroup(tok.Pos, g.Depth); err != nil {
		return err
	}

	if g.destination && g.Context == StyleSheet && g.Depth == p.styles.sheetDepth && p.styles.collecting() {
		names := p.styles.finalize()
		p.stats.Styles = len(names)
		p.log.Debugf("style sheet closed with %d styles", len(names))
		return p.emit.styleList(tok.Pos, names)
	}
	return nil
}

func (p *Parser) controlWord(tok *core.Token) error {
	g := p.groups.top()

	if g.head {
		g.head = false
		if ctx, ok := p.destinationFor(g, tok.Name); ok {
			p.enterDestination(g, ctx, tok)
			return nil
		}
	} else if _, ok := destinations[tok.Name]; ok {
		if _, style := styleKindOf(tok.Name); !style && tok.Name != "rtf" {
			p.log.Debugf("destination word \\%s at offset %d is not at a group start; treated as formatting", tok.Name, tok.Pos)
		}
	}

	if err := p.releaseStar(); err != nil {
		return err
	}

	p.applyState(g, tok)
	p.stats.ControlWords++
	return p.emit.controlWord(tok.Pos, tok.Name, tok.Param, g.Context)
}

// destinationFor resolves a head word. Style markers open a StyleEntry only
// directly inside the style sheet.
func (p *Parser) destinationFor(g *Group, word string) (Context, bool) {
	ctx, ok := LookupDestination(word)
	if !ok {
		return 0, false
	}
	if ctx == StyleEntry && g.Context != StyleSheet {
		return 0, false
	}
	return ctx, true
}

func (p *Parser) enterDestination(g *Group, ctx Context, tok *core.Token) {
	g.Context = ctx
	g.destination = true
	p.heldStar = nil

	switch ctx {
	case StyleSheet:
		p.styles.open(g.Depth)
	case StyleEntry:
		if kind, ok := styleKindOf(tok.Name); ok && p.styles.collecting() {
			p.styles.setKey(kind, tok.Param)
		}
	}

	p.log.Debugf("entering %s at depth %d (offset %d)", ctx, g.Depth, tok.Pos)
}

// applyState updates the state that control words carry besides being
// forwarded: fallback count, code page and the style in effect.
func (p *Parser) applyState(g *Group, tok *core.Token) {
	switch tok.Name {
	case "uc":
		g.unicodeSkip = tok.Param
		p.lexer.SetUnicodeSkip(tok.Param)
	case "ansi":
		p.setCodePage(1252)
	case "mac":
		p.setCodePage(10000)
	case "pc":
		p.setCodePage(437)
	case "pca":
		p.setCodePage(850)
	case "ansicpg":
		p.setCodePage(tok.Param)
	case "pard":
		g.paraStyle = NoStyle
	case "plain":
		g.charStyle = NoStyle
	default:
		kind, ok := styleKindOf(tok.Name)
		if !ok {
			return
		}
		if p.inStyleSheet(g) {
			p.styles.setKey(kind, tok.Param)
			return
		}
		switch kind {
		case paragraphStyle:
			g.paraStyle = p.styles.lookup(kind, tok.Param)
		case characterStyle:
			g.charStyle = p.styles.lookup(kind, tok.Param)
		}
	}
}

func (p *Parser) setCodePage(cp int) {
	if err := p.lexer.SetCodePage(cp); err != nil {
		p.log.Warningf("%s; keeping code page %d", err, p.lexer.CodePage())
	}
}

func (p *Parser) inStyleSheet(g *Group) bool {
	return (g.Context == StyleSheet || g.Context == StyleEntry) && p.styles.collecting()
}

func (p *Parser) controlSymbol(tok *core.Token) error {
	g := p.groups.top()

	if tok.Name == "*" && g.head && p.heldStar == nil {
		p.heldStar = tok
		return nil
	}
	g.head = false

	p.stats.ControlSymbols++
	return p.emit.controlSymbol(tok.Pos, tok.Name, g.Context)
}

// releaseStar reports a held \* that did not introduce a known destination.
// Its group becomes an ignorable destination.
func (p *Parser) releaseStar() error {
	if p.heldStar == nil {
		return nil
	}
	tok := p.heldStar
	p.heldStar = nil

	g := p.groups.top()
	g.head = false
	g.ignorable = true

	p.stats.ControlSymbols++
	return p.emit.controlSymbol(tok.Pos, tok.Name, g.Context)
}

func (p *Parser) text(tok *core.Token) error {
	g := p.groups.top()
	g.head = false

	if p.inStyleSheet(g) && !g.ignorable {
		p.styles.appendText(tok.Text)
		return nil
	}

	p.stats.TextRuns++
	return p.emit.text(tok.Pos, tok.Text, g.style(), g.Context)
}
