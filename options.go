package rtf

import (
	"github.com/tliron/commonlog"

	"github.com/tsawler/rtf/parser"
)

// ExtractOptions holds configuration for parsing.
type ExtractOptions struct {
	codePage    int
	unicodeSkip int
	bufferSize  int
	logger      commonlog.Logger
}

// defaultOptions returns the default parsing options.
func defaultOptions() ExtractOptions {
	cfg := parser.DefaultConfig()
	return ExtractOptions{
		codePage:    cfg.CodePage,
		unicodeSkip: cfg.UnicodeSkip,
		bufferSize:  cfg.BufferSize,
	}
}

// clone creates a copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}

// config converts the options to a parser configuration.
func (o ExtractOptions) config() parser.Config {
	return parser.Config{
		CodePage:    o.codePage,
		UnicodeSkip: o.unicodeSkip,
		BufferSize:  o.bufferSize,
		Logger:      o.logger,
	}
}
