package rtf

import (
	"fmt"
	"strings"

	"github.com/tsawler/rtf/core"
	"github.com/tsawler/rtf/parser"
)

// Warning describes a non-fatal issue found while parsing. The document was
// read, but the result may not be what the author intended.
type Warning struct {
	Message string
}

// FormatWarnings joins warning messages into one line.
func FormatWarnings(warnings []Warning) string {
	msgs := make([]string, len(warnings))
	for i, w := range warnings {
		msgs[i] = w.Message
	}
	return strings.Join(msgs, "; ")
}

// warningCollector passes events through to a delegate and notes control
// words that make the output less trustworthy.
type warningCollector struct {
	parser.Delegate
	warnings []Warning
	seen     map[string]bool
}

func newWarningCollector(d parser.Delegate) *warningCollector {
	return &warningCollector{Delegate: d, seen: make(map[string]bool)}
}

func (w *warningCollector) ControlWord(name string, value int, ctx parser.Context) error {
	switch name {
	case "fromhtml":
		w.add("fromhtml", "document encapsulates HTML; extracted text may contain markup")
	case "ansicpg":
		if _, ok := core.CodePageEncoding(value); !ok {
			w.add(fmt.Sprintf("ansicpg%d", value), fmt.Sprintf("unsupported code page %d; 8-bit text decoded with the previous code page", value))
		}
	}
	return w.Delegate.ControlWord(name, value, ctx)
}

func (w *warningCollector) add(key, msg string) {
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	w.warnings = append(w.warnings, Warning{Message: msg})
}
