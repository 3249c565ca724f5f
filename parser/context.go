package parser

import "fmt"

// Context identifies the destination in which an event occurs.
type Context int

// The numeric values are part of the consumer contract.
const (
	Document Context = iota
	FontTable
	FileTable
	ColorTable
	StyleSheet
	ListTable
	StyleEntry
	RevisionTable
	Info
	PlainTextInNotes
)

// NumContexts is the number of Context values.
const NumContexts = int(PlainTextInNotes) + 1

var contextNames = [NumContexts]string{
	Document:         "Document",
	FontTable:        "FontTable",
	FileTable:        "FileTable",
	ColorTable:       "ColorTable",
	StyleSheet:       "StyleSheet",
	ListTable:        "ListTable",
	StyleEntry:       "StyleEntry",
	RevisionTable:    "RevisionTable",
	Info:             "Info",
	PlainTextInNotes: "PlainTextInNotes",
}

// String returns the name of the context.
func (c Context) String() string {
	if c < 0 || int(c) >= NumContexts {
		return fmt.Sprintf("Context(%d)", int(c))
	}
	return contextNames[c]
}

// destinations maps destination control words to the context they open.
var destinations = map[string]Context{
	"rtf":               Document,
	"fonttbl":           FontTable,
	"filetbl":           FileTable,
	"colortbl":          ColorTable,
	"stylesheet":        StyleSheet,
	"s":                 StyleEntry,
	"cs":                StyleEntry,
	"ds":                StyleEntry,
	"ts":                StyleEntry,
	"listtable":         ListTable,
	"listoverridetable": ListTable,
	"revtbl":            RevisionTable,
	"info":              Info,
	"pntext":            PlainTextInNotes,
}

// LookupDestination reports the context a destination control word opens.
// Style markers (s, cs, ds, ts) map to StyleEntry but only act as
// destinations directly inside a style sheet.
func LookupDestination(word string) (Context, bool) {
	ctx, ok := destinations[word]
	return ctx, ok
}
