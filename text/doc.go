// Package text extracts plain text and document metadata from RTF.
//
// The [Extractor] is a [parser.Delegate] that keeps only what a reader sees:
// text in the document body, with paragraph and cell breaks turned into
// newlines and tabs. Font tables, style sheets, pictures, embedded objects
// and ignorable destinations are dropped.
//
//	ex := text.NewExtractor()
//	if err := parser.Parse(r, ex); err != nil {
//		return err
//	}
//	fmt.Println(ex.Text())
//
// # Paragraphs
//
// [Extractor.Paragraphs] returns the body split into paragraphs, each with
// the style it was written in and its writing [Direction]. The direction is
// taken from \rtlpar or \ltrpar when the document sets one and detected from
// the characters otherwise.
//
// # Metadata
//
// The \info destination is collected into a map keyed by the field's
// control word, for example "title", "author" or "company".
package text
