package text

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/rtf/parser"
)

func extract(t *testing.T, input string) *Extractor {
	t.Helper()
	ex := NewExtractor()
	require.NoError(t, parser.Parse(strings.NewReader(input), ex))
	return ex
}

func TestExtractor_Document(t *testing.T) {
	ex := extract(t, `{\rtf1\ansi{\fonttbl\f0 Arial;}{\stylesheet{\s1 Heading;}}`+
		`{\info{\title My Doc}{\author Jane}{\*\company Acme}{\creatim\yr2020}}`+
		`\pard\s1 Title\par\pard Body\tab text\line more\par last}`)

	assert.Equal(t, "Title\nBody\ttext\nmore\nlast", ex.Text())
	assert.Equal(t, []string{"Heading"}, ex.Styles())
	assert.Equal(t, map[string]string{
		"title":   "My Doc",
		"author":  "Jane",
		"company": "Acme",
	}, ex.Info())

	paras := ex.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, Paragraph{Text: "Title", Style: parser.Style(1), Direction: LTR}, paras[0])
	assert.Equal(t, Paragraph{Text: "Body\ttext\nmore", Style: parser.NoStyle, Direction: LTR}, paras[1])
	assert.Equal(t, "last", paras[2].Text)
}

func TestExtractor_SkipsNonText(t *testing.T) {
	ex := extract(t, `{\rtf1 a{\*\generator Word;}b{\pict\pngblip\bin3 xyz}c`+
		`{\field{\*\fldinst HYPERLINK "x"}{\fldrslt link}}d{\object{\objdata 0102}}e}`)

	assert.Equal(t, "abclinkde", ex.Text())
	assert.Equal(t, 1, ex.BinaryPayloads())
}

func TestExtractor_SpecialCharacters(t *testing.T) {
	ex := extract(t, `{\rtf1 a\~b\_c\-d\emdash e\ldblquote q\rdblquote}`)
	assert.Equal(t, "a\u00a0b\u2011cd\u2014e\u201cq\u201d", ex.Text())
}

func TestExtractor_Tables(t *testing.T) {
	ex := extract(t, `{\rtf1\trowd a\cell b\cell\row}`)

	assert.Equal(t, "a\tb\t\n", ex.Text())
	require.Len(t, ex.Paragraphs(), 1)
	assert.Equal(t, "a\tb\t", ex.Paragraphs()[0].Text)
}

func TestExtractor_ListText(t *testing.T) {
	ex := extract(t, `{\rtf1{\pntext 1.\tab}Item\par}`)
	assert.Equal(t, "1.\tItem\n", ex.Text())
}

func TestExtractor_Direction(t *testing.T) {
	ex := extract(t, `{\rtf1\pard\rtlpar abc\par\pard \u1513?\u1500?\u1493?\u1501?\par 123\par}`)

	paras := ex.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, RTL, paras[0].Direction, "explicit \\rtlpar wins over detection")
	assert.Equal(t, "שלום", paras[1].Text)
	assert.Equal(t, RTL, paras[1].Direction)
	assert.Equal(t, Neutral, paras[2].Direction)
}

func TestExtractor_EmptyDocument(t *testing.T) {
	ex := extract(t, `{\rtf1}`)

	assert.Empty(t, ex.Text())
	assert.Empty(t, ex.Paragraphs())
	assert.Empty(t, ex.Info())
	assert.Nil(t, ex.Styles())
}
