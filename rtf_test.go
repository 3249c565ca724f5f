package rtf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/rtf/core"
	"github.com/tsawler/rtf/format"
	"github.com/tsawler/rtf/parser"
	"github.com/tsawler/rtf/text"
)

const sampleDoc = `{\rtf1\ansi\ansicpg1252\deff0` +
	`{\fonttbl{\f0\fswiss Arial;}}` +
	`{\stylesheet{\s0 Normal;}{\s1 Heading 1;}}` +
	`{\info{\title Quarterly Report}{\author J. Smith}}` +
	`\pard\s1 Overview\par` +
	`\pard\s0 Sales grew by 12\'25.\par` +
	`{\pict\pngblip\bin4 ` + "\x89PNG" + `}` +
	`Caf\'e9\par}`

// writeSample writes content to a file in a temporary directory.
func writeSample(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen(t *testing.T) {
	_, _, err := Open("nonexistent.rtf").Text()
	assert.Error(t, err)

	_, _, err = Open("").Text()
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	path := writeSample(t, "sample.rtf", sampleDoc)

	got, warnings, err := Open(path).Text()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Overview\nSales grew by 12%.\nCafé\n", got)
}

func TestParagraphs(t *testing.T) {
	paras, _, err := FromReader(strings.NewReader(sampleDoc)).Paragraphs()
	require.NoError(t, err)

	require.Len(t, paras, 3)
	assert.Equal(t, "Overview", paras[0].Text)
	assert.Equal(t, parser.Style(2), paras[0].Style)
	assert.Equal(t, parser.Style(1), paras[1].Style)
	assert.Equal(t, text.LTR, paras[2].Direction)
}

func TestInfoAndStyles(t *testing.T) {
	path := writeSample(t, "sample.rtf", sampleDoc)

	info, err := Open(path).Info()
	require.NoError(t, err)
	assert.Equal(t, "Quarterly Report", info["title"])
	assert.Equal(t, "J. Smith", info["author"])

	styles, err := Open(path).Styles()
	require.NoError(t, err)
	assert.Equal(t, []string{"Normal", "Heading 1"}, styles)
}

func TestStats(t *testing.T) {
	stats := Must(FromReader(strings.NewReader(sampleDoc)).Stats())

	assert.Equal(t, 2, stats.Styles)
	assert.Equal(t, 1, stats.BinaryPayloads)
	assert.Equal(t, int64(4), stats.BinaryBytes)
	assert.Equal(t, 3, stats.MaxDepth)
}

func TestParseDelegate(t *testing.T) {
	var words []string
	d := &wordCollector{words: &words}

	_, _, err := FromReader(strings.NewReader(`{\rtf1\b bold\b0}`)).Parse(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "b"}, words)
}

type wordCollector struct {
	parser.NopDelegate
	words *[]string
}

func (w *wordCollector) ControlWord(name string, _ int, _ parser.Context) error {
	*w.words = append(*w.words, name)
	return nil
}

func TestNotRTF(t *testing.T) {
	path := writeSample(t, "fake.rtf", "%PDF-1.7\n")

	_, _, err := Open(path).Text()
	assert.ErrorIs(t, err, ErrNotRTF)
	assert.Contains(t, err.Error(), "fake.rtf")

	_, _, err = FromReader(strings.NewReader("")).Text()
	assert.ErrorIs(t, err, ErrNotRTF)
}

func TestLeadingBOM(t *testing.T) {
	got := MustText(FromReader(strings.NewReader("\xEF\xBB\xBF{\\rtf1 hi}")).Text())
	assert.Equal(t, "hi", got)
}

func TestCodePageOption(t *testing.T) {
	doc := `{\rtf1 \'cf\'f0\'e8}`

	got, _, err := FromReader(strings.NewReader(doc)).CodePage(1251).Text()
	require.NoError(t, err)
	assert.Equal(t, "При", got)

	_, _, err = FromReader(strings.NewReader(doc)).CodePage(4242).Text()
	assert.ErrorIs(t, err, core.ErrUnsupportedCodePage)
}

func TestUnicodeSkipOption(t *testing.T) {
	doc := `{\rtf1 \u233 xxy}`

	got := MustText(FromReader(strings.NewReader(doc)).UnicodeSkip(2).Text())
	assert.Equal(t, "éy", got)

	got = MustText(FromReader(strings.NewReader(doc)).Text())
	assert.Equal(t, "éxy", got)
}

func TestOptionsAreImmutable(t *testing.T) {
	base := Open("a.rtf")
	withCP := base.CodePage(1251)
	withSkip := withCP.UnicodeSkip(3).BufferSize(64)

	assert.Equal(t, 1252, base.options.codePage)
	assert.Equal(t, 1251, withCP.options.codePage)
	assert.Equal(t, 1, withCP.options.unicodeSkip)
	assert.Equal(t, 3, withSkip.options.unicodeSkip)
	assert.Equal(t, 64, withSkip.options.bufferSize)
}

func TestSmallBuffer(t *testing.T) {
	got, _, err := FromReader(strings.NewReader(sampleDoc)).BufferSize(16).Text()
	require.NoError(t, err)
	assert.Equal(t, "Overview\nSales grew by 12%.\nCafé\n", got)
}

func TestWarnings(t *testing.T) {
	doc := `{\rtf1\ansi\ansicpg9999\fromhtml1 {\*\htmltag <p>}hi\ansicpg9999}`

	got, warnings, err := FromReader(strings.NewReader(doc)).Text()
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
	require.Len(t, warnings, 2)
	assert.Contains(t, FormatWarnings(warnings), "unsupported code page 9999")
	assert.Contains(t, FormatWarnings(warnings), "HTML")
}

func TestParseErrors(t *testing.T) {
	_, _, err := FromReader(strings.NewReader(`{\rtf1 open`)).Text()
	assert.ErrorIs(t, err, core.ErrUnterminatedGroup)

	_, _, err = FromReader(strings.NewReader(`{\rtf1 x}}`)).Text()
	assert.ErrorIs(t, err, core.ErrUnbalancedGroup)
}

func TestEncapsulation(t *testing.T) {
	enc, err := FromReader(strings.NewReader(`{\rtf1\ansi\fromhtml1 x}`)).Encapsulation()
	require.NoError(t, err)
	assert.Equal(t, format.EncapsulationHTML, enc)

	path := writeSample(t, "plain.rtf", sampleDoc)
	enc, err = Open(path).Encapsulation()
	require.NoError(t, err)
	assert.Equal(t, format.EncapsulationNone, enc)
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() { Must(Open("missing.rtf").Info()) })
	assert.Panics(t, func() { MustText(Open("missing.rtf").Text()) })
}
