package parser

import "strings"

type styleKind byte

const (
	paragraphStyle styleKind = iota
	characterStyle
	sectionStyle
	tableStyle
)

func styleKindOf(word string) (styleKind, bool) {
	switch word {
	case "s":
		return paragraphStyle, true
	case "cs":
		return characterStyle, true
	case "ds":
		return sectionStyle, true
	case "ts":
		return tableStyle, true
	}
	return 0, false
}

// styleKey is the number a style is declared under; each kind has its own
// numbering.
type styleKey struct {
	kind   styleKind
	number int
}

// styleTable collects style names while the style sheet is open and maps
// style numbers to handles once it is closed.
type styleTable struct {
	names   []string
	handles map[styleKey]Style

	// sheetDepth is the depth of the open style sheet group, 0 if none.
	sheetDepth int
	final      bool

	pending strings.Builder
	key     styleKey
}

func newStyleTable() *styleTable {
	return &styleTable{handles: make(map[styleKey]Style)}
}

// collecting reports whether style sheet text is being collected.
func (t *styleTable) collecting() bool {
	return t.sheetDepth > 0 && !t.final
}

// open starts collecting for the style sheet group at depth.
func (t *styleTable) open(depth int) {
	if !t.final && t.sheetDepth == 0 {
		t.sheetDepth = depth
	}
}

// setKey sets the number of the entry being declared.
func (t *styleTable) setKey(kind styleKind, number int) {
	t.key = styleKey{kind: kind, number: number}
}

// appendText adds style sheet text; each ';' terminates an entry name.
func (t *styleTable) appendText(text string) {
	for {
		i := strings.IndexByte(text, ';')
		if i < 0 {
			t.pending.WriteString(text)
			return
		}
		t.pending.WriteString(text[:i])
		t.declare()
		text = text[i+1:]
	}
}

// endEntry declares a pending name whose group closed without ';' and
// returns the key to the default (paragraph, 0) for the next entry.
func (t *styleTable) endEntry() {
	t.declare()
	t.key = styleKey{}
}

// declare adds the pending name under the current key. A key keeps the
// handle of its first name; later names in the same entry are listed only.
func (t *styleTable) declare() {
	name := strings.TrimSpace(t.pending.String())
	t.pending.Reset()

	if name == "" {
		return
	}
	t.names = append(t.names, name)
	if _, ok := t.handles[t.key]; !ok {
		t.handles[t.key] = Style(len(t.names))
	}
}

// finalize closes the table and returns the declared names in order. The
// table cannot change afterwards.
func (t *styleTable) finalize() []string {
	t.endEntry()
	t.final = true
	t.sheetDepth = 0
	return append([]string(nil), t.names...)
}

// lookup returns the handle declared for a style number, or NoStyle.
func (t *styleTable) lookup(kind styleKind, number int) Style {
	if !t.final {
		return NoStyle
	}
	return t.handles[styleKey{kind: kind, number: number}]
}

// name returns the declared name of a handle.
func (t *styleTable) name(s Style) (string, bool) {
	if s.Index() < 0 || s.Index() >= len(t.names) {
		return "", false
	}
	return t.names[s.Index()], true
}
