package parser

// Group is one frame of the group stack.
type Group struct {
	Depth   int
	Context Context
	Binary  bool // a \bin payload was relayed inside this group

	// head is set until the first token after the opening brace.
	head bool
	// destination is set when a head word changed the context.
	destination bool
	// ignorable marks groups inside an unknown \* destination.
	ignorable bool

	paraStyle   Style
	charStyle   Style
	unicodeSkip int
}

// style returns the style carried by text in this group.
func (g *Group) style() Style {
	if g.charStyle != NoStyle {
		return g.charStyle
	}
	return g.paraStyle
}

// groupStack holds the open groups. Frame 0 is the implicit root at depth 0.
type groupStack struct {
	frames []Group
}

func newGroupStack(unicodeSkip int) *groupStack {
	s := &groupStack{frames: make([]Group, 1, 16)}
	s.frames[0] = Group{Context: Document, unicodeSkip: unicodeSkip}
	return s
}

func (s *groupStack) top() *Group {
	return &s.frames[len(s.frames)-1]
}

func (s *groupStack) depth() int {
	return len(s.frames) - 1
}

// enter pushes a group inheriting the current context and formatting state.
func (s *groupStack) enter() *Group {
	parent := *s.top()
	s.frames = append(s.frames, Group{
		Depth:       parent.Depth + 1,
		Context:     parent.Context,
		head:        true,
		ignorable:   parent.ignorable,
		paraStyle:   parent.paraStyle,
		charStyle:   parent.charStyle,
		unicodeSkip: parent.unicodeSkip,
	})
	return s.top()
}

// leave pops the innermost group. It reports false at the root.
func (s *groupStack) leave() (Group, bool) {
	if len(s.frames) == 1 {
		return Group{}, false
	}
	g := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return g, true
}
