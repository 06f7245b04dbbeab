package lang

// Element is a piece of page text with one variant per language.
type Element struct {
	ID       string
	Text     string
	Variants map[Code]string
}

// Selector owns the active language of one page and every element
// registered on it. Set is total: all elements are updated before it returns.
type Selector struct {
	current  Code
	elements []*Element
	byID     map[string]*Element
}

func NewSelector(initial Code) *Selector {
	if _, ok := Parse(string(initial)); !ok {
		initial = Primary
	}
	return &Selector{current: initial, byID: map[string]*Element{}}
}

func (s *Selector) Current() Code { return s.current }

// Register adds an element whose default text is text and applies the
// active language to it. Registering an existing id replaces it.
func (s *Selector) Register(id, text string, variants map[Code]string) *Element {
	e := &Element{ID: id, Text: text, Variants: variants}
	if old, ok := s.byID[id]; ok {
		*old = *e
		e = old
	} else {
		s.elements = append(s.elements, e)
		s.byID[id] = e
	}
	s.apply(e)
	return e
}

// Set switches the active language and rewrites every element. Elements
// without a variant for code keep their current text.
func (s *Selector) Set(code Code) {
	s.current = code
	for _, e := range s.elements {
		s.apply(e)
	}
}

func (s *Selector) apply(e *Element) {
	if v, ok := e.Variants[s.current]; ok && v != "" {
		e.Text = v
	}
}

// Text returns the current text of id, or "" when it is not registered.
func (s *Selector) Text(id string) string {
	if e, ok := s.byID[id]; ok {
		return e.Text
	}
	return ""
}

// Texts snapshots all element texts by id.
func (s *Selector) Texts() map[string]string {
	out := make(map[string]string, len(s.elements))
	for _, e := range s.elements {
		out[e.ID] = e.Text
	}
	return out
}
