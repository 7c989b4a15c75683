// Package markdown converts the book's Markdown dialect into HTML with
// inline styles, so rendered chapters carry their own look.
package markdown

// Document is a parsed Markdown source.
type Document struct {
	Blocks []Block
}

// Block is a block-level element.
type Block interface{ isBlock() }

// Inline is a span-level element.
type Inline interface{ isInline() }

type (
	Heading struct {
		Level   int
		Inlines []Inline
	}
	Paragraph struct {
		Inlines []Inline
	}
	CodeBlock struct {
		Language string
		Code     string
	}
	Quote struct {
		Blocks []Block
	}
	List struct {
		Ordered bool
		Start   int
		Items   [][]Block
	}
	Table struct {
		Header [][]Inline
		Rows   [][][]Inline
	}
	Rule struct{}
)

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (CodeBlock) isBlock() {}
func (Quote) isBlock()     {}
func (List) isBlock()      {}
func (Table) isBlock()     {}
func (Rule) isBlock()      {}

type (
	Text     struct{ Value string }
	Code     struct{ Value string }
	Strong   struct{ Children []Inline }
	Emphasis struct{ Children []Inline }
	Strike   struct{ Children []Inline }
	Link     struct {
		URL      string
		Title    string
		Children []Inline
	}
	LineBreak struct{}
)

func (Text) isInline()      {}
func (Code) isInline()      {}
func (Strong) isInline()    {}
func (Emphasis) isInline()  {}
func (Strike) isInline()    {}
func (Link) isInline()      {}
func (LineBreak) isInline() {}

// PlainText flattens inlines to their text content.
func PlainText(inlines []Inline) string {
	var out []byte
	var walk func([]Inline)
	walk = func(in []Inline) {
		for _, n := range in {
			switch n := n.(type) {
			case Text:
				out = append(out, n.Value...)
			case Code:
				out = append(out, n.Value...)
			case Strong:
				walk(n.Children)
			case Emphasis:
				walk(n.Children)
			case Strike:
				walk(n.Children)
			case Link:
				walk(n.Children)
			case LineBreak:
				out = append(out, '\n')
			}
		}
	}
	walk(inlines)
	return string(out)
}

// Headings returns the text of every heading at the given level.
func (d Document) Headings(level int) []string {
	var out []string
	for _, b := range d.Blocks {
		if h, ok := b.(Heading); ok && h.Level == level {
			out = append(out, PlainText(h.Inlines))
		}
	}
	return out
}
