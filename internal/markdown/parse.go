package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
	),
)

// Parse tokenizes src into a Document. Fenced code is kept verbatim, so
// Markdown-looking text inside a fence is never interpreted.
func Parse(src string) Document {
	source := []byte(src)
	root := md.Parser().Parse(text.NewReader(source))
	p := &converter{src: source}
	return Document{Blocks: p.blocks(root)}
}

type converter struct {
	src []byte
}

func (c *converter) blocks(parent ast.Node) []Block {
	var out []Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *converter) block(n ast.Node) Block {
	switch n := n.(type) {
	case *ast.Heading:
		return Heading{Level: n.Level, Inlines: c.inlines(n)}
	case *ast.Paragraph:
		return Paragraph{Inlines: c.inlines(n)}
	case *ast.TextBlock:
		return Paragraph{Inlines: c.inlines(n)}
	case *ast.FencedCodeBlock:
		return CodeBlock{Language: string(n.Language(c.src)), Code: c.lines(n)}
	case *ast.CodeBlock:
		return CodeBlock{Code: c.lines(n)}
	case *ast.Blockquote:
		return Quote{Blocks: c.blocks(n)}
	case *ast.List:
		l := List{Ordered: n.IsOrdered(), Start: n.Start}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			l.Items = append(l.Items, c.blocks(item))
		}
		return l
	case *east.Table:
		return c.table(n)
	case *ast.ThematicBreak:
		return Rule{}
	case *ast.HTMLBlock:
		raw := c.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(c.src))
		}
		return Paragraph{Inlines: []Inline{Text{Value: raw}}}
	}
	return nil
}

func (c *converter) table(n *east.Table) Table {
	var t Table
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells [][]Inline
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, c.inlines(cell))
		}
		if _, ok := row.(*east.TableHeader); ok {
			t.Header = cells
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.src))
	}
	return buf.String()
}

func (c *converter) inlines(parent ast.Node) []Inline {
	var out []Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.inline(n)...)
	}
	return out
}

func (c *converter) inline(n ast.Node) []Inline {
	switch n := n.(type) {
	case *ast.Text:
		out := []Inline{Text{Value: string(n.Segment.Value(c.src))}}
		switch {
		case n.HardLineBreak():
			out = append(out, LineBreak{})
		case n.SoftLineBreak():
			out = append(out, Text{Value: "\n"})
		}
		return out
	case *ast.String:
		return []Inline{Text{Value: string(n.Value)}}
	case *ast.CodeSpan:
		var buf bytes.Buffer
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				buf.Write(t.Segment.Value(c.src))
			}
		}
		return []Inline{Code{Value: buf.String()}}
	case *ast.Emphasis:
		if n.Level >= 2 {
			return []Inline{Strong{Children: c.inlines(n)}}
		}
		return []Inline{Emphasis{Children: c.inlines(n)}}
	case *east.Strikethrough:
		return []Inline{Strike{Children: c.inlines(n)}}
	case *ast.Link:
		return []Inline{Link{URL: string(n.Destination), Title: string(n.Title), Children: c.inlines(n)}}
	case *ast.AutoLink:
		return []Inline{Link{URL: string(n.URL(c.src)), Children: []Inline{Text{Value: string(n.Label(c.src))}}}}
	case *ast.Image:
		return []Inline{Link{URL: string(n.Destination), Title: string(n.Title), Children: c.inlines(n)}}
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(c.src))
		}
		return []Inline{Text{Value: buf.String()}}
	}
	if n.HasChildren() {
		return c.inlines(n)
	}
	return nil
}
