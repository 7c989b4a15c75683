package markdown

import (
	"html"
	"strconv"
	"strings"

	"github.com/ziadkadry99/unseenbook/internal/theme"
)

const monoFont = `'Fira Code', 'Consolas', 'Monaco', 'Courier New', monospace`

const (
	h1Style        = "color: var(--primary-color); margin: 40px 0 25px 0; font-size: 2.2rem; font-weight: 800; text-align: center;"
	h2Style        = "color: var(--primary-color); margin: 35px 0 20px 0; font-size: 1.8rem; font-weight: 700; border-bottom: 2px solid var(--primary-color); padding-bottom: 10px;"
	h3Style        = "color: var(--primary-color); margin: 30px 0 15px 0; font-size: 1.4rem; font-weight: 600; border-left: 4px solid var(--primary-color); padding-left: 15px;"
	hMinorStyle    = "color: var(--text-color); margin: 25px 0 10px 0; font-size: 1.15rem; font-weight: 600;"
	paragraphStyle = "margin-bottom: 20px; line-height: 1.8; text-align: justify;"
	strongStyle    = "font-weight: 700; color: var(--text-color);"
	emStyle        = "font-style: italic; color: var(--text-color);"
	quoteStyle     = "border-left: 4px solid var(--primary-color); margin: 20px 0; padding: 15px 20px; background: linear-gradient(135deg, rgba(102, 126, 234, 0.05) 0%, rgba(118, 75, 162, 0.05) 100%); border-radius: 0 8px 8px 0; font-style: italic; color: var(--text-light);"
	tableStyle     = "width: 100%; border-collapse: collapse; margin: 20px 0; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 6px var(--shadow-color);"
	thStyle        = "padding: 12px; border-bottom: 2px solid var(--primary-color); color: var(--text-color); font-weight: 700; text-align: start;"
	tdStyle        = "padding: 12px; border-bottom: 1px solid var(--border-color); color: var(--text-color);"
	listStyle      = "margin: 20px 0; padding-left: 25px;"
	itemStyle      = "margin-bottom: 8px; padding-left: 10px;"
	ruleStyle      = "border: none; border-top: 1px solid var(--border-color); margin: 30px 0;"
	linkStyle      = "color: var(--primary-color); text-decoration: underline;"

	quoteParagraphStyle = "margin: 12px 0 0 0;"
)

// Options control rendering.
type Options struct {
	// TrimCodeIndent strips leading whitespace from every line of a code
	// block, matching how the book's code samples were first published.
	TrimCodeIndent bool
	// Highlight colours code blocks whose language chroma recognises.
	Highlight  bool
	LightStyle string
	DarkStyle  string
}

// DefaultOptions returns the rendering options used by the reader.
func DefaultOptions() Options {
	return Options{
		TrimCodeIndent: true,
		LightStyle:     "github",
		DarkStyle:      "monokai",
	}
}

// Renderer turns Markdown into styled HTML.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render converts src to HTML for the given theme. Code colours are baked
// in, so the output must be regenerated when the theme changes. Render
// never fails; input it cannot make sense of comes out as escaped text.
func (r *Renderer) Render(src string, t theme.Theme) (out string) {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	defer func() {
		if recover() != nil {
			out = `<p style="` + paragraphStyle + `">` + escape(src) + `</p>`
		}
	}()
	return r.HTML(Parse(src), t)
}

// HTML emits a parsed document.
func (r *Renderer) HTML(doc Document, t theme.Theme) string {
	w := &writer{r: r, code: t.Code(), theme: t}
	w.blocks(doc.Blocks)
	return w.sb.String()
}

type writer struct {
	r     *Renderer
	code  theme.CodePalette
	theme theme.Theme
	sb    strings.Builder
}

func (w *writer) blocks(blocks []Block) {
	for _, b := range blocks {
		w.block(b)
	}
}

func (w *writer) block(b Block) {
	switch b := b.(type) {
	case Heading:
		tag := "h" + strconv.Itoa(b.Level)
		w.open(tag, headingStyle(b.Level))
		w.inlines(b.Inlines)
		w.close(tag)
	case Paragraph:
		w.open("p", paragraphStyle)
		w.inlines(b.Inlines)
		w.close("p")
	case CodeBlock:
		w.codeBlock(b)
	case Quote:
		w.open("blockquote", quoteStyle)
		for i, inner := range b.Blocks {
			p, ok := inner.(Paragraph)
			switch {
			case !ok:
				w.block(inner)
			case i == 0:
				// The first paragraph sits directly in the box.
				w.inlines(p.Inlines)
			default:
				w.open("p", quoteParagraphStyle)
				w.inlines(p.Inlines)
				w.close("p")
			}
		}
		w.close("blockquote")
	case List:
		w.list(b)
	case Table:
		w.table(b)
	case Rule:
		w.sb.WriteString(`<hr style="` + ruleStyle + `">`)
	}
}

func headingStyle(level int) string {
	switch level {
	case 1:
		return h1Style
	case 2:
		return h2Style
	case 3:
		return h3Style
	}
	return hMinorStyle
}

func (w *writer) codeBlock(b CodeBlock) {
	lang := strings.TrimSpace(b.Language)
	if lang == "" {
		lang = "text"
	}
	code := strings.TrimSpace(b.Code)
	if w.r.opts.TrimCodeIndent {
		code = trimIndent(code)
	}

	w.sb.WriteString(`<div class="code-block" style="background: ` + w.code.BlockBg +
		`; border: 1px solid ` + w.code.BlockBorder +
		`; border-radius: 12px; padding: 20px; margin: 25px 0; overflow-x: auto; position: relative;">`)
	w.sb.WriteString(`<div style="background: ` + w.code.HeaderBg + `; color: ` + w.code.HeaderColor +
		`; padding: 8px 15px; border-radius: 8px 8px 0 0; margin: -20px -20px 15px -20px; font-size: 0.85rem; font-weight: 600; text-transform: uppercase; letter-spacing: 0.5px;">`)
	w.sb.WriteString(escape(lang))
	w.sb.WriteString(`</div>`)
	w.sb.WriteString(`<pre style="margin: 0; font-family: ` + monoFont + `; font-size: 0.9rem; line-height: 1.6; color: ` +
		w.code.Text + `; direction: ltr; text-align: left;"><code>`)

	if w.r.opts.Highlight {
		if highlighted, ok := highlight(code, lang, w.r.styleFor(w.theme)); ok {
			w.sb.WriteString(highlighted)
		} else {
			w.sb.WriteString(escape(code))
		}
	} else {
		w.sb.WriteString(escape(code))
	}
	w.sb.WriteString(`</code></pre></div>`)
}

func (r *Renderer) styleFor(t theme.Theme) string {
	if t == theme.Dark {
		return r.opts.DarkStyle
	}
	return r.opts.LightStyle
}

func trimIndent(code string) string {
	lines := strings.Split(code, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	return strings.Join(lines, "\n")
}

func (w *writer) list(l List) {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	w.sb.WriteString("<" + tag + ` style="` + listStyle + `"`)
	if l.Ordered && l.Start > 1 {
		w.sb.WriteString(` start="` + strconv.Itoa(l.Start) + `"`)
	}
	w.sb.WriteString(">")
	for _, item := range l.Items {
		w.open("li", itemStyle)
		for i, inner := range item {
			// Tight list items render their text without a paragraph box.
			if p, ok := inner.(Paragraph); ok && i == 0 {
				w.inlines(p.Inlines)
				continue
			}
			w.block(inner)
		}
		w.close("li")
	}
	w.close(tag)
}

func (w *writer) table(t Table) {
	w.open("table", tableStyle)
	if len(t.Header) > 0 {
		w.sb.WriteString("<thead><tr>")
		for _, cell := range t.Header {
			w.open("th", thStyle)
			w.inlines(cell)
			w.close("th")
		}
		w.sb.WriteString("</tr></thead>")
	}
	w.sb.WriteString("<tbody>")
	for _, row := range t.Rows {
		w.sb.WriteString("<tr>")
		for _, cell := range row {
			w.open("td", tdStyle)
			w.inlines(cell)
			w.close("td")
		}
		w.sb.WriteString("</tr>")
	}
	w.sb.WriteString("</tbody>")
	w.close("table")
}

func (w *writer) inlines(inlines []Inline) {
	for _, n := range inlines {
		switch n := n.(type) {
		case Text:
			w.sb.WriteString(escape(n.Value))
		case Code:
			w.sb.WriteString(`<code style="background: ` + w.code.InlineBg + `; color: ` + w.code.InlineColor +
				`; padding: 2px 6px; border-radius: 4px; font-family: ` + monoFont + `; font-size: 0.9em; font-weight: 600;">`)
			w.sb.WriteString(escape(n.Value))
			w.sb.WriteString("</code>")
		case Strong:
			w.open("strong", strongStyle)
			w.inlines(n.Children)
			w.close("strong")
		case Emphasis:
			w.open("em", emStyle)
			w.inlines(n.Children)
			w.close("em")
		case Strike:
			w.sb.WriteString("<del>")
			w.inlines(n.Children)
			w.sb.WriteString("</del>")
		case Link:
			w.sb.WriteString(`<a href="` + html.EscapeString(safeURL(n.URL)) + `"`)
			if n.Title != "" {
				w.sb.WriteString(` title="` + html.EscapeString(n.Title) + `"`)
			}
			w.sb.WriteString(` style="` + linkStyle + `">`)
			w.inlines(n.Children)
			w.sb.WriteString("</a>")
		case LineBreak:
			w.sb.WriteString("<br>")
		}
	}
}

func (w *writer) open(tag, style string) {
	w.sb.WriteString("<" + tag + ` style="` + style + `">`)
}

func (w *writer) close(tag string) {
	w.sb.WriteString("</" + tag + ">")
}

// escaper only touches markup characters; quotes in prose and code stay as
// written.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return escaper.Replace(s) }

func safeURL(u string) string {
	lower := strings.ToLower(strings.TrimSpace(u))
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "vbscript:") {
		return "#"
	}
	return u
}
