package markdown

import (
	"regexp"
	"strings"
	"testing"

	"github.com/ziadkadry99/unseenbook/internal/theme"
)

func render(src string, th theme.Theme) string {
	return NewRenderer(DefaultOptions()).Render(src, th)
}

func TestHeadingThenParagraph(t *testing.T) {
	out := render("# Title\n\nSome text", theme.Light)

	re := regexp.MustCompile(`^<h1 style="[^"]*text-align: center;[^"]*">Title</h1><p style="[^"]*">Some text</p>$`)
	if !re.MatchString(out) {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "font-size: 2.2rem") {
		t.Error("h1 should use the 2.2rem title size")
	}
}

func TestHeadingLevels(t *testing.T) {
	out := render("## Two\n\n### Three\n\n#### Four", theme.Light)
	if !strings.Contains(out, `<h2 style="`+h2Style+`">Two</h2>`) {
		t.Errorf("h2 missing bottom-border style: %s", out)
	}
	if !strings.Contains(out, "border-left: 4px solid var(--primary-color)") {
		t.Error("h3 should carry a left border")
	}
	if !strings.Contains(out, "<h4 ") {
		t.Error("h4 should render")
	}
}

func TestFencedCodeBlock(t *testing.T) {
	out := render("```dart\nprint('hi');\n```", theme.Light)

	if !strings.Contains(out, `text-transform: uppercase; letter-spacing: 0.5px;">dart</div>`) {
		t.Errorf("missing dart label: %s", out)
	}
	re := regexp.MustCompile(`<pre [^>]*><code>print\('hi'\);</code></pre>`)
	if !re.MatchString(out) {
		t.Errorf("missing code body: %s", out)
	}
	if !strings.Contains(out, "background: #f8f9fa") {
		t.Error("light code block should use #f8f9fa")
	}
}

func TestCodeBlockThemeColours(t *testing.T) {
	src := "```\nx := 1\n```"
	dark := render(src, theme.Dark)
	if !strings.Contains(dark, "background: #2d3748") || !strings.Contains(dark, "color: #e2e8f0") {
		t.Errorf("dark palette not applied: %s", dark)
	}
	if !strings.Contains(dark, ">text</div>") {
		t.Error("untagged fence should be labelled text")
	}
}

func TestCodeBlockKeepsMarkdownLiteral(t *testing.T) {
	out := render("```md\n# not a heading\n**not bold**\n| a | b |\n```", theme.Light)
	if strings.Contains(out, "<h1") || strings.Contains(out, "<strong") || strings.Contains(out, "<table") {
		t.Errorf("markdown inside a fence was interpreted: %s", out)
	}
	if !strings.Contains(out, "# not a heading\n**not bold**") {
		t.Errorf("fence content not preserved: %s", out)
	}
}

func TestTrimCodeIndent(t *testing.T) {
	src := "```dart\nvoid main() {\n    print('x');\n}\n```"

	trimmed := render(src, theme.Light)
	if !strings.Contains(trimmed, "{\nprint('x');\n}") {
		t.Errorf("indentation should be stripped: %s", trimmed)
	}

	opts := DefaultOptions()
	opts.TrimCodeIndent = false
	kept := NewRenderer(opts).Render(src, theme.Light)
	if !strings.Contains(kept, "{\n    print('x');\n}") {
		t.Errorf("indentation should be kept: %s", kept)
	}
}

func TestInlineStyles(t *testing.T) {
	out := render("Use `setState` with **care** and *thought*.", theme.Dark)
	if !strings.Contains(out, "background: #4a5568; color: #fbbf24") {
		t.Errorf("dark inline code colours missing: %s", out)
	}
	if !strings.Contains(out, `<strong style="`+strongStyle+`">care</strong>`) {
		t.Errorf("bold missing: %s", out)
	}
	if !strings.Contains(out, `<em style="`+emStyle+`">thought</em>`) {
		t.Errorf("italic missing: %s", out)
	}

	light := render("`x`", theme.Light)
	if !strings.Contains(light, "background: #f1f3f4; color: #d63384") {
		t.Errorf("light inline code colours missing: %s", light)
	}
}

func TestMultipleTablesAndLists(t *testing.T) {
	src := `| A | B |
|---|---|
| 1 | 2 |

Between.

| C | D |
|---|---|
| 3 | 4 |

- one
- two

Middle.

1. first
2. second

- three
`
	out := render(src, theme.Light)
	if n := strings.Count(out, "<table "); n != 2 {
		t.Errorf("tables = %d, want 2", n)
	}
	if n := strings.Count(out, "<ul "); n != 2 {
		t.Errorf("unordered lists = %d, want 2", n)
	}
	if n := strings.Count(out, "<ol "); n != 1 {
		t.Errorf("ordered lists = %d, want 1", n)
	}
	if n := strings.Count(out, "<li "); n != 5 {
		t.Errorf("list items = %d, want 5", n)
	}
	if !strings.Contains(out, `<th style="`+thStyle+`">A</th>`) {
		t.Errorf("header cell missing: %s", out)
	}
	if !strings.Contains(out, `<td style="`+tdStyle+`">4</td>`) {
		t.Errorf("body cell missing: %s", out)
	}
}

func TestBlockquote(t *testing.T) {
	out := render("> Widgets are blueprints.", theme.Light)
	want := `<blockquote style="` + quoteStyle + `">Widgets are blueprints.</blockquote>`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}

	out = render("> first line\n>\n> second line", theme.Light)
	want = `<blockquote style="` + quoteStyle + `">first line<p style="` + quoteParagraphStyle + `">second line</p></blockquote>`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
}

func TestEscaping(t *testing.T) {
	out := render("a < b && c > d", theme.Light)
	if !strings.Contains(out, "a &lt; b &amp;&amp; c &gt; d") {
		t.Errorf("text not escaped: %s", out)
	}
	code := render("```\n<div>\"x\"</div>\n```", theme.Light)
	if !strings.Contains(code, "&lt;div&gt;\"x\"&lt;/div&gt;") {
		t.Errorf("code not escaped: %s", code)
	}
}

func TestUnsafeLinks(t *testing.T) {
	out := render("[x](javascript:alert(1))", theme.Light)
	if strings.Contains(out, "javascript:") {
		t.Errorf("javascript link survived: %s", out)
	}
	ok := render("[docs](https://flutter.dev)", theme.Light)
	if !strings.Contains(ok, `href="https://flutter.dev"`) {
		t.Errorf("link missing: %s", ok)
	}
}

func TestEmptyInput(t *testing.T) {
	if out := render("   \n", theme.Light); out != "" {
		t.Errorf("Render(blank) = %q, want empty", out)
	}
}

func TestHighlight(t *testing.T) {
	opts := DefaultOptions()
	opts.Highlight = true
	out := NewRenderer(opts).Render("```go\nfunc main() {}\n```", theme.Dark)
	if !strings.Contains(out, "<span style=") {
		t.Errorf("expected highlighted spans: %s", out)
	}
	if !strings.Contains(out, "main") {
		t.Error("code text lost while highlighting")
	}

	plain := NewRenderer(opts).Render("```nosuchlanguage\nabc\n```", theme.Dark)
	if !strings.Contains(plain, "<code>abc</code>") {
		t.Errorf("unknown language should fall back to plain text: %s", plain)
	}
}

func TestParseHeadings(t *testing.T) {
	doc := Parse("# Chapter\n\n## 1.1 First\n\ntext\n\n## 1.2 Second `code`")
	got := doc.Headings(2)
	if len(got) != 2 || got[0] != "1.1 First" || got[1] != "1.2 Second code" {
		t.Errorf("Headings(2) = %q", got)
	}
}
