package markdown

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlight colours code with inline spans. It reports false when no lexer
// matches the language.
func highlight(code, lang, styleName string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	style := styles.Get(styleName)

	var sb strings.Builder
	for tok := iterator(); tok != chroma.EOF; tok = iterator() {
		entry := style.Get(tok.Type)
		css := tokenCSS(entry)
		if css == "" {
			sb.WriteString(escape(tok.Value))
			continue
		}
		sb.WriteString(`<span style="` + css + `">`)
		sb.WriteString(escape(tok.Value))
		sb.WriteString(`</span>`)
	}
	return sb.String(), true
}

func tokenCSS(e chroma.StyleEntry) string {
	var parts []string
	if e.Colour.IsSet() {
		parts = append(parts, "color: "+e.Colour.String())
	}
	if e.Bold == chroma.Yes {
		parts = append(parts, "font-weight: bold")
	}
	if e.Italic == chroma.Yes {
		parts = append(parts, "font-style: italic")
	}
	return strings.Join(parts, "; ")
}
