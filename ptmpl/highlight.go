package ptmpl

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	hlhtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlightVerbatim colorizes block verbatim content with chroma. The
// lexer is guessed from the content itself, the style is looked up by
// name (chroma falls back to a default style for unknown names). The
// formatter wraps tokens in inline-styled spans without its own <pre>
// wrapper, so the caller's <pre><code> shell and the fragment's text
// content stay exactly as they were.
func highlightVerbatim(content string, styleName string) (string, error) {
	l := lexers.Analyse(content)
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	s := styles.Get(styleName)

	f := hlhtml.New(hlhtml.Standalone(false), hlhtml.PreventSurroundingPre(true))

	it, err := l.Tokenise(nil, content)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, s, it); err != nil {
		return "", err
	}

	return buf.String(), nil
}
