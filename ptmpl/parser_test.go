package ptmpl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingAndParagraph(t *testing.T) {
	html, _ := Convert("# My Document\nThis is a paragraph.")

	assert.Contains(t, html, "<h1>My Document</h1>")
	assert.Contains(t, html, `<p class="prompt-item">This is a paragraph.</p>`)
	assert.Contains(t, html, "<title>My Document</title>")
}

func TestHeadingLevels(t *testing.T) {
	html, _ := Convert("### Third level")
	assert.Contains(t, html, "<h3>Third level</h3>")
}

func TestFirstHeadingWinsTitle(t *testing.T) {
	html, _ := Convert("# First\n# Second")

	assert.Contains(t, html, "<title>First</title>")
	assert.Contains(t, html, "<h1>Second</h1>")
}

func TestDefaultTitle(t *testing.T) {
	html, _ := Convert("no headings here")
	assert.Contains(t, html, "<title>Document</title>")
}

func TestCheckboxRun(t *testing.T) {
	html, _ := Convert("[ ] Option 1\n[x] Option 2")

	assert.Contains(t, html, `<div class="checkbox-container">`)
	assert.Contains(t, html, `<label class="prompt-item"><input type="checkbox" id="Option1" /> Option 1</label>`)
	assert.Contains(t, html, `<label class="prompt-item"><input type="checkbox" id="Option2" checked /> Option 2</label>`)
}

func TestCheckboxUppercaseChecked(t *testing.T) {
	html, _ := Convert("[X] Shouting option")
	assert.Contains(t, html, `id="Shoutingoption" checked`)
}

func TestCheckboxIdentifierStripsNonWordChars(t *testing.T) {
	html, _ := Convert("[ ] B-2: the (best) option!")
	assert.Contains(t, html, `id="B2thebestoption"`)
}

func TestCheckboxRunsSplitByOtherLines(t *testing.T) {
	html, _ := Convert("[ ] One\ntext\n[ ] Two")

	// Two separate container fragments, with the paragraph in between.
	assert.Equal(t, 2, strings.Count(html, `<div class="checkbox-container">`))
}

func TestTextareaBecomesStandaloneItem(t *testing.T) {
	html, _ := Convert("[[[Input text:something]]]")
	assert.Contains(t, html, `<textarea class="prompt-item" id="textbox" placeholder="Input text">something</textarea>`)
}

func TestBlankLinesContributeNothing(t *testing.T) {
	html, _ := Convert("one\n\n\ntwo")

	assert.Contains(t, html, `<p class="prompt-item">one</p>`)
	assert.Contains(t, html, `<p class="prompt-item">two</p>`)
	assert.NotContains(t, html, `<p class="prompt-item"></p>`)
}

func TestVerbatimBlockPreservesLines(t *testing.T) {
	html, _ := Convert("Block verbatim:\n{{{\nprint('hello')\nprint('world')\n}}}")

	assert.Contains(t, html, "<pre><code>\nprint('hello')\nprint('world')\n</code></pre>")
}

func TestVerbatimBlockSingleLineMarkers(t *testing.T) {
	// Open and close markers on the same physical line must not loop.
	html, _ := Convert("<pre><code>x</code></pre>")
	assert.Contains(t, html, "<pre><code>x</code></pre>")
}

func TestVerbatimInlineStaysInParagraph(t *testing.T) {
	html, _ := Convert("Inline: {{{code here}}}")
	assert.Contains(t, html, `<p class="prompt-item">Inline: <code>code here</code></p>`)
}

func TestCombinedDocumentOrdering(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"Introduction text.",
		"[[[Input text:something]]]",
		"[[Inline box:value]]",
		"Number: << 100 >>",
		"File: (())",
		"(* A comment *)",
		"[ ] Checkbox Option",
		"Inline verbatim: {{{inline code}}}",
		"Block verbatim:",
		"{{{",
		"Block",
		"Content",
		"}}}",
	}, "\n")

	html, lang := Convert(src)
	require.Equal(t, "en", lang)

	// Exactly one fragment of each kind.
	assert.Equal(t, 1, strings.Count(html, "<h1>"))
	assert.Equal(t, 1, strings.Count(html, "<textarea"))
	assert.Equal(t, 1, strings.Count(html, `type="text"`))
	assert.Equal(t, 1, strings.Count(html, `type="number"`))
	assert.Equal(t, 1, strings.Count(html, `type="file"`))
	assert.Equal(t, 1, strings.Count(html, `class="comment"`))
	assert.Equal(t, 1, strings.Count(html, `type="checkbox"`))
	assert.Equal(t, 1, strings.Count(html, "<pre><code>"))

	// Fragments appear in source order inside the body.
	body := html[strings.Index(html, `<div id="promptContent">`):]
	order := []string{
		"<h1>Title</h1>",
		"Introduction text.",
		"<textarea",
		`class="inline-text"`,
		`class="inline-input"`,
		`type="file"`,
		`class="comment"`,
		`type="checkbox"`,
		"<code>inline code</code>",
		"<pre><code>",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(body, marker)
		require.GreaterOrEqual(t, idx, 0, "missing fragment %q", marker)
		assert.Greater(t, idx, last, "fragment %q out of order", marker)
		last = idx
	}
}

func TestConverterIsReusable(t *testing.T) {
	c := &Converter{}

	html1, lang1 := c.Convert("#lang:fr#\n# Un\ntexte")
	html2, lang2 := c.Convert("# Two\ntext")

	assert.Equal(t, "fr", lang1)
	assert.Equal(t, "en", lang2)
	assert.Contains(t, html1, "<title>Un</title>")
	assert.Contains(t, html2, "<title>Two</title>")
}
