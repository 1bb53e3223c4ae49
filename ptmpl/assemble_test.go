package ptmpl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleRulesAlwaysPresent(t *testing.T) {
	html, _ := Convert("just text")

	assert.Contains(t, html, "body {")
	assert.Contains(t, html, "button {")
	assert.Contains(t, html, ".result-box {")
}

func TestStyleRulesConditional(t *testing.T) {
	tests := []struct {
		name string
		src  string
		rule string
	}{
		{"h1", "# Heading", "h1 {"},
		{"textarea", "[[[a:b]]]", "textarea {"},
		{"inline text", "[[a:b]]", "input.inline-text {"},
		{"checkbox container", "[ ] Option", ".checkbox-container {"},
		{"label", "[ ] Option", "label {"},
		{"comment", "(* note *)", ".comment {"},
		{"stepper", "<< 3 >>", ".inline-input {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			with, _ := Convert(tt.src)
			without, _ := Convert("plain text only")

			assert.Contains(t, with, tt.rule)
			assert.NotContains(t, without, tt.rule)
		})
	}
}

func TestStyleRuleIncludedOnce(t *testing.T) {
	html, _ := Convert("<< 1 >> and << 2 >> and << 3 >>")
	assert.Equal(t, 1, strings.Count(html, ".inline-input {"))
}

func TestLiteralTagTextDoesNotTriggerRules(t *testing.T) {
	// User text that merely mentions a marker string must not pull in
	// the corresponding style rule or script branch.
	html, _ := Convert(`the literal string class="inline-text" and <textarea and <input type="file"`)

	assert.NotContains(t, html, "input.inline-text {")
	assert.NotContains(t, html, "textarea {")
	assert.NotContains(t, html, "readFileAsText")
}

func TestScriptFileBranchesConditional(t *testing.T) {
	with, _ := Convert("File: (())")
	without, _ := Convert("no file loader")

	assert.Contains(t, with, "readFileAsText")
	assert.Contains(t, with, "input[type='file']")
	assert.NotContains(t, without, "readFileAsText")
	assert.NotContains(t, without, "input[type='file']")
}

func TestScriptCoreAlwaysPresent(t *testing.T) {
	html, _ := Convert("anything")

	assert.Contains(t, html, `document.getElementById("generateButton")`)
	assert.Contains(t, html, "navigator.clipboard.writeText(prompt)")
	assert.Contains(t, html, "resultPromptDiv.hidden = false;")
	assert.Contains(t, html, "#promptContent .prompt-item, pre code")
}

func TestDocumentSkeleton(t *testing.T) {
	html, _ := Convert("# Doc\ntext")

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<meta charset="UTF-8" />`,
		`<div id="promptContent">`,
		`<button id="generateButton">`,
		`<div class="result-box" id="resultPrompt" hidden></div>`,
		"</html>",
	} {
		assert.Contains(t, html, want)
	}
}

func TestByteRenderer(t *testing.T) {
	var br ByteRenderer
	br.Render("a", []byte("b"), 3)
	br.Renderln("!")

	assert.Equal(t, "ab3!\n", br.String())
}
