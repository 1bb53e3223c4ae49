package ptmpl

import (
	"bytes"
	"fmt"
	"strings"
)

// A ByteRenderer accumulates heterogeneous fragments into a byte buffer.
type ByteRenderer struct {
	bytes.Buffer
}

// Render writes the given inputs to the buffer, converting each to its
// natural textual form.
func (r *ByteRenderer) Render(inputs ...any) {
	for _, in := range inputs {
		switch v := in.(type) {
		case string:
			r.WriteString(v)
		case []byte:
			r.Write(v)
		case rune:
			r.WriteRune(v)
		case byte:
			r.WriteByte(v)
		case int:
			fmt.Fprintf(&r.Buffer, "%d", v)
		default:
			fmt.Fprintf(&r.Buffer, "%v", v)
		}
	}
}

// Renderln writes the given inputs followed by a newline.
func (r *ByteRenderer) Renderln(inputs ...any) {
	r.Render(inputs...)
	r.WriteByte('\n')
}

// A styleRule is one CSS rule block gated by a predicate over the
// detected features. Rules are emitted in table order, each at most once.
type styleRule struct {
	css  string
	when func(features) bool
}

func always(features) bool { return true }

var styleRules = []styleRule{
	{css: `body {
  max-width: 800px;
  margin: 0 auto;
  font-family: sans-serif;
}`, when: always},
	{css: `h1 {
  margin-top: 1em;
  font-size: 2em;
}`, when: func(f features) bool { return f.h1 }},
	{css: `textarea {
  width: 100%;
  height: 100px;
  margin-bottom: 1em;
}`, when: func(f features) bool { return f.textarea }},
	{css: `input.inline-text {
  padding: 2px;
  font-size: 1em;
  text-align: center;
}`, when: func(f features) bool { return f.inlineText }},
	{css: `button {
  padding: 0.5em 1em;
  cursor: pointer;
}`, when: always},
	{css: `.result-box {
  white-space: pre-wrap;
  border: 1px solid #ddd;
  padding: 1em;
  margin-top: 1em;
}`, when: always},
	{css: `.checkbox-container {
  margin-bottom: 1em;
}`, when: func(f features) bool { return f.checkbox }},
	{css: `label {
  display: block;
  margin-bottom: 0.5em;
}`, when: func(f features) bool { return f.checkbox }},
	{css: `.comment {
  color: grey;
}`, when: func(f features) bool { return f.comment }},
	{css: `.inline-input {
  width: 3em;
  padding: 2px;
  font-size: 1em;
  text-align: center;
}`, when: func(f features) bool { return f.stepper }},
}

// styleBlock builds the <style> element containing only the rules whose
// trigger feature is present in the document.
func (d *document) styleBlock() string {
	var rules []string
	for _, r := range styleRules {
		if r.when(d.feats) {
			rules = append(rules, r.css)
		}
	}
	return "<style>\n" + strings.Join(rules, "\n") + "\n</style>"
}

// scriptBlock builds the client-side collection script. On the button
// click it walks every prompt-item element plus verbatim code fragments in
// document order, extracts the contributing text per element kind, joins
// the pieces with newlines, copies the result to the clipboard and reveals
// the result area. The file-reading branches are emitted only when the
// document actually contains a file loader.
func (d *document) scriptBlock() string {
	var br ByteRenderer

	br.Render("<script>\n(function(){\n")
	br.Render("  document.getElementById(\"generateButton\").addEventListener(\"click\", async () => {\n")
	br.Render("    const promptItems = [];\n")
	if d.feats.fileLoad {
		br.Render("    const elements = document.querySelectorAll(\"#promptContent .prompt-item, pre code, input[type='file']\");\n")
	} else {
		br.Render("    const elements = document.querySelectorAll(\"#promptContent .prompt-item, pre code\");\n")
	}
	br.Render("    for (const el of elements) {\n")
	br.Render("      const tag = el.tagName.toLowerCase();\n")
	br.Render("      if (tag === \"textarea\") {\n")
	br.Render("        promptItems.push(el.value);\n")
	br.Render("      } else if (tag === \"p\") {\n")
	br.Render("        promptItems.push(getElementText(el));\n")
	br.Render("      } else if (tag === \"label\") {\n")
	br.Render("        const checkbox = el.querySelector(\"input[type='checkbox']\");\n")
	br.Render("        if (checkbox && checkbox.checked) {\n")
	br.Render("          promptItems.push(getElementText(el));\n")
	br.Render("        }\n")
	br.Render("      } else if (tag === \"code\") {\n")
	br.Render("        promptItems.push(el.textContent);\n")
	br.Render("      } else if (tag === \"input\" && el.type === \"text\") {\n")
	br.Render("        promptItems.push(el.value);\n")
	br.Render("      }\n")
	if d.feats.fileLoad {
		br.Render("      else if (tag === \"input\" && el.type === \"file\") {\n")
		br.Render("        if (el.files && el.files.length > 0) {\n")
		br.Render("          try {\n")
		br.Render("            const fileContent = await readFileAsText(el.files[0]);\n")
		br.Render("            promptItems.push(fileContent);\n")
		br.Render("          } catch (err) {\n")
		br.Render("            console.error(\"Error reading file:\", err);\n")
		br.Render("          }\n")
		br.Render("        }\n")
		br.Render("      }\n")
	}
	br.Render("    }\n")
	br.Render("    const prompt = promptItems.join(\"\\n\");\n")
	br.Render("    navigator.clipboard.writeText(prompt)\n")
	br.Render("      .then(() => { alert(\"Copied to clipboard!\"); })\n")
	br.Render("      .catch((err) => { alert(\"Failed to copy: \" + err); });\n")
	br.Render("    const resultPromptDiv = document.getElementById(\"resultPrompt\");\n")
	br.Render("    resultPromptDiv.hidden = false;\n")
	br.Render("    resultPromptDiv.textContent = prompt;\n")
	br.Render("  });\n")
	if d.feats.fileLoad {
		br.Render("\n  function readFileAsText(file) {\n")
		br.Render("    return new Promise((resolve, reject) => {\n")
		br.Render("      const reader = new FileReader();\n")
		br.Render("      reader.onload = () => resolve(reader.result);\n")
		br.Render("      reader.onerror = reject;\n")
		br.Render("      reader.readAsText(file);\n")
		br.Render("    });\n")
		br.Render("  }\n")
	}
	br.Render("\n  function getElementText(el) {\n")
	br.Render("    let text = \"\";\n")
	br.Render("    el.childNodes.forEach(node => {\n")
	br.Render("      if (node.nodeType === Node.ELEMENT_NODE && node.tagName.toLowerCase() === \"input\") {\n")
	br.Render("        if (node.type === \"text\" || node.type === \"number\") {\n")
	br.Render("          text += node.value;\n")
	br.Render("        }\n")
	br.Render("      } else {\n")
	br.Render("        text += node.textContent;\n")
	br.Render("      }\n")
	br.Render("    });\n")
	br.Render("    return text.replace(/\\s+/g, \" \").trim();\n")
	br.Render("  }\n")
	br.Render("})();\n</script>")

	return br.String()
}

// assemble wraps the body fragments, the conditional style and script
// blocks, the title, the language attribute and the localized button
// label into one self-contained HTML document.
func (d *document) assemble() string {
	body := "<div id=\"promptContent\">\n" + strings.Join(d.bodyParts, "\n") + "\n</div>"

	var br ByteRenderer
	br.Renderln("<!DOCTYPE html>")
	br.Renderln(`<html lang="`, d.lang, `">`)
	br.Renderln("<head>")
	br.Renderln(`  <meta charset="UTF-8" />`)
	br.Renderln("  <title>", d.title, "</title>")
	br.Renderln("  ", d.styleBlock())
	br.Renderln("</head>")
	br.Renderln("<body>")
	br.Renderln(body)
	br.Renderln()
	br.Renderln(`<button id="generateButton">`, buttonLabel(d.langKey), "</button>")
	br.Renderln()
	br.Renderln(`<div class="result-box" id="resultPrompt" hidden></div>`)
	br.Renderln()
	br.Renderln(d.scriptBlock())
	br.Renderln()
	br.Renderln("</body>")
	br.Renderln("</html>")

	return br.String()
}
