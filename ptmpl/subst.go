package ptmpl

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// The substitution rules, in the order they are applied over the whole
// text. Order matters: the triple-bracket form must be consumed before the
// double-bracket form (which is a textual subset of it), and verbatim spans
// run last so their replacement wrappers are never re-matched.
var (
	reStepper    = regexp.MustCompile(`<<\s*(\d+)\s*>>`)
	reTextarea   = regexp.MustCompile(`\[\[\[\s*([^:]*?)\s*:\s*(.*?)\s*\]\]\]`)
	reInlineText = regexp.MustCompile(`\[\[\s*([^:]*?)\s*:\s*(.*?)\s*\]\]`)
	reFileLoad   = regexp.MustCompile(`\(\(\s*\)\)`)
	reComment    = regexp.MustCompile(`\(\*\s*(.*?)\s*\*\)`)
	reVerbatim   = regexp.MustCompile(`(?s)\{\{\{(.*?)\}\}\}`)
)

// substitute rewrites every inline widget marker in src into its HTML
// form, recording in d.feats which widget kinds were produced. Unmatched
// or unterminated markers are left alone and end up as literal paragraph
// text in the grouping pass.
func (d *document) substitute(src string, highlightStyle string, log *zap.SugaredLogger) string {
	src = d.substStepper(src)
	src = d.substTextarea(src)
	src = d.substInlineText(src)
	src = d.substFileLoad(src)
	src = d.substComment(src)
	src = d.substVerbatim(src, highlightStyle, log)
	return src
}

// substStepper rewrites << N >> into a small numeric input with N as its
// default value. The stepper carries no prompt-item marker: its value is
// harvested as part of the enclosing element's text.
func (d *document) substStepper(src string) string {
	if reStepper.MatchString(src) {
		d.feats.stepper = true
	}
	return reStepper.ReplaceAllString(src,
		`<input type="number" class="inline-input" value="${1}" min="1" />`)
}

// trimPlaceholder trims surrounding whitespace and one layer of straight
// double quotes from a captured placeholder.
func trimPlaceholder(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

// substTextarea rewrites [[[placeholder:prefilled]]] into a multi-line
// text box. The prompt-item marker is injected later by the grouping pass,
// so the textarea is collected as a standalone item.
func (d *document) substTextarea(src string) string {
	return reTextarea.ReplaceAllStringFunc(src, func(m string) string {
		g := reTextarea.FindStringSubmatch(m)
		placeholder := trimPlaceholder(g[1])
		prefilled := strings.TrimSpace(g[2])
		d.feats.textarea = true
		return `<textarea id="textbox" placeholder="` + placeholder + `">` + prefilled + `</textarea>`
	})
}

// substInlineText rewrites [[placeholder:prefilled]] into a single-line
// text input. Must run after substTextarea so triple-bracket spans are
// already consumed.
func (d *document) substInlineText(src string) string {
	return reInlineText.ReplaceAllStringFunc(src, func(m string) string {
		g := reInlineText.FindStringSubmatch(m)
		placeholder := trimPlaceholder(g[1])
		prefilled := strings.TrimSpace(g[2])
		d.feats.inlineText = true
		return `<input type="text" class="inline-text" placeholder="` + placeholder + `" value="` + prefilled + `" />`
	})
}

// substFileLoad rewrites (()) into a file-selection input. The file
// content is read client-side at collection time, so the input is marked
// as a prompt item here.
func (d *document) substFileLoad(src string) string {
	if reFileLoad.MatchString(src) {
		d.feats.fileLoad = true
	}
	return reFileLoad.ReplaceAllString(src,
		`<input type="file" id="fileLoad" class="prompt-item" />`)
}

// substComment rewrites (* text *) into a visible fragment that the
// collection script must never include in the assembled prompt.
func (d *document) substComment(src string) string {
	return reComment.ReplaceAllStringFunc(src, func(m string) string {
		g := reComment.FindStringSubmatch(m)
		d.feats.comment = true
		return `<span class="comment" data-no-clipboard="true">` + g[1] + `</span>`
	})
}

// substVerbatim rewrites {{{ ... }}} spans. Content with an embedded
// newline becomes a block fragment padded with blank lines so the grouping
// pass can find its boundaries; single-line content stays inline. The
// captured text is emitted exactly as written and is never re-interpreted,
// unless a highlight style asks for colorized block fragments (which
// preserves the text content, only wrapping tokens in styled spans).
func (d *document) substVerbatim(src string, highlightStyle string, log *zap.SugaredLogger) string {
	return reVerbatim.ReplaceAllStringFunc(src, func(m string) string {
		content := reVerbatim.FindStringSubmatch(m)[1]

		if !strings.Contains(content, "\n") {
			return "<code>" + content + "</code>"
		}

		if highlightStyle != "" {
			hl, err := highlightVerbatim(content, highlightStyle)
			if err != nil {
				log.Warnw("verbatim highlighting failed, keeping raw content", "error", err)
			} else {
				content = hl
			}
		}

		return "\n" + blockVerbatimOpen + content + blockVerbatimClose + "\n"
	})
}
