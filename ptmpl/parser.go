// Package ptmpl converts an extended plain-text markup dialect into a
// self-contained interactive HTML document. The dialect augments headings
// and paragraphs with inline widgets (text boxes, checkboxes, file loaders,
// numeric steppers, verbatim blocks, comments) so an author can build a
// fill-in-the-blanks prompt template. The generated document carries a
// script that collects the widget values in order and copies the assembled
// prompt to the clipboard.
//
// The conversion is a pure function over the source text: it never fails,
// whatever the input. Malformed or unterminated widget syntax is left as
// literal text and falls through to plain paragraph wrapping.
package ptmpl

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Markers of a block-level verbatim fragment in substituted text. The
// line-grouping pass uses them to re-join a fragment spanning several
// physical lines.
const blockVerbatimOpen = "<pre><code>"
const blockVerbatimClose = "</code></pre>"

const defaultTitle = "Document"

// features records which constructs were actually emitted while building
// the body. Style rules and script blocks are gated on these booleans
// instead of re-scanning the generated HTML, so literal user text that
// happens to contain a tag name cannot trigger a rule.
type features struct {
	h1         bool
	textarea   bool
	inlineText bool
	fileLoad   bool
	comment    bool
	stepper    bool
	checkbox   bool
}

// A Converter turns source text in the ptmpl dialect into a complete HTML
// document. The zero value is ready to use. A Converter holds no per-call
// state, so a single instance may be used concurrently on independent
// inputs.
type Converter struct {
	// Logger receives diagnostics about the conversion. Nil means silent.
	Logger *zap.SugaredLogger

	// HighlightStyle names a chroma style used to colorize block verbatim
	// fragments. Empty leaves verbatim content byte-for-byte untouched.
	HighlightStyle string
}

// document accumulates the transient state of one conversion.
type document struct {
	title      string
	titleFixed bool // front matter or an earlier heading already set the title
	lang       string
	langKey    string
	bodyParts  []string
	feats      features
}

// Convert processes src and returns the complete HTML document together
// with the detected language code (the original spelling, not the
// normalized lookup key).
func (c *Converter) Convert(src string) (html string, lang string) {
	log := c.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	d := &document{title: defaultTitle}

	src = d.extractFrontMatter(src, log)
	src = d.extractLang(src)
	src = d.substitute(src, c.HighlightStyle, log)
	d.groupLines(src)

	log.Debugw("document converted", "lang", d.lang, "title", d.title, "fragments", len(d.bodyParts))

	return d.assemble(), d.lang
}

// Convert processes src with a default Converter. See Converter.Convert.
func Convert(src string) (html string, lang string) {
	c := &Converter{}
	return c.Convert(src)
}

var (
	reHeading       = regexp.MustCompile(`^(#{1,6})\s*(.+)$`)
	reCheckboxStart = regexp.MustCompile(`^\[(?:x|X| )\]`)
	reCheckboxLine  = regexp.MustCompile(`^\[([xX ]?)\]\s*(.+)$`)
	reClassAttr     = regexp.MustCompile(`class="([^"]+)"`)
	reWhitespace    = regexp.MustCompile(`\s+`)
	reNonWord       = regexp.MustCompile(`\W+`)
)

// groupLines re-splits the substituted text into lines and builds the
// ordered body fragment list. Multi-line constructs (block verbatim,
// checkbox runs) each contribute one joined fragment; everything else maps
// one source line to one fragment, in source order.
func (d *document) groupLines(src string) {
	lines := strings.Split(src, "\n")

	i := 0
	for i < len(lines) {

		// A block verbatim fragment is consumed exactly as it appears,
		// up to and including the line carrying the closing marker. The
		// open and close markers may sit on the same physical line.
		if strings.HasPrefix(strings.TrimLeft(lines[i], " \t"), blockVerbatimOpen) {
			var verbatim []string
			for i < len(lines) {
				verbatim = append(verbatim, lines[i])
				if strings.HasSuffix(strings.TrimRight(lines[i], " \t"), blockVerbatimClose) {
					i++
					break
				}
				i++
			}
			d.bodyParts = append(d.bodyParts, strings.Join(verbatim, "\n"))
			continue
		}

		line := strings.TrimSpace(lines[i])

		switch {
		case strings.HasPrefix(line, "#"):
			d.groupHeading(line)
			i++

		case reCheckboxStart.MatchString(line):
			i = d.groupCheckboxRun(lines, i)

		default:
			d.groupPlainLine(line)
			i++
		}
	}
}

// groupHeading emits a heading fragment. The first heading of the document
// fixes the title; later headings never override it. A line starting with
// '#' that does not form a heading is dropped.
func (d *document) groupHeading(line string) {
	m := reHeading.FindStringSubmatch(line)
	if m == nil {
		return
	}

	level := len(m[1])
	text := strings.TrimSpace(m[2])

	if !d.titleFixed {
		d.title = text
		d.titleFixed = true
	}
	if level == 1 {
		d.feats.h1 = true
	}

	d.bodyParts = append(d.bodyParts, fmt.Sprintf("<h%d>%s</h%d>", level, text, level))
}

// groupCheckboxRun consumes every consecutive checkbox line starting at
// lines[start] and wraps them in one container fragment. It returns the
// index of the first line after the run.
func (d *document) groupCheckboxRun(lines []string, start int) int {
	var block []string

	i := start
	for i < len(lines) && reCheckboxStart.MatchString(strings.TrimSpace(lines[i])) {
		cb := strings.TrimSpace(lines[i])
		if m := reCheckboxLine.FindStringSubmatch(cb); m != nil {
			status := strings.TrimSpace(strings.ToLower(m[1]))
			label := strings.TrimSpace(m[2])

			// The id is the label with whitespace and then all remaining
			// non-word characters removed, so it stays stable across
			// cosmetic label edits.
			id := reWhitespace.ReplaceAllString(label, "")
			id = reNonWord.ReplaceAllString(id, "")

			checked := ""
			if status == "x" {
				checked = " checked"
			}
			block = append(block,
				fmt.Sprintf(`<label class="prompt-item"><input type="checkbox" id="%s"%s /> %s</label>`, id, checked, label))
		}
		i++
	}

	if len(block) > 0 {
		d.feats.checkbox = true
		d.bodyParts = append(d.bodyParts, `<div class="checkbox-container">`)
		d.bodyParts = append(d.bodyParts, block...)
		d.bodyParts = append(d.bodyParts, `</div>`)
	}

	return i
}

// groupPlainLine handles every remaining non-blank line. A textarea
// produced by the substitution pass becomes a standalone collectible item;
// anything else is wrapped in a collectible paragraph. Blank lines
// contribute nothing.
func (d *document) groupPlainLine(line string) {
	if strings.HasPrefix(line, "<textarea") {
		if reClassAttr.MatchString(line) {
			line = reClassAttr.ReplaceAllString(line, `class="$1 prompt-item"`)
		} else {
			line = strings.Replace(line, "<textarea", `<textarea class="prompt-item"`, 1)
		}
		d.bodyParts = append(d.bodyParts, line)
		return
	}

	if line != "" {
		d.bodyParts = append(d.bodyParts, `<p class="prompt-item">`+line+`</p>`)
	}
}
