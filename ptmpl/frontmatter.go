package ptmpl

import (
	"strings"

	"github.com/hesusruiz/vcutils/yaml"
	"go.uber.org/zap"
)

// extractFrontMatter consumes an optional YAML metadata header delimited
// by "---" lines at the very beginning of the source and returns the
// remaining text. Recognized keys:
//
//	title: fixes the document title, so headings do not override it
//	lang:  sets the language code; a #lang:xx# directive still wins
//
// A "---" line without a closing delimiter is ordinary content. A
// malformed header is logged and skipped; it never aborts the conversion.
func (d *document) extractFrontMatter(src string, log *zap.SugaredLogger) string {
	if !strings.HasPrefix(src, "---") {
		return src
	}

	nl := strings.IndexByte(src, '\n')
	if nl == -1 {
		return src
	}
	rest := src[nl+1:]

	var header strings.Builder
	for {
		nl = strings.IndexByte(rest, '\n')
		if nl == -1 {
			// EOF before the closing delimiter: not a front matter block
			return src
		}

		line := rest[:nl]
		rest = rest[nl+1:]

		if strings.HasPrefix(line, "---") {
			break
		}
		header.WriteString(line)
		header.WriteString("\n")
	}

	meta, err := yaml.ParseYaml(header.String())
	if err != nil {
		log.Warnw("malformed front matter, ignoring", "error", err)
		return rest
	}

	if title := meta.String("title"); title != "" {
		d.title = title
		d.titleFixed = true
	}
	if lang := meta.String("lang"); lang != "" {
		d.lang = lang
	}

	return rest
}
