package ptmpl

import (
	"regexp"
	"strings"

	"github.com/ptmpl/ptmpl/sliceedit"
)

const defaultLang = "en"

// reLangDirective matches the out-of-band language marker #lang:xx#.
var reLangDirective = regexp.MustCompile(`#lang:(\w+)#`)

// buttonLabels holds the generate-button label per normalized language
// key. Lookup misses fall back to the default language.
var buttonLabels = map[string]string{
	"en": "Generate Prompt &amp; Copy to Clipboard",
	"ja": "プロンプトを生成してクリップボードにコピー",
	"fr": "Générer le prompt et copier dans le presse-papiers",
	"it": "Genera prompt e copia negli appunti",
	"es": "Generar prompt y copiar al portapapeles",
}

// langAliases maps alternative spellings onto the canonical lookup key.
// Only the label lookup is normalized; the document keeps the original
// spelling in its lang attribute.
var langAliases = map[string]string{
	"jp": "ja",
}

// extractLang scans the whole source for a #lang:xx# directive. The first
// match sets the language code and every occurrence of the directive
// pattern is stripped from the text, so stray duplicates leave no residue.
// Without a directive the language defaults to "en" (unless front matter
// already chose one).
func (d *document) extractLang(src string) string {
	if m := reLangDirective.FindStringSubmatch(src); m != nil {
		d.lang = m[1]

		ed := sliceedit.NewBuffer([]byte(src))
		ed.DeleteAllRegexp(reLangDirective)
		src = ed.String()
	}

	if d.lang == "" {
		d.lang = defaultLang
	}
	d.langKey = normalizeLangKey(d.lang)

	return src
}

// normalizeLangKey lowercases a language code and resolves aliases,
// yielding the key used for label lookup.
func normalizeLangKey(lang string) string {
	key := strings.ToLower(lang)
	if canon, ok := langAliases[key]; ok {
		key = canon
	}
	return key
}

// buttonLabel returns the localized generate-button label for a
// normalized language key, falling back to the default language for any
// unrecognized key.
func buttonLabel(key string) string {
	if label, ok := buttonLabels[key]; ok {
		return label
	}
	return buttonLabels[defaultLang]
}
