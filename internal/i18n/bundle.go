// Package i18n provides the translated UI strings for status messages and
// table labels, keyed by language code. Lookups fall back to English and
// then to the key itself, so a missing translation degrades to something
// legible instead of an empty cell.
package i18n

import (
	"sort"

	"golang.org/x/text/language"
)

// Bundle is the string-lookup translation service. Zero-value is unusable;
// construct with NewBundle.
type Bundle struct {
	tables  map[string]map[string]string
	codes   []string
	matcher language.Matcher
}

// NewBundle builds the bundle from the built-in tables.
func NewBundle() *Bundle {
	codes := make([]string, 0, len(tables))
	tags := make([]language.Tag, 0, len(tables))
	// English first so it is the matcher's fallback.
	codes = append(codes, "en")
	tags = append(tags, language.English)
	rest := make([]string, 0, len(tables))
	for code := range tables {
		if code != "en" {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	for _, code := range rest {
		codes = append(codes, code)
		tags = append(tags, language.Make(code))
	}
	return &Bundle{
		tables:  tables,
		codes:   codes,
		matcher: language.NewMatcher(tags),
	}
}

// Match resolves an arbitrary language code to a supported bundle code,
// so "en-US" finds "en". Unparseable or unsupported codes resolve to "en".
func (b *Bundle) Match(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return "en"
	}
	_, index, _ := b.matcher.Match(tag)
	return b.codes[index]
}

// Lookup returns the translation of key for the given language code.
func (b *Bundle) Lookup(code, key string) string {
	if table, ok := b.tables[b.Match(code)]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := b.tables["en"][key]; ok {
		return s
	}
	return key
}

// Languages returns the supported language codes, English first.
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.codes))
	copy(out, b.codes)
	return out
}
