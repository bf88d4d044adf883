package query

import (
	"net/url"
	"strings"

	"github.com/couchcryptid/ice-report-service/internal/domain"
)

// URL parameter names. Every parameter is optional; absence means "keep the
// current/default value".
const (
	paramSearch = "q"
	paramDates  = "dates"
	paramLake   = "lake"
	paramUnit   = "unit"
	paramLang   = "lang"
	paramRange  = "range"
	paramFrom   = "from"
	paramTo     = "to"
	paramSort   = "sort"
	paramDir    = "dir"
)

// Decode overlays recognized URL query parameters onto a base state.
// Unrecognized or malformed values are ignored, never fatal. A well-formed
// "dates" list wins over free-text "q"; a date list also forces the range
// mode back to "all", since the dates already pin the window exactly.
func Decode(values url.Values, base State) State {
	s := base

	if v := values.Get(paramLang); v != "" {
		s = s.WithLanguage(v)
	}
	if v := values.Get(paramUnit); v != "" {
		s = s.WithUnit(Unit(v))
	}
	if v := values.Get(paramLake); v != "" {
		s = s.WithLake(v)
	}
	if v := values.Get(paramSort); v != "" && validSortKey(SortKey(v)) {
		s.Sort = SortKey(v)
	}
	if v := values.Get(paramDir); v == string(DirAscending) || v == string(DirDescending) {
		s.Dir = SortDir(v)
	}
	if v := values.Get(paramRange); v != "" && validRangeMode(RangeMode(v)) {
		s.Range = RangeMode(v)
	}
	if s.Range == RangeCustom {
		if v := canonicalKey(values.Get(paramFrom)); v != "" {
			s.From = v
		}
		if v := canonicalKey(values.Get(paramTo)); v != "" {
			s.To = v
		}
	}

	if keys := decodeDatesParam(values.Get(paramDates)); len(keys) != 0 {
		s.Search = strings.Join(keys, ",")
		s.Dates = keys
		s = s.WithRange(RangeAll)
	} else if v := values.Get(paramSearch); v != "" {
		s = s.WithSearch(v)
	}

	return s
}

// Encode serializes a state back to its query-string form. Parameters equal
// to their defaults are omitted so shared links stay minimal, and a search
// that is purely dates is emitted under "dates" in canonical form so that
// re-decoding is lossless. Encoding is idempotent: the same state always
// yields byte-identical output (url.Values sorts its keys).
func Encode(s State) string {
	def := Default()
	p := url.Values{}

	if len(s.Dates) != 0 {
		p.Set(paramDates, strings.Join(s.Dates, ","))
	} else if s.Search != "" {
		p.Set(paramSearch, s.Search)
	}
	if s.Lake != "" {
		p.Set(paramLake, s.Lake)
	}
	if s.Range != def.Range {
		p.Set(paramRange, string(s.Range))
	}
	if s.Range == RangeCustom {
		if s.From != "" {
			p.Set(paramFrom, s.From)
		}
		if s.To != "" {
			p.Set(paramTo, s.To)
		}
	}
	if s.Unit != def.Unit {
		p.Set(paramUnit, string(s.Unit))
	}
	if s.Language != def.Language {
		p.Set(paramLang, s.Language)
	}
	if s.Sort != def.Sort {
		p.Set(paramSort, string(s.Sort))
	}
	if s.Dir != def.Dir {
		p.Set(paramDir, string(s.Dir))
	}

	return p.Encode()
}

// decodeDatesParam parses a comma-separated date list. The list counts only
// if every token parses; otherwise it is treated as absent and "q" applies.
func decodeDatesParam(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	tokens := strings.Split(raw, ",")
	keys := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		d := domain.ParseDate(strings.TrimSpace(tok))
		if d == nil {
			return nil
		}
		keys = append(keys, domain.DateKeyFor(*d))
	}
	return keys
}
