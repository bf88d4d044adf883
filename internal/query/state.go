// Package query holds the filter/sort/display state of the report view, its
// bidirectional URL query-string codec, and the engine that applies a state
// to the normalized observation set.
package query

import (
	"strings"

	"github.com/couchcryptid/ice-report-service/internal/domain"
)

// Unit selects the thickness display unit.
type Unit string

const (
	UnitInches      Unit = "in"
	UnitCentimeters Unit = "cm"
)

// SortKey selects the column the visible set is ordered by.
type SortKey string

const (
	SortDate      SortKey = "date"
	SortLake      SortKey = "lake"
	SortThickness SortKey = "thickness"
	SortInfo      SortKey = "info"
	SortCoords    SortKey = "coords"
)

// SortDir is the sort direction.
type SortDir string

const (
	DirAscending  SortDir = "asc"
	DirDescending SortDir = "desc"
)

// RangeMode selects the date window applied to the map view.
type RangeMode string

const (
	RangeAll    RangeMode = "all"
	RangeLast7  RangeMode = "7d"
	RangeLast14 RangeMode = "14d"
	RangeLast30 RangeMode = "30d"
	RangeSeason RangeMode = "season"
	RangeCustom RangeMode = "custom"
)

// State is the complete set of active filter/sort/display parameters. It is
// a plain value: transitions return a new State, all reads of "current
// filters" go through one State, and re-encoding it after every transition
// keeps the address bar in sync.
type State struct {
	// Search is the free text typed into the search box. When every
	// comma/space-separated token of it parses as a date, Dates carries the
	// canonical keys and Search itself stops acting as a substring filter.
	Search string
	// Dates is the ordered set of canonical MM-DD-YYYY keys; empty when the
	// search is not date-only.
	Dates    []string
	Lake     string
	Unit     Unit
	Language string
	Sort     SortKey
	Dir      SortDir
	Range    RangeMode
	// From and To bound the custom range as canonical date keys; only
	// consulted when Range is RangeCustom.
	From string
	To   string
}

// Default returns the boot-time state before preferences and URL overlay.
func Default() State {
	return State{
		Unit:     UnitInches,
		Language: "en",
		Sort:     SortDate,
		Dir:      DirDescending,
		Range:    RangeAll,
	}
}

// WithSearch sets the search text and recomputes the date-only token list.
func (s State) WithSearch(text string) State {
	s.Search = strings.TrimSpace(text)
	s.Dates = datesFromSearch(s.Search)
	return s
}

// WithLake sets the lake filter.
func (s State) WithLake(lake string) State {
	s.Lake = strings.TrimSpace(lake)
	return s
}

// WithUnit sets the display unit, ignoring unrecognized values.
func (s State) WithUnit(unit Unit) State {
	if unit == UnitInches || unit == UnitCentimeters {
		s.Unit = unit
	}
	return s
}

// WithLanguage sets the display language.
func (s State) WithLanguage(lang string) State {
	if lang = strings.TrimSpace(lang); lang != "" {
		s.Language = lang
	}
	return s
}

// WithSort orders by the given key; selecting the active key flips direction.
func (s State) WithSort(key SortKey) State {
	if !validSortKey(key) {
		return s
	}
	if s.Sort == key {
		s.Dir = s.Dir.flip()
		return s
	}
	s.Sort = key
	s.Dir = DirAscending
	return s
}

// WithRange sets the map range mode; leaving custom clears its bounds.
func (s State) WithRange(mode RangeMode) State {
	if !validRangeMode(mode) {
		return s
	}
	s.Range = mode
	if mode != RangeCustom {
		s.From = ""
		s.To = ""
	}
	return s
}

// WithCustomRange sets the custom window bounds from loose date text and
// switches to custom mode. Unparseable bounds are left unset.
func (s State) WithCustomRange(from, to string) State {
	s.Range = RangeCustom
	s.From = canonicalKey(from)
	s.To = canonicalKey(to)
	return s
}

func (d SortDir) flip() SortDir {
	if d == DirAscending {
		return DirDescending
	}
	return DirAscending
}

func validSortKey(k SortKey) bool {
	switch k {
	case SortDate, SortLake, SortThickness, SortInfo, SortCoords:
		return true
	}
	return false
}

func validRangeMode(m RangeMode) bool {
	switch m {
	case RangeAll, RangeLast7, RangeLast14, RangeLast30, RangeSeason, RangeCustom:
		return true
	}
	return false
}

// datesFromSearch splits search text on commas and whitespace and returns the
// canonical keys iff every token parses as a date. A single unparseable token
// means the text is free-text search, not a date list.
func datesFromSearch(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(tokens) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		d := domain.ParseDate(tok)
		if d == nil {
			return nil
		}
		keys = append(keys, domain.DateKeyFor(*d))
	}
	return keys
}

// canonicalKey reparses loose date text into a canonical MM-DD-YYYY key,
// or "" when it doesn't parse.
func canonicalKey(text string) string {
	d := domain.ParseDate(strings.TrimSpace(text))
	if d == nil {
		return ""
	}
	return domain.DateKeyFor(*d)
}
