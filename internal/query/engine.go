package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/couchcryptid/ice-report-service/internal/domain"
)

// Apply produces the ordered visible subset for the table view: the
// conjunctive lake/date-set/free-text filters followed by a stable sort.
// The map-range window is not applied here, it only narrows the marker
// view; use ApplyWindow on top of this for the map.
func Apply(observations []domain.Observation, s State) []domain.Observation {
	out := make([]domain.Observation, 0, len(observations))

	lake := strings.ToLower(s.Lake)
	needle := strings.ToLower(s.Search)
	dateSet := make(map[string]struct{}, len(s.Dates))
	for _, k := range s.Dates {
		dateSet[k] = struct{}{}
	}

	for _, o := range observations {
		if lake != "" && !strings.Contains(strings.ToLower(o.Lake), lake) {
			continue
		}
		if len(dateSet) != 0 {
			if _, ok := dateSet[o.DateKey]; !ok {
				continue
			}
		} else if needle != "" {
			hay := strings.ToLower(o.Lake + " " + o.Info + " " + o.DateRaw + " " + o.DateKey)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, o)
	}

	sortObservations(out, s)
	return out
}

// ApplyWindow filters observations to the active map-range window. With no
// active bound everything passes; with any bound active, observations that
// lack a parsed date are excluded.
func ApplyWindow(observations []domain.Observation, s State) []domain.Observation {
	start, end := s.Window()
	if start == nil && end == nil {
		return observations
	}

	out := make([]domain.Observation, 0, len(observations))
	for _, o := range observations {
		if o.Date == nil {
			continue
		}
		if start != nil && o.Date.Before(*start) {
			continue
		}
		if end != nil && o.Date.After(*end) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Window derives the [start, end] bounds for the active range mode. Nil
// bounds are unbounded. "Season" starts at the most recent November 1 on or
// before today; the relative modes start N days back from today's midnight.
func (s State) Window() (start, end *time.Time) {
	today := midnight(clock.Now().UTC())

	switch s.Range {
	case RangeLast7:
		return daysBack(today, 7), nil
	case RangeLast14:
		return daysBack(today, 14), nil
	case RangeLast30:
		return daysBack(today, 30), nil
	case RangeSeason:
		year := today.Year()
		if today.Month() < time.November {
			year--
		}
		t := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
		return &t, nil
	case RangeCustom:
		if d := domain.ParseDate(s.From); d != nil {
			start = d
		}
		if d := domain.ParseDate(s.To); d != nil {
			t := d.Add(23*time.Hour + 59*time.Minute)
			end = &t
		}
		return start, end
	default:
		return nil, nil
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBack(today time.Time, n int) *time.Time {
	t := today.AddDate(0, 0, -n)
	return &t
}

// sortObservations orders in place by the state's sort key, stably so that
// ties preserve their load order. String columns use locale-aware collation
// keyed by the active language; absent dates sort as the epoch-like minimum
// and absent thickness below every number.
func sortObservations(obs []domain.Observation, s State) {
	var less func(a, b domain.Observation) bool

	switch s.Sort {
	case SortLake, SortInfo, SortCoords:
		c := CollatorFor(s.Language)
		field := func(o domain.Observation) string {
			switch s.Sort {
			case SortLake:
				return o.Lake
			case SortInfo:
				return o.Info
			default:
				return o.CoordsRaw
			}
		}
		less = func(a, b domain.Observation) bool {
			return c.CompareString(field(a), field(b)) < 0
		}
	case SortThickness:
		value := func(o domain.Observation) *float64 {
			if s.Unit == UnitCentimeters {
				return o.ValueCm()
			}
			return o.ValueInches()
		}
		less = func(a, b domain.Observation) bool {
			va, vb := value(a), value(b)
			switch {
			case va == nil:
				return vb != nil
			case vb == nil:
				return false
			default:
				return *va < *vb
			}
		}
	default: // SortDate
		key := func(o domain.Observation) time.Time {
			if o.Date == nil {
				return time.Time{}
			}
			return *o.Date
		}
		less = func(a, b domain.Observation) bool {
			return key(a).Before(key(b))
		}
	}

	descending := s.Dir == DirDescending
	sort.SliceStable(obs, func(i, j int) bool {
		if descending {
			return less(obs[j], obs[i])
		}
		return less(obs[i], obs[j])
	})
}

// CollatorFor builds a case-insensitive collator for a language code,
// falling back to English for codes that don't parse.
func CollatorFor(lang string) *collate.Collator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}
