package domain

import "time"

// CmPerInch is the exact inch-to-centimeter conversion factor.
const CmPerInch = 2.54

// RawRow is one undecoded spreadsheet row: header text → raw cell text.
// Produced by the tabular decoder, consumed once by Normalize.
type RawRow map[string]string

// Coordinates is a WGS-84 decimal-degree pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Observation is one canonical ice-thickness record. All fields that can fail
// to parse are optional pointers; an absent field means the raw text did not
// match any recognized pattern, never that parsing errored. Observations are
// immutable once constructed.
type Observation struct {
	DateRaw   string     `json:"date_raw,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	DateKey   string     `json:"date_key,omitempty"` // canonical MM-DD-YYYY, set iff Date is set
	Lake      string     `json:"lake,omitempty"`
	CoordsRaw string     `json:"coords_raw,omitempty"`
	// Coords has both components set or is nil, never half a pair.
	Coords      *Coordinates `json:"coords,omitempty"`
	ThicknessIn *float64     `json:"thickness_in,omitempty"`
	// ThicknessCm holds an explicitly supplied centimeter value only.
	// Use ValueCm for the derived fallback when the sheet only carried inches.
	ThicknessCm *float64 `json:"thickness_cm,omitempty"`
	Info        string   `json:"info,omitempty"`
}

// Blank reports whether the observation carries no usable data at all.
// Fully blank rows are discarded at load time.
func (o Observation) Blank() bool {
	return o.Lake == "" && o.DateRaw == "" && o.CoordsRaw == "" && o.Info == "" &&
		o.ThicknessIn == nil && o.ThicknessCm == nil
}

// ValueInches returns the thickness in inches, deriving from an explicit
// centimeter value when the sheet did not carry inches. Nil when neither
// unit was supplied.
func (o Observation) ValueInches() *float64 {
	if o.ThicknessIn != nil {
		return o.ThicknessIn
	}
	if o.ThicknessCm != nil {
		v := *o.ThicknessCm / CmPerInch
		return &v
	}
	return nil
}

// ValueCm returns the thickness in centimeters. An explicitly supplied
// centimeter value always wins; inches × 2.54 is a derived fallback only.
func (o Observation) ValueCm() *float64 {
	if o.ThicknessCm != nil {
		return o.ThicknessCm
	}
	if o.ThicknessIn != nil {
		v := *o.ThicknessIn * CmPerInch
		return &v
	}
	return nil
}

// DateKeyFor formats a parsed date as the canonical MM-DD-YYYY key used for
// exact-date matching and URL encoding.
func DateKeyFor(t time.Time) string {
	return t.Format("01-02-2006")
}

// FormatMDY formats a parsed date as MM/DD/YYYY for display rows and popups.
func FormatMDY(t time.Time) string {
	return t.Format("01/02/2006")
}
