package web

import (
	"strconv"

	"github.com/couchcryptid/ice-report-service/internal/domain"
	"github.com/couchcryptid/ice-report-service/internal/i18n"
	"github.com/couchcryptid/ice-report-service/internal/query"
)

// Marker is one map point: position, thickness color bucket, and the
// formatted popup fields.
type Marker struct {
	Lat   float64         `json:"lat"`
	Lon   float64         `json:"lon"`
	Color domain.IceColor `json:"color"`
	Popup Popup           `json:"popup"`
}

// Popup carries the display strings shown when a marker is opened.
type Popup struct {
	Lake      string `json:"lake,omitempty"`
	Date      string `json:"date,omitempty"`
	Thickness string `json:"thickness,omitempty"`
	Info      string `json:"info,omitempty"`
}

// Row is one fully formatted table row in the active unit and language.
type Row struct {
	Date        string `json:"date"`
	Lake        string `json:"lake"`
	Coordinates string `json:"coordinates"`
	Thickness   string `json:"thickness"`
	Info        string `json:"info"`
}

// buildRows formats the visible set for the table.
func buildRows(observations []domain.Observation, s query.State, bundle *i18n.Bundle) []Row {
	rows := make([]Row, len(observations))
	for i, o := range observations {
		rows[i] = Row{
			Date:        displayDate(o),
			Lake:        o.Lake,
			Coordinates: o.CoordsRaw,
			Thickness:   formatThickness(o, s, bundle),
			Info:        o.Info,
		}
	}
	return rows
}

// buildMarkers formats the range-filtered visible set for the map. Only
// observations with parsed coordinates become markers.
func buildMarkers(observations []domain.Observation, s query.State, bundle *i18n.Bundle) []Marker {
	markers := make([]Marker, 0, len(observations))
	for _, o := range observations {
		if o.Coords == nil {
			continue
		}
		markers = append(markers, Marker{
			Lat:   o.Coords.Lat,
			Lon:   o.Coords.Lon,
			Color: domain.ClassifyThickness(o.ValueInches()),
			Popup: Popup{
				Lake:      o.Lake,
				Date:      displayDate(o),
				Thickness: formatThickness(o, s, bundle),
				Info:      o.Info,
			},
		})
	}
	return markers
}

// columnLabels returns the localized table header for the active language.
func columnLabels(s query.State, bundle *i18n.Bundle) []string {
	return []string{
		bundle.Lookup(s.Language, "col_date"),
		bundle.Lookup(s.Language, "col_lake"),
		bundle.Lookup(s.Language, "col_coords"),
		bundle.Lookup(s.Language, "col_thickness"),
		bundle.Lookup(s.Language, "col_info"),
	}
}

// lakeNames returns the distinct lake names in the set, collated for the
// active language.
func lakeNames(observations []domain.Observation, s query.State) []string {
	seen := make(map[string]struct{})
	var lakes []string
	for _, o := range observations {
		if o.Lake == "" {
			continue
		}
		if _, ok := seen[o.Lake]; ok {
			continue
		}
		seen[o.Lake] = struct{}{}
		lakes = append(lakes, o.Lake)
	}
	query.CollatorFor(s.Language).SortStrings(lakes)
	return lakes
}

func displayDate(o domain.Observation) string {
	if o.Date != nil {
		return domain.FormatMDY(*o.Date)
	}
	return o.DateRaw
}

// formatThickness renders the thickness in the selected display unit.
// Values the sheet supplied directly keep their full precision; values
// derived through the 2.54 conversion are rounded to two decimals.
func formatThickness(o domain.Observation, s query.State, bundle *i18n.Bundle) string {
	var (
		value   *float64
		derived bool
		unitKey string
	)
	if s.Unit == query.UnitCentimeters {
		value = o.ValueCm()
		derived = o.ThicknessCm == nil
		unitKey = "unit_cm"
	} else {
		value = o.ValueInches()
		derived = o.ThicknessIn == nil
		unitKey = "unit_in"
	}
	if value == nil {
		return bundle.Lookup(s.Language, "thickness_none")
	}

	precision := -1
	if derived {
		precision = 2
	}
	return strconv.FormatFloat(*value, 'f', precision, 64) + " " + bundle.Lookup(s.Language, unitKey)
}
