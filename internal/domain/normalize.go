package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Header aliases per logical field, in lookup priority order. Lookup folds
// case and whitespace, so one spelling per distinct shape is enough to cover
// variants like "Date", "DATE", and "Coordinates " with a trailing space.
// The lists accumulate every header spelling the sheet has used across its
// yearly tabs and exports.
var (
	aliasDate        = []string{"date"}
	aliasLake        = []string{"lake"}
	aliasCoordinates = []string{"coordinates", "coords"}
	aliasThicknessIn = []string{"thickness (inches)", "thickness_in", "thickness"}
	aliasThicknessCm = []string{"thickness (cm)", "thickness_cm"}
	aliasInfo        = []string{"info", "description"}

	// Older exports carried the coordinate pair as two numeric columns.
	aliasLat = []string{"lat", "latitude"}
	aliasLon = []string{"lon", "long", "lng", "longitude"}
)

// foldHeader normalizes a header name for alias lookup: lower-cased with all
// runs of whitespace collapsed to single spaces and edges trimmed.
func foldHeader(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Normalize maps one raw spreadsheet row onto the canonical Observation shape.
// Field lookup is tolerant: each logical field tries its alias list in order
// and the first header present in the row wins. Individual parse failures
// degrade that field to absent; they never reject the row.
func Normalize(row RawRow) Observation {
	folded := make(map[string]string, len(row))
	for name, value := range row {
		key := foldHeader(name)
		if _, ok := folded[key]; !ok {
			folded[key] = value
		}
	}

	pick := func(aliases []string) string {
		for _, alias := range aliases {
			if value, ok := folded[alias]; ok {
				return strings.TrimSpace(value)
			}
		}
		return ""
	}

	obs := Observation{
		DateRaw:     pick(aliasDate),
		Lake:        pick(aliasLake),
		CoordsRaw:   pick(aliasCoordinates),
		ThicknessIn: ParseThickness(pick(aliasThicknessIn)),
		ThicknessCm: ParseThickness(pick(aliasThicknessCm)),
		Info:        pick(aliasInfo),
	}

	if d := ParseDate(obs.DateRaw); d != nil {
		obs.Date = d
		obs.DateKey = DateKeyFor(*d)
	}

	obs.Coords = ParseCoordinates(obs.CoordsRaw)
	if obs.Coords == nil {
		if c := splitCoordinates(pick(aliasLat), pick(aliasLon)); c != nil {
			obs.Coords = c
			if obs.CoordsRaw == "" {
				obs.CoordsRaw = fmt.Sprintf("%g, %g", c.Lat, c.Lon)
			}
		}
	}

	return obs
}

// splitCoordinates assembles a pair from separate lat/long columns. Both
// components must parse or the pair is absent.
func splitCoordinates(latText, lonText string) *Coordinates {
	if latText == "" || lonText == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(latText, 64)
	lon, errLon := strconv.ParseFloat(lonText, 64)
	if errLat != nil || errLon != nil {
		return nil
	}
	return &Coordinates{Lat: lat, Lon: lon}
}
