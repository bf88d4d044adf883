// Package domain models community-reported lake ice thickness observations.
//
// # Data Source
//
// Observations come from a volunteer-maintained spreadsheet published as a
// CSV or Google Visualization JSON export. Rows are typed in by hand, so
// every field arrives as loosely formatted text and each yearly tab has
// drifted in how it names its columns. The normalizer's alias tables absorb
// the header drift; the lexical parsers absorb the cell-format drift.
//
// # Cell Conventions
//
// Dates appear in these shapes, tried in a fixed priority order:
//
//	Date(2025,2,11)   Google Visualization literal, zero-based month
//	2025-12-31        year first, "-" or "/" separators
//	12/31/2025        month first, "/" or "-" separators
//
// The fixed order is what resolves the inherent ambiguity between
// MM-DD-YYYY and other separator-delimited numeric triples. A date that
// matches no pattern is absent, not an error. Parsed dates carry no time or
// zone component; MM-DD-YYYY keys ([DateKeyFor]) are used for equality.
//
// Coordinates appear either hemisphere-annotated or bare:
//
//	"44.96857° N, 93.28427° W"   hemisphere letter forces the sign
//	"44.96857, -93.28427"        read as (lat, lon)
//
// Older exports instead carried separate "lat" and "long" numeric columns.
//
// Thickness cells mix decimals with carpenter-style fractions:
//
//	"8.5"  |  "3/8"  |  "5 5/8"  (= 5.625)
//
// and often trail punctuation pasted from free text ("8 7/8)"). Inches are
// converted to centimeters at exactly 2.54 only when the sheet did not supply
// a centimeter value of its own; an explicit value always wins.
//
// # Classification
//
// Map markers bucket thickness in inches into five colors (unknown, red ≤4",
// yellow ≤8", green ≤10", blue above), following the Minnesota DNR general
// ice safety guidance. See [ClassifyThickness].
package domain
