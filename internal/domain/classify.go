package domain

// IceColor is the five-way marker classification of ice thickness.
type IceColor string

const (
	ColorUnknown IceColor = "unknown"
	ColorRed     IceColor = "red"
	ColorYellow  IceColor = "yellow"
	ColorGreen   IceColor = "green"
	ColorBlue    IceColor = "blue"
)

// ClassifyThickness buckets a thickness in inches for map markers:
// absent → unknown, ≤4" → red, (4,8]" → yellow, (8,10]" → green, >10" → blue.
// Thresholds follow the Minnesota DNR general ice safety guidance (4" for
// foot travel, 8" for small vehicles, 10"+ for trucks).
func ClassifyThickness(inches *float64) IceColor {
	switch {
	case inches == nil:
		return ColorUnknown
	case *inches <= 4:
		return ColorRed
	case *inches <= 8:
		return ColorYellow
	case *inches <= 10:
		return ColorGreen
	default:
		return ColorBlue
	}
}
