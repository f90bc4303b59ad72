package scale

import "github.com/heartmarshall/summitlist-backend/internal/domain"

// HighlightColor marks the objective currently selected for editing.
const HighlightColor = "#ffd400"

var (
	binaryPalette = []string{"#c8c8c8", "#2e7d32"}

	fourSeasonPalette = []string{"#c8c8c8", "#c6dbef", "#6baed6", "#2171b5", "#08306b"}

	gridPalette = []string{
		"#c8c8c8",
		"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913",
		"#e6550d", "#d94801", "#a63603", "#8c2d04", "#7f2704", "#4a1502",
	}
)

// Palette returns a copy of the default color scale for v, or nil for an
// unknown variant. Its length is Length(v).
func Palette(v domain.ListVariant) []string {
	var p []string
	switch v {
	case domain.ListVariantStandard, domain.ListVariantWinter:
		p = binaryPalette
	case domain.ListVariantFourSeason:
		p = fourSeasonPalette
	case domain.ListVariantGrid:
		p = gridPalette
	default:
		return nil
	}
	return append([]string(nil), p...)
}

// Color returns the palette color for c, or HighlightColor when h is active.
func Color(v domain.ListVariant, c domain.VariantCompletion, h Highlight) (string, error) {
	if h.Active {
		return HighlightColor, nil
	}
	return Lookup(Palette(v), Position(c))
}
