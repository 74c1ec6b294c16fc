package render

// LegendEntry is one line of the static legend overlay
type LegendEntry struct {
	Swatch string // color or width sample
	Label  string
}

// Legend documents the node-color and edge-thickness encodings. It is
// a static overlay: it never participates in filtering or hit-testing.
type Legend struct {
	Entries []LegendEntry
}

// DefaultLegend returns the standard encoding legend
func DefaultLegend() Legend {
	return Legend{Entries: []LegendEntry{
		{Swatch: ColorEntity, Label: "entity"},
		{Swatch: ColorBillionaire, Label: "billionaire"},
		{Swatch: "thin", Label: "weight 1-9"},
		{Swatch: "medium", Label: "weight 10-49"},
		{Swatch: "thick", Label: "weight 50+"},
		{Swatch: ColorHighlight, Label: "selected"},
	}}
}
