package owtypes

type Hero struct {
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Portrait string `json:"portrait"`
	// Color is an #rrggbbaa accent color, empty for heroes without one.
	Color string `json:"color,omitempty"`
}

var heroColors = map[string]string{
	"D.Va":          "#fc79bdff",
	"Soldier: 76":   "#445275ff",
	"Zarya":         "#f65ea6ff",
	"Widowmaker":    "#8b3f8fff",
	"Hanzo":         "#b2a865ff",
	"Junkrat":       "#f7b217ff",
	"Ana":           "#48699eff",
	"Orisa":         "#106f04ff",
	"Roadhog":       "#ae6f1cff",
	"Mercy":         "#faf2adff",
	"Zenyatta":      "#fcee5aff",
	"Brigitte":      "#72332aff",
	"Genji":         "#80fb00ff",
	"Moira":         "#804be5ff",
	"Bastion":       "#5b7351ff",
	"Pharah":        "#58bcff",
	"Cassidy":       "#a62927ff",
	"Winston":       "#8f92aeff",
	"Illari":        "#a58c54ff",
	"Tracer":        "#de7a00ff",
	"Doomfist":      "#661e0fff",
	"Reinhardt":     "#7c8b8cff",
	"Wrecking Ball": "#e2790aff",
	"Mei":           "#469af0ff",
	"Lúcio":         "#67c519ff",
	"Torbjörn":      "#ba4c3fff",
	"Sombra":        "#5128a9ff",
	"Symmetra":      "#76b4c9ff",
	"Reaper":        "#5e001aff",
	"Sigma":         "#7c8b8cff",
	"Kiriko":        "#d04656ff",
	"Baptiste":      "#28a5c3ff",
	"Junker Queen":  "#579fcfff",
	"Sojourn":       "#d73e2cff",
	"Ashe":          "#3e3c3aff",
	"Ramattra":      "#7d55c7ff",
	"Echo":          "#89c8ffff",
	"Lifeweaver":    "#e1a5baff",
}

// HeroColor returns the accent color for a hero's display name.
func HeroColor(name string) string {
	return heroColors[name]
}
