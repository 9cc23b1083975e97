package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tradedeadline/internal/geo"
)

// Style definitions for map layers and panels
var (
	StyleStateBorder  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	StyleCoastline    = tcell.StyleDefault.Foreground(tcell.ColorDarkBlue)
	StyleGrid         = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	StyleTeamActive   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	StyleTeamOverride = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	StylePlayer       = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	StyleSelected     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true).Reverse(true)
	StyleProbe        = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleDim          = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleStatus       = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

var (
	trailNew = colorful.Color{R: 1, G: 0.84, B: 0}
	trailOld = colorful.Color{R: 0.25, G: 0.25, B: 0.3}
)

// GetStyleForFeature returns the appropriate style for a feature type
func GetStyleForFeature(ftype geo.FeatureType) tcell.Style {
	switch ftype {
	case geo.FeatureStateBorder:
		return StyleStateBorder
	case geo.FeatureCoastline:
		return StyleCoastline
	default:
		return tcell.StyleDefault
	}
}

// GetCharForFeature returns the appropriate character for drawing a feature
func GetCharForFeature(ftype geo.FeatureType) rune {
	switch ftype {
	case geo.FeatureStateBorder:
		return '·'
	case geo.FeatureCoastline:
		return '-'
	default:
		return '·'
	}
}

// TrailColor fades from bright to dim as a movement ages. age 0 is the
// newest of total movements.
func TrailColor(age, total int) tcell.Color {
	t := 0.0
	if total > 1 {
		t = float64(age) / float64(total-1)
	}
	return toTcell(trailNew.BlendLab(trailOld, clamp01(t)))
}

// TeamColor gives each team a stable hue spread around the color wheel
func TeamColor(teamID int) tcell.Color {
	// Golden angle keeps neighbouring ids apart
	hue := math.Mod(float64(teamID)*137.508, 360)
	return toTcell(colorful.Hcl(hue, 0.6, 0.75).Clamped())
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
