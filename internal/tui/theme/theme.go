// Package theme defines color themes for the spendora terminal views.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps budget states and chat roles to colors.
type Theme struct {
	Name string

	Surface lipgloss.Color // card, chart and bar background
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color // labels and hints
	Dim     lipgloss.Color // axes and empty bar cells

	Brand     lipgloss.Color // titles and the latest bar of a chart
	BrandSoft lipgloss.Color // ordinary bars and the waiting spinner

	// Budget utilization, from comfortably under a target to past it.
	OnTrack lipgloss.Color
	Watch   lipgloss.Color
	Near    lipgloss.Color
	Over    lipgloss.Color

	Spending lipgloss.Color // daily spending history
	Coach    lipgloss.Color // Violet's side of the chat
	Student  lipgloss.Color // the user's side of the chat
}

// Utilization thresholds shared by every budget bar.
const (
	WatchAt = 0.5
	NearAt  = 0.8
)

// ForUtilization returns the budget-state color for spent/target.
func (t Theme) ForUtilization(pct float64) lipgloss.Color {
	switch {
	case pct > 1:
		return t.Over
	case pct >= NearAt:
		return t.Near
	case pct >= WatchAt:
		return t.Watch
	default:
		return t.OnTrack
	}
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default: warm paper tones on near black.
var FlexokiDark = Theme{
	Name:      "flexoki-dark",
	Surface:   "#1C1B1A",
	Border:    "#403E3C",
	Text:      "#FFFCF0",
	Muted:     "#878580",
	Dim:       "#575653",
	Brand:     "#5BC8BE",
	BrandSoft: "#3AA99F",
	OnTrack:   "#879A39",
	Watch:     "#D0A215",
	Near:      "#DA702C",
	Over:      "#D14D41",
	Spending:  "#4385BE",
	Coach:     "#8B7EC8",
	Student:   "#4385BE",
}

// NYUViolet leans on the university purple for chrome and the coach.
var NYUViolet = Theme{
	Name:      "nyu-violet",
	Surface:   "#1B1425",
	Border:    "#3E2A57",
	Text:      "#F3EEFA",
	Muted:     "#A99BBF",
	Dim:       "#5E4C78",
	Brand:     "#B58BE0",
	BrandSoft: "#8900E1",
	OnTrack:   "#7BC47F",
	Watch:     "#E8C547",
	Near:      "#F0904A",
	Over:      "#E5546B",
	Spending:  "#B58BE0",
	Coach:     "#C9A4F2",
	Student:   "#7FB2F0",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:      "catppuccin-mocha",
	Surface:   "#313244",
	Border:    "#585B70",
	Text:      "#CDD6F4",
	Muted:     "#A6ADC8",
	Dim:       "#6C7086",
	Brand:     "#B4D0FB",
	BrandSoft: "#89B4FA",
	OnTrack:   "#A6E3A1",
	Watch:     "#F9E2AF",
	Near:      "#FAB387",
	Over:      "#F38BA8",
	Spending:  "#89B4FA",
	Coach:     "#CBA6F7",
	Student:   "#89B4FA",
}

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:      "terminal",
	Surface:   "0",
	Border:    "8",
	Text:      "15",
	Muted:     "7",
	Dim:       "8",
	Brand:     "14",
	BrandSoft: "6",
	OnTrack:   "2",
	Watch:     "3",
	Near:      "11",
	Over:      "1",
	Spending:  "4",
	Coach:     "5",
	Student:   "4",
}

// All available themes, default first.
var All = []Theme{FlexokiDark, NYUViolet, CatppuccinMocha, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
