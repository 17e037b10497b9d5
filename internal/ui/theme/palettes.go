package theme

import "github.com/charmbracelet/lipgloss"

func ac(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

// Midnight is the default theme: deep navy with a warm accent.
var Midnight = Palette{
	PrimaryColor:             ac("#7aa2f7", "#2e7de9"),
	AccentColor:              ac("#ffc777", "#b15c00"),
	ErrorColor:               ac("#ff757f", "#f52a65"),
	WarningColor:             ac("#ff966c", "#b15c00"),
	SuccessColor:             ac("#c3e88d", "#587539"),
	InfoColor:                ac("#7dcfff", "#0db9d7"),
	TextColor:                ac("#c8d3f5", "#3760bf"),
	TextMutedColor:           ac("#636da6", "#848cb5"),
	BackgroundColor:          ac("#1b1d2b", "#e1e2e7"),
	BackgroundSecondaryColor: ac("#2f334d", "#c8c9ce"),
	BorderNormalColor:        ac("#3b4261", "#a8aecb"),
	BorderFocusedColor:       ac("#82aaff", "#2e7de9"),
}

// Daylight favors light terminals.
var Daylight = Palette{
	PrimaryColor:             ac("#4078f2", "#4078f2"),
	AccentColor:              ac("#c18401", "#986801"),
	ErrorColor:               ac("#e45649", "#e45649"),
	WarningColor:             ac("#d75f00", "#c18401"),
	SuccessColor:             ac("#50a14f", "#50a14f"),
	InfoColor:                ac("#0184bc", "#0184bc"),
	TextColor:                ac("#383a42", "#383a42"),
	TextMutedColor:           ac("#a0a1a7", "#a0a1a7"),
	BackgroundColor:          ac("#fafafa", "#fafafa"),
	BackgroundSecondaryColor: ac("#eaeaeb", "#eaeaeb"),
	BorderNormalColor:        ac("#d3d3d4", "#d3d3d4"),
	BorderFocusedColor:       ac("#4078f2", "#4078f2"),
}

// Ember is a high-contrast warm theme.
var Ember = Palette{
	PrimaryColor:             ac("#fe8019", "#af3a03"),
	AccentColor:              ac("#fabd2f", "#b57614"),
	ErrorColor:               ac("#fb4934", "#9d0006"),
	WarningColor:             ac("#fe8019", "#af3a03"),
	SuccessColor:             ac("#b8bb26", "#79740e"),
	InfoColor:                ac("#83a598", "#076678"),
	TextColor:                ac("#ebdbb2", "#3c3836"),
	TextMutedColor:           ac("#928374", "#7c6f64"),
	BackgroundColor:          ac("#1d2021", "#f9f5d7"),
	BackgroundSecondaryColor: ac("#32302f", "#ebdbb2"),
	BorderNormalColor:        ac("#504945", "#d5c4a1"),
	BorderFocusedColor:       ac("#fe8019", "#af3a03"),
}

func init() {
	RegisterTheme("midnight", Midnight)
	RegisterTheme("daylight", Daylight)
	RegisterTheme("ember", Ember)
}
