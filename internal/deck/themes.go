package deck

import "strconv"

// Theme holds the two presentation colors as RRGGBB hex strings.
type Theme struct {
	Primary string
	Accent  string
}

// defaultTheme is used for any unrecognised graduate-profile category.
var defaultTheme = Theme{Primary: "334155", Accent: "94A3B8"}

var profileThemes = map[string]Theme{
	"excellence":    {Primary: "1E40AF", Accent: "3B82F6"},
	"innovation":    {Primary: "7C3AED", Accent: "A78BFA"},
	"integrity":     {Primary: "047857", Accent: "34D399"},
	"inspiration":   {Primary: "B45309", Accent: "F59E0B"},
	"hauora":        {Primary: "0E7490", Accent: "22D3EE"},
	"relationships": {Primary: "BE123C", Accent: "FB7185"},
}

// ThemeFor selects the styling for a graduate-profile category.
func ThemeFor(profile string) Theme {
	if theme, ok := profileThemes[profile]; ok {
		return theme
	}
	return defaultTheme
}

// PrimaryRGB returns the primary color as a 0xRRGGBB integer.
func (t Theme) PrimaryRGB() int {
	return hexToInt(t.Primary)
}

// AccentRGB returns the accent color as a 0xRRGGBB integer.
func (t Theme) AccentRGB() int {
	return hexToInt(t.Accent)
}

func hexToInt(hex string) int {
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
