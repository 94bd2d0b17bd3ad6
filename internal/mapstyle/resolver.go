// Package mapstyle resolves a requested style/theme/platform triple into the
// concrete rendering configuration the mobile map surface needs. Pure table
// lookup with deterministic fallbacks, safe to call from anywhere.
package mapstyle

import "log"

// Style keys
const (
	StyleStandard  = "standard"
	StyleSatellite = "satellite"
	StyleTerrain   = "terrain"
	StyleNight     = "night"
	StyleAdventure = "adventure"
)

// Platform identifies the native map surface
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Theme selects a color palette
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Palette holds the route and marker colors for one theme
type Palette struct {
	PolylineColor   string `json:"polyline_color"`
	SavedRouteColor string `json:"saved_route_color"`
	MarkerTint      string `json:"marker_tint"`
}

// StyleConfig is the resolved rendering configuration for one platform
type StyleConfig struct {
	Key       string  `json:"key"`
	MapType   string  `json:"map_type"`
	StyleName string  `json:"style_name,omitempty"` // custom JSON style asset, Android only
	Palette   Palette `json:"palette"`
}

type nativeConfig struct {
	mapType   string
	styleName string
}

type styleDef struct {
	native   map[Platform]nativeConfig
	palettes map[Theme]Palette
}

var styles = map[string]styleDef{
	StyleStandard: {
		native: map[Platform]nativeConfig{
			PlatformIOS:     {mapType: "standard"},
			PlatformAndroid: {mapType: "standard"},
		},
		palettes: map[Theme]Palette{
			ThemeLight: {PolylineColor: "#4A90D9", SavedRouteColor: "#9B59B6", MarkerTint: "#E74C3C"},
			ThemeDark:  {PolylineColor: "#6BB5FF", SavedRouteColor: "#BD7AE3", MarkerTint: "#FF6B5B"},
		},
	},
	StyleSatellite: {
		native: map[Platform]nativeConfig{
			PlatformIOS:     {mapType: "satellite"},
			PlatformAndroid: {mapType: "satellite"},
		},
		palettes: map[Theme]Palette{
			ThemeLight: {PolylineColor: "#FFD700", SavedRouteColor: "#FF8C00", MarkerTint: "#FFFFFF"},
			ThemeDark:  {PolylineColor: "#FFD700", SavedRouteColor: "#FF8C00", MarkerTint: "#FFFFFF"},
		},
	},
	StyleTerrain: {
		// Apple Maps has no terrain surface; Resolve degrades to satellite there
		native: map[Platform]nativeConfig{
			PlatformAndroid: {mapType: "terrain"},
		},
		palettes: map[Theme]Palette{
			ThemeLight: {PolylineColor: "#2E7D32", SavedRouteColor: "#8D6E63", MarkerTint: "#1B5E20"},
			ThemeDark:  {PolylineColor: "#66BB6A", SavedRouteColor: "#A1887F", MarkerTint: "#81C784"},
		},
	},
	StyleNight: {
		native: map[Platform]nativeConfig{
			PlatformIOS:     {mapType: "mutedStandard"},
			PlatformAndroid: {mapType: "standard", styleName: "night"},
		},
		palettes: map[Theme]Palette{
			ThemeLight: {PolylineColor: "#00E5FF", SavedRouteColor: "#7C4DFF", MarkerTint: "#18FFFF"},
			ThemeDark:  {PolylineColor: "#00B8D4", SavedRouteColor: "#651FFF", MarkerTint: "#00E5FF"},
		},
	},
	StyleAdventure: {
		native: map[Platform]nativeConfig{
			PlatformIOS:     {mapType: "standard"},
			PlatformAndroid: {mapType: "standard", styleName: "adventure"},
		},
		palettes: map[Theme]Palette{
			ThemeLight: {PolylineColor: "#F4A460", SavedRouteColor: "#8B4513", MarkerTint: "#D2691E"},
			ThemeDark:  {PolylineColor: "#DEB887", SavedRouteColor: "#CD853F", MarkerTint: "#F4A460"},
		},
	},
}

// Resolve looks up the rendering configuration for a style/theme/platform
// triple. Unknown styles fall back to standard (with a logged warning),
// unsupported style/platform pairs degrade via FallbackFor, and unknown
// themes use the style's light palette.
func Resolve(styleKey string, theme Theme, platform Platform) StyleConfig {
	if _, ok := styles[styleKey]; !ok {
		log.Printf("Warning: unknown map style %q, falling back to %s", styleKey, StyleStandard)
		styleKey = StyleStandard
	}

	styleKey = FallbackFor(styleKey, platform)
	def := styles[styleKey]

	palette, ok := def.palettes[theme]
	if !ok {
		palette = def.palettes[ThemeLight]
	}

	native := def.native[platform]
	return StyleConfig{
		Key:       styleKey,
		MapType:   native.mapType,
		StyleName: native.styleName,
		Palette:   palette,
	}
}

// IsSupported reports whether the platform's native map surface can render
// the style
func IsSupported(styleKey string, platform Platform) bool {
	def, ok := styles[styleKey]
	if !ok {
		return false
	}
	_, ok = def.native[platform]
	return ok
}

// FallbackFor returns the substitute style for an unsupported style/platform
// pair (terrain degrades to satellite); identity otherwise
func FallbackFor(styleKey string, platform Platform) string {
	if IsSupported(styleKey, platform) {
		return styleKey
	}
	if styleKey == StyleTerrain {
		return StyleSatellite
	}
	return StyleStandard
}

// Styles returns every known style key
func Styles() []string {
	return []string{StyleStandard, StyleSatellite, StyleTerrain, StyleNight, StyleAdventure}
}
