package mapstyle

import (
	"reflect"
	"testing"
)

func TestResolveKnownStyle(t *testing.T) {
	got := Resolve(StyleSatellite, ThemeLight, PlatformAndroid)

	if got.Key != StyleSatellite {
		t.Errorf("Key = %q, want %q", got.Key, StyleSatellite)
	}
	if got.MapType != "satellite" {
		t.Errorf("MapType = %q, want satellite", got.MapType)
	}
	if got.Palette.PolylineColor == "" {
		t.Error("palette should be populated")
	}
}

func TestResolveUnknownStyleFallsBackToStandard(t *testing.T) {
	got := Resolve("holographic", ThemeLight, PlatformAndroid)
	want := Resolve(StyleStandard, ThemeLight, PlatformAndroid)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("unknown style resolved to %+v, want standard %+v", got, want)
	}
}

func TestResolveUnknownThemeUsesLightPalette(t *testing.T) {
	got := Resolve(StyleNight, Theme("sepia"), PlatformAndroid)
	want := Resolve(StyleNight, ThemeLight, PlatformAndroid)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("unknown theme resolved to %+v, want light %+v", got, want)
	}
}

func TestTerrainDegradesToSatelliteOnIOS(t *testing.T) {
	got := Resolve(StyleTerrain, ThemeLight, PlatformIOS)
	want := Resolve(StyleSatellite, ThemeLight, PlatformIOS)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("terrain on ios resolved to %+v, want satellite %+v", got, want)
	}
}

func TestTerrainSupportedOnAndroid(t *testing.T) {
	if !IsSupported(StyleTerrain, PlatformAndroid) {
		t.Error("terrain should be supported on android")
	}
	if IsSupported(StyleTerrain, PlatformIOS) {
		t.Error("terrain should not be supported on ios")
	}

	got := Resolve(StyleTerrain, ThemeDark, PlatformAndroid)
	if got.Key != StyleTerrain || got.MapType != "terrain" {
		t.Errorf("terrain on android resolved to %+v", got)
	}
}

func TestFallbackForIdentityWhenSupported(t *testing.T) {
	for _, style := range Styles() {
		if got := FallbackFor(style, PlatformAndroid); got != style {
			t.Errorf("FallbackFor(%q, android) = %q, want identity", style, got)
		}
	}
}

func TestEveryStyleHasBothPalettes(t *testing.T) {
	for key, def := range styles {
		for _, theme := range []Theme{ThemeLight, ThemeDark} {
			if _, ok := def.palettes[theme]; !ok {
				t.Errorf("style %q missing %s palette", key, theme)
			}
		}
	}
}
