package places

import "testing"

func TestIconForFirstMatchWins(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"single match", []string{"restaurant"}, "restaurant"},
		{"unknown then known", []string{"unknown_type", "restaurant"}, "restaurant"},
		{"first of two known", []string{"cafe", "restaurant"}, "cafe"},
		{"order reversed", []string{"restaurant", "cafe"}, "restaurant"},
		{"all unknown", []string{"point_of_interest", "establishment"}, DefaultIcon},
		{"empty", []string{}, DefaultIcon},
		{"nil", nil, DefaultIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconFor(tt.types); got != tt.want {
				t.Errorf("IconFor(%v) = %q, want %q", tt.types, got, tt.want)
			}
		})
	}
}

func TestCategoryForFirstMatchWins(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"food", []string{"restaurant"}, CategoryFoodDrink},
		{"unknown then known", []string{"unknown_type", "museum"}, CategoryCulture},
		{"first of two known", []string{"park", "cafe"}, CategoryOutdoors},
		{"all unknown", []string{"establishment"}, CategoryOther},
		{"nil", nil, CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryFor(tt.types); got != tt.want {
				t.Errorf("CategoryFor(%v) = %q, want %q", tt.types, got, tt.want)
			}
		})
	}
}

func TestEveryMappedTypeResolvesToAKnownCategory(t *testing.T) {
	known := make(map[string]bool)
	for _, c := range Categories() {
		known[c] = true
	}

	for tag, category := range categoryByType {
		if !known[category] {
			t.Errorf("type %q maps to unknown category %q", tag, category)
		}
	}
}
