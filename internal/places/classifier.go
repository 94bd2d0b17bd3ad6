// Package places maps Google place-type tags to display icons and coarse
// categories. Both lookups are first-match-wins over the tag order supplied
// by the caller, so repeated renders with identically ordered tags always
// produce the same marker.
package places

// DefaultIcon is returned when no type tag is recognized
const DefaultIcon = "location"

// Category buckets for saved places
const (
	CategoryFoodDrink     = "Food & Drink"
	CategoryShopping      = "Shopping"
	CategoryLodging       = "Lodging"
	CategoryOutdoors      = "Outdoors"
	CategoryCulture       = "Culture"
	CategoryEntertainment = "Entertainment"
	CategoryHealth        = "Health"
	CategoryTransport     = "Transport"
	CategoryServices      = "Services"
	CategoryOther         = "Other"
)

var iconByType = map[string]string{
	"restaurant":        "restaurant",
	"cafe":              "cafe",
	"bar":               "beer",
	"bakery":            "pizza",
	"meal_takeaway":     "fast-food",
	"food":              "restaurant",
	"supermarket":       "cart",
	"grocery_or_supermarket": "cart",
	"shopping_mall":     "bag",
	"store":             "storefront",
	"clothing_store":    "shirt",
	"book_store":        "book",
	"lodging":           "bed",
	"campground":        "bonfire",
	"park":              "leaf",
	"natural_feature":   "trail-sign",
	"tourist_attraction": "camera",
	"museum":            "color-palette",
	"art_gallery":       "color-palette",
	"library":           "library",
	"church":            "business",
	"movie_theater":     "film",
	"stadium":           "football",
	"amusement_park":    "happy",
	"gym":               "fitness",
	"hospital":          "medkit",
	"pharmacy":          "medkit",
	"doctor":            "medkit",
	"train_station":     "train",
	"subway_station":    "train",
	"bus_station":       "bus",
	"airport":           "airplane",
	"gas_station":       "car",
	"parking":           "car",
	"bank":              "card",
	"atm":               "card",
	"post_office":       "mail",
	"school":            "school",
	"university":        "school",
}

var categoryByType = map[string]string{
	"restaurant":        CategoryFoodDrink,
	"cafe":              CategoryFoodDrink,
	"bar":               CategoryFoodDrink,
	"bakery":            CategoryFoodDrink,
	"meal_takeaway":     CategoryFoodDrink,
	"food":              CategoryFoodDrink,
	"supermarket":       CategoryShopping,
	"grocery_or_supermarket": CategoryShopping,
	"shopping_mall":     CategoryShopping,
	"store":             CategoryShopping,
	"clothing_store":    CategoryShopping,
	"book_store":        CategoryShopping,
	"lodging":           CategoryLodging,
	"campground":        CategoryLodging,
	"park":              CategoryOutdoors,
	"natural_feature":   CategoryOutdoors,
	"tourist_attraction": CategoryCulture,
	"museum":            CategoryCulture,
	"art_gallery":       CategoryCulture,
	"library":           CategoryCulture,
	"church":            CategoryCulture,
	"movie_theater":     CategoryEntertainment,
	"stadium":           CategoryEntertainment,
	"amusement_park":    CategoryEntertainment,
	"gym":               CategoryHealth,
	"hospital":          CategoryHealth,
	"pharmacy":          CategoryHealth,
	"doctor":            CategoryHealth,
	"train_station":     CategoryTransport,
	"subway_station":    CategoryTransport,
	"bus_station":       CategoryTransport,
	"airport":           CategoryTransport,
	"gas_station":       CategoryTransport,
	"parking":           CategoryTransport,
	"bank":              CategoryServices,
	"atm":               CategoryServices,
	"post_office":       CategoryServices,
	"school":            CategoryServices,
	"university":        CategoryServices,
}

// IconFor returns the icon for the first recognized tag in types, or
// DefaultIcon when nothing matches
func IconFor(types []string) string {
	for _, t := range types {
		if icon, ok := iconByType[t]; ok {
			return icon
		}
	}
	return DefaultIcon
}

// CategoryFor returns the category bucket for the first recognized tag in
// types, or CategoryOther when nothing matches
func CategoryFor(types []string) string {
	for _, t := range types {
		if category, ok := categoryByType[t]; ok {
			return category
		}
	}
	return CategoryOther
}

// Categories returns every category bucket a place can resolve to
func Categories() []string {
	return []string{
		CategoryFoodDrink,
		CategoryShopping,
		CategoryLodging,
		CategoryOutdoors,
		CategoryCulture,
		CategoryEntertainment,
		CategoryHealth,
		CategoryTransport,
		CategoryServices,
		CategoryOther,
	}
}
