package models

// Categories is the fixed set of job categories offered by the listing filters.
var Categories = []string{
	"경비/보안",
	"청소/미화",
	"주차관리",
	"배달/운송",
	"급식/조리",
	"사무보조",
	"시설관리",
}

// legacyCategories are the short labels used by the registration forms.
var legacyCategories = []string{"경비", "청소", "미화"}

// IsAllCategories reports whether c means "no category filter".
func IsAllCategories(c string) bool {
	return c == "" || c == "all" || c == "전체"
}

func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	for _, known := range legacyCategories {
		if c == known {
			return true
		}
	}
	return false
}
