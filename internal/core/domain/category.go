package domain

// Fixed vocabularies the provider must choose from. Order matters: it is
// embedded verbatim into prompts and reported back in API errors.
var (
	AllowedCategories = []string{
		"Personal Care",
		"Home & Kitchen",
		"Office Supplies",
		"Packaging",
		"Apparel",
		"Corporate Gifting",
	}

	AllowedSustainabilityFilters = []string{
		"plastic-free",
		"compostable",
		"biodegradable",
		"recycled",
		"vegan",
		"organic",
		"low-carbon",
	}
)

func IsAllowedCategory(value string) bool {
	for _, c := range AllowedCategories {
		if c == value {
			return true
		}
	}
	return false
}

func IsAllowedSustainabilityFilter(value string) bool {
	for _, f := range AllowedSustainabilityFilters {
		if f == value {
			return true
		}
	}
	return false
}

// AutoCategoryInput carries the caller-validated fields of a categorization request.
type AutoCategoryInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AutoCategoryResult is the validated categorization output. All fields are
// trimmed and non-empty; list ordering is preserved from the provider output.
type AutoCategoryResult struct {
	PrimaryCategory       string   `json:"primary_category"`
	SubCategory           string   `json:"sub_category"`
	SEOTags               []string `json:"seo_tags"`
	SustainabilityFilters []string `json:"sustainability_filters"`
}
