package valueobject

import "fmt"

// Category is the closed set of red-flag categories a website check can raise.
type Category struct {
	value string
}

var (
	CategorySecurity            = Category{value: "Security"}
	CategoryDomain              = Category{value: "Domain"}
	CategoryURLFormat           = Category{value: "URL Format"}
	CategoryContactInfo         = Category{value: "Contact Info"}
	CategoryPolicies            = Category{value: "Policies"}
	CategoryPayment             = Category{value: "Payment"}
	CategoryPricing             = Category{value: "Pricing"}
	CategoryContentQuality      = Category{value: "Content Quality"}
	CategoryContent             = Category{value: "Content"}
	CategoryScripts             = Category{value: "Scripts"}
	CategoryMalwareRisk         = Category{value: "Malware Risk"}
	CategoryPhishingRisk        = Category{value: "Phishing Risk"}
	CategoryHarmfulContent      = Category{value: "Harmful Content"}
	CategoryMentalHealthRisk    = Category{value: "Mental Health Risk"}
	CategoryMisinformation      = Category{value: "Misinformation"}
	CategoryPrivacyRisk         = Category{value: "Privacy Risk"}
	CategoryLegalRisk           = Category{value: "Legal Risk"}
	CategoryPredatoryRisk       = Category{value: "Predatory Risk"}
	CategorySecurityMalpractice = Category{value: "Security Malpractice"}
)

var allCategories = []Category{
	CategorySecurity, CategoryDomain, CategoryURLFormat, CategoryContactInfo,
	CategoryPolicies, CategoryPayment, CategoryPricing, CategoryContentQuality,
	CategoryContent, CategoryScripts, CategoryMalwareRisk, CategoryPhishingRisk,
	CategoryHarmfulContent, CategoryMentalHealthRisk, CategoryMisinformation,
	CategoryPrivacyRisk, CategoryLegalRisk, CategoryPredatoryRisk,
	CategorySecurityMalpractice,
}

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// CategoryFromString reconstructs a Category from its label.
func CategoryFromString(s string) (Category, error) {
	for _, c := range allCategories {
		if c.value == s {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("invalid category: %s", s)
}

func (c Category) String() string { return c.value }

func (c Category) IsZero() bool { return c.value == "" }

func (c Category) Equal(other Category) bool { return c.value == other.value }
