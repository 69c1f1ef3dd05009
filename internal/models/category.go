package models

// Spending categories. Transactions and budgets share the same fixed set.
const (
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryBills          = "Bills"
	CategoryHealthcare     = "Healthcare"
	CategoryEducation      = "Education"
	CategoryTravel         = "Travel"
	CategoryInvestment     = "Investment"
	CategoryOther          = "Other"
)

// AllCategories returns all valid category constants
func AllCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryHealthcare,
		CategoryEducation,
		CategoryTravel,
		CategoryInvestment,
		CategoryOther,
	}
}

// IsValidCategory checks if a category string is valid
func IsValidCategory(category string) bool {
	for _, validCategory := range AllCategories() {
		if category == validCategory {
			return true
		}
	}
	return false
}
