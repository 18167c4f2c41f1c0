package models

// BillingCycle is the recurrence interval of a subscription or payment.
// Values are the labels written to backups.
type BillingCycle string

const (
	BillingCycleWeekly    BillingCycle = "Weekly"
	BillingCycleBiweekly  BillingCycle = "Bi-weekly"
	BillingCycleMonthly   BillingCycle = "Monthly"
	BillingCycleQuarterly BillingCycle = "Quarterly"
	BillingCycleYearly    BillingCycle = "Yearly"
)

// BillingCycles lists every cycle in display order.
var BillingCycles = []BillingCycle{
	BillingCycleWeekly,
	BillingCycleBiweekly,
	BillingCycleMonthly,
	BillingCycleQuarterly,
	BillingCycleYearly,
}

// DefaultBillingCycle is used for new subscriptions and unrecognized imports.
const DefaultBillingCycle = BillingCycleMonthly

// ParseBillingCycle maps a stored label to its cycle. Unknown labels map to
// DefaultBillingCycle with ok set to false.
func ParseBillingCycle(s string) (BillingCycle, bool) {
	for _, c := range BillingCycles {
		if string(c) == s {
			return c, true
		}
	}
	return DefaultBillingCycle, false
}

// SubscriptionCategory groups subscriptions and recurring payments.
type SubscriptionCategory string

const (
	SubscriptionCategoryStreaming  SubscriptionCategory = "Streaming"
	SubscriptionCategorySoftware   SubscriptionCategory = "Software"
	SubscriptionCategoryUtilities  SubscriptionCategory = "Utilities"
	SubscriptionCategoryInsurance  SubscriptionCategory = "Insurance"
	SubscriptionCategoryRent       SubscriptionCategory = "Rent"
	SubscriptionCategoryLoan       SubscriptionCategory = "Loan"
	SubscriptionCategoryMembership SubscriptionCategory = "Membership"
	SubscriptionCategoryOther      SubscriptionCategory = "Other"
)

// SubscriptionCategories lists every subscription category in display order.
var SubscriptionCategories = []SubscriptionCategory{
	SubscriptionCategoryStreaming,
	SubscriptionCategorySoftware,
	SubscriptionCategoryUtilities,
	SubscriptionCategoryInsurance,
	SubscriptionCategoryRent,
	SubscriptionCategoryLoan,
	SubscriptionCategoryMembership,
	SubscriptionCategoryOther,
}

// ParseSubscriptionCategory maps a stored label to its category. Unknown
// labels map to SubscriptionCategoryOther with ok set to false.
func ParseSubscriptionCategory(s string) (SubscriptionCategory, bool) {
	for _, c := range SubscriptionCategories {
		if string(c) == s {
			return c, true
		}
	}
	return SubscriptionCategoryOther, false
}

// AssetCategory groups personal assets.
type AssetCategory string

const (
	AssetCategoryElectronics  AssetCategory = "Electronics"
	AssetCategoryVehicle      AssetCategory = "Vehicle"
	AssetCategoryProperty     AssetCategory = "Property"
	AssetCategoryJewelry      AssetCategory = "Jewelry"
	AssetCategoryCollectibles AssetCategory = "Collectibles"
	AssetCategoryFurniture    AssetCategory = "Furniture"
	AssetCategoryOther        AssetCategory = "Other"
)

// AssetCategories lists every asset category in display order.
var AssetCategories = []AssetCategory{
	AssetCategoryElectronics,
	AssetCategoryVehicle,
	AssetCategoryProperty,
	AssetCategoryJewelry,
	AssetCategoryCollectibles,
	AssetCategoryFurniture,
	AssetCategoryOther,
}

// ParseAssetCategory maps a stored label to its category. Unknown labels map
// to AssetCategoryOther with ok set to false.
func ParseAssetCategory(s string) (AssetCategory, bool) {
	for _, c := range AssetCategories {
		if string(c) == s {
			return c, true
		}
	}
	return AssetCategoryOther, false
}
