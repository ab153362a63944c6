package domain

import "github.com/shopspring/decimal"

// AccountTypePreset is a compiled-in catalog entry used to prefill the account form.
type AccountTypePreset struct {
	Code              AccountType     `json:"code"`
	Label             string          `json:"label"`
	Description       string          `json:"description"`
	MinimumBalance    decimal.Decimal `json:"minimumBalance"`
	DefaultDailyLimit decimal.Decimal `json:"defaultDailyLimit"`
}

var presets = []AccountTypePreset{
	{
		Code:              AccountTypeChecking,
		Label:             "Checking Account",
		Description:       "Everyday banking for transactions, bill payments, and daily expenses",
		MinimumBalance:    decimal.NewFromInt(0),
		DefaultDailyLimit: decimal.NewFromInt(5000),
	},
	{
		Code:              AccountTypeSavings,
		Label:             "Savings Account",
		Description:       "Interest-bearing account for growing your money over time",
		MinimumBalance:    decimal.NewFromInt(100),
		DefaultDailyLimit: decimal.NewFromInt(2500),
	},
	{
		Code:              AccountTypeBusiness,
		Label:             "Business Account",
		Description:       "Comprehensive banking solution for business operations",
		MinimumBalance:    decimal.NewFromInt(500),
		DefaultDailyLimit: decimal.NewFromInt(25000),
	},
	{
		Code:              AccountTypeInvestment,
		Label:             "Investment Account",
		Description:       "Access to investment products and trading services",
		MinimumBalance:    decimal.NewFromInt(1000),
		DefaultDailyLimit: decimal.NewFromInt(10000),
	},
	{
		Code:              AccountTypeMoneyMarket,
		Label:             "Money Market Account",
		Description:       "Higher interest rates with limited monthly transactions",
		MinimumBalance:    decimal.NewFromInt(2500),
		DefaultDailyLimit: decimal.NewFromInt(5000),
	},
}

// Presets returns a copy of the catalog in display order.
func Presets() []AccountTypePreset {
	out := make([]AccountTypePreset, len(presets))
	copy(out, presets)
	return out
}

// FindPreset looks up a preset by code.
func FindPreset(code AccountType) (AccountTypePreset, bool) {
	for _, p := range presets {
		if p.Code == code {
			return p, true
		}
	}
	return AccountTypePreset{}, false
}
