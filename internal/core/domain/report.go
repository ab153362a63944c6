package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSummaryReport is one per-account-type row of the backend summary.
type AccountSummaryReport struct {
	AccountType         AccountType     `json:"accountType"`
	TotalAccounts       int             `json:"totalAccounts"`
	TotalBalance        decimal.Decimal `json:"totalBalance"`
	AverageBalance      decimal.Decimal `json:"averageBalance"`
	ActiveAccountsCount int             `json:"activeAccountsCount"`
	FrozenAccountsCount int             `json:"frozenAccountsCount"`
	ClosedAccountsCount int             `json:"closedAccountsCount"`
}

// Health bands for the share of active accounts.
const (
	HealthExcellent      = "Excellent"
	HealthGood           = "Good"
	HealthFair           = "Fair"
	HealthNeedsAttention = "Needs Attention"
)

// SummaryRow is a report row enriched with derived percentages.
type SummaryRow struct {
	AccountSummaryReport
	Label            string          `json:"label"`
	BalanceShare     decimal.Decimal `json:"balanceSharePercentage"`
	ActivePercentage decimal.Decimal `json:"activePercentage"`
}

// SummaryOverview aggregates the per-type rows into portfolio-wide figures.
type SummaryOverview struct {
	Rows                  []SummaryRow    `json:"rows"`
	TotalAccounts         int             `json:"totalAccounts"`
	TotalBalance          decimal.Decimal `json:"totalBalance"`
	TotalActive           int             `json:"totalActive"`
	TotalFrozen           int             `json:"totalFrozen"`
	TotalClosed           int             `json:"totalClosed"`
	OverallAverageBalance decimal.Decimal `json:"overallAverageBalance"`
	HealthPercentage      decimal.Decimal `json:"healthPercentage"`
	HealthStatus          string          `json:"healthStatus"`
	LastUpdated           time.Time       `json:"lastUpdated"`
}

var reportLabels = map[AccountType]string{
	AccountTypeBusiness:    "Business Accounts",
	AccountTypeChecking:    "Checking Accounts",
	AccountTypeSavings:     "Savings Accounts",
	AccountTypeInvestment:  "Investment Accounts",
	AccountTypeCurrent:     "Current Accounts",
	AccountTypeMoneyMarket: "Money Market Accounts",
}

var hundred = decimal.NewFromInt(100)

// percentOf returns part/whole*100, or 0 when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// HealthStatusFor maps an active-account percentage to its band.
func HealthStatusFor(pct decimal.Decimal) string {
	switch {
	case pct.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return HealthExcellent
	case pct.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return HealthGood
	case pct.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return HealthFair
	default:
		return HealthNeedsAttention
	}
}

// BuildSummaryOverview computes totals, balance shares and the health band.
func BuildSummaryOverview(rows []AccountSummaryReport, now time.Time) SummaryOverview {
	o := SummaryOverview{
		Rows:         make([]SummaryRow, 0, len(rows)),
		TotalBalance: decimal.Zero,
		LastUpdated:  now.UTC(),
	}

	for _, r := range rows {
		o.TotalAccounts += r.TotalAccounts
		o.TotalBalance = o.TotalBalance.Add(r.TotalBalance)
		o.TotalActive += r.ActiveAccountsCount
		o.TotalFrozen += r.FrozenAccountsCount
		o.TotalClosed += r.ClosedAccountsCount
	}

	for _, r := range rows {
		label, ok := reportLabels[r.AccountType]
		if !ok {
			label = string(r.AccountType)
		}
		o.Rows = append(o.Rows, SummaryRow{
			AccountSummaryReport: r,
			Label:                label,
			BalanceShare:         percentOf(r.TotalBalance, o.TotalBalance).Round(2),
			ActivePercentage: percentOf(
				decimal.NewFromInt(int64(r.ActiveAccountsCount)),
				decimal.NewFromInt(int64(r.TotalAccounts)),
			).Round(2),
		})
	}

	total := decimal.NewFromInt(int64(o.TotalAccounts))
	o.OverallAverageBalance = decimal.Zero
	if o.TotalAccounts > 0 {
		o.OverallAverageBalance = o.TotalBalance.Div(total).Round(2)
	}
	health := percentOf(decimal.NewFromInt(int64(o.TotalActive)), total)
	o.HealthStatus = HealthStatusFor(health)
	o.HealthPercentage = health.Round(2)

	return o
}
