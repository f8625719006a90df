// Package pricing holds the static package price table. Totals are
// looked up here once at order creation and never recomputed.
package pricing

import (
	"fmt"

	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/shopspring/decimal"
)

type packagePrice struct {
	JMD int64
	USD int64
}

var packagePrices = map[string]packagePrice{
	models.PackageBasic:        {JMD: 50000, USD: 333},
	models.PackageStandard:     {JMD: 100000, USD: 667},
	models.PackageProfessional: {JMD: 150000, USD: 1000},
	models.PackageEnterprise:   {JMD: 250000, USD: 1667},
}

// PriceFor returns the fixed price for a package tier in the given
// currency. Unknown tiers or currencies are an error.
func PriceFor(packageType, currency string) (decimal.Decimal, error) {
	price, ok := packagePrices[packageType]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown package type: %q", packageType)
	}

	switch currency {
	case models.CurrencyJMD:
		return decimal.NewFromInt(price.JMD), nil
	case models.CurrencyUSD:
		return decimal.NewFromInt(price.USD), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown currency: %q", currency)
	}
}

// Deposit returns the 50% deposit required to begin development
func Deposit(total decimal.Decimal) decimal.Decimal {
	return total.Div(decimal.NewFromInt(2))
}
