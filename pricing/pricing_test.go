package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/daniel-minto/minto-portfolio-api/models"
)

func TestPriceFor(t *testing.T) {
	tests := []struct {
		name        string
		packageType string
		currency    string
		expected    int64
		expectError bool
	}{
		{name: "Basic in JMD", packageType: models.PackageBasic, currency: models.CurrencyJMD, expected: 50000},
		{name: "Basic in USD", packageType: models.PackageBasic, currency: models.CurrencyUSD, expected: 333},
		{name: "Standard in JMD", packageType: models.PackageStandard, currency: models.CurrencyJMD, expected: 100000},
		{name: "Standard in USD", packageType: models.PackageStandard, currency: models.CurrencyUSD, expected: 667},
		{name: "Professional in JMD", packageType: models.PackageProfessional, currency: models.CurrencyJMD, expected: 150000},
		{name: "Professional in USD", packageType: models.PackageProfessional, currency: models.CurrencyUSD, expected: 1000},
		{name: "Enterprise in JMD", packageType: models.PackageEnterprise, currency: models.CurrencyJMD, expected: 250000},
		{name: "Enterprise in USD", packageType: models.PackageEnterprise, currency: models.CurrencyUSD, expected: 1667},
		{name: "Unknown package", packageType: "Platinum", currency: models.CurrencyJMD, expectError: true},
		{name: "Unknown currency", packageType: models.PackageBasic, currency: "EUR", expectError: true},
		{name: "Empty package", packageType: "", currency: models.CurrencyJMD, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := PriceFor(tt.packageType, tt.currency)

			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, price.IsZero())
				return
			}

			assert.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.expected).Equal(price))
		})
	}
}

func TestDeposit(t *testing.T) {
	total, err := PriceFor(models.PackageStandard, models.CurrencyJMD)
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50000).Equal(Deposit(total)))

	// Odd totals keep the exact half
	assert.True(t, decimal.NewFromFloat(166.5).Equal(Deposit(decimal.NewFromInt(333))))
}
