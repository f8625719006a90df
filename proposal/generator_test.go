package proposal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func sampleData() Data {
	return Data{
		OrderNumber:    "ORD-1700000000000-ABC123DEF",
		ClientName:     "Daniel Client",
		ClientEmail:    "client@example.com",
		PackageType:    "Standard",
		TotalAmount:    decimal.NewFromInt(100000),
		Currency:       "JMD",
		Description:    "Company site with booking form",
		CreatedDate:    time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
		GeneratedAt:    time.Date(2025, 3, 6, 14, 30, 0, 0, time.UTC),
		WebsiteType:    "Business",
		NumPages:       "5-10",
		Features:       []string{"responsive", "seo", "custom-tag"},
		ColorScheme:    "Blue and white",
		PageTypes:      []string{"Home", "About", "Contact"},
		CompletionDate: "2025-06-01",
		BudgetRange:    "100k-150k JMD",
	}
}

func TestGenerate(t *testing.T) {
	content, err := Generate(sampleData())
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Greater(t, len(content), 1000)
}

func TestGenerate_Deterministic(t *testing.T) {
	data := sampleData()

	first, err := Generate(data)
	assert.NoError(t, err)

	second, err := Generate(data)
	assert.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "Identical input must produce identical bytes")
}

func TestGenerate_DifferentGeneratedAtDiffers(t *testing.T) {
	data := sampleData()
	first, err := Generate(data)
	assert.NoError(t, err)

	data.GeneratedAt = data.GeneratedAt.Add(24 * time.Hour)
	second, err := Generate(data)
	assert.NoError(t, err)

	assert.False(t, bytes.Equal(first, second))
}

func TestGenerate_MinimalData(t *testing.T) {
	// Optional fields absent: every box still renders
	data := Data{
		OrderNumber: "ORD-1700000000001-MINIMAL00",
		ClientName:  "Daniel Client",
		ClientEmail: "client@example.com",
		PackageType: "Basic",
		TotalAmount: decimal.NewFromInt(50000),
		Currency:    "JMD",
		CreatedDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		GeneratedAt: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	}

	content, err := Generate(data)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestGenerate_OddDepositKeepsFraction(t *testing.T) {
	data := sampleData()
	data.TotalAmount = decimal.NewFromInt(333)
	data.Currency = "USD"

	_, err := Generate(data)
	assert.NoError(t, err)
}

func TestSaveToFile(t *testing.T) {
	dir := t.TempDir()
	data := sampleData()

	// A directory path gets the download filename appended
	err := SaveToFile(data, dir)
	assert.NoError(t, err)

	expected := filepath.Join(dir, "Proposal-"+data.OrderNumber+".pdf")
	content, err := os.ReadFile(expected)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))

	// An explicit file path is used as-is
	explicit := filepath.Join(dir, "out.pdf")
	err = SaveToFile(data, explicit)
	assert.NoError(t, err)
	_, err = os.Stat(explicit)
	assert.NoError(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Proposal-ORD-123-XYZ.pdf", Filename("ORD-123-XYZ"))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{name: "Six figures", amount: decimal.NewFromInt(100000), expected: "100,000"},
		{name: "Four figures", amount: decimal.NewFromInt(1667), expected: "1,667"},
		{name: "Three figures", amount: decimal.NewFromInt(333), expected: "333"},
		{name: "Fraction kept when nonzero", amount: decimal.NewFromFloat(166.5), expected: "166.5"},
		{name: "Zero fraction dropped", amount: decimal.NewFromFloat(500.0), expected: "500"},
		{name: "Million", amount: decimal.NewFromInt(1250000), expected: "1,250,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatAmount(tt.amount))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "3/5/2025", formatDate(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12/31/2024", formatDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestFormatFeatureName(t *testing.T) {
	assert.Equal(t, "Responsive Design", formatFeatureName("responsive"))
	assert.Equal(t, "SEO Optimization", formatFeatureName("seo"))
	assert.Equal(t, "AI Chatbot", formatFeatureName("chatbot"))
	// Unknown tags pass through
	assert.Equal(t, "custom-tag", formatFeatureName("custom-tag"))
}
