// Package proposal renders an order into the fixed-layout project
// proposal PDF presented to clients for signature. Rendering is a pure
// function of its input: identical Data (including GeneratedAt) yields
// byte-identical output.
package proposal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Data is everything the proposal template needs from an order
type Data struct {
	OrderNumber    string
	ClientName     string
	ClientEmail    string
	PackageType    string
	TotalAmount    decimal.Decimal
	Currency       string
	Description    string
	CreatedDate    time.Time
	GeneratedAt    time.Time
	WebsiteType    string
	NumPages       string
	Features       []string
	ColorScheme    string
	PageTypes      []string
	CompletionDate string
	BudgetRange    string
}

// featureLabels maps feature tags to their display names. Unknown tags
// pass through unchanged.
var featureLabels = map[string]string{
	"responsive": "Responsive Design",
	"3d":         "3D Animations",
	"cms":        "Content Management System",
	"ecommerce":  "E-Commerce Integration",
	"seo":        "SEO Optimization",
	"analytics":  "Analytics Integration",
	"chatbot":    "AI Chatbot",
	"payment":    "Payment Gateway Integration",
}

func formatFeatureName(tag string) string {
	if label, ok := featureLabels[tag]; ok {
		return label
	}
	return tag
}

// Generate renders the proposal and returns the PDF bytes
func Generate(data Data) ([]byte, error) {
	pdf := build(data)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render proposal PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveToFile writes the proposal to path, named like the client-facing
// download (Proposal-<orderNumber>.pdf when path is a directory).
func SaveToFile(data Data, path string) error {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = fmt.Sprintf("%s/Proposal-%s.pdf", strings.TrimRight(path, "/"), data.OrderNumber)
	}

	content, err := Generate(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to save proposal: %w", err)
	}
	return nil
}

// Filename returns the download name for a generated proposal
func Filename(orderNumber string) string {
	return fmt.Sprintf("Proposal-%s.pdf", orderNumber)
}

func build(data Data) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Pin document metadata so identical input produces identical bytes
	pdf.SetCreationDate(data.GeneratedAt)
	pdf.SetModificationDate(data.GeneratedAt)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()

	// Header band
	pdf.SetFillColor(25, 91, 153)
	pdf.Rect(0, 0, pageWidth, 45, "F")

	pdf.SetDrawColor(255, 255, 255)
	pdf.SetLineWidth(0.5)
	pdf.Line(0, 45, pageWidth, 45)

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 26)
	textCentered(pdf, pageWidth/2, 20, "Minto's Portfolio")
	pdf.SetFont("Helvetica", "", 10)
	textCentered(pdf, pageWidth/2, 32, "Professional Web Development Services")

	pdf.SetTextColor(0, 0, 0)

	// Title with underline
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(20, 60, "PROJECT PROPOSAL")
	pdf.SetDrawColor(25, 91, 153)
	pdf.SetLineWidth(0.8)
	pdf.Line(20, 63, 115, 63)

	// Proposal details
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(20, 75, fmt.Sprintf("Proposal #: %s", data.OrderNumber))
	pdf.Text(20, 81, fmt.Sprintf("Date: %s", formatDate(data.CreatedDate)))

	// Client information box
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Rect(15, 90, pageWidth-30, 22, "D")

	sectionHeading(pdf, 20, 100, "CLIENT INFORMATION", 11)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(20, 107, fmt.Sprintf("Name: %s", data.ClientName))
	emailLines := pdf.SplitText(fmt.Sprintf("Email: %s", data.ClientEmail), 160)
	textLines(pdf, 20, 113, emailLines)

	// Package details box, sized to its content
	currentY := 118.0
	details := []string{fmt.Sprintf("Package: %s", data.PackageType)}
	if data.WebsiteType != "" {
		details = append(details, fmt.Sprintf("Website Type: %s", data.WebsiteType))
	}
	if data.NumPages != "" {
		details = append(details, fmt.Sprintf("Number of Pages: %s", data.NumPages))
	}
	if data.ColorScheme != "" {
		details = append(details, fmt.Sprintf("Color Scheme: %s", data.ColorScheme))
	}
	if len(data.Features) > 0 {
		formatted := make([]string, len(data.Features))
		for i, f := range data.Features {
			formatted[i] = formatFeatureName(f)
		}
		details = append(details, fmt.Sprintf("Features: %s", strings.Join(formatted, ", ")))
	}
	if len(data.PageTypes) > 0 {
		details = append(details, fmt.Sprintf("Page Types: %s", strings.Join(data.PageTypes, ", ")))
	}
	if data.CompletionDate != "" {
		details = append(details, fmt.Sprintf("Desired Completion Date: %s", data.CompletionDate))
	}
	if data.BudgetRange != "" {
		details = append(details, fmt.Sprintf("Budget Range: %s", data.BudgetRange))
	}
	if data.Description != "" {
		details = append(details, fmt.Sprintf("Project Description: %s", data.Description))
	}

	boxHeight := 10 + float64(len(details))*6
	if data.Description != "" {
		boxHeight += 10
	}
	pdf.Rect(15, currentY, pageWidth-30, boxHeight, "D")

	currentY += 10
	sectionHeading(pdf, 20, currentY, "PACKAGE DETAILS", 11)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	currentY += 6

	for _, line := range details {
		wrapped := pdf.SplitText(line, 160)
		textLines(pdf, 20, currentY, wrapped)
		currentY += float64(len(wrapped)) * 5
	}

	currentY += 8

	// Pricing box, shaded
	pdf.SetFillColor(245, 247, 250)
	pdf.Rect(15, currentY, pageWidth-30, 30, "FD")

	sectionHeading(pdf, 20, currentY+8, "PRICING", 11)

	deposit := data.TotalAmount.Div(decimal.NewFromInt(2))
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(20, currentY+15, fmt.Sprintf("Total Amount: %s %s", data.Currency, formatAmount(data.TotalAmount)))
	pdf.Text(20, currentY+21, fmt.Sprintf("50%% Deposit Required: %s %s", data.Currency, formatAmount(deposit)))
	pdf.Text(20, currentY+27, fmt.Sprintf("Balance Due on Completion: %s %s", data.Currency, formatAmount(deposit)))

	currentY += 35

	// Payment terms
	sectionHeading(pdf, 20, currentY, "PAYMENT TERMS", 11)

	pdf.SetFont("Helvetica", "", 8.5)
	pdf.SetTextColor(60, 60, 60)
	pdf.Text(20, currentY+7, "- 50% deposit required to begin development")
	pdf.Text(20, currentY+12, "- 50% balance due upon project completion")
	pdf.Text(20, currentY+17, "- All payments must be made before project delivery")

	currentY += 25

	// Bank details box
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(15, currentY, pageWidth-30, 35, "D")

	sectionHeading(pdf, 20, currentY+8, "BANK TRANSFER DETAILS", 11)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(20, currentY+15, "Bank: Scotiabank")
	pdf.Text(20, currentY+20, "Account Name: Daniel Minto")
	pdf.Text(20, currentY+25, "Account Number: 000-8060-154")
	pdf.Text(20, currentY+30, "Branch: Spanish Town")

	currentY += 42

	// New page if the signature block would not fit
	if currentY > pageHeight-60 {
		pdf.AddPage()
		currentY = 20
	}

	// Signature block
	sectionHeading(pdf, 20, currentY, "CLIENT SIGNATURE", 10)

	currentY += 10

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Line(20, currentY, 120, currentY)
	pdf.Line(130, currentY, 190, currentY)

	currentY += 8

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.Text(20, currentY, "Signature")
	pdf.Text(130, currentY, fmt.Sprintf("Date: %s", formatDate(data.GeneratedAt)))

	currentY += 15

	// Footer
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(15, currentY, pageWidth-15, currentY)

	currentY += 7

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	textCentered(pdf, pageWidth/2, currentY, "Contact: danielminto13@gmail.com | Phone: +1 (876) 386-4417")

	return pdf
}

// sectionHeading draws a bold blue section title at the given position
func sectionHeading(pdf *fpdf.Fpdf, x, y float64, title string, size float64) {
	pdf.SetFont("Helvetica", "B", size)
	pdf.SetTextColor(25, 91, 153)
	pdf.Text(x, y, title)
}

// textCentered draws a string centered on cx
func textCentered(pdf *fpdf.Fpdf, cx, y float64, s string) {
	pdf.Text(cx-pdf.GetStringWidth(s)/2, y, s)
}

// textLines draws pre-wrapped lines at a 5mm leading
func textLines(pdf *fpdf.Fpdf, x, y float64, lines []string) {
	for i, line := range lines {
		pdf.Text(x, y+float64(i)*5, line)
	}
}

// formatDate renders dates the way the proposal template always has
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// formatAmount renders a monetary value with thousands separators,
// omitting the fraction when it is zero
func formatAmount(d decimal.Decimal) string {
	whole := d.Truncate(0)
	frac := d.Sub(whole)

	intStr := whole.String()
	negative := strings.HasPrefix(intStr, "-")
	intStr = strings.TrimPrefix(intStr, "-")

	var groups []string
	for len(intStr) > 3 {
		groups = append([]string{intStr[len(intStr)-3:]}, groups...)
		intStr = intStr[:len(intStr)-3]
	}
	groups = append([]string{intStr}, groups...)

	out := strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	if !frac.IsZero() {
		fracStr := frac.Abs().String() // "0.5"
		out += strings.TrimPrefix(fracStr, "0")
	}
	return out
}
