// Package wizard implements the four-step order intake flow. Nothing is
// persisted until the final submit; each step gates progression on its
// own required fields.
package wizard

import (
	"fmt"

	"github.com/daniel-minto/minto-portfolio-api/models"
	"github.com/daniel-minto/minto-portfolio-api/pricing"
	"github.com/shopspring/decimal"
)

const (
	StepProject = 1 // package, website type, page count, description
	StepContact = 2 // name, email, phone
	StepPayment = 3 // payment method
	StepReview  = 4 // summary, submit
)

// FormData is the mutable record accumulated across the four steps
type FormData struct {
	ClientName     string   `json:"client_name"`
	ClientEmail    string   `json:"client_email"`
	ClientPhone    string   `json:"client_phone"`
	CompanyName    string   `json:"company_name"`
	PackageType    string   `json:"package_type"`
	WebsiteType    string   `json:"website_type"`
	NumPages       string   `json:"num_pages"`
	Description    string   `json:"description"`
	ColorScheme    string   `json:"color_scheme"`
	Features       []string `json:"features"`
	PageTypes      []string `json:"page_types"`
	CompletionDate string   `json:"completion_date"`
	BudgetRange    string   `json:"budget_range"`
	PaymentMethod  string   `json:"payment_method"`
	Currency       string   `json:"currency"`
}

// ValidationError blocks step progression and names the failing step
type ValidationError struct {
	Step    int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Wizard tracks the current step and the accumulated form data
type Wizard struct {
	step int
	Form FormData
}

// New starts a wizard at step 1 with the same defaults the intake form
// has always preselected
func New() *Wizard {
	return &Wizard{
		step: StepProject,
		Form: FormData{
			PackageType:   models.PackageStandard,
			PaymentMethod: models.PaymentBankTransfer,
			Currency:      models.CurrencyJMD,
		},
	}
}

// Step returns the current step in {1,2,3,4}
func (w *Wizard) Step() int {
	return w.step
}

// Advance validates the active step and moves forward exactly one step.
// On validation failure it returns a blocking error and the step does
// not change. Advancing from the final step is a no-op.
func (w *Wizard) Advance() error {
	if err := w.validateStep(w.step); err != nil {
		return err
	}
	if w.step < StepReview {
		w.step++
	}
	return nil
}

// Retreat moves back one step; it always succeeds above step 1
func (w *Wizard) Retreat() {
	if w.step > StepProject {
		w.step--
	}
}

func (w *Wizard) validateStep(step int) error {
	switch step {
	case StepProject:
		if w.Form.PackageType == "" || w.Form.WebsiteType == "" || w.Form.NumPages == "" || w.Form.Description == "" {
			return &ValidationError{Step: StepProject, Message: "Please complete all required fields in Step 1."}
		}
		if !models.ValidPackageType(w.Form.PackageType) {
			return &ValidationError{Step: StepProject, Message: fmt.Sprintf("Unknown package type: %s", w.Form.PackageType)}
		}
	case StepContact:
		if w.Form.ClientName == "" || w.Form.ClientEmail == "" || w.Form.ClientPhone == "" {
			return &ValidationError{Step: StepContact, Message: "Please complete all required fields in Step 2."}
		}
	case StepPayment:
		if w.Form.PaymentMethod == "" {
			return &ValidationError{Step: StepPayment, Message: "Please select a payment method."}
		}
		if !models.ValidPaymentMethod(w.Form.PaymentMethod) {
			return &ValidationError{Step: StepPayment, Message: fmt.Sprintf("Unknown payment method: %s", w.Form.PaymentMethod)}
		}
	}
	return nil
}

// Submission is the complete payload produced by a finished wizard. The
// total is derived from the static price table, never taken from input.
type Submission struct {
	FormData
	TotalAmount decimal.Decimal
}

// Submit validates every step and produces the final payload. It is only
// reachable from step 4. Card payment is disabled: only bank transfer
// and cash are accepted.
func (w *Wizard) Submit() (*Submission, error) {
	if w.step != StepReview {
		return nil, &ValidationError{Step: w.step, Message: "Please complete all steps before submitting."}
	}
	for step := StepProject; step <= StepPayment; step++ {
		if err := w.validateStep(step); err != nil {
			return nil, err
		}
	}
	if w.Form.PaymentMethod == models.PaymentCard {
		return nil, &ValidationError{Step: StepPayment, Message: "Card payment is currently unavailable. Please choose Bank Transfer or Cash."}
	}
	if !models.ValidCurrency(w.Form.Currency) {
		return nil, &ValidationError{Step: StepPayment, Message: fmt.Sprintf("Unknown currency: %s", w.Form.Currency)}
	}

	total, err := pricing.PriceFor(w.Form.PackageType, w.Form.Currency)
	if err != nil {
		return nil, &ValidationError{Step: StepProject, Message: err.Error()}
	}

	return &Submission{FormData: w.Form, TotalAmount: total}, nil
}
