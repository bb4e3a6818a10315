package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Draft is user-entered, not-yet-submitted invoice data. Amount is a
// free-text decimal string; DueDate is a calendar date (YYYY-MM-DD).
type Draft struct {
	OrgName         string `json:"org_name"`
	WorkDescription string `json:"work_description"`
	Amount          string `json:"amount"`
	DueDate         string `json:"due_date"`
}

// ValidationResult maps field names to their first violated rule.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  map[string]string `json:"errors"`
}

const (
	FieldOrgName         = "org_name"
	FieldWorkDescription = "work_description"
	FieldAmount          = "amount"
	FieldDueDate         = "due_date"
)

// Draft business rules.
const (
	MinOrgNameLen         = 2
	MinWorkDescriptionLen = 10
	DueDateLayout         = "2006-01-02"
	MinDueDateLead        = 24 * time.Hour
)

// MaxInvoiceAmount is the largest amount a single invoice may carry,
// in whole tokens.
var MaxInvoiceAmount = decimal.NewFromInt(1_000_000)

// ValidateDraft checks a draft against the invoice business rules.
// Fields are independent and only the first violated rule per field is
// reported. The due date must be strictly in the future and at least
// 24 hours away from now.
func ValidateDraft(d Draft, now time.Time) ValidationResult {
	errs := make(map[string]string)

	orgName := strings.TrimSpace(d.OrgName)
	if orgName == "" {
		errs[FieldOrgName] = "Organization name is required"
	} else if len([]rune(orgName)) < MinOrgNameLen {
		errs[FieldOrgName] = "Organization name must be at least 2 characters"
	}

	desc := strings.TrimSpace(d.WorkDescription)
	if desc == "" {
		errs[FieldWorkDescription] = "Work description is required"
	} else if len([]rune(desc)) < MinWorkDescriptionLen {
		errs[FieldWorkDescription] = "Work description must be at least 10 characters"
	}

	amount := strings.TrimSpace(d.Amount)
	if amount == "" {
		errs[FieldAmount] = "Amount is required"
	} else if parsed, err := decimal.NewFromString(amount); err != nil || !parsed.IsPositive() {
		errs[FieldAmount] = "Amount must be a positive number"
	} else if parsed.GreaterThan(MaxInvoiceAmount) {
		errs[FieldAmount] = "Amount cannot exceed 1,000,000 PYUSD"
	}

	if d.DueDate == "" {
		errs[FieldDueDate] = "Due date is required"
	} else if due, err := time.Parse(DueDateLayout, d.DueDate); err != nil {
		errs[FieldDueDate] = "Due date must be a valid date"
	} else if !due.After(now) {
		errs[FieldDueDate] = "Due date must be in the future"
	} else if due.Before(now.Add(MinDueDateLead)) {
		errs[FieldDueDate] = "Due date must be at least 24 hours from now"
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
