package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FreezeType controls which transactions a freeze blocks.
type FreezeType string

const (
	FreezeTypeFull      FreezeType = "FULL_FREEZE"
	FreezeTypeDebit     FreezeType = "DEBIT_FREEZE"
	FreezeTypeCredit    FreezeType = "CREDIT_FREEZE"
	FreezeTypePartial   FreezeType = "PARTIAL_FREEZE"
	FreezeTypeTemporary FreezeType = "TEMPORARY_FREEZE"
)

// FreezeReason is the documented justification for a freeze.
type FreezeReason string

const (
	FreezeReasonSuspiciousActivity   FreezeReason = "SUSPICIOUS_ACTIVITY"
	FreezeReasonFraudPrevention      FreezeReason = "FRAUD_PREVENTION"
	FreezeReasonMultipleFailedLogins FreezeReason = "MULTIPLE_FAILED_LOGINS"
	FreezeReasonCourtOrder           FreezeReason = "COURT_ORDER"
	FreezeReasonCustomerRequest      FreezeReason = "CUSTOMER_REQUEST"
	FreezeReasonComplianceReview     FreezeReason = "COMPLIANCE_REVIEW"
	FreezeReasonUnauthorizedAccess   FreezeReason = "UNAUTHORIZED_ACCESS"
	FreezeReasonAccountInvestigation FreezeReason = "ACCOUNT_INVESTIGATION"
	FreezeReasonRiskManagement       FreezeReason = "RISK_MANAGEMENT"
	FreezeReasonOther                FreezeReason = "OTHER"
)

// FreezeActionFreeze is the only action this console issues.
const FreezeActionFreeze = "FREEZE"

// Option is a value/label pair for select lists.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// FreezeTypes lists the supported freeze types.
func FreezeTypes() []Option {
	return []Option{
		{string(FreezeTypeFull), "Full Freeze", "Blocks all transactions completely"},
		{string(FreezeTypeDebit), "Debit Freeze", "Blocks outgoing transactions only"},
		{string(FreezeTypeCredit), "Credit Freeze", "Blocks incoming transactions only"},
		{string(FreezeTypePartial), "Partial Freeze", "Blocks transactions above certain limit"},
		{string(FreezeTypeTemporary), "Temporary Freeze", "Time-limited freeze with auto-unfreeze"},
	}
}

// FreezeReasons lists the supported freeze reasons.
func FreezeReasons() []Option {
	return []Option{
		{Value: string(FreezeReasonSuspiciousActivity), Label: "Suspicious Activity Detected"},
		{Value: string(FreezeReasonFraudPrevention), Label: "Fraud Prevention Measure"},
		{Value: string(FreezeReasonMultipleFailedLogins), Label: "Multiple Failed Login Attempts"},
		{Value: string(FreezeReasonCourtOrder), Label: "Court Order / Legal Requirement"},
		{Value: string(FreezeReasonCustomerRequest), Label: "Customer Request"},
		{Value: string(FreezeReasonComplianceReview), Label: "Compliance Review"},
		{Value: string(FreezeReasonUnauthorizedAccess), Label: "Unauthorized Access Attempts"},
		{Value: string(FreezeReasonAccountInvestigation), Label: "Account Investigation"},
		{Value: string(FreezeReasonRiskManagement), Label: "Risk Management Decision"},
		{Value: string(FreezeReasonOther), Label: "Other (Specify in Comments)"},
	}
}

var freezeLabels = map[string]string{
	"freezeType":           "Freeze Type",
	"reason":               "Reason",
	"authorizedBy":         "Authorized By",
	"comments":             "Comments",
	"reviewDate":           "Review Date",
	"transactionLimit":     "Transaction Limit",
	"confirmAccountNumber": "Account Number Confirmation",
	"confirmFreeze":        "Freeze Confirmation",
	"officerSignature":     "Officer Signature",
}

// FreezeForm is the operator's freeze instruction.
type FreezeForm struct {
	FreezeType       FreezeType       `json:"freezeType" validate:"required,freeze_type"`
	Reason           FreezeReason     `json:"reason" validate:"required,freeze_reason"`
	AuthorizedBy     string           `json:"authorizedBy" validate:"required"`
	Comments         string           `json:"comments" validate:"required,min=10,max=500"`
	ReviewDate       string           `json:"reviewDate" validate:"required,datetime=2006-01-02"`
	UrgentFreeze     bool             `json:"urgentFreeze"`
	NotifyCustomer   bool             `json:"notifyCustomer"`
	TransactionLimit *decimal.Decimal `json:"transactionLimit,omitempty" validate:"required_if=FreezeType PARTIAL_FREEZE,omitempty,dgte=0"`
}

// Normalize clears the transaction limit for anything but a partial freeze.
func (f *FreezeForm) Normalize() {
	if f.FreezeType != FreezeTypePartial {
		f.TransactionLimit = nil
	}
}

func (f FreezeForm) Validate() FieldErrors {
	f.AuthorizedBy = strings.TrimSpace(f.AuthorizedBy)
	f.Comments = strings.TrimSpace(f.Comments)
	f.ReviewDate = strings.TrimSpace(f.ReviewDate)
	return ValidateStruct(f, freezeLabels)
}

// FreezeConfirmation is the second factor the operator signs before a freeze is sent.
type FreezeConfirmation struct {
	ConfirmAccountNumber string `json:"confirmAccountNumber" validate:"required"`
	ConfirmFreeze        bool   `json:"confirmFreeze" validate:"required"`
	OfficerSignature     string `json:"officerSignature" validate:"required"`
}

func (c FreezeConfirmation) Validate() FieldErrors {
	c.ConfirmAccountNumber = strings.TrimSpace(c.ConfirmAccountNumber)
	c.OfficerSignature = strings.TrimSpace(c.OfficerSignature)
	return ValidateStruct(c, freezeLabels)
}

// FreezeAccountRequest is sent to PUT /accounts/{id}/freeze.
type FreezeAccountRequest struct {
	AccountNumber string       `json:"accountNumber"`
	Action        string       `json:"action"`
	FreezeType    FreezeType   `json:"freezeType"`
	Reason        FreezeReason `json:"reason"`
	AuthorizedBy  string       `json:"authorizedBy"`
	Comments      string       `json:"comments"`
	ReviewDate    string       `json:"reviewDate"`
}

// NewFreezeAccountRequest builds the backend payload for a validated form.
func NewFreezeAccountRequest(accountNumber string, f FreezeForm) FreezeAccountRequest {
	return FreezeAccountRequest{
		AccountNumber: accountNumber,
		Action:        FreezeActionFreeze,
		FreezeType:    f.FreezeType,
		Reason:        f.Reason,
		AuthorizedBy:  strings.TrimSpace(f.AuthorizedBy),
		Comments:      strings.TrimSpace(f.Comments),
		ReviewDate:    f.ReviewDate,
	}
}

// FreezeAccountResponse is the backend's acknowledgement of a freeze.
type FreezeAccountResponse struct {
	AccountNumber         string    `json:"accountNumber"`
	PreviousStatus        string    `json:"previousStatus"`
	CurrentStatus         string    `json:"currentStatus"`
	FreezeReferenceNumber string    `json:"freezeReferenceNumber"`
	ActionTimestamp       time.Time `json:"actionTimestamp"`
	FreezeType            string    `json:"freezeType"`
	AuthorizedBy          string    `json:"authorizedBy"`
	NextReviewDate        string    `json:"nextReviewDate"`
	Message               string    `json:"message"`
}
