package models

import "time"

// LeadStatus is the lifecycle state of a loan application.
type LeadStatus string

const (
	StatusDraft     LeadStatus = "Draft"
	StatusSubmitted LeadStatus = "Submitted"
	StatusApproved  LeadStatus = "Approved"
	StatusDisbursed LeadStatus = "Disbursed"
	StatusRejected  LeadStatus = "Rejected"
)

// Lead is one loan application as held by the intake store.
//
// ID is assigned locally when the draft is created and stays stable for the
// whole draft-before-AppID period; AppID is assigned by the origination
// backend once mobile OTP verification succeeds.
type Lead struct {
	ID                string           `json:"id"`
	AppID             string           `json:"appId"`
	Status            LeadStatus       `json:"status"`
	CustomerName      string           `json:"customerName"`
	CustomerFirstName string           `json:"customerFirstName"`
	CustomerLastName  string           `json:"customerLastName"`
	CustomerMobile    string           `json:"customerMobile"`
	PANNumber         string           `json:"panNumber"`
	DOB               string           `json:"dob"`
	Age               *int             `json:"age,omitempty"`
	Gender            string           `json:"gender"`
	LoanAmount        float64          `json:"loanAmount"`
	LoanPurpose       string           `json:"loanPurpose"`
	CurrentStep       int              `json:"currentStep"`
	FormData          FormData         `json:"formData"`
	Step2Completed    bool             `json:"step2Completed"`
	Step3Completed    bool             `json:"step3Completed"`
	Payments          []PaymentSession `json:"payments"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`

	// HasDetails reports whether the full detail payload has been fetched,
	// as opposed to only the lightweight summary row.
	HasDetails bool `json:"hasDetails"`
}

// IsTerminal reports whether the lead has left the editable part of its
// lifecycle. Terminal leads have their wizard sections locked read-only.
func (l *Lead) IsTerminal() bool {
	switch l.Status {
	case StatusSubmitted, StatusApproved, StatusRejected, StatusDisbursed:
		return true
	}
	return false
}

// SummaryStats are the aggregate counts reported by the origination
// backend's summary endpoint. They are sourced independently of the local
// leads slice, so the two can disagree.
type SummaryStats struct {
	Total     int `json:"total"`
	Draft     int `json:"draft"`
	Completed int `json:"completed"`
}

// LeadUpdate is a partial update applied through the merge engine. Nil
// fields leave the base lead untouched; set fields override it. FormData
// follows the same rule per step key.
type LeadUpdate struct {
	AppID             *string
	Status            *LeadStatus
	CustomerName      *string
	CustomerFirstName *string
	CustomerLastName  *string
	CustomerMobile    *string
	PANNumber         *string
	DOB               *string
	Age               *int
	Gender            *string
	LoanAmount        *float64
	LoanPurpose       *string
	CurrentStep       *int
	Step2Completed    *bool
	Step3Completed    *bool
	HasDetails        *bool
	FormData          *FormDataUpdate
}
