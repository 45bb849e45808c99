// Package validation carries the intake business rules. The same rule set
// serves the primary applicant and co-applicants: validators take an
// explicit subject prefix instead of being duplicated per page.
package validation

import (
	"regexp"
	"strings"

	"origo/internal/models"
)

var (
	panRegex     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	mobileRegex  = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	pincodeRegex = regexp.MustCompile(`^[0-9]{6}$`)
)

// Occupation types accepted on the employment step.
const (
	OccupationSalaried     = "salaried"
	OccupationSelfEmployed = "self_employed"
	OccupationBusiness     = "business"
	OccupationOther        = "other"
)

// IsValidPAN reports whether the value matches the PAN format after
// uppercasing.
func IsValidPAN(pan string) bool {
	return panRegex.MatchString(strings.ToUpper(strings.TrimSpace(pan)))
}

// IsValidMobile reports whether the value is a 10-digit mobile number
// with a leading 6-9.
func IsValidMobile(mobile string) bool {
	return mobileRegex.MatchString(strings.TrimSpace(mobile))
}

// IsValidPincode reports whether the value is a 6-digit postal code.
func IsValidPincode(pincode string) bool {
	return pincodeRegex.MatchString(strings.TrimSpace(pincode))
}

// PersonalDetails validates the step 1 shape for any subject ("applicant",
// "coApplicant").
func (v *Validator) PersonalDetails(subject string, d *models.PersonalDetails) {
	if d == nil {
		v.AddError(subject, "personal details are required")
		return
	}
	v.Required(subject+".firstName", d.FirstName)
	v.Required(subject+".dob", d.DOB)
	v.Required(subject+".gender", d.Gender)
}

// Identity validates the PAN step for any subject.
func (v *Validator) Identity(subject string, d *models.IdentityDetails) {
	if d == nil {
		v.AddError(subject, "identity details are required")
		return
	}
	v.Required(subject+".panNumber", d.PANNumber)
	if d.PANNumber != "" {
		v.Check(IsValidPAN(d.PANNumber), subject+".panNumber", "must match the PAN format AAAAA9999A")
	}
}

// Employment enforces the occupation-conditional rules: salaried needs an
// employer and monthly income, self-employed and business need a business
// name and annual turnover.
func (v *Validator) Employment(subject string, d *models.EmploymentDetails) {
	if d == nil {
		v.AddError(subject, "employment details are required")
		return
	}
	v.Required(subject+".occupationType", d.OccupationType)

	switch d.OccupationType {
	case OccupationSalaried:
		v.Required(subject+".employerName", d.EmployerName)
		v.Check(d.MonthlyIncome > 0, subject+".monthlyIncome", "must be greater than 0")
	case OccupationSelfEmployed, OccupationBusiness:
		v.Required(subject+".businessName", d.BusinessName)
		v.Check(d.AnnualTurnover > 0, subject+".annualTurnover", "must be greater than 0")
	case OccupationOther, "":
		// no extra fields
	default:
		v.AddError(subject+".occupationType", "must be salaried, self_employed, business or other")
	}
}

// Address validates one address for completeness.
func (v *Validator) Address(subject string, a models.Address) {
	v.Required(subject+".type", a.Type)
	v.Required(subject+".line1", a.Line1)
	v.Required(subject+".pincode", a.Pincode)
	if a.Pincode != "" {
		v.Check(IsValidPincode(a.Pincode), subject+".pincode", "must be a 6-digit postal code")
	}
}

// AddressList validates a full address list, including the exactly-one-
// primary convention.
func (v *Validator) AddressList(subject string, list []models.Address) {
	if len(list) == 0 {
		v.AddError(subject+".addresses", "at least one address is required")
		return
	}
	primaries := 0
	for _, a := range list {
		v.Address(subject, a)
		if a.IsPrimary {
			primaries++
		}
	}
	v.Check(primaries == 1, subject+".addresses", "exactly one address must be primary")
}

// LoanTerms validates the step 7 shape.
func (v *Validator) LoanTerms(d *models.LoanTerms) {
	if d == nil {
		v.AddError("terms", "loan terms are required")
		return
	}
	v.Check(d.Amount > 0, "terms.amount", "must be greater than 0")
	v.Required("terms.purpose", d.Purpose)
	v.Range("terms.tenureMonths", float64(d.TenureMonths), 3, 360)
	if d.EMIDay != 0 {
		v.Range("terms.emiDay", float64(d.EMIDay), 1, 28)
	}
}

// PaymentRequest validates a fee-collection request.
func (v *Validator) PaymentRequest(feeType string, amount float64) {
	v.Check(feeType == models.FeeTypeProcessing || feeType == models.FeeTypeLogin,
		"feeType", "must be processing_fee or login_fee")
	v.Check(amount > 0, "amount", "must be greater than 0")
}
