// Package mapper translates origination API wire shapes into the local
// lead shape. Every function here is pure: no I/O, no shared state, and no
// panics on malformed input: bad data degrades to zero values so a partial
// backend payload can never crash the wizard.
package mapper

import (
	"strings"
	"time"

	"origo/internal/models"
	"origo/internal/origination"
)

// workflowStatus maps the backend workflow enum onto the local lifecycle.
// Anything unrecognized is treated as a draft.
var workflowStatus = map[string]models.LeadStatus{
	"completed":         models.StatusSubmitted,
	"completed_success": models.StatusSubmitted,
	"submitted":         models.StatusSubmitted,
	"approved":          models.StatusApproved,
	"disbursed":         models.StatusDisbursed,
	"rejected":          models.StatusRejected,
	"failed":            models.StatusRejected,
}

// StatusFromWorkflow resolves a backend workflow status string.
func StatusFromWorkflow(s string) models.LeadStatus {
	if st, ok := workflowStatus[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return models.StatusDraft
}

// SummaryItemToLead builds a minimal lead from a list-summary row. The
// summary endpoint carries no real status, so the result is always a draft
// with HasDetails false; callers must map the detail payload before
// trusting Status.
func SummaryItemToLead(item origination.SummaryItem) models.Lead {
	createdAt, _ := parseTime(item.CreatedOn)
	return models.Lead{
		ID:                item.ApplicationID,
		AppID:             item.ApplicationID,
		Status:            models.StatusDraft,
		CustomerFirstName: item.FirstName,
		CustomerLastName:  item.LastName,
		CustomerName:      ComposeCustomerName(item.FirstName, item.LastName, ""),
		CustomerMobile:    item.MobileNumber,
		CreatedAt:         createdAt,
		HasDetails:        false,
	}
}

// DetailedInfoToLead enriches base with the detailed-info payload. Every
// sub-object is optional; whatever the payload omits falls back to what
// base already knows, so mapping can only add information, never lose it.
func DetailedInfoToLead(base models.Lead, detail *origination.DetailResponse) models.Lead {
	if detail == nil {
		return base
	}

	out := base
	if detail.ApplicationID != "" {
		out.AppID = detail.ApplicationID
		if out.ID == "" {
			out.ID = detail.ApplicationID
		}
	}

	if detail.WorkflowState != nil {
		out.Status = StatusFromWorkflow(detail.WorkflowState.Status)
		if detail.WorkflowState.CurrentStep > 0 {
			out.CurrentStep = detail.WorkflowState.CurrentStep
		}
	}

	// Step sub-records: prefer the freshly parsed backend field, keep the
	// base value when the payload omits it.
	if detail.PersonalInfo != nil {
		out.FormData.Step1 = personalToStep1(detail.PersonalInfo)
		out.FormData.Step2 = personalToStep2(detail.PersonalInfo, base.FormData.Step2)
	}
	if detail.AddressInfo != nil {
		out.FormData.Step3 = &models.AddressDetails{Addresses: wireAddresses(detail.AddressInfo.Addresses)}
	}
	if detail.EmploymentInfo != nil {
		out.FormData.Step4 = &models.EmploymentDetails{
			OccupationType: detail.EmploymentInfo.OccupationType,
			EmployerName:   detail.EmploymentInfo.EmployerName,
			BusinessName:   detail.EmploymentInfo.BusinessName,
			MonthlyIncome:  detail.EmploymentInfo.MonthlyIncome,
			AnnualTurnover: detail.EmploymentInfo.AnnualTurnover,
		}
	}
	if detail.CollateralInfo != nil {
		out.FormData.Step6 = &models.CollateralDetails{
			Type:           detail.CollateralInfo.CollateralType,
			EstimatedValue: detail.CollateralInfo.EstimatedValue,
			Description:    detail.CollateralInfo.Description,
		}
	}
	if detail.LoanInfo != nil {
		out.FormData.Step7 = &models.LoanTerms{
			Amount:       detail.LoanInfo.Amount,
			Purpose:      detail.LoanInfo.Purpose,
			TenureMonths: detail.LoanInfo.TenureMonths,
		}
		out.LoanAmount = detail.LoanInfo.Amount
		out.LoanPurpose = detail.LoanInfo.Purpose
	}
	if detail.DocumentInfo != nil {
		out.FormData.Step8 = &models.DocumentUploads{Documents: wireDocuments(detail.DocumentInfo.Documents)}
	}
	if len(detail.CoApplicants) > 0 {
		out.FormData.CoApplicants = wireCoApplicants(detail.CoApplicants)
	}

	// Identity fields: personal_info wins, then new_lead_data, then base.
	first, last := base.CustomerFirstName, base.CustomerLastName
	if detail.NewLeadData != nil {
		if detail.NewLeadData.FirstName != "" {
			first = detail.NewLeadData.FirstName
		}
		if detail.NewLeadData.LastName != "" {
			last = detail.NewLeadData.LastName
		}
		if detail.NewLeadData.MobileNumber != "" {
			out.CustomerMobile = detail.NewLeadData.MobileNumber
		}
	}
	if detail.PersonalInfo != nil {
		if detail.PersonalInfo.FirstName != "" {
			first = detail.PersonalInfo.FirstName
		}
		if detail.PersonalInfo.LastName != "" {
			last = detail.PersonalInfo.LastName
		}
		if detail.PersonalInfo.DateOfBirth != "" {
			out.DOB = detail.PersonalInfo.DateOfBirth
		}
		if detail.PersonalInfo.Gender != "" {
			out.Gender = detail.PersonalInfo.Gender
		}
		if detail.PersonalInfo.PANNumber != "" {
			out.PANNumber = detail.PersonalInfo.PANNumber
		}
	}
	out.CustomerFirstName = first
	out.CustomerLastName = last
	out.CustomerName = ComposeCustomerName(first, last, base.CustomerName)
	out.Age = CalculateAge(out.DOB)

	if detail.CompletedSteps != nil {
		out.Step2Completed = detail.CompletedSteps.PersonalInfo
		out.Step3Completed = detail.CompletedSteps.AddressDetails
	}

	if out.CreatedAt.IsZero() && detail.NewLeadData != nil {
		if t, ok := parseTime(detail.NewLeadData.CreatedOn); ok {
			out.CreatedAt = t
		}
	}

	candidates := []string{}
	if detail.WorkflowState != nil {
		candidates = append(candidates, detail.WorkflowState.UpdatedOn)
	}
	if detail.NewLeadData != nil {
		candidates = append(candidates, detail.NewLeadData.UpdatedOn)
	}
	if detail.PersonalInfo != nil {
		candidates = append(candidates, detail.PersonalInfo.UpdatedOn)
	}
	if detail.AddressInfo != nil {
		candidates = append(candidates, detail.AddressInfo.UpdatedOn)
	}
	if detail.EmploymentInfo != nil {
		candidates = append(candidates, detail.EmploymentInfo.UpdatedOn)
	}
	if detail.CollateralInfo != nil {
		candidates = append(candidates, detail.CollateralInfo.UpdatedOn)
	}
	if detail.LoanInfo != nil {
		candidates = append(candidates, detail.LoanInfo.UpdatedOn)
	}
	if detail.DocumentInfo != nil {
		candidates = append(candidates, detail.DocumentInfo.UpdatedOn)
	}
	out.UpdatedAt = PickLatestTimestamp(base.UpdatedAt, candidates...)

	out.HasDetails = true
	return out
}

// ComposeCustomerName joins non-empty name parts with a single space. The
// fallback is returned only when both parts are empty.
func ComposeCustomerName(first, last, fallback string) string {
	parts := []string{}
	if strings.TrimSpace(first) != "" {
		parts = append(parts, strings.TrimSpace(first))
	}
	if strings.TrimSpace(last) != "" {
		parts = append(parts, strings.TrimSpace(last))
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, " ")
}

// CalculateAge returns the whole-year age for a date of birth, or nil when
// the input is absent, unparsable, or in the future.
func CalculateAge(dob string) *int {
	return ageAt(dob, time.Now())
}

func ageAt(dob string, now time.Time) *int {
	birth, ok := parseTime(dob)
	if !ok {
		return nil
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return nil
	}
	return &age
}

// PickLatestTimestamp parses every candidate, drops the unparsable ones,
// and returns the latest. The fallback is returned when nothing survives.
func PickLatestTimestamp(fallback time.Time, candidates ...string) time.Time {
	latest := fallback
	for _, c := range candidates {
		t, ok := parseTime(c)
		if !ok {
			continue
		}
		if t.After(latest) {
			latest = t
		}
	}
	return latest
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func personalToStep1(p *origination.PersonalInfo) *models.PersonalDetails {
	return &models.PersonalDetails{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		DOB:           p.DateOfBirth,
		Gender:        p.Gender,
		MaritalStatus: p.MaritalStatus,
		Email:         p.Email,
	}
}

func personalToStep2(p *origination.PersonalInfo, base *models.IdentityDetails) *models.IdentityDetails {
	out := models.IdentityDetails{}
	if base != nil {
		out = *base
	}
	if p.PANNumber != "" {
		out.PANNumber = p.PANNumber
	}
	if out.PANNumber == "" && base == nil {
		return nil
	}
	return &out
}

func wireAddresses(in []origination.WireAddress) []models.Address {
	out := make([]models.Address, 0, len(in))
	for _, a := range in {
		out = append(out, models.Address{
			ID:        a.AddressID,
			Type:      a.AddressType,
			Line1:     a.Line1,
			Line2:     a.Line2,
			Line3:     a.Line3,
			Landmark:  a.Landmark,
			Pincode:   a.Pincode,
			City:      a.City,
			State:     a.State,
			IsPrimary: a.IsPrimary,
		})
	}
	return out
}

func wireDocuments(in []origination.WireDocument) []models.DocumentRecord {
	out := make([]models.DocumentRecord, 0, len(in))
	for _, d := range in {
		uploadedAt, _ := parseTime(d.UploadedOn)
		out = append(out, models.DocumentRecord{
			ID:         d.DocumentID,
			Kind:       d.Kind,
			FileName:   d.FileName,
			Reference:  d.Reference,
			UploadedAt: uploadedAt,
		})
	}
	return out
}

func wireCoApplicants(in []origination.CoApplicantInfo) []models.CoApplicant {
	out := make([]models.CoApplicant, 0, len(in))
	for _, c := range in {
		co := models.CoApplicant{
			ID:           c.CoApplicantID,
			Relationship: c.Relationship,
			IsComplete:   c.IsComplete,
		}
		if c.PersonalInfo != nil {
			co.Data.BasicDetails = personalToStep1(c.PersonalInfo)
		}
		if c.AddressInfo != nil {
			co.Data.AddressDetails = &models.AddressDetails{Addresses: wireAddresses(c.AddressInfo.Addresses)}
		}
		out = append(out, co)
	}
	return out
}
