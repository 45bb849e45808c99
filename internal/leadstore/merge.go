package leadstore

import (
	"time"

	"origo/internal/mapper"
	"origo/internal/models"
)

// MergeLead combines a partial update against a base lead. It is pure and
// total: a step the update does not mention is carried over from base
// untouched, so a narrow save can never clobber another step's
// already-persisted data. A step the update does set replaces the base
// step wholesale (shallow, never deep-merged within the step).
func MergeLead(base models.Lead, update models.LeadUpdate, now time.Time) models.Lead {
	out := base

	if update.AppID != nil {
		out.AppID = *update.AppID
	}
	if update.Status != nil {
		out.Status = *update.Status
	}
	if update.CustomerMobile != nil {
		out.CustomerMobile = *update.CustomerMobile
	}
	if update.PANNumber != nil {
		out.PANNumber = *update.PANNumber
	}
	if update.DOB != nil {
		out.DOB = *update.DOB
	}
	if update.Age != nil {
		out.Age = update.Age
	}
	if update.Gender != nil {
		out.Gender = *update.Gender
	}
	if update.LoanAmount != nil {
		out.LoanAmount = *update.LoanAmount
	}
	if update.LoanPurpose != nil {
		out.LoanPurpose = *update.LoanPurpose
	}
	if update.CurrentStep != nil {
		out.CurrentStep = *update.CurrentStep
	}
	if update.Step2Completed != nil {
		out.Step2Completed = *update.Step2Completed
	}
	if update.Step3Completed != nil {
		out.Step3Completed = *update.Step3Completed
	}
	if update.HasDetails != nil {
		out.HasDetails = *update.HasDetails
	}

	out.FormData = mergeFormData(base.FormData, update.FormData)

	// Name derivation priority: explicit update, then the step 1 data that
	// survived the merge above, then whatever base already had.
	first, last := base.CustomerFirstName, base.CustomerLastName
	if s1 := out.FormData.Step1; s1 != nil {
		if s1.FirstName != "" {
			first = s1.FirstName
		}
		if s1.LastName != "" {
			last = s1.LastName
		}
	}
	if update.CustomerFirstName != nil {
		first = *update.CustomerFirstName
	}
	if update.CustomerLastName != nil {
		last = *update.CustomerLastName
	}
	out.CustomerFirstName = first
	out.CustomerLastName = last

	fallbackName := base.CustomerName
	if update.CustomerName != nil {
		fallbackName = *update.CustomerName
	}
	out.CustomerName = mapper.ComposeCustomerName(first, last, fallbackName)

	// Stamped on every merge, whether or not anything changed.
	out.UpdatedAt = now
	return out
}

func mergeFormData(base models.FormData, update *models.FormDataUpdate) models.FormData {
	out := base
	if out.CoApplicants == nil {
		out.CoApplicants = []models.CoApplicant{}
	}
	if update == nil {
		return out
	}

	if update.Step1 != nil {
		out.Step1 = update.Step1
	}
	if update.Step2 != nil {
		out.Step2 = update.Step2
	}
	if update.Step3 != nil {
		out.Step3 = update.Step3
	}
	if update.Step4 != nil {
		out.Step4 = update.Step4
	}
	if update.Step5 != nil {
		out.Step5 = update.Step5
	}
	if update.Step6 != nil {
		out.Step6 = update.Step6
	}
	if update.Step7 != nil {
		out.Step7 = update.Step7
	}
	if update.Step8 != nil {
		out.Step8 = update.Step8
	}
	if update.Step9 != nil {
		out.Step9 = update.Step9
	}
	if update.Step10 != nil {
		out.Step10 = update.Step10
	}
	if update.CoApplicants != nil {
		out.CoApplicants = update.CoApplicants
	}
	return out
}
