package mapper

import (
	"testing"
	"time"

	"origo/internal/models"
	"origo/internal/origination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromWorkflow(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.LeadStatus
	}{
		{"completed maps to submitted", "completed", models.StatusSubmitted},
		{"completed_success maps to submitted", "completed_success", models.StatusSubmitted},
		{"submitted", "submitted", models.StatusSubmitted},
		{"approved", "approved", models.StatusApproved},
		{"disbursed", "disbursed", models.StatusDisbursed},
		{"rejected", "rejected", models.StatusRejected},
		{"failed maps to rejected", "failed", models.StatusRejected},
		{"case and whitespace insensitive", "  APPROVED ", models.StatusApproved},
		{"unknown falls back to draft", "in_review", models.StatusDraft},
		{"empty falls back to draft", "", models.StatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromWorkflow(tt.input))
		})
	}
}

func TestComposeCustomerName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		fallback string
		want     string
	}{
		{"both parts", "Asha", "Verma", "old", "Asha Verma"},
		{"first only", "Asha", "", "old", "Asha"},
		{"last only", "", "Verma", "old", "Verma"},
		{"both empty keeps fallback", "", "", "old", "old"},
		{"whitespace-only parts keep fallback", "  ", " ", "old", "old"},
		{"parts are trimmed", " Asha ", " Verma ", "", "Asha Verma"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeCustomerName(tt.first, tt.last, tt.fallback))
		})
	}
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  string
		want *int
	}{
		{"birthday already passed this year", "1990-03-10", intPtr(34)},
		{"birthday later this year", "1990-09-10", intPtr(33)},
		{"birthday today", "1990-06-15", intPtr(34)},
		{"birthday tomorrow", "1990-06-16", intPtr(33)},
		{"unparsable", "15/06/1990", nil},
		{"empty", "", nil},
		{"future date", "2030-01-01", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ageAt(tt.dob, now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestPickLatestTimestamp(t *testing.T) {
	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("latest candidate wins", func(t *testing.T) {
		got := PickLatestTimestamp(fallback, "2024-02-01", "2024-05-01T10:00:00", "2024-03-01")
		assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), got)
	})

	t.Run("unparsable candidates are skipped", func(t *testing.T) {
		got := PickLatestTimestamp(fallback, "garbage", "", "2024-02-01")
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("fallback survives when nothing parses", func(t *testing.T) {
		got := PickLatestTimestamp(fallback, "garbage", "also garbage")
		assert.Equal(t, fallback, got)
	})

	t.Run("older candidates never regress the fallback", func(t *testing.T) {
		got := PickLatestTimestamp(fallback, "2023-06-01")
		assert.Equal(t, fallback, got)
	})
}

func TestSummaryItemToLead(t *testing.T) {
	lead := SummaryItemToLead(origination.SummaryItem{
		ApplicationID: "APP-42",
		FirstName:     "Asha",
		LastName:      "Verma",
		MobileNumber:  "9876543210",
		CreatedOn:     "2024-04-02T09:30:00",
	})

	assert.Equal(t, "APP-42", lead.ID)
	assert.Equal(t, "APP-42", lead.AppID)
	assert.Equal(t, models.StatusDraft, lead.Status)
	assert.Equal(t, "Asha Verma", lead.CustomerName)
	assert.Equal(t, "9876543210", lead.CustomerMobile)
	assert.False(t, lead.HasDetails)
	assert.Equal(t, time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC), lead.CreatedAt)
}

func TestDetailedInfoToLead(t *testing.T) {
	base := models.Lead{
		ID:                "local-1",
		AppID:             "APP-42",
		Status:            models.StatusDraft,
		CustomerFirstName: "Asha",
		CustomerLastName:  "Verma",
		CustomerName:      "Asha Verma",
		CustomerMobile:    "9876543210",
		UpdatedAt:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FormData: models.FormData{
			Step4: &models.EmploymentDetails{OccupationType: "salaried", MonthlyIncome: 65000},
		},
	}

	t.Run("nil detail returns base untouched", func(t *testing.T) {
		got := DetailedInfoToLead(base, nil)
		assert.Equal(t, base, got)
	})

	t.Run("payload fields enrich the base", func(t *testing.T) {
		got := DetailedInfoToLead(base, &origination.DetailResponse{
			ApplicationID: "APP-42",
			WorkflowState: &origination.WorkflowState{Status: "approved", CurrentStep: 9, UpdatedOn: "2024-06-01"},
			PersonalInfo: &origination.PersonalInfo{
				FirstName:   "Aisha",
				DateOfBirth: "1990-03-10",
				PANNumber:   "ABCDE1234F",
				UpdatedOn:   "2024-05-20",
			},
			LoanInfo: &origination.LoanInfo{Amount: 500000, Purpose: "home_renovation", TenureMonths: 60},
		})

		assert.Equal(t, models.StatusApproved, got.Status)
		assert.Equal(t, 9, got.CurrentStep)
		assert.Equal(t, "Aisha", got.CustomerFirstName)
		assert.Equal(t, "Verma", got.CustomerLastName, "omitted last name falls back to base")
		assert.Equal(t, "Aisha Verma", got.CustomerName)
		assert.Equal(t, "ABCDE1234F", got.PANNumber)
		assert.Equal(t, float64(500000), got.LoanAmount)
		require.NotNil(t, got.FormData.Step7)
		assert.Equal(t, 60, got.FormData.Step7.TenureMonths)
		assert.True(t, got.HasDetails)
		require.NotNil(t, got.Age)
	})

	t.Run("omitted sub-objects keep base data", func(t *testing.T) {
		got := DetailedInfoToLead(base, &origination.DetailResponse{ApplicationID: "APP-42"})

		require.NotNil(t, got.FormData.Step4)
		assert.Equal(t, "salaried", got.FormData.Step4.OccupationType)
		assert.Equal(t, "Asha Verma", got.CustomerName)
		assert.Equal(t, "9876543210", got.CustomerMobile)
		assert.True(t, got.HasDetails)
	})

	t.Run("updated at takes the latest sub-object timestamp", func(t *testing.T) {
		got := DetailedInfoToLead(base, &origination.DetailResponse{
			WorkflowState:  &origination.WorkflowState{Status: "submitted", UpdatedOn: "2024-03-01"},
			EmploymentInfo: &origination.EmploymentInfo{OccupationType: "salaried", UpdatedOn: "2024-07-15T08:00:00"},
		})
		assert.Equal(t, time.Date(2024, 7, 15, 8, 0, 0, 0, time.UTC), got.UpdatedAt)
	})

	t.Run("completed steps lock the matching sections", func(t *testing.T) {
		got := DetailedInfoToLead(base, &origination.DetailResponse{
			CompletedSteps: &origination.CompletedSteps{PersonalInfo: true, AddressDetails: true},
		})
		assert.True(t, got.Step2Completed)
		assert.True(t, got.Step3Completed)
	})

	t.Run("co-applicants map with nested records", func(t *testing.T) {
		got := DetailedInfoToLead(base, &origination.DetailResponse{
			CoApplicants: []origination.CoApplicantInfo{{
				CoApplicantID: "CO-1",
				Relationship:  "spouse",
				IsComplete:    true,
				PersonalInfo:  &origination.PersonalInfo{FirstName: "Ravi"},
				AddressInfo: &origination.AddressInfo{Addresses: []origination.WireAddress{
					{AddressID: "A1", AddressType: "current", Pincode: "560001", IsPrimary: true},
				}},
			}},
		})

		require.Len(t, got.FormData.CoApplicants, 1)
		co := got.FormData.CoApplicants[0]
		assert.Equal(t, "CO-1", co.ID)
		assert.True(t, co.IsComplete)
		require.NotNil(t, co.Data.BasicDetails)
		assert.Equal(t, "Ravi", co.Data.BasicDetails.FirstName)
		require.NotNil(t, co.Data.AddressDetails)
		assert.Equal(t, "560001", co.Data.AddressDetails.Addresses[0].Pincode)
	})
}

func intPtr(v int) *int { return &v }
