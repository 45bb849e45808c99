package validation

import (
	"testing"

	"origo/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPAN(t *testing.T) {
	tests := []struct {
		name string
		pan  string
		want bool
	}{
		{"valid", "ABCDE1234F", true},
		{"lowercase is accepted", "abcde1234f", true},
		{"surrounding whitespace is trimmed", " ABCDE1234F ", true},
		{"too short", "ABCDE123F", false},
		{"digits in the wrong positions", "AB1DE2345F", false},
		{"missing trailing letter", "ABCDE12345", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPAN(tt.pan))
		})
	}
}

func TestIsValidMobile(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		want   bool
	}{
		{"valid", "9876543210", true},
		{"leading 6", "6123456789", true},
		{"leading 5 rejected", "5876543210", false},
		{"nine digits", "987654321", false},
		{"eleven digits", "98765432100", false},
		{"letters", "98765xyz10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidMobile(tt.mobile))
		})
	}
}

func TestIsValidPincode(t *testing.T) {
	assert.True(t, IsValidPincode("560001"))
	assert.False(t, IsValidPincode("5600"))
	assert.False(t, IsValidPincode("5600011"))
	assert.False(t, IsValidPincode("56000a"))
}

func TestValidator_Employment(t *testing.T) {
	tests := []struct {
		name    string
		input   models.EmploymentDetails
		wantErr string
	}{
		{
			name:  "salaried with employer and income",
			input: models.EmploymentDetails{OccupationType: "salaried", EmployerName: "Acme", MonthlyIncome: 50000},
		},
		{
			name:    "salaried without employer",
			input:   models.EmploymentDetails{OccupationType: "salaried", MonthlyIncome: 50000},
			wantErr: "applicant.employerName",
		},
		{
			name:    "salaried without income",
			input:   models.EmploymentDetails{OccupationType: "salaried", EmployerName: "Acme"},
			wantErr: "applicant.monthlyIncome",
		},
		{
			name:  "business with name and turnover",
			input: models.EmploymentDetails{OccupationType: "business", BusinessName: "Verma Traders", AnnualTurnover: 1200000},
		},
		{
			name:    "self employed without turnover",
			input:   models.EmploymentDetails{OccupationType: "self_employed", BusinessName: "Studio"},
			wantErr: "applicant.annualTurnover",
		},
		{
			name:  "other needs no extra fields",
			input: models.EmploymentDetails{OccupationType: "other"},
		},
		{
			name:    "unknown occupation",
			input:   models.EmploymentDetails{OccupationType: "freelancer"},
			wantErr: "applicant.occupationType",
		},
		{
			name:    "missing occupation",
			input:   models.EmploymentDetails{},
			wantErr: "applicant.occupationType",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Employment("applicant", &tt.input)
			if tt.wantErr == "" {
				assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
			} else {
				assert.Contains(t, v.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidator_AddressList(t *testing.T) {
	valid := models.Address{Type: "current", Line1: "12 MG Road", Pincode: "560001", IsPrimary: true}

	t.Run("empty list", func(t *testing.T) {
		v := New()
		v.AddressList("applicant", nil)
		assert.Contains(t, v.Errors, "applicant.addresses")
	})

	t.Run("one primary passes", func(t *testing.T) {
		v := New()
		v.AddressList("applicant", []models.Address{valid})
		assert.True(t, v.Valid())
	})

	t.Run("no primary fails", func(t *testing.T) {
		a := valid
		a.IsPrimary = false
		v := New()
		v.AddressList("applicant", []models.Address{a})
		assert.Contains(t, v.Errors, "applicant.addresses")
	})

	t.Run("two primaries fail", func(t *testing.T) {
		b := valid
		b.Type = "permanent"
		v := New()
		v.AddressList("applicant", []models.Address{valid, b})
		assert.Contains(t, v.Errors, "applicant.addresses")
	})

	t.Run("bad pincode is flagged per entry", func(t *testing.T) {
		a := valid
		a.Pincode = "12"
		v := New()
		v.AddressList("applicant", []models.Address{a})
		assert.Contains(t, v.Errors, "applicant.pincode")
	})

	t.Run("subject prefixes the field names", func(t *testing.T) {
		v := New()
		v.AddressList("coApplicant", nil)
		assert.Contains(t, v.Errors, "coApplicant.addresses")
	})
}

func TestValidator_LoanTerms(t *testing.T) {
	t.Run("valid terms", func(t *testing.T) {
		v := New()
		v.LoanTerms(&models.LoanTerms{Amount: 500000, Purpose: "home_renovation", TenureMonths: 60, EMIDay: 5})
		assert.True(t, v.Valid())
	})

	t.Run("tenure bounds", func(t *testing.T) {
		for _, tenure := range []int{2, 361} {
			v := New()
			v.LoanTerms(&models.LoanTerms{Amount: 1000, Purpose: "x", TenureMonths: tenure})
			assert.Contains(t, v.Errors, "terms.tenureMonths")
		}
	})

	t.Run("emi day bounds only when set", func(t *testing.T) {
		v := New()
		v.LoanTerms(&models.LoanTerms{Amount: 1000, Purpose: "x", TenureMonths: 12})
		assert.True(t, v.Valid(), "zero emi day means not chosen yet")

		v = New()
		v.LoanTerms(&models.LoanTerms{Amount: 1000, Purpose: "x", TenureMonths: 12, EMIDay: 29})
		assert.Contains(t, v.Errors, "terms.emiDay")
	})
}

func TestValidator_PaymentRequest(t *testing.T) {
	v := New()
	v.PaymentRequest(models.FeeTypeProcessing, 5000)
	assert.True(t, v.Valid())

	v = New()
	v.PaymentRequest("renewal_fee", 5000)
	assert.Contains(t, v.Errors, "feeType")

	v = New()
	v.PaymentRequest(models.FeeTypeLogin, 0)
	assert.Contains(t, v.Errors, "amount")
}
