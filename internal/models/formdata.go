package models

import "time"

// FormData holds the per-step sub-records of the intake wizard. Each step
// is a concrete optional struct rather than a free-form bag, so the merge
// engine's per-key fallback is checked by the compiler.
type FormData struct {
	Step1        *PersonalDetails   `json:"step1,omitempty"`
	Step2        *IdentityDetails   `json:"step2,omitempty"`
	Step3        *AddressDetails    `json:"step3,omitempty"`
	Step4        *EmploymentDetails `json:"step4,omitempty"`
	Step5        *CoApplicantIntent `json:"step5,omitempty"`
	Step6        *CollateralDetails `json:"step6,omitempty"`
	Step7        *LoanTerms         `json:"step7,omitempty"`
	Step8        *DocumentUploads   `json:"step8,omitempty"`
	Step9        *RiskAssessment    `json:"step9,omitempty"`
	Step10       *PaymentCollection `json:"step10,omitempty"`
	CoApplicants []CoApplicant      `json:"coApplicants"`
}

// FormDataUpdate mirrors FormData for partial updates. A nil step leaves
// the base step untouched; a non-nil step replaces it wholesale (shallow,
// never deep-merged within the step).
type FormDataUpdate struct {
	Step1        *PersonalDetails
	Step2        *IdentityDetails
	Step3        *AddressDetails
	Step4        *EmploymentDetails
	Step5        *CoApplicantIntent
	Step6        *CollateralDetails
	Step7        *LoanTerms
	Step8        *DocumentUploads
	Step9        *RiskAssessment
	Step10       *PaymentCollection
	CoApplicants []CoApplicant
}

// PersonalDetails is step 1 (also the co-applicant basic-details shape).
type PersonalDetails struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"maritalStatus"`
	Email         string `json:"email"`
}

// IdentityDetails is step 2. The section locks read-only once submitted.
type IdentityDetails struct {
	PANNumber   string `json:"panNumber"`
	PANVerified bool   `json:"panVerified"`
	AadhaarRef  string `json:"aadhaarRef"`
}

// AddressDetails is step 3 (also the co-applicant address shape).
type AddressDetails struct {
	Addresses []Address `json:"addresses"`
}

// EmploymentDetails is step 4. Which fields are required depends on the
// occupation type; that rule lives in the validation package.
type EmploymentDetails struct {
	OccupationType string  `json:"occupationType"`
	EmployerName   string  `json:"employerName"`
	BusinessName   string  `json:"businessName"`
	MonthlyIncome  float64 `json:"monthlyIncome"`
	AnnualTurnover float64 `json:"annualTurnover"`
	YearsInRole    int     `json:"yearsInRole"`
}

// CoApplicantIntent is step 5.
type CoApplicantIntent struct {
	WantsCoApplicant bool `json:"wantsCoApplicant"`
	Count            int  `json:"count"`
}

// CollateralDetails is step 6.
type CollateralDetails struct {
	Type           string  `json:"type"`
	EstimatedValue float64 `json:"estimatedValue"`
	Description    string  `json:"description"`
}

// LoanTerms is step 7.
type LoanTerms struct {
	Amount       float64 `json:"amount"`
	Purpose      string  `json:"purpose"`
	TenureMonths int     `json:"tenureMonths"`
	EMIDay       int     `json:"emiDay"`
}

// DocumentUploads is step 8.
type DocumentUploads struct {
	Documents []DocumentRecord `json:"documents"`
}

// DocumentRecord is one uploaded document acknowledged by the backend.
type DocumentRecord struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	FileName   string    `json:"fileName"`
	Reference  string    `json:"reference"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// RiskAssessment is step 9, populated from the business-rule engine.
type RiskAssessment struct {
	Questions   []BREQuestion `json:"questions"`
	Decision    string        `json:"decision"`
	TriggeredAt *time.Time    `json:"triggeredAt,omitempty"`
}

// BREQuestion is one rule-engine question with the officer's answer.
type BREQuestion struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

// PaymentCollection is step 10. The payment sessions themselves live on
// the lead; this step records what the officer chose to collect.
type PaymentCollection struct {
	FeeType string  `json:"feeType"`
	Amount  float64 `json:"amount"`
	Remarks string  `json:"remarks"`
}
