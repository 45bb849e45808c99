package origination

// Wire shapes of the origination API. The detail payload is irregular and
// deeply nested; every sub-object is optional so a partial response decodes
// into a partially-filled struct instead of failing.

// SummaryResponse is the list-summary payload.
type SummaryResponse struct {
	Applications          []SummaryItem `json:"applications"`
	TotalApplications     int           `json:"total_applications"`
	DraftApplications     int           `json:"draft_applications"`
	CompletedApplications int           `json:"completed_applications"`
}

// SummaryItem is one lightweight application row. It carries no status
// richer than "it exists"; callers need the detail payload for more.
type SummaryItem struct {
	ApplicationID string `json:"application_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MobileNumber  string `json:"mobile_number"`
	CreatedOn     string `json:"created_on"`
}

// DetailResponse is the detailed-info payload for one application.
type DetailResponse struct {
	ApplicationID  string          `json:"application_id"`
	WorkflowState  *WorkflowState  `json:"workflow_state,omitempty"`
	NewLeadData    *NewLeadData    `json:"new_lead_data,omitempty"`
	PersonalInfo   *PersonalInfo   `json:"personal_info,omitempty"`
	AddressInfo    *AddressInfo    `json:"address_info,omitempty"`
	EmploymentInfo *EmploymentInfo `json:"employment_info,omitempty"`
	CollateralInfo *CollateralInfo `json:"collateral_info,omitempty"`
	LoanInfo       *LoanInfo       `json:"loan_info,omitempty"`
	DocumentInfo   *DocumentInfo   `json:"document_info,omitempty"`
	CoApplicants   []CoApplicantInfo `json:"co_applicants,omitempty"`
	CompletedSteps *CompletedSteps `json:"completed_steps,omitempty"`
}

type WorkflowState struct {
	Status      string `json:"status"`
	CurrentStep int    `json:"current_step"`
	UpdatedOn   string `json:"updated_on"`
}

type NewLeadData struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

type PersonalInfo struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
	Email         string `json:"email"`
	PANNumber     string `json:"pan_number"`
	UpdatedOn     string `json:"updated_on"`
}

type AddressInfo struct {
	Addresses []WireAddress `json:"addresses"`
	UpdatedOn string        `json:"updated_on"`
}

type WireAddress struct {
	AddressID   string `json:"address_id"`
	AddressType string `json:"address_type"`
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Line3       string `json:"line3"`
	Landmark    string `json:"landmark"`
	Pincode     string `json:"pincode"`
	City        string `json:"city"`
	State       string `json:"state"`
	IsPrimary   bool   `json:"is_primary"`
}

type EmploymentInfo struct {
	OccupationType string  `json:"occupation_type"`
	EmployerName   string  `json:"employer_name"`
	BusinessName   string  `json:"business_name"`
	MonthlyIncome  float64 `json:"monthly_income"`
	AnnualTurnover float64 `json:"annual_turnover"`
	UpdatedOn      string  `json:"updated_on"`
}

type CollateralInfo struct {
	CollateralType string  `json:"collateral_type"`
	EstimatedValue float64 `json:"estimated_value"`
	Description    string  `json:"description"`
	UpdatedOn      string  `json:"updated_on"`
}

type LoanInfo struct {
	Amount       float64 `json:"amount"`
	Purpose      string  `json:"purpose"`
	TenureMonths int     `json:"tenure_months"`
	UpdatedOn    string  `json:"updated_on"`
}

type DocumentInfo struct {
	Documents []WireDocument `json:"documents"`
	UpdatedOn string         `json:"updated_on"`
}

type WireDocument struct {
	DocumentID string `json:"document_id"`
	Kind       string `json:"kind"`
	FileName   string `json:"file_name"`
	Reference  string `json:"reference"`
	UploadedOn string `json:"uploaded_on"`
}

type CoApplicantInfo struct {
	CoApplicantID string        `json:"co_applicant_id"`
	Relationship  string        `json:"relationship"`
	PersonalInfo  *PersonalInfo `json:"personal_info,omitempty"`
	AddressInfo   *AddressInfo  `json:"address_info,omitempty"`
	IsComplete    bool          `json:"is_complete"`
}

type CompletedSteps struct {
	PersonalInfo   bool `json:"personal_info"`
	AddressDetails bool `json:"address_details"`
}

// CreateApplicationResponse is returned by the create-lead endpoint; the
// application id becomes real only after OTP verification.
type CreateApplicationResponse struct {
	ApplicationID string `json:"application_id"`
	OTPSent       bool   `json:"otp_sent"`
}

// VerifyOTPResponse confirms mobile verification.
type VerifyOTPResponse struct {
	ApplicationID string `json:"application_id"`
	Verified      bool   `json:"verified"`
}

// PincodeResponse is the city/state lookup for a 6-digit postal code.
type PincodeResponse struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// BREQuestionsResponse carries the rule-engine questionnaire.
type BREQuestionsResponse struct {
	Questions []BREQuestion `json:"questions"`
}

type BREQuestion struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

// BREResultResponse is the rule-engine decision after trigger/answers.
type BREResultResponse struct {
	Decision    string `json:"decision"`
	TriggeredOn string `json:"triggered_on"`
}

// UploadDocumentResponse acknowledges a document upload.
type UploadDocumentResponse struct {
	DocumentID string `json:"document_id"`
	Reference  string `json:"reference"`
}

// SubmitAck is the generic acknowledgement for step submissions.
type SubmitAck struct {
	ApplicationID string `json:"application_id"`
	Accepted      bool   `json:"accepted"`
	UpdatedOn     string `json:"updated_on"`
}
