package models

// CoApplicant is a nested applicant owned by a lead, identified by a
// locally generated id. Its sub-wizard runs steps 0 through 4.
type CoApplicant struct {
	ID           string          `json:"id"`
	Relationship string          `json:"relationship"`
	CurrentStep  int             `json:"currentStep"`
	IsComplete   bool            `json:"isComplete"`
	Data         CoApplicantData `json:"data"`
}

// CoApplicantData mirrors the primary applicant's step shapes.
type CoApplicantData struct {
	BasicDetails   *PersonalDetails   `json:"basicDetails,omitempty"`
	Identity       *IdentityDetails   `json:"identity,omitempty"`
	AddressDetails *AddressDetails    `json:"addressDetails,omitempty"`
	Employment     *EmploymentDetails `json:"employment,omitempty"`
}

// CoApplicantUpdate is a shallow patch applied to a co-applicant by id.
// Data is replaced wholesale when set; callers that want additive
// semantics spread the prior data themselves.
type CoApplicantUpdate struct {
	Relationship *string
	CurrentStep  *int
	IsComplete   *bool
	Data         *CoApplicantData
}
