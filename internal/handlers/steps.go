package handlers

import (
	"strings"

	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"
	"origo/internal/utils"
	"origo/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// StepHandler serves the primary applicant's wizard steps.
type StepHandler struct {
	store  *leadstore.Store
	client *origination.Client
}

func NewStepHandler(store *leadstore.Store, client *origination.Client) *StepHandler {
	return &StepHandler{store: store, client: client}
}

// SavePersonal handles step 1: basic details.
func (h *StepHandler) SavePersonal(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.PersonalDetails
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.PersonalDetails("applicant", &input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	if lead.AppID != "" {
		_, err := h.client.SubmitPersonalInfo(c.Context(), lead.AppID, &origination.PersonalInfo{
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			DateOfBirth:   input.DOB,
			Gender:        input.Gender,
			MaritalStatus: input.MaritalStatus,
			Email:         input.Email,
		})
		if err != nil {
			return upstreamError(c, err)
		}
	}

	step := 2
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		DOB:         &input.DOB,
		Gender:      &input.Gender,
		CurrentStep: maxStep(lead.CurrentStep, &step),
		FormData:    &models.FormDataUpdate{Step1: &input},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveIdentity handles step 2: PAN capture. The section locks once saved.
func (h *StepHandler) SaveIdentity(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}
	if lead.Step2Completed {
		return utils.Conflict(c, "Identity details are already submitted")
	}

	var input models.IdentityDetails
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	input.PANNumber = strings.ToUpper(strings.TrimSpace(input.PANNumber))

	v := validation.New()
	v.Identity("applicant", &input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	if lead.AppID != "" {
		_, err := h.client.SubmitPersonalInfo(c.Context(), lead.AppID, &origination.PersonalInfo{
			FirstName:   lead.CustomerFirstName,
			LastName:    lead.CustomerLastName,
			DateOfBirth: lead.DOB,
			PANNumber:   input.PANNumber,
		})
		if err != nil {
			return upstreamError(c, err)
		}
	}

	step := 3
	completed := true
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		PANNumber:      &input.PANNumber,
		Step2Completed: &completed,
		CurrentStep:    maxStep(lead.CurrentStep, &step),
		FormData:       &models.FormDataUpdate{Step2: &input},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveEmployment handles step 4; required fields depend on occupation.
func (h *StepHandler) SaveEmployment(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.EmploymentDetails
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Employment("applicant", &input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	if lead.AppID != "" {
		_, err := h.client.SubmitEmploymentDetails(c.Context(), lead.AppID, &origination.EmploymentInfo{
			OccupationType: input.OccupationType,
			EmployerName:   input.EmployerName,
			BusinessName:   input.BusinessName,
			MonthlyIncome:  input.MonthlyIncome,
			AnnualTurnover: input.AnnualTurnover,
		})
		if err != nil {
			return upstreamError(c, err)
		}
	}

	step := 5
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		CurrentStep: maxStep(lead.CurrentStep, &step),
		FormData:    &models.FormDataUpdate{Step4: &input},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveCollateral handles step 6.
func (h *StepHandler) SaveCollateral(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.CollateralDetails
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Required("collateral.type", input.Type)
	v.Check(input.EstimatedValue > 0, "collateral.estimatedValue", "must be greater than 0")
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	if lead.AppID != "" {
		_, err := h.client.SubmitCollateralDetails(c.Context(), lead.AppID, &origination.CollateralInfo{
			CollateralType: input.Type,
			EstimatedValue: input.EstimatedValue,
			Description:    input.Description,
		})
		if err != nil {
			return upstreamError(c, err)
		}
	}

	step := 7
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		CurrentStep: maxStep(lead.CurrentStep, &step),
		FormData:    &models.FormDataUpdate{Step6: &input},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveTerms handles step 7: amount, purpose, tenure.
func (h *StepHandler) SaveTerms(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.LoanTerms
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.LoanTerms(&input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	if lead.AppID != "" {
		_, err := h.client.SubmitLoanTerms(c.Context(), lead.AppID, &origination.LoanInfo{
			Amount:       input.Amount,
			Purpose:      input.Purpose,
			TenureMonths: input.TenureMonths,
		})
		if err != nil {
			return upstreamError(c, err)
		}
	}

	step := 8
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		LoanAmount:  &input.Amount,
		LoanPurpose: &input.Purpose,
		CurrentStep: maxStep(lead.CurrentStep, &step),
		FormData:    &models.FormDataUpdate{Step7: &input},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveCoApplicantIntent handles step 5.
func (h *StepHandler) SaveCoApplicantIntent(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.CoApplicantIntent
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	step := 6
	updated, err := h.store.UpdateLead(lead.ID, models.LeadUpdate{
		CurrentStep: maxStep(lead.CurrentStep, &step),
		FormData:    &models.FormDataUpdate{Step5: &input},
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// maxStep keeps the wizard position monotonic: saving an earlier step
// never moves the position backwards.
func maxStep(current int, proposed *int) *int {
	if proposed == nil || *proposed <= current {
		return nil
	}
	return proposed
}
