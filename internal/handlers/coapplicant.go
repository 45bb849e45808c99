package handlers

import (
	"origo/internal/leadstore"
	"origo/internal/models"
	"origo/internal/origination"
	"origo/internal/utils"
	"origo/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CoApplicantHandler serves the co-applicant sub-wizard nested under a
// lead. Sub-step writes patch only the matching co-applicant; other
// entries in the list are never touched.
type CoApplicantHandler struct {
	store  *leadstore.Store
	client *origination.Client
}

func NewCoApplicantHandler(store *leadstore.Store, client *origination.Client) *CoApplicantHandler {
	return &CoApplicantHandler{store: store, client: client}
}

type createCoApplicantRequest struct {
	Relationship string `json:"relationship" validate:"required"`
}

// Create appends a fresh co-applicant and returns it so the caller can
// navigate straight into its sub-wizard.
func (h *CoApplicantHandler) Create(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input createCoApplicantRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validate.Struct(input); err != nil {
		return utils.BadRequest(c, "Relationship is required")
	}

	co, err := h.store.CreateCoApplicant(lead.ID, input.Relationship)
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": co})
}

type patchCoApplicantRequest struct {
	Relationship *string `json:"relationship"`
	CurrentStep  *int    `json:"currentStep"`
	IsComplete   *bool   `json:"isComplete"`
}

// Patch updates navigation fields of one co-applicant.
func (h *CoApplicantHandler) Patch(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input patchCoApplicantRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	updated, err := h.store.UpdateCoApplicant(lead.ID, c.Params("coApplicantId"), models.CoApplicantUpdate{
		Relationship: input.Relationship,
		CurrentStep:  input.CurrentStep,
		IsComplete:   input.IsComplete,
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// Delete removes one co-applicant from the lead.
func (h *CoApplicantHandler) Delete(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	updated, err := h.store.DeleteCoApplicant(lead.ID, c.Params("coApplicantId"))
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveBasicDetails handles the co-applicant's first sub-step. The
// origination API has no per-co-applicant personal endpoint before
// verification, so the record stays local until the final submit.
func (h *CoApplicantHandler) SaveBasicDetails(c *fiber.Ctx) error {
	lead, co, err := h.locate(c)
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
	v.PersonalDetails("coApplicant", &input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	data := co.Data
	data.BasicDetails = &input
	step := 1
	updated, err := h.store.UpdateCoApplicant(lead.ID, co.ID, models.CoApplicantUpdate{
		Data:        &data,
		CurrentStep: maxStep(co.CurrentStep, &step),
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveIdentity handles the co-applicant's identity sub-step.
func (h *CoApplicantHandler) SaveIdentity(c *fiber.Ctx) error {
	lead, co, err := h.locate(c)
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.IdentityDetails
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Identity("coApplicant", &input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	data := co.Data
	data.Identity = &input
	step := 2
	updated, err := h.store.UpdateCoApplicant(lead.ID, co.ID, models.CoApplicantUpdate{
		Data:        &data,
		CurrentStep: maxStep(co.CurrentStep, &step),
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveAddresses handles the co-applicant's address sub-step. It is the
// one co-applicant step with its own upstream endpoint.
func (h *CoApplicantHandler) SaveAddresses(c *fiber.Ctx) error {
	lead, co, err := h.locate(c)
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.AddressDetails
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	for i := range input.Addresses {
		if input.Addresses[i].ID == "" {
			input.Addresses[i].ID = uuid.New().String()
		}
	}

	v := validation.New()
	v.AddressList("coApplicant", input.Addresses)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	if lead.AppID != "" {
		_, err := h.client.SubmitCoApplicantAddressDetails(c.Context(), lead.AppID, co.ID, toWireAddresses(input.Addresses))
		if err != nil {
			return upstreamError(c, err)
		}
	}

	data := co.Data
	data.AddressDetails = &input
	step := 3
	updated, err := h.store.UpdateCoApplicant(lead.ID, co.ID, models.CoApplicantUpdate{
		Data:        &data,
		CurrentStep: maxStep(co.CurrentStep, &step),
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// SaveEmployment handles the co-applicant's final sub-step and marks the
// record complete.
func (h *CoApplicantHandler) SaveEmployment(c *fiber.Ctx) error {
	lead, co, err := h.locate(c)
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
	v.Employment("coApplicant", &input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	data := co.Data
	data.Employment = &input
	step := 4
	done := true
	updated, err := h.store.UpdateCoApplicant(lead.ID, co.ID, models.CoApplicantUpdate{
		Data:        &data,
		CurrentStep: maxStep(co.CurrentStep, &step),
		IsComplete:  &done,
	})
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

// locate resolves both the lead and the addressed co-applicant.
func (h *CoApplicantHandler) locate(c *fiber.Ctx) (*models.Lead, *models.CoApplicant, error) {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return nil, nil, err
	}
	coID := c.Params("coApplicantId")
	for i := range lead.FormData.CoApplicants {
		if lead.FormData.CoApplicants[i].ID == coID {
			return lead, &lead.FormData.CoApplicants[i], nil
		}
	}
	return nil, nil, leadstore.ErrCoApplicantNotFound
}
