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

// AddressHandler serves step 3: the lead's address book. Every mutation
// pushes the full resulting list upstream, so the backend never sees a
// partial diff.
type AddressHandler struct {
	store  *leadstore.Store
	client *origination.Client
}

func NewAddressHandler(store *leadstore.Store, client *origination.Client) *AddressHandler {
	return &AddressHandler{store: store, client: client}
}

// SaveAddresses replaces the address list wholesale and locks step 3.
func (h *AddressHandler) SaveAddresses(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
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
	v.AddressList("applicant", input.Addresses)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	return h.persist(c, lead, input.Addresses, true)
}

// AddAddress appends one address. The first address added becomes primary.
func (h *AddressHandler) AddAddress(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	var input models.Address
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	input.ID = uuid.New().String()

	existing := leadAddresses(lead)
	if len(existing) == 0 {
		input.IsPrimary = true
	} else if input.IsPrimary {
		existing = demoteAll(existing)
	}

	v := validation.New()
	v.Address("applicant", input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	return h.persist(c, lead, append(existing, input), false)
}

// DeleteAddress removes one address; removing the primary promotes the
// first remaining entry.
func (h *AddressHandler) DeleteAddress(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	addrID := c.Params("addressId")
	existing := leadAddresses(lead)
	remaining := models.RemoveAddress(existing, addrID)
	if len(remaining) == len(existing) {
		return utils.NotFound(c, "Address not found")
	}

	return h.persist(c, lead, remaining, false)
}

// SetPrimary marks one address primary and demotes the rest.
func (h *AddressHandler) SetPrimary(c *fiber.Ctx) error {
	lead, err := findLead(h.store, c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	if lead.IsTerminal() {
		return lockedResponse(c)
	}

	addrID := c.Params("addressId")
	existing := leadAddresses(lead)
	updated := models.SetPrimaryAddress(existing, addrID)
	if len(existing) == 0 || models.PrimaryAddress(updated).ID != addrID {
		return utils.NotFound(c, "Address not found")
	}

	return h.persist(c, lead, updated, false)
}

func (h *AddressHandler) persist(c *fiber.Ctx, lead *models.Lead, list []models.Address, complete bool) error {
	if lead.AppID != "" {
		_, err := h.client.SubmitAddressDetails(c.Context(), lead.AppID, toWireAddresses(list))
		if err != nil {
			return upstreamError(c, err)
		}
	}

	update := models.LeadUpdate{
		FormData: &models.FormDataUpdate{Step3: &models.AddressDetails{Addresses: list}},
	}
	if complete {
		done := true
		step := 4
		update.Step3Completed = &done
		update.CurrentStep = maxStep(lead.CurrentStep, &step)
	}
	updated, err := h.store.UpdateLead(lead.ID, update)
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, updated)
}

func leadAddresses(lead *models.Lead) []models.Address {
	if lead.FormData.Step3 == nil {
		return nil
	}
	return lead.FormData.Step3.Addresses
}

func demoteAll(list []models.Address) []models.Address {
	out := make([]models.Address, len(list))
	for i, a := range list {
		a.IsPrimary = false
		out[i] = a
	}
	return out
}

func toWireAddresses(list []models.Address) *origination.AddressInfo {
	wire := make([]origination.WireAddress, len(list))
	for i, a := range list {
		wire[i] = origination.WireAddress{
			AddressID:   a.ID,
			AddressType: a.Type,
			Line1:       a.Line1,
			Line2:       a.Line2,
			Line3:       a.Line3,
			Landmark:    a.Landmark,
			Pincode:     a.Pincode,
			City:        a.City,
			State:       a.State,
			IsPrimary:   a.IsPrimary,
		}
	}
	return &origination.AddressInfo{Addresses: wire}
}
